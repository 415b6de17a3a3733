package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appso "github.com/jhoicas/stock-ledger-api/internal/application/stockout"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockOutHandler expone el motor de retiros sobre HTTP.
type StockOutHandler struct {
	process *appso.ProcessStockOutUseCase
	queries *appso.QueryUseCase
}

// NewStockOutHandler construye el handler.
func NewStockOutHandler(process *appso.ProcessStockOutUseCase, queries *appso.QueryUseCase) *StockOutHandler {
	return &StockOutHandler{process: process, queries: queries}
}

// Create godoc
// @Summary      Procesar un retiro de inventario (no venta)
// @Description  Decrementa inventario, registra el movimiento y postea el asiento contable si corresponde.
// @Tags         stock-outs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessStockOutRequest  true  "retiro"
// @Success      201   {object}  dto.ProcessStockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock-outs [post]
func (h *StockOutHandler) Create(c *fiber.Ctx) error {
	var req dto.ProcessStockOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	// la identidad del token viaja en el context para el ActorResolver
	ctx := appso.WithActor(c.UserContext(), GetUserID(c), GetEmail(c))

	result, err := h.process.Process(ctx, appso.ProcessStockOutInput{
		InventoryID:         req.InventoryID,
		ProductID:           req.ProductID,
		BranchID:            req.BranchID,
		Reason:              req.StockOutReason,
		AdjustmentType:      req.AdjustmentType,
		Quantity:            req.Quantity,
		Notes:               req.Notes,
		DestinationBranchID: req.DestinationBranchID,
		SupplierReturnRef:   req.SupplierReturnRef,
		ActorID:             req.ActorID,
	})

	var postingErr *appso.LedgerPostingError
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(toStockOutResponse(result, ""))
	case errors.As(err, &postingErr):
		// éxito parcial documentado: el inventario quedó confirmado
		return c.Status(fiber.StatusCreated).JSON(toStockOutResponse(postingErr.Result, postingErr.Err.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "retiro inválido: razón, cantidad o destino incorrectos"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock disponible insuficiente para la cantidad solicitada"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "inventario, producto o sucursal no encontrado"})
	case errors.Is(err, domain.ErrNotAuthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no se pudo determinar el actor del retiro"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// GetByID godoc
// @Summary      Consultar un retiro por ID
// @Tags         stock-outs
// @Produce      json
// @Param        id  path  string  true  "stock-out transaction id"
// @Success      200  {object}  dto.StockOutTransactionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock-outs/{id} [get]
func (h *StockOutHandler) GetByID(c *fiber.Ctx) error {
	so, err := h.queries.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "retiro no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toStockOutDTO(so))
}

// ListByBranch godoc
// @Summary      Listar retiros de una sucursal
// @Tags         stock-outs
// @Produce      json
// @Param        branch_id  query  string  true   "sucursal"
// @Param        limit      query  int     false  "default 50"
// @Param        offset     query  int     false  "default 0"
// @Success      200  {array}  dto.StockOutTransactionDTO
// @Security     BearerAuth
// @Router       /api/stock-outs [get]
func (h *StockOutHandler) ListByBranch(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := h.queries.ListByBranch(c.Query("branch_id"), limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es obligatorio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockOutTransactionDTO, 0, len(list))
	for _, so := range list {
		out = append(out, toStockOutDTO(so))
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de inventario de una referencia de retiro
// @Tags         stock-outs
// @Produce      json
// @Param        reference  path  string  true  "SO-YYYYMMDD-HHMMSS-RRR"
// @Success      200  {array}  dto.InventoryMovementDTO
// @Security     BearerAuth
// @Router       /api/stock-outs/{reference}/movements [get]
func (h *StockOutHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.queries.MovementsByReference(c.Params("reference"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "referencia obligatoria"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InventoryMovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.InventoryMovementDTO{
			ID:              m.ID,
			InventoryID:     m.InventoryID,
			ProductID:       m.ProductID,
			BranchID:        m.BranchID,
			MovementType:    m.MovementType,
			Quantity:        m.Quantity,
			UnitCost:        m.UnitCost,
			ReferenceNumber: m.ReferenceNumber,
			ReferenceID:     m.ReferenceID,
			MovementDate:    m.MovementDate,
			Notes:           m.Notes,
			CreatedBy:       m.CreatedBy,
		})
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Asiento contable ligado a una referencia de retiro
// @Tags         stock-outs
// @Produce      json
// @Param        reference  path  string  true  "SO-YYYYMMDD-HHMMSS-RRR"
// @Success      200  {object}  dto.GLTransactionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock-outs/{reference}/ledger [get]
func (h *StockOutHandler) Ledger(c *fiber.Ctx) error {
	gl, items, err := h.queries.LedgerByReference(c.Params("reference"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "referencia obligatoria"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if gl == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la referencia no tiene asiento contable"})
	}
	return c.JSON(toGLDTO(gl, items))
}

func toStockOutResponse(r *appso.ProcessStockOutResult, postingErr string) dto.ProcessStockOutResponse {
	return dto.ProcessStockOutResponse{
		StockOutTransactionID: r.StockOutTransactionID,
		ReferenceNumber:       r.ReferenceNumber,
		InventoryMovementID:   r.InventoryMovementID,
		DestinationMovementID: r.DestinationMovementID,
		GLTransactionID:       r.GLTransactionID,
		FinancialImpact:       r.FinancialImpact,
		LossAmount:            r.LossAmount,
		UnitCost:              r.UnitCost,
		GLPostingError:        postingErr,
	}
}

func toStockOutDTO(so *entity.StockOutTransaction) dto.StockOutTransactionDTO {
	return dto.StockOutTransactionDTO{
		ID:                  so.ID,
		InventoryID:         so.InventoryID,
		ProductID:           so.ProductID,
		BranchID:            so.BranchID,
		Reason:              so.Reason,
		AdjustmentType:      so.AdjustmentType,
		Quantity:            so.Quantity,
		UnitCost:            so.UnitCost,
		FinancialImpact:     so.FinancialImpact,
		TotalLossAmount:     so.TotalLossAmount,
		ReferenceNumber:     so.ReferenceNumber,
		DestinationBranchID: so.DestinationBranchID,
		Notes:               so.Notes,
		Status:              so.Status,
		CreatedBy:           so.CreatedBy,
		CreatedAt:           so.CreatedAt,
	}
}

func toGLDTO(gl *entity.GLTransaction, items []*entity.GLTransactionItem) dto.GLTransactionDTO {
	out := dto.GLTransactionDTO{
		ID:                gl.ID,
		TransactionNumber: gl.TransactionNumber,
		Date:              gl.Date,
		Description:       gl.Description,
		Type:              gl.Type,
		ReferenceNumber:   gl.ReferenceNumber,
		TotalAmount:       gl.TotalAmount,
		PostedBy:          gl.PostedBy,
		Status:            gl.Status,
		Items:             make([]dto.GLItemDTO, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.GLItemDTO{
			AccountID:    it.AccountID,
			DebitAmount:  it.DebitAmount,
			CreditAmount: it.CreditAmount,
			Memo:         it.Memo,
		})
	}
	return out
}
