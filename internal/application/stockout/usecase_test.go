package stockout_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	appacc "github.com/jhoicas/stock-ledger-api/internal/application/accounting"
	appso "github.com/jhoicas/stock-ledger-api/internal/application/stockout"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	domso "github.com/jhoicas/stock-ledger-api/internal/domain/stockout"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria. Reproducen el contrato de los adaptadores de PostgreSQL:
// referencias y números de asiento con constraint única (ErrDuplicate),
// búsquedas de cuentas case-insensitive, ausencia como (nil, nil).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	inventories map[string]*entity.Inventory
	stockOuts   map[string]*entity.StockOutTransaction
	movements   []*entity.InventoryMovement
	gls         map[string]*entity.GLTransaction
	glItems     map[string][]*entity.GLTransactionItem
	accounts    []*entity.Account
	products    map[string]*entity.Product
	branches    map[string]*entity.Branch

	// inyección de fallos
	duplicateRefsLeft int // fuerza ErrDuplicate en los próximos N Create de retiros
}

func newMemStore() *memStore {
	return &memStore{
		inventories: map[string]*entity.Inventory{},
		stockOuts:   map[string]*entity.StockOutTransaction{},
		gls:         map[string]*entity.GLTransaction{},
		glItems:     map[string][]*entity.GLTransactionItem{},
		products:    map[string]*entity.Product{},
		branches:    map[string]*entity.Branch{},
	}
}

// ── inventario ────────────────────────────────────────────────────────────────

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInventoryRepo) GetByIDForUpdate(id string) (*entity.Inventory, error) {
	return r.GetByID(id)
}

func (r *memInventoryRepo) GetByProductAndBranch(productID, branchID string) (*entity.Inventory, error) {
	for _, inv := range r.s.inventories {
		if inv.ProductID == productID && inv.BranchID == branchID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) GetByProductAndBranchForUpdate(productID, branchID string) (*entity.Inventory, error) {
	return r.GetByProductAndBranch(productID, branchID)
}

func (r *memInventoryRepo) Create(inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	cp := *inv
	r.s.inventories[inv.ID] = &cp
	return nil
}

func (r *memInventoryRepo) UpdateQuantityOnHand(id string, quantity decimal.Decimal) error {
	inv, ok := r.s.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.QuantityOnHand = quantity
	return nil
}

// ── retiros ───────────────────────────────────────────────────────────────────

type memStockOutRepo struct{ s *memStore }

func (r *memStockOutRepo) Create(tx *entity.StockOutTransaction) error {
	if r.s.duplicateRefsLeft > 0 {
		r.s.duplicateRefsLeft--
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.stockOuts {
		if existing.ReferenceNumber == tx.ReferenceNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *tx
	r.s.stockOuts[tx.ID] = &cp
	return nil
}

func (r *memStockOutRepo) GetByID(id string) (*entity.StockOutTransaction, error) {
	so, ok := r.s.stockOuts[id]
	if !ok {
		return nil, nil
	}
	cp := *so
	return &cp, nil
}

func (r *memStockOutRepo) GetByReference(reference string) (*entity.StockOutTransaction, error) {
	for _, so := range r.s.stockOuts {
		if so.ReferenceNumber == reference {
			cp := *so
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStockOutRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StockOutTransaction, error) {
	var out []*entity.StockOutTransaction
	for _, so := range r.s.stockOuts {
		if so.BranchID == branchID {
			cp := *so
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── movimientos ───────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByReference(reference string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ReferenceNumber == reference {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListRecentInbound(productID, branchID string, limit int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID || m.BranchID != branchID {
			continue
		}
		if m.MovementType != entity.MovementPurchaseIn && m.MovementType != entity.MovementTransferIn {
			continue
		}
		if !m.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovementDate.After(out[j].MovementDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── plan de cuentas ───────────────────────────────────────────────────────────

type memAccountRepo struct{ s *memStore }

func (r *memAccountRepo) FindByName(name string) (*entity.Account, error) {
	for _, a := range r.s.accounts {
		if strings.EqualFold(a.Name, name) && a.Active {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAccountRepo) FindByNameAndType(name, accountType string) (*entity.Account, error) {
	for _, a := range r.s.accounts {
		if strings.EqualFold(a.Name, name) && a.Type == accountType && a.Active {
			return a, nil
		}
	}
	return nil, nil
}

// ── libro mayor ───────────────────────────────────────────────────────────────

type memGLRepo struct{ s *memStore }

func (r *memGLRepo) Create(tx *entity.GLTransaction, items []*entity.GLTransactionItem) error {
	for _, existing := range r.s.gls {
		if existing.TransactionNumber == tx.TransactionNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *tx
	r.s.gls[tx.ID] = &cp
	for _, it := range items {
		icp := *it
		r.s.glItems[tx.ID] = append(r.s.glItems[tx.ID], &icp)
	}
	return nil
}

func (r *memGLRepo) GetByID(id string) (*entity.GLTransaction, []*entity.GLTransactionItem, error) {
	gl, ok := r.s.gls[id]
	if !ok {
		return nil, nil, nil
	}
	return gl, r.s.glItems[id], nil
}

func (r *memGLRepo) GetByReference(reference string) (*entity.GLTransaction, []*entity.GLTransactionItem, error) {
	for id, gl := range r.s.gls {
		if gl.ReferenceNumber == reference {
			return gl, r.s.glItems[id], nil
		}
	}
	return nil, nil, nil
}

// ── productos y sucursales ────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

type memBranchRepo struct{ s *memStore }

func (r *memBranchRepo) GetByID(id string) (*entity.Branch, error) {
	b, ok := r.s.branches[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}
func (r *memBranchRepo) Create(b *entity.Branch) error { r.s.branches[b.ID] = b; return nil }
func (r *memBranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	return nil, nil
}

// ── decrementer y runners ─────────────────────────────────────────────────────

type memDecrementer struct{ s *memStore }

func (d *memDecrementer) Decrement(inventoryID string, quantity decimal.Decimal) (*entity.Inventory, error) {
	inv, ok := d.s.inventories[inventoryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	newQty := inv.QuantityOnHand.Sub(quantity)
	if newQty.IsNegative() {
		newQty = decimal.Zero
	}
	inv.QuantityOnHand = newQty
	cp := *inv
	return &cp, nil
}

// memTxRunner: sin transacciones reales; un error del callback simplemente
// propaga y el test verifica el estado resultante.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	soRepo repository.StockOutTransactionRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
	decrementer appso.InventoryDecrementer,
) error) error {
	return fn(&memStockOutRepo{r.s}, &memInventoryRepo{r.s}, &memMovementRepo{r.s}, &memDecrementer{r.s})
}

func (r *memTxRunner) RunLedger(ctx context.Context, fn func(
	glRepo repository.GLTransactionRepository,
) error) error {
	return fn(&memGLRepo{r.s})
}

type fixedActor struct{ id string }

func (f fixedActor) Resolve(_ context.Context, _ string) (string, error) {
	if f.id == "" {
		return "", domain.ErrNotAuthenticated
	}
	return f.id, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del motor con datos semilla
// ──────────────────────────────────────────────────────────────────────────────

const (
	invID       = "inv-1"
	productID   = "prod-1"
	branchNorte = "branch-norte"
	branchSur   = "branch-sur"
	actorID     = "user-1"
)

func seedStore() *memStore {
	s := newMemStore()
	s.branches[branchNorte] = &entity.Branch{ID: branchNorte, Name: "Norte"}
	s.branches[branchSur] = &entity.Branch{ID: branchSur, Name: "Sur"}
	s.products[productID] = &entity.Product{
		ID: productID, SKU: "SKU-1", Name: "Leche Entera 1L",
		Cost: decimal.NewFromInt(5),
	}
	s.inventories[invID] = &entity.Inventory{
		ID: invID, ProductID: productID, BranchID: branchNorte,
		QuantityOnHand: decimal.NewFromInt(100),
	}
	s.accounts = []*entity.Account{
		{ID: "inv-acc", Name: "Inventory", Type: entity.AccountTypeAsset, Active: true},
		{ID: "inv-norte", Name: "Inventory - Norte", Type: entity.AccountTypeAsset, Active: true},
		{ID: "inv-sur", Name: "Inventory - Sur", Type: entity.AccountTypeAsset, Active: true},
		{ID: "loss-exp", Name: "Inventory Loss - Expired Goods", Type: entity.AccountTypeExpense, Active: true},
		{ID: "loss-dmg", Name: "Inventory Loss - Damaged Goods", Type: entity.AccountTypeExpense, Active: true},
		{ID: "loss-shrink", Name: "Inventory Shrinkage / Theft Loss", Type: entity.AccountTypeExpense, Active: true},
		{ID: "ap-returns", Name: "Accounts Payable - Supplier Returns", Type: entity.AccountTypeLiability, Active: true},
	}
	return s
}

func newEngine(s *memStore) *appso.ProcessStockOutUseCase {
	log := logger.Nop()
	runner := &memTxRunner{s}
	refs := domso.NewReferenceGenerator()
	builder := appacc.NewJournalBuilder(appacc.NewAccountResolver(&memAccountRepo{s}))
	poster := appacc.NewJournalPoster(builder, runner, refs, log)
	costs := appso.NewCostResolver(&memMovementRepo{s}, &memProductRepo{s}, log)
	return appso.NewProcessStockOutUseCase(
		runner, fixedActor{actorID}, costs, poster, refs,
		&memInventoryRepo{s}, &memProductRepo{s}, &memBranchRepo{s}, log,
	)
}

func baseInput() appso.ProcessStockOutInput {
	return appso.ProcessStockOutInput{
		InventoryID: invID,
		ProductID:   productID,
		BranchID:    branchNorte,
		Quantity:    decimal.NewFromInt(10),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

// TestProcess_Dañado: retiro por daño con costo de respaldo del producto.
// Verifica retiro aprobado, decremento, movimiento negativo y asiento
// balanceado débito gasto / crédito inventario de la sucursal.
func TestProcess_Dañado(t *testing.T) {
	s := seedStore()
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonDamaged
	in.Notes = "caja aplastada en bodega"

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, result)

	// resultado
	assert.Equal(t, entity.ImpactLoss, result.FinancialImpact)
	assert.True(t, result.UnitCost.Equal(decimal.NewFromInt(5)), "sin historial de entradas usa el costo del producto")
	assert.True(t, result.LossAmount.Equal(decimal.NewFromInt(50)))
	assert.Regexp(t, `^SO-\d{8}-\d{6}-[0-9A-Z]{3}$`, result.ReferenceNumber)
	assert.NotEmpty(t, result.GLTransactionID)
	assert.Empty(t, result.DestinationMovementID)

	// inventario decrementado
	assert.True(t, s.inventories[invID].QuantityOnHand.Equal(decimal.NewFromInt(90)))

	// retiro persistido, auto-aprobado por el mismo actor
	so := s.stockOuts[result.StockOutTransactionID]
	require.NotNil(t, so)
	assert.Equal(t, entity.StockOutStatusApproved, so.Status)
	assert.Equal(t, actorID, so.CreatedBy)
	assert.Equal(t, actorID, so.ApprovedBy)
	assert.True(t, so.TotalLossAmount.Equal(decimal.NewFromInt(50)))

	// movimiento de auditoría: salida negativa con el tipo de la razón
	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementStockOutDamaged, mov.MovementType)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(-10)))
	assert.Equal(t, result.ReferenceNumber, mov.ReferenceNumber)
	assert.Equal(t, result.StockOutTransactionID, mov.ReferenceID)

	// asiento balanceado
	gl := s.gls[result.GLTransactionID]
	require.NotNil(t, gl)
	assert.Equal(t, entity.GLStatusPosted, gl.Status)
	assert.Equal(t, entity.GLTypeAdjustment, gl.Type)
	assert.Equal(t, result.ReferenceNumber, gl.ReferenceNumber)
	assert.Regexp(t, `^GL-\d{8}-[0-9A-Z]{4}$`, gl.TransactionNumber)
	assert.True(t, gl.TotalAmount.Equal(decimal.NewFromInt(50)))

	items := s.glItems[result.GLTransactionID]
	require.Len(t, items, 2)
	assert.Equal(t, "loss-dmg", items[0].AccountID)
	assert.True(t, items[0].DebitAmount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "inv-norte", items[1].AccountID)
	assert.True(t, items[1].CreditAmount.Equal(decimal.NewFromInt(50)))
}

// TestProcess_CostoPromedioPonderado: con historial de entradas el costo sale
// del promedio ponderado, no del costo registrado del producto.
func TestProcess_CostoPromedioPonderado(t *testing.T) {
	s := seedStore()
	now := time.Now()
	s.movements = append(s.movements,
		&entity.InventoryMovement{
			ID: "m1", ProductID: productID, BranchID: branchNorte,
			MovementType: entity.MovementPurchaseIn,
			Quantity:     decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(2),
			MovementDate: now.Add(-2 * time.Hour),
		},
		&entity.InventoryMovement{
			ID: "m2", ProductID: productID, BranchID: branchNorte,
			MovementType: entity.MovementPurchaseIn,
			Quantity:     decimal.NewFromInt(30), UnitCost: decimal.NewFromInt(4),
			MovementDate: now.Add(-time.Hour),
		},
	)
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonExpired

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	// (10*2 + 30*4) / 40 = 3.5
	assert.True(t, result.UnitCost.Equal(decimal.NewFromFloat(3.5)), "costo: %s", result.UnitCost)
	assert.True(t, result.LossAmount.Equal(decimal.NewFromInt(35)))
}

// TestProcess_Traslado: reason=transferred crea la fila de inventario destino,
// registra el movimiento espejo y postea débito destino / crédito origen.
// La suma de cantidades de la referencia es cero (nada se crea ni destruye).
func TestProcess_Traslado(t *testing.T) {
	s := seedStore()
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonTransferred
	in.DestinationBranchID = branchSur

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.ImpactNeutral, result.FinancialImpact)
	assert.True(t, result.LossAmount.IsZero())
	assert.NotEmpty(t, result.DestinationMovementID)
	assert.NotEmpty(t, result.GLTransactionID)

	// origen decrementado, destino creado con la cantidad
	assert.True(t, s.inventories[invID].QuantityOnHand.Equal(decimal.NewFromInt(90)))
	var dest *entity.Inventory
	for _, inv := range s.inventories {
		if inv.BranchID == branchSur && inv.ProductID == productID {
			dest = inv
		}
	}
	require.NotNil(t, dest, "el traslado crea la fila de inventario destino si no existe")
	assert.True(t, dest.QuantityOnHand.Equal(decimal.NewFromInt(10)))

	// conservación de masa: los movimientos de la referencia suman cero
	total := decimal.Zero
	count := 0
	for _, m := range s.movements {
		if m.ReferenceNumber == result.ReferenceNumber {
			total = total.Add(m.Quantity)
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.True(t, total.IsZero(), "suma de movimientos del traslado: %s", total)

	// asiento: débito inventario destino, crédito inventario origen
	items := s.glItems[result.GLTransactionID]
	require.Len(t, items, 2)
	assert.Equal(t, "inv-sur", items[0].AccountID)
	assert.Equal(t, "inv-norte", items[1].AccountID)
}

// El traslado a una sucursal con inventario existente incrementa la fila.
func TestProcess_TrasladoDestinoExistente(t *testing.T) {
	s := seedStore()
	s.inventories["inv-sur"] = &entity.Inventory{
		ID: "inv-sur", ProductID: productID, BranchID: branchSur,
		QuantityOnHand: decimal.NewFromInt(7),
	}
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonTransferred
	in.DestinationBranchID = branchSur

	_, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, s.inventories["inv-sur"].QuantityOnHand.Equal(decimal.NewFromInt(17)))
}

// TestProcess_DevolucionProveedor: neutral, débito por pagar / crédito inventario.
func TestProcess_DevolucionProveedor(t *testing.T) {
	s := seedStore()
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonReturnedToSupplier
	in.SupplierReturnRef = "RMA-2025-044"

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.ImpactNeutral, result.FinancialImpact)
	assert.True(t, result.LossAmount.IsZero())

	so := s.stockOuts[result.StockOutTransactionID]
	assert.Equal(t, "RMA-2025-044", so.SupplierReturnRef)

	items := s.glItems[result.GLTransactionID]
	require.Len(t, items, 2)
	assert.Equal(t, "ap-returns", items[0].AccountID)
	assert.Equal(t, "inv-norte", items[1].AccountID)
}

// Ajuste por error de digitación: neutral y sin asiento contable.
func TestProcess_AjusteClericalSinAsiento(t *testing.T) {
	s := seedStore()
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonAdjustmentCorrection
	in.AdjustmentType = entity.AdjustmentClericalError

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.ImpactNeutral, result.FinancialImpact)
	assert.Empty(t, result.GLTransactionID)
	assert.Empty(t, s.gls)
	// el inventario y el movimiento sí se registran
	assert.True(t, s.inventories[invID].QuantityOnHand.Equal(decimal.NewFromInt(90)))
	assert.Len(t, s.movements, 1)
}

// Ajuste por faltante real: pérdida contra merma/robo.
func TestProcess_AjusteFaltanteEsPerdida(t *testing.T) {
	s := seedStore()
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonAdjustmentCorrection
	in.AdjustmentType = entity.AdjustmentMissingStock

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.ImpactLoss, result.FinancialImpact)
	items := s.glItems[result.GLTransactionID]
	require.Len(t, items, 2)
	assert.Equal(t, "loss-shrink", items[0].AccountID)
}

// ── rechazos antes de cualquier escritura ─────────────────────────────────────

func TestProcess_StockInsuficiente(t *testing.T) {
	s := seedStore()
	s.inventories[invID].QuantityReserved = decimal.NewFromInt(95) // disponible = 5
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonDamaged
	in.Quantity = decimal.NewFromInt(10)

	_, err := uc.Process(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// nada escrito
	assert.True(t, s.inventories[invID].QuantityOnHand.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, s.stockOuts)
	assert.Empty(t, s.movements)
}

func TestProcess_Validaciones(t *testing.T) {
	s := seedStore()
	uc := newEngine(s)

	cases := []struct {
		name   string
		mutate func(*appso.ProcessStockOutInput)
	}{
		{"razón desconocida", func(in *appso.ProcessStockOutInput) { in.Reason = "sold" }},
		{"cantidad cero", func(in *appso.ProcessStockOutInput) {
			in.Reason = entity.ReasonDamaged
			in.Quantity = decimal.Zero
		}},
		{"cantidad negativa", func(in *appso.ProcessStockOutInput) {
			in.Reason = entity.ReasonDamaged
			in.Quantity = decimal.NewFromInt(-3)
		}},
		{"traslado sin destino", func(in *appso.ProcessStockOutInput) { in.Reason = entity.ReasonTransferred }},
		{"traslado a la misma sucursal", func(in *appso.ProcessStockOutInput) {
			in.Reason = entity.ReasonTransferred
			in.DestinationBranchID = branchNorte
		}},
		{"destino en razón no-traslado", func(in *appso.ProcessStockOutInput) {
			in.Reason = entity.ReasonDamaged
			in.DestinationBranchID = branchSur
		}},
		{"subtipo de ajuste desconocido", func(in *appso.ProcessStockOutInput) {
			in.Reason = entity.ReasonAdjustmentCorrection
			in.AdjustmentType = "typo"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			tc.mutate(&in)
			_, err := uc.Process(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, s.stockOuts, "ningún rechazo debe dejar escrituras")
}

func TestProcess_InventarioInexistente(t *testing.T) {
	uc := newEngine(seedStore())
	in := baseInput()
	in.Reason = entity.ReasonDamaged
	in.InventoryID = "no-such"
	_, err := uc.Process(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La fila de inventario debe corresponder al producto y sucursal declarados.
func TestProcess_InventarioNoCorresponde(t *testing.T) {
	uc := newEngine(seedStore())
	in := baseInput()
	in.Reason = entity.ReasonDamaged
	in.BranchID = branchSur
	_, err := uc.Process(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcess_SinActor(t *testing.T) {
	s := seedStore()
	log := logger.Nop()
	runner := &memTxRunner{s}
	refs := domso.NewReferenceGenerator()
	builder := appacc.NewJournalBuilder(appacc.NewAccountResolver(&memAccountRepo{s}))
	poster := appacc.NewJournalPoster(builder, runner, refs, log)
	costs := appso.NewCostResolver(&memMovementRepo{s}, &memProductRepo{s}, log)
	uc := appso.NewProcessStockOutUseCase(
		runner, fixedActor{""}, costs, poster, refs,
		&memInventoryRepo{s}, &memProductRepo{s}, &memBranchRepo{s}, log,
	)

	in := baseInput()
	in.Reason = entity.ReasonDamaged
	_, err := uc.Process(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

// ── casos degenerados y éxito parcial ─────────────────────────────────────────

// Costo cero conocido: el retiro procede, el asiento se omite con advertencia.
func TestProcess_CostoCeroOmiteAsiento(t *testing.T) {
	s := seedStore()
	s.products[productID].Cost = decimal.Zero // sin costo registrado ni historial
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonDamaged

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, result.UnitCost.IsZero())
	assert.True(t, result.LossAmount.IsZero())
	assert.Empty(t, result.GLTransactionID)
	assert.Empty(t, s.gls, "monto cero no se postea")
	assert.True(t, s.inventories[invID].QuantityOnHand.Equal(decimal.NewFromInt(90)))
}

// TestProcess_ExitoParcial: si el plan de cuentas está incompleto el inventario
// ya quedó confirmado; el error tipado porta el resultado para que el caller
// advierta "stock retirado, contabilidad sin postear".
func TestProcess_ExitoParcial(t *testing.T) {
	s := seedStore()
	// quitar todas las cuentas: el posteo fallará con ErrAccountNotFound
	s.accounts = nil
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonDamaged

	result, err := uc.Process(context.Background(), in)
	require.Error(t, err)

	var pe *appso.LedgerPostingError
	require.ErrorAs(t, err, &pe)
	require.NotNil(t, pe.Result)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Equal(t, result, pe.Result, "el resultado parcial viaja dentro del error")

	// efectos de inventario confirmados pese al fallo contable
	assert.True(t, s.inventories[invID].QuantityOnHand.Equal(decimal.NewFromInt(90)))
	assert.Len(t, s.stockOuts, 1)
	assert.Len(t, s.movements, 1)
	assert.Empty(t, s.gls)
	assert.Empty(t, result.GLTransactionID)
}

// Colisión de referencia: la transacción completa se reintenta con una
// referencia nueva, transparente para el caller.
func TestProcess_ReintentoPorReferenciaDuplicada(t *testing.T) {
	s := seedStore()
	s.duplicateRefsLeft = 2 // dos colisiones forzadas, el tercer intento entra
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonDamaged

	result, err := uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, s.stockOuts, 1)
	assert.True(t, s.inventories[invID].QuantityOnHand.Equal(decimal.NewFromInt(90)),
		"el decremento ocurre una sola vez aunque haya reintentos")
	assert.NotEmpty(t, result.ReferenceNumber)
}

func TestProcess_ReintentosAgotados(t *testing.T) {
	s := seedStore()
	s.duplicateRefsLeft = 10 // más colisiones que reintentos
	uc := newEngine(s)

	in := baseInput()
	in.Reason = entity.ReasonDamaged

	_, err := uc.Process(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
