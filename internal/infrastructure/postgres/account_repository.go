package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo lectura del plan de cuentas sobre PostgreSQL.
// La ausencia de cuenta devuelve nil sin error; el hard-stop lo decide el builder.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.Active, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindByName busca por nombre exacto, case-insensitive, solo cuentas activas.
func (r *AccountRepo) FindByName(name string) (*entity.Account, error) {
	query := `
		SELECT id, name, type, active, created_at FROM accounts
		WHERE lower(name) = lower($1) AND active = true
		LIMIT 1`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		return nil, fmt.Errorf("find account by name: %w", err)
	}
	return a, nil
}

// FindByNameAndType busca por nombre (case-insensitive) y tipo.
func (r *AccountRepo) FindByNameAndType(name, accountType string) (*entity.Account, error) {
	query := `
		SELECT id, name, type, active, created_at FROM accounts
		WHERE lower(name) = lower($1) AND type = $2 AND active = true
		LIMIT 1`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, name, accountType))
	if err != nil {
		return nil, fmt.Errorf("find account by name/type: %w", err)
	}
	return a, nil
}
