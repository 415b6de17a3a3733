package stockout

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// claves de contexto para la identidad propagada por el middleware HTTP.
type ctxKey string

const (
	ctxKeyUserID ctxKey = "actor_user_id"
	ctxKeyEmail  ctxKey = "actor_email"
)

// WithActor devuelve un contexto con el usuario autenticado (lo fija el middleware).
func WithActor(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	return context.WithValue(ctx, ctxKeyEmail, email)
}

// ActorStrategy es un paso nombrado de la cadena de resolución de actor.
type ActorStrategy struct {
	Name    string
	Resolve func(ctx context.Context, explicitID string) (string, error)
}

// ChainActorResolver recorre estrategias en orden y devuelve el primer actor
// resuelto. Configurable por el caller; el motor solo ve la interfaz.
type ChainActorResolver struct {
	strategies []ActorStrategy
}

// NewChainActorResolver construye la cadena por defecto:
//  1. id explícito del request
//  2. claims del token en el contexto (validados contra el user store)
//  3. email del contexto resuelto contra el user store
func NewChainActorResolver(userRepo repository.UserRepository) *ChainActorResolver {
	return &ChainActorResolver{strategies: []ActorStrategy{
		{Name: "explicit", Resolve: func(_ context.Context, explicitID string) (string, error) {
			if explicitID == "" {
				return "", domain.ErrNotAuthenticated
			}
			u, err := userRepo.GetByID(explicitID)
			if err != nil || u == nil {
				return "", domain.ErrNotAuthenticated
			}
			return u.ID, nil
		}},
		{Name: "context", Resolve: func(ctx context.Context, _ string) (string, error) {
			id, _ := ctx.Value(ctxKeyUserID).(string)
			if id == "" {
				return "", domain.ErrNotAuthenticated
			}
			return id, nil
		}},
		{Name: "email", Resolve: func(ctx context.Context, _ string) (string, error) {
			email, _ := ctx.Value(ctxKeyEmail).(string)
			if email == "" {
				return "", domain.ErrNotAuthenticated
			}
			u, err := userRepo.FindByEmail(email)
			if err != nil || u == nil {
				return "", domain.ErrNotAuthenticated
			}
			return u.ID, nil
		}},
	}}
}

// NewChainActorResolverWith permite inyectar estrategias a medida (tests, otros entornos).
func NewChainActorResolverWith(strategies ...ActorStrategy) *ChainActorResolver {
	return &ChainActorResolver{strategies: strategies}
}

// Resolve implementa ActorResolver.
func (r *ChainActorResolver) Resolve(ctx context.Context, explicitID string) (string, error) {
	for _, s := range r.strategies {
		if id, err := s.Resolve(ctx, explicitID); err == nil && id != "" {
			return id, nil
		}
	}
	return "", domain.ErrNotAuthenticated
}
