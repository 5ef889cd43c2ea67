package walletauth

import (
	"context"
	"fmt"

	"github.com/guda/guda-backend/internal/core/domain"
)

type AdminFinder interface {
	FindByWallet(ctx context.Context, wallet string) (*domain.Admin, error)
}

type UserFinder interface {
	FindByWallet(ctx context.Context, wallet string) (*domain.User, error)
}

// Resolver looks principals up by exact normalized wallet address.
// Results are never cached; every call reads the store.
type Resolver struct {
	admins AdminFinder
	users  UserFinder
}

func NewResolver(admins AdminFinder, users UserFinder) *Resolver {
	return &Resolver{admins: admins, users: users}
}

func (r *Resolver) Resolve(ctx context.Context, kind domain.PrincipalKind, wallet string) (domain.Principal, error) {
	wallet = domain.NormalizeAddress(wallet)

	switch kind {
	case domain.KindAdmin:
		admin, err := r.admins.FindByWallet(ctx, wallet)
		if err != nil {
			return nil, err
		}
		return admin, nil
	case domain.KindUser:
		user, err := r.users.FindByWallet(ctx, wallet)
		if err != nil {
			return nil, err
		}
		return user, nil
	default:
		return nil, fmt.Errorf("resolve: unknown principal kind %q", kind)
	}
}
