package walletauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/infrastructure/metrics"
	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// PrincipalResolver finds a principal of the given kind by wallet address.
type PrincipalResolver interface {
	Resolve(ctx context.Context, kind domain.PrincipalKind, wallet string) (domain.Principal, error)
}

// Gate is the single authentication contract privileged operations go through.
//
// Checks run in a fixed order and stop at the first failure:
//  1. both address and signature present, else ErrMissingCredentials
//  2. the signature recovers to the claimed address, else ErrSignatureMismatch
//  3. a principal of the requested kind exists, else ErrNotFound
//
// A malformed signature is reported as ErrSignatureMismatch and also matches
// ErrMalformedSignature.
type Gate struct {
	resolver PrincipalResolver
	logger   zerolog.Logger
}

func NewGate(resolver PrincipalResolver, logger zerolog.Logger) *Gate {
	return &Gate{resolver: resolver, logger: logger}
}

// Authenticate runs the gate for kind and returns the resolved principal.
func (g *Gate) Authenticate(ctx context.Context, kind domain.PrincipalKind, creds ports.WalletCredentials) (domain.Principal, error) {
	start := time.Now()
	p, err := g.authenticate(ctx, kind, creds)

	outcome := outcomeOf(err)
	metrics.AuthAttemptsTotal.WithLabelValues(string(kind), outcome).Inc()
	metrics.AuthDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	g.logger.Debug().
		Str("kind", string(kind)).
		Str("wallet", domain.NormalizeAddress(creds.WalletAddress)).
		Str("outcome", outcome).
		Msg("wallet authentication")

	return p, err
}

func (g *Gate) authenticate(ctx context.Context, kind domain.PrincipalKind, creds ports.WalletCredentials) (domain.Principal, error) {
	if strings.TrimSpace(creds.WalletAddress) == "" || strings.TrimSpace(creds.Signature) == "" {
		return nil, domain.ErrMissingCredentials
	}

	verified, err := Verify(creds.WalletAddress, creds.Signature)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedSignature) {
			return nil, fmt.Errorf("%w: %w", domain.ErrSignatureMismatch, err)
		}
		return nil, err
	}

	return g.resolver.Resolve(ctx, kind, verified)
}

// AuthenticateAdmin runs the gate against the admin collection.
func (g *Gate) AuthenticateAdmin(ctx context.Context, creds ports.WalletCredentials) (*domain.Admin, error) {
	p, err := g.Authenticate(ctx, domain.KindAdmin, creds)
	if err != nil {
		return nil, err
	}
	admin, ok := p.(*domain.Admin)
	if !ok {
		return nil, fmt.Errorf("authenticate admin: unexpected principal %T", p)
	}
	return admin, nil
}

// AuthenticateUser runs the gate against the user collection.
func (g *Gate) AuthenticateUser(ctx context.Context, creds ports.WalletCredentials) (*domain.User, error) {
	p, err := g.Authenticate(ctx, domain.KindUser, creds)
	if err != nil {
		return nil, err
	}
	user, ok := p.(*domain.User)
	if !ok {
		return nil, fmt.Errorf("authenticate user: unexpected principal %T", p)
	}
	return user, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, domain.ErrSignatureMismatch):
		return "signature_mismatch"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
