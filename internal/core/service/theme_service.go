package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// ThemeService manages CSS theme records. Reads are public; writes need an admin.
type ThemeService struct {
	auth   ports.Authenticator
	themes ports.ThemeRepository
	logger zerolog.Logger
}

func NewThemeService(auth ports.Authenticator, themes ports.ThemeRepository, logger zerolog.Logger) *ThemeService {
	return &ThemeService{auth: auth, themes: themes, logger: logger}
}

func (s *ThemeService) Create(ctx context.Context, creds ports.WalletCredentials, t *domain.Theme) (*domain.Theme, error) {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := requireField("color", t.Color); err != nil {
		return nil, err
	}
	if err := requireField("fontSize", t.FontSize); err != nil {
		return nil, err
	}

	created, err := s.themes.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin", caller.WalletAddress).Str("theme_id", created.ID).Msg("theme created")
	return created, nil
}

func (s *ThemeService) List(ctx context.Context) ([]domain.Theme, error) {
	return s.themes.List(ctx)
}

func (s *ThemeService) Get(ctx context.Context, id string) (*domain.Theme, error) {
	return s.themes.FindByID(ctx, id)
}

// Update applies the non-empty fields of patch.
func (s *ThemeService) Update(ctx context.Context, creds ports.WalletCredentials, id string, patch *domain.Theme) (*domain.Theme, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, creds); err != nil {
		return nil, err
	}
	return s.themes.Update(ctx, id, patch)
}

func (s *ThemeService) Delete(ctx context.Context, creds ports.WalletCredentials, id string) error {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return err
	}
	if err := s.themes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("admin", caller.WalletAddress).Str("theme_id", id).Msg("theme deleted")
	return nil
}
