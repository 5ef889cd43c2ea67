package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// ContactService manages each user's address book. Contacts belong to the
// wallet that created them; only that wallet may change or remove them.
type ContactService struct {
	auth     ports.Authenticator
	contacts ports.ContactRepository
	logger   zerolog.Logger
}

func NewContactService(auth ports.Authenticator, contacts ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{auth: auth, contacts: contacts, logger: logger}
}

func (s *ContactService) Create(ctx context.Context, creds ports.WalletCredentials, in ports.CreateContactInput) (*domain.Contact, error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := requireField("phone", in.Phone); err != nil {
		return nil, err
	}
	if err := requireField("email", in.Email); err != nil {
		return nil, err
	}
	if err := optionalEmail("email", in.Email); err != nil {
		return nil, err
	}

	return s.contacts.Create(ctx, &domain.Contact{
		WalletAddress: caller.WalletAddress,
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		IsFavorite:    in.IsFavorite,
		CreatedAt:     time.Now().UTC(),
	})
}

func (s *ContactService) List(ctx context.Context, wallet string) ([]domain.Contact, error) {
	w, err := requireWallet("walletAddress", wallet)
	if err != nil {
		return nil, err
	}
	return s.contacts.ListByWallet(ctx, w, false)
}

func (s *ContactService) Favorites(ctx context.Context, wallet string) ([]domain.Contact, error) {
	w, err := requireWallet("walletAddress", wallet)
	if err != nil {
		return nil, err
	}
	return s.contacts.ListByWallet(ctx, w, true)
}

func (s *ContactService) Update(ctx context.Context, creds ports.WalletCredentials, id string, upd domain.ContactUpdate) (*domain.Contact, error) {
	if _, err := s.owned(ctx, creds, id); err != nil {
		return nil, err
	}
	if upd.Email != nil {
		if err := optionalEmail("email", *upd.Email); err != nil {
			return nil, err
		}
	}
	return s.contacts.Update(ctx, id, upd)
}

func (s *ContactService) Delete(ctx context.Context, creds ports.WalletCredentials, id string) error {
	if _, err := s.owned(ctx, creds, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}

// owned authenticates the caller and loads contact id, failing with
// ErrForbidden when it belongs to another wallet.
func (s *ContactService) owned(ctx context.Context, creds ports.WalletCredentials, id string) (*domain.Contact, error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
	if err != nil {
		return nil, err
	}
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if domain.NormalizeAddress(contact.WalletAddress) != caller.WalletAddress {
		s.logger.Warn().Str("wallet", caller.WalletAddress).Str("contact_id", id).Msg("contact ownership mismatch")
		return nil, domain.ErrForbidden
	}
	return contact, nil
}
