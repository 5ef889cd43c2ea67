package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/infrastructure/metrics"
	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// AdminService implements admin self-management and the admin-only user
// operations. Every method except the seed path authenticates first.
type AdminService struct {
	auth   ports.Authenticator
	admins ports.AdminRepository
	users  ports.UserRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewAdminService(auth ports.Authenticator, admins ports.AdminRepository, users ports.UserRepository, files ports.FileStore, logger zerolog.Logger) *AdminService {
	return &AdminService{auth: auth, admins: admins, users: users, files: files, logger: logger}
}

func (s *AdminService) Authenticate(ctx context.Context, creds ports.WalletCredentials) (*domain.Admin, error) {
	return s.auth.AuthenticateAdmin(ctx, creds)
}

// Create registers a new admin on behalf of an authenticated admin.
func (s *AdminService) Create(ctx context.Context, creds ports.WalletCredentials, in ports.RegisterAdminInput) (*domain.Admin, error) {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return nil, err
	}

	admin, err := s.Seed(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("created_by", caller.WalletAddress).Str("wallet", admin.WalletAddress).Msg("admin created")
	return admin, nil
}

// Seed creates an admin without authentication. It backs the bootstrap
// command and must not be exposed over HTTP.
func (s *AdminService) Seed(ctx context.Context, in ports.RegisterAdminInput) (*domain.Admin, error) {
	wallet, err := requireWallet("walletAddress", in.WalletAddress)
	if err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := requireField("email", in.Email); err != nil {
		return nil, err
	}
	if err := optionalEmail("email", in.Email); err != nil {
		return nil, err
	}
	if err := requireField("upiId", in.UpiID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin, err := s.admins.Create(ctx, &domain.Admin{
		WalletAddress: wallet,
		Name:          in.Name,
		Email:         in.Email,
		UpiID:         in.UpiID,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(domain.KindAdmin)).Inc()
	return admin, nil
}

func (s *AdminService) List(ctx context.Context, creds ports.WalletCredentials) ([]domain.Admin, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, creds); err != nil {
		return nil, err
	}
	return s.admins.List(ctx)
}

// Self returns the authenticated admin's own record.
func (s *AdminService) Self(ctx context.Context, creds ports.WalletCredentials) (*domain.Admin, error) {
	return s.auth.AuthenticateAdmin(ctx, creds)
}

func (s *AdminService) Update(ctx context.Context, creds ports.WalletCredentials, upd ports.AdminUpdate) (*domain.Admin, error) {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := optionalEmail("email", upd.Email); err != nil {
		return nil, err
	}
	return s.admins.Update(ctx, caller.WalletAddress, upd)
}

func (s *AdminService) UploadProfilePic(ctx context.Context, creds ports.WalletCredentials, file ports.Upload) (*domain.Admin, error) {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return nil, err
	}

	if file.Content == nil {
		return nil, domain.Invalidf("profilePic file is required")
	}

	path, err := s.files.Save(ctx, uploadExt(file.Filename), file.Content)
	if err != nil {
		return nil, fmt.Errorf("store profile picture: %w", err)
	}
	metrics.UploadsTotal.WithLabelValues("profile_pic").Inc()

	return s.admins.SetProfilePic(ctx, caller.WalletAddress, path)
}

// Delete removes target, or the caller itself when target is empty.
func (s *AdminService) Delete(ctx context.Context, creds ports.WalletCredentials, target string) error {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return err
	}

	wallet := caller.WalletAddress
	if target != "" {
		if wallet, err = requireWallet("adminWalletAddress", target); err != nil {
			return err
		}
	}

	if err := s.admins.Delete(ctx, wallet); err != nil {
		return err
	}
	s.logger.Info().Str("deleted_by", caller.WalletAddress).Str("wallet", wallet).Msg("admin deleted")
	return nil
}

// SetUserKYC flips a user's KYC flag. A missing user is reported as not
// found and nothing is created.
func (s *AdminService) SetUserKYC(ctx context.Context, creds ports.WalletCredentials, userWallet string, status *bool) (*domain.User, error) {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return nil, err
	}
	wallet, err := requireWallet("walletAddress", userWallet)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, domain.Invalidf("kycStatus is required")
	}

	user, err := s.users.SetKYCStatus(ctx, wallet, *status)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin", caller.WalletAddress).Str("user", wallet).Bool("kyc_status", *status).Msg("kyc status updated")
	return user, nil
}

func (s *AdminService) ListUsers(ctx context.Context, creds ports.WalletCredentials) ([]domain.User, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, creds); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *AdminService) DeleteUser(ctx context.Context, creds ports.WalletCredentials, userWallet string) error {
	caller, err := s.auth.AuthenticateAdmin(ctx, creds)
	if err != nil {
		return err
	}
	wallet, err := requireWallet("userWalletAddress", userWallet)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, wallet); err != nil {
		return err
	}
	s.logger.Info().Str("admin", caller.WalletAddress).Str("user", wallet).Msg("user deleted")
	return nil
}

// CountAllTransactions tallies every user's transactions by status.
func (s *AdminService) CountAllTransactions(ctx context.Context, creds ports.WalletCredentials) (domain.TransactionCounts, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, creds); err != nil {
		return domain.TransactionCounts{}, err
	}
	return s.users.CountAllTransactions(ctx)
}
