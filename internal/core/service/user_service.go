package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guda/guda-backend/internal/infrastructure/metrics"
	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// UserService implements registration, profile edits and KYC documents.
type UserService struct {
	auth   ports.Authenticator
	users  ports.UserRepository
	files  ports.FileStore
	cipher ports.DocumentCipher // nil disables document upload and download
	logger zerolog.Logger
}

func NewUserService(auth ports.Authenticator, users ports.UserRepository, files ports.FileStore, cipher ports.DocumentCipher, logger zerolog.Logger) *UserService {
	return &UserService{auth: auth, users: users, files: files, cipher: cipher, logger: logger}
}

func (s *UserService) Authenticate(ctx context.Context, creds ports.WalletCredentials) (*domain.User, error) {
	return s.auth.AuthenticateUser(ctx, creds)
}

// Register creates a user. Registration is open: proving key control is only
// required for later mutations.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	wallet, err := requireWallet("walletAddress", in.WalletAddress)
	if err != nil {
		return nil, err
	}
	if err := optionalEmail("email", in.Email); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		WalletAddress: wallet,
		Name:          in.Name,
		Email:         in.Email,
		UpiID:         in.UpiID,
		Mobile:        in.Mobile,
		Documents:     []domain.Document{},
		Balances:      zeroBalances(),
		Transactions:  []domain.Transaction{},
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(domain.KindUser)).Inc()
	s.logger.Info().Str("wallet", wallet).Msg("user registered")
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, creds ports.WalletCredentials, upd ports.UserProfileUpdate) (*domain.User, error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := optionalEmail("email", upd.Email); err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, caller.WalletAddress, upd)
}

func (s *UserService) UploadProfilePic(ctx context.Context, creds ports.WalletCredentials, file ports.Upload) (*domain.User, error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
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

	return s.users.SetProfilePic(ctx, caller.WalletAddress, path)
}

// UploadDocument encrypts a KYC document, stores the ciphertext and appends
// its reference to the caller's documents.
func (s *UserService) UploadDocument(ctx context.Context, creds ports.WalletCredentials, docType domain.DocumentType, file ports.Upload) (*domain.User, error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
	if err != nil {
		return nil, err
	}
	if s.cipher == nil {
		return nil, domain.ErrDocumentsDisabled
	}
	if !docType.Valid() {
		return nil, domain.Invalidf("documentType must be one of: PAN AADHAR DL")
	}

	plain, err := readAll(file)
	if err != nil {
		return nil, err
	}
	sealed, nonce, err := s.cipher.Encrypt(plain)
	if err != nil {
		return nil, fmt.Errorf("encrypt document: %w", err)
	}

	ext := uploadExt(file.Filename)
	path, err := s.files.Save(ctx, ext, bytesReader(sealed))
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	metrics.UploadsTotal.WithLabelValues("document").Inc()

	return s.users.AddDocument(ctx, caller.WalletAddress, domain.Document{
		Path:      path,
		Type:      docType,
		IV:        hex.EncodeToString(nonce),
		Extension: ext,
	})
}

// ReadDocument returns the caller's document at index, decrypted.
func (s *UserService) ReadDocument(ctx context.Context, creds ports.WalletCredentials, index int) (*domain.Document, []byte, error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
	if err != nil {
		return nil, nil, err
	}
	if s.cipher == nil {
		return nil, nil, domain.ErrDocumentsDisabled
	}
	if index < 0 || index >= len(caller.Documents) {
		return nil, nil, domain.ErrDocumentNotFound
	}

	doc := caller.Documents[index]
	nonce, err := hex.DecodeString(doc.IV)
	if err != nil {
		return nil, nil, fmt.Errorf("decode document iv: %w", err)
	}
	sealed, err := s.files.Read(ctx, doc.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read document: %w", err)
	}
	plain, err := s.cipher.Decrypt(sealed, nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("decrypt document: %w", err)
	}
	return &doc, plain, nil
}

func (s *UserService) GetByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	w, err := requireWallet("walletAddress", wallet)
	if err != nil {
		return nil, err
	}
	return s.users.FindByWallet(ctx, w)
}

// Balances returns the stored balances. They are never refreshed from chain.
func (s *UserService) Balances(ctx context.Context, wallet string) (*domain.Balances, error) {
	user, err := s.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}
	return &user.Balances, nil
}

func zeroBalances() domain.Balances {
	return domain.Balances{
		ETH:         decimal.Zero,
		USDCEth:     decimal.Zero,
		Matic:       decimal.Zero,
		USDCPolygon: decimal.Zero,
	}
}
