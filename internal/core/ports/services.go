package ports

import (
	"context"
	"io"

	"github.com/guda/guda-backend/internal/core/domain"
)

// Authenticator is the wallet authentication gate as seen by services.
type Authenticator interface {
	AuthenticateAdmin(ctx context.Context, creds WalletCredentials) (*domain.Admin, error)
	AuthenticateUser(ctx context.Context, creds WalletCredentials) (*domain.User, error)
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// RegisterAdminInput carries the fields needed to create an admin.
type RegisterAdminInput struct {
	WalletAddress string
	Name          string
	Email         string
	UpiID         string
}

// AdminService covers admin self-management and admin-only user operations.
type AdminService interface {
	Authenticate(ctx context.Context, creds WalletCredentials) (*domain.Admin, error)
	Create(ctx context.Context, creds WalletCredentials, in RegisterAdminInput) (*domain.Admin, error)
	List(ctx context.Context, creds WalletCredentials) ([]domain.Admin, error)
	Self(ctx context.Context, creds WalletCredentials) (*domain.Admin, error)
	Update(ctx context.Context, creds WalletCredentials, upd AdminUpdate) (*domain.Admin, error)
	UploadProfilePic(ctx context.Context, creds WalletCredentials, file Upload) (*domain.Admin, error)
	Delete(ctx context.Context, creds WalletCredentials, target string) error

	SetUserKYC(ctx context.Context, creds WalletCredentials, userWallet string, status *bool) (*domain.User, error)
	ListUsers(ctx context.Context, creds WalletCredentials) ([]domain.User, error)
	DeleteUser(ctx context.Context, creds WalletCredentials, userWallet string) error
	CountAllTransactions(ctx context.Context, creds WalletCredentials) (domain.TransactionCounts, error)
}

// RegisterUserInput carries the fields accepted at user registration.
type RegisterUserInput struct {
	WalletAddress string
	Name          string
	Email         string
	UpiID         string
	Mobile        string
}

// UserService covers user registration, profile and KYC documents.
type UserService interface {
	Authenticate(ctx context.Context, creds WalletCredentials) (*domain.User, error)
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	UpdateProfile(ctx context.Context, creds WalletCredentials, upd UserProfileUpdate) (*domain.User, error)
	UploadProfilePic(ctx context.Context, creds WalletCredentials, file Upload) (*domain.User, error)
	UploadDocument(ctx context.Context, creds WalletCredentials, docType domain.DocumentType, file Upload) (*domain.User, error)
	ReadDocument(ctx context.Context, creds WalletCredentials, index int) (*domain.Document, []byte, error)
	GetByWallet(ctx context.Context, wallet string) (*domain.User, error)
	Balances(ctx context.Context, wallet string) (*domain.Balances, error)
}

// SaveTransactionInput carries a new transaction log entry.
type SaveTransactionInput struct {
	Type           string
	Amount         float64
	From           string
	To             string
	Note           string
	Status         domain.TransactionStatus
	IdempotencyKey string
}

// TransactionService manages the per-user transaction log.
type TransactionService interface {
	Save(ctx context.Context, creds WalletCredentials, in SaveTransactionInput) (tx *domain.Transaction, replayed bool, err error)
	UpdateStatus(ctx context.Context, creds WalletCredentials, wallet, txID string, status domain.TransactionStatus) (*domain.Transaction, error)
	History(ctx context.Context, wallet string) ([]domain.Transaction, error)
	Recent(ctx context.Context, wallet string, limit int) ([]domain.Transaction, error)
	ByStatus(ctx context.Context, wallet string, status domain.TransactionStatus) ([]domain.Transaction, error)
	ByType(ctx context.Context, wallet, txType string) ([]domain.Transaction, error)
	CountByStatus(ctx context.Context, wallet string) (domain.TransactionCounts, error)
}

// CreateContactInput carries a new address-book entry.
type CreateContactInput struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	IsFavorite bool
}

// ContactService manages a user's address book.
type ContactService interface {
	Create(ctx context.Context, creds WalletCredentials, in CreateContactInput) (*domain.Contact, error)
	List(ctx context.Context, wallet string) ([]domain.Contact, error)
	Favorites(ctx context.Context, wallet string) ([]domain.Contact, error)
	Update(ctx context.Context, creds WalletCredentials, id string, upd domain.ContactUpdate) (*domain.Contact, error)
	Delete(ctx context.Context, creds WalletCredentials, id string) error
}

// ThemeService manages CSS theme records. Reads are public.
type ThemeService interface {
	Create(ctx context.Context, creds WalletCredentials, t *domain.Theme) (*domain.Theme, error)
	List(ctx context.Context) ([]domain.Theme, error)
	Get(ctx context.Context, id string) (*domain.Theme, error)
	Update(ctx context.Context, creds WalletCredentials, id string, patch *domain.Theme) (*domain.Theme, error)
	Delete(ctx context.Context, creds WalletCredentials, id string) error
}
