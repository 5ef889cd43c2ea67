package ports

import (
	"context"

	"github.com/guda/guda-backend/internal/core/domain"
)

// AdminUpdate carries profile fields an admin may change on themselves.
// Empty strings leave the stored value untouched.
type AdminUpdate struct {
	Name  string
	Email string
	UpiID string
}

// UserProfileUpdate carries the self-editable user fields.
// Empty strings leave the stored value untouched.
type UserProfileUpdate struct {
	Name       string
	Email      string
	UpiID      string
	Mobile     string
	ProfilePic string
}

// AdminRepository persists admins keyed by normalized wallet address.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByWallet(ctx context.Context, wallet string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Update(ctx context.Context, wallet string, upd AdminUpdate) (*domain.Admin, error)
	SetProfilePic(ctx context.Context, wallet, path string) (*domain.Admin, error)
	Delete(ctx context.Context, wallet string) error
}

// UserRepository persists users together with their embedded documents and
// transaction log.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByWallet(ctx context.Context, wallet string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, wallet string, upd UserProfileUpdate) (*domain.User, error)
	SetProfilePic(ctx context.Context, wallet, path string) (*domain.User, error)
	AddDocument(ctx context.Context, wallet string, doc domain.Document) (*domain.User, error)
	SetKYCStatus(ctx context.Context, wallet string, status bool) (*domain.User, error)
	Delete(ctx context.Context, wallet string) error

	AppendTransaction(ctx context.Context, wallet string, tx domain.Transaction) (*domain.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, wallet, txID string, status domain.TransactionStatus) (*domain.Transaction, error)
	CountAllTransactions(ctx context.Context) (domain.TransactionCounts, error)
}

// ContactRepository persists address-book entries.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	ListByWallet(ctx context.Context, wallet string, favoritesOnly bool) ([]domain.Contact, error)
	Update(ctx context.Context, id string, upd domain.ContactUpdate) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ThemeRepository persists CSS theme records.
type ThemeRepository interface {
	Create(ctx context.Context, t *domain.Theme) (*domain.Theme, error)
	List(ctx context.Context) ([]domain.Theme, error)
	FindByID(ctx context.Context, id string) (*domain.Theme, error)
	Update(ctx context.Context, id string, patch *domain.Theme) (*domain.Theme, error)
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore lets one client-supplied key produce at most one
// transaction per wallet.
type IdempotencyStore interface {
	// Reserve claims key atomically. When another request already holds it,
	// reserved is false and txID is the recorded transaction, or empty while
	// that request is still saving.
	Reserve(ctx context.Context, wallet, key string) (txID string, reserved bool, err error)
	// Complete records the transaction a reserved key produced.
	Complete(ctx context.Context, wallet, key, txID string) error
	// Release drops a reservation whose save failed.
	Release(ctx context.Context, wallet, key string) error
}
