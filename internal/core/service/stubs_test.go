package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
	"github.com/guda/guda-backend/internal/core/walletauth"
	"github.com/guda/guda-backend/internal/core/walletauth/walletauthtest"
)

type stubAdminRepo struct {
	admins map[string]*domain.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	if _, ok := r.admins[a.WalletAddress]; ok {
		return nil, domain.ErrAdminExists
	}
	for _, existing := range r.admins {
		if existing.Email == a.Email {
			return nil, domain.ErrAdminExists
		}
	}
	clone := *a
	clone.ID = "admin-" + a.WalletAddress[2:8]
	r.admins[a.WalletAddress] = &clone
	return &clone, nil
}

func (r *stubAdminRepo) FindByWallet(_ context.Context, wallet string) (*domain.Admin, error) {
	a, ok := r.admins[wallet]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	out := make([]domain.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAdminRepo) Update(_ context.Context, wallet string, upd ports.AdminUpdate) (*domain.Admin, error) {
	a, ok := r.admins[wallet]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	if upd.Name != "" {
		a.Name = upd.Name
	}
	if upd.Email != "" {
		a.Email = upd.Email
	}
	if upd.UpiID != "" {
		a.UpiID = upd.UpiID
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) SetProfilePic(_ context.Context, wallet, path string) (*domain.Admin, error) {
	a, ok := r.admins[wallet]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	a.ProfilePic = path
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) Delete(_ context.Context, wallet string) error {
	if _, ok := r.admins[wallet]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(r.admins, wallet)
	return nil
}

type stubUserRepo struct {
	users  map[string]*domain.User
	nextTx int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Documents = append([]domain.Document(nil), u.Documents...)
	clone.Transactions = append([]domain.Transaction(nil), u.Transactions...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.WalletAddress]; ok {
		return nil, domain.ErrUserExists
	}
	clone := cloneUser(u)
	clone.ID = "user-" + u.WalletAddress[2:8]
	r.users[u.WalletAddress] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) get(wallet string) (*domain.User, error) {
	u, ok := r.users[wallet]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByWallet(_ context.Context, wallet string) (*domain.User, error) {
	u, err := r.get(wallet)
	if err != nil {
		return nil, err
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, wallet string, upd ports.UserProfileUpdate) (*domain.User, error) {
	u, err := r.get(wallet)
	if err != nil {
		return nil, err
	}
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.UpiID != "" {
		u.UpiID = upd.UpiID
	}
	if upd.Mobile != "" {
		u.Mobile = upd.Mobile
	}
	if upd.ProfilePic != "" {
		u.ProfilePic = upd.ProfilePic
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetProfilePic(_ context.Context, wallet, path string) (*domain.User, error) {
	u, err := r.get(wallet)
	if err != nil {
		return nil, err
	}
	u.ProfilePic = path
	return cloneUser(u), nil
}

func (r *stubUserRepo) AddDocument(_ context.Context, wallet string, doc domain.Document) (*domain.User, error) {
	u, err := r.get(wallet)
	if err != nil {
		return nil, err
	}
	u.Documents = append(u.Documents, doc)
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetKYCStatus(_ context.Context, wallet string, status bool) (*domain.User, error) {
	u, err := r.get(wallet)
	if err != nil {
		return nil, err
	}
	u.KYCStatus = status
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, wallet string) error {
	if _, err := r.get(wallet); err != nil {
		return err
	}
	delete(r.users, wallet)
	return nil
}

func (r *stubUserRepo) AppendTransaction(_ context.Context, wallet string, tx domain.Transaction) (*domain.Transaction, error) {
	u, err := r.get(wallet)
	if err != nil {
		return nil, err
	}
	r.nextTx++
	tx.ID = fmt.Sprintf("tx-%d", r.nextTx)
	u.Transactions = append(u.Transactions, tx)
	return &tx, nil
}

func (r *stubUserRepo) UpdateTransactionStatus(_ context.Context, wallet, txID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	u, err := r.get(wallet)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}
	for i := range u.Transactions {
		if u.Transactions[i].ID == txID {
			u.Transactions[i].Status = status
			tx := u.Transactions[i]
			return &tx, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *stubUserRepo) CountAllTransactions(_ context.Context) (domain.TransactionCounts, error) {
	var c domain.TransactionCounts
	for _, u := range r.users {
		for _, tx := range u.Transactions {
			c.Add(tx.Status, 1)
		}
	}
	return c, nil
}

type stubFileStore struct {
	files map[string][]byte
	n     int
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{files: make(map[string][]byte)}
}

func (f *stubFileStore) Save(_ context.Context, ext string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.n++
	path := fmt.Sprintf("uploads/%d%s", f.n, ext)
	f.files[path] = b
	return path, nil
}

func (f *stubFileStore) Read(_ context.Context, path string) ([]byte, error) {
	b, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file %s", path)
	}
	return b, nil
}

// xorCipher is a reversible stand-in for the real document cipher.
type xorCipher struct{}

func (xorCipher) Encrypt(p []byte) ([]byte, []byte, error) {
	out := make([]byte, len(p))
	for i, b := range p {
		out[i] = b ^ 0x5a
	}
	return out, []byte{0x01, 0x02}, nil
}

func (xorCipher) Decrypt(c, nonce []byte) ([]byte, error) {
	if !bytes.Equal(nonce, []byte{0x01, 0x02}) {
		return nil, fmt.Errorf("bad nonce")
	}
	out, _, _ := xorCipher{}.Encrypt(c)
	return out, nil
}

// stubIdempotency behaves like SETNX/GET: an empty value is a pending
// reservation. afterReserve, when set, runs once right after a successful
// reservation, before the caller appends.
type stubIdempotency struct {
	keys         map[string]string
	err          error
	afterReserve func()
}

func (s *stubIdempotency) Reserve(_ context.Context, wallet, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	k := wallet + "/" + key
	if id, ok := s.keys[k]; ok {
		return id, false, nil
	}
	s.keys[k] = ""
	if hook := s.afterReserve; hook != nil {
		s.afterReserve = nil
		hook()
	}
	return "", true, nil
}

func (s *stubIdempotency) Complete(_ context.Context, wallet, key, txID string) error {
	s.keys[wallet+"/"+key] = txID
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, wallet, key string) error {
	delete(s.keys, wallet+"/"+key)
	return nil
}

type fixture struct {
	admins *stubAdminRepo
	users  *stubUserRepo
	files  *stubFileStore
	gate   *walletauth.Gate
}

func newFixture() *fixture {
	admins := newStubAdminRepo()
	users := newStubUserRepo()
	return &fixture{
		admins: admins,
		users:  users,
		files:  newStubFileStore(),
		gate:   walletauth.NewGate(walletauth.NewResolver(admins, users), zerolog.Nop()),
	}
}

// seedAdmin stores an admin for a fresh wallet and returns its credentials.
func (f *fixture) seedAdmin(t *testing.T) (*walletauthtest.Wallet, ports.WalletCredentials) {
	t.Helper()
	w := walletauthtest.NewWallet(t)
	f.admins.admins[w.Address] = &domain.Admin{WalletAddress: w.Address, Name: "root", Email: w.Address[2:10] + "@guda.io", UpiID: "root@upi"}
	return w, w.Credentials(t, walletauth.ChallengeMessage)
}

// seedUser stores a user for a fresh wallet and returns its credentials.
func (f *fixture) seedUser(t *testing.T) (*walletauthtest.Wallet, ports.WalletCredentials) {
	t.Helper()
	w := walletauthtest.NewWallet(t)
	f.users.users[w.Address] = &domain.User{WalletAddress: w.Address, Name: "alice"}
	return w, w.Credentials(t, walletauth.ChallengeMessage)
}

func ptr[T any](v T) *T { return &v }
