package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
	"github.com/guda/guda-backend/internal/core/service"
	"github.com/guda/guda-backend/internal/core/walletauth"
	"github.com/guda/guda-backend/internal/core/walletauth/walletauthtest"
)

type memAdmins struct {
	ports.AdminRepository
	mu     sync.Mutex
	admins map[string]*domain.Admin
}

func (r *memAdmins) FindByWallet(_ context.Context, wallet string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[wallet]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return a, nil
}

type memUsers struct {
	ports.UserRepository
	mu    sync.Mutex
	users map[string]*domain.User
}

func (r *memUsers) FindByWallet(_ context.Context, wallet string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[wallet]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.WalletAddress]; ok {
		return nil, domain.ErrUserExists
	}
	r.users[u.WalletAddress] = u
	return u, nil
}

func (r *memUsers) SetKYCStatus(_ context.Context, wallet string, status bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[wallet]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.KYCStatus = status
	return u, nil
}

type testServer struct {
	handler http.Handler
	admins  *memAdmins
	users   *memUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	admins := &memAdmins{admins: map[string]*domain.Admin{}}
	users := &memUsers{users: map[string]*domain.User{}}
	log := zerolog.Nop()
	gate := walletauth.NewGate(walletauth.NewResolver(admins, users), log)

	e := NewRouter(Dependencies{
		Users:        service.NewUserService(gate, users, nil, nil, log),
		Transactions: service.NewTransactionService(gate, users, nil, log),
		Admins:       service.NewAdminService(gate, admins, users, nil, log),
		Logger:       log,
		Registry:     prometheus.NewRegistry(),
	})
	return &testServer{handler: e, admins: admins, users: users}
}

func (s *testServer) do(t *testing.T, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func credsBody(creds ports.WalletCredentials, extra string) string {
	body := `{"walletAddress":"` + creds.WalletAddress + `","signature":"` + creds.Signature + `"`
	if extra != "" {
		body += "," + extra
	}
	return body + "}"
}

func TestRouter_MissingCredentialsIs400(t *testing.T) {
	srv := newTestServer(t)

	code, resp := srv.do(t, http.MethodPost, "/api/user/transaction", `{"type":"sent","amount":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, domain.ErrMissingCredentials.Error(), resp["error"])
}

func TestRouter_ForeignKeyIs403(t *testing.T) {
	srv := newTestServer(t)
	admin := walletauthtest.NewWallet(t)
	srv.admins.admins[admin.Address] = &domain.Admin{WalletAddress: admin.Address}
	intruder := walletauthtest.NewWallet(t)

	forged := ports.WalletCredentials{
		WalletAddress: admin.Address,
		Signature:     intruder.Sign(t, walletauth.ChallengeMessage),
	}
	code, resp := srv.do(t, http.MethodPut, "/api/admin/user/kyc/"+admin.Address, credsBody(forged, `"kycStatus":true`))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, domain.ErrSignatureMismatch.Error(), resp["error"])
}

func TestRouter_MalformedSignatureIs403(t *testing.T) {
	srv := newTestServer(t)
	w := walletauthtest.NewWallet(t)

	code, _ := srv.do(t, http.MethodPost, "/api/auth/wallet", credsBody(ports.WalletCredentials{WalletAddress: w.Address, Signature: "0xdead"}, ""))
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRouter_KYCOnMissingUserIs404(t *testing.T) {
	srv := newTestServer(t)
	admin := walletauthtest.NewWallet(t)
	srv.admins.admins[admin.Address] = &domain.Admin{WalletAddress: admin.Address}
	ghost := walletauthtest.NewWallet(t)

	creds := admin.Credentials(t, walletauth.ChallengeMessage)
	code, resp := srv.do(t, http.MethodPut, "/api/admin/user/kyc/"+ghost.Address, credsBody(creds, `"kycStatus":true`))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, domain.ErrUserNotFound.Error(), resp["error"])
	assert.Empty(t, srv.users.users, "no user may be created")
}

func TestRouter_UserCannotPassAdminGate(t *testing.T) {
	srv := newTestServer(t)
	u := walletauthtest.NewWallet(t)
	srv.users.users[u.Address] = &domain.User{WalletAddress: u.Address}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	creds := u.Credentials(t, walletauth.ChallengeMessage)
	req.Header.Set("X-Wallet-Address", creds.WalletAddress)
	req.Header.Set("X-Wallet-Signature", creds.Signature)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RegisterThenConflict(t *testing.T) {
	srv := newTestServer(t)
	w := walletauthtest.NewWallet(t)
	body := `{"walletAddress":"` + w.Address + `","name":"alice"}`

	code, resp := srv.do(t, http.MethodPost, "/api/user", body)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User profile created successfully!", resp["message"])

	code, _ = srv.do(t, http.MethodPost, "/api/user", body)
	assert.Equal(t, http.StatusConflict, code)

	creds := w.Credentials(t, walletauth.ChallengeMessage)
	code, resp = srv.do(t, http.MethodPost, "/api/auth/wallet", credsBody(creds, ""))
	require.Equal(t, http.StatusOK, code)
	user, _ := resp["user"].(map[string]any)
	assert.Equal(t, w.Address, user["walletAddress"])
}

func TestRouter_RegisterValidationIs400(t *testing.T) {
	srv := newTestServer(t)

	code, resp := srv.do(t, http.MethodPost, "/api/user", `{"walletAddress":"0x123"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "walletAddress must be a valid ethereum address", resp["error"])
}

func TestRouter_DocumentsDisabledIs503(t *testing.T) {
	srv := newTestServer(t)
	u := walletauthtest.NewWallet(t)
	srv.users.users[u.Address] = &domain.User{WalletAddress: u.Address}

	req := httptest.NewRequest(http.MethodGet, "/api/user/document/0", nil)
	creds := u.Credentials(t, walletauth.ChallengeMessage)
	req.Header.Set("X-Wallet-Address", creds.WalletAddress)
	req.Header.Set("X-Wallet-Signature", creds.Signature)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_OperationalRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
