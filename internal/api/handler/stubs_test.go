package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// Stubs embed the service interface so unexercised methods panic loudly.

type stubUserService struct {
	ports.UserService
	authenticateFn func(ctx context.Context, creds ports.WalletCredentials) (*domain.User, error)
	registerFn     func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	profilePicFn   func(ctx context.Context, creds ports.WalletCredentials, file ports.Upload) (*domain.User, error)
	uploadDocFn    func(ctx context.Context, creds ports.WalletCredentials, docType domain.DocumentType, file ports.Upload) (*domain.User, error)
	readDocFn      func(ctx context.Context, creds ports.WalletCredentials, index int) (*domain.Document, []byte, error)
	getByWalletFn  func(ctx context.Context, wallet string) (*domain.User, error)
}

func (s *stubUserService) Authenticate(ctx context.Context, creds ports.WalletCredentials) (*domain.User, error) {
	return s.authenticateFn(ctx, creds)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) UploadProfilePic(ctx context.Context, creds ports.WalletCredentials, file ports.Upload) (*domain.User, error) {
	return s.profilePicFn(ctx, creds, file)
}

func (s *stubUserService) UploadDocument(ctx context.Context, creds ports.WalletCredentials, docType domain.DocumentType, file ports.Upload) (*domain.User, error) {
	return s.uploadDocFn(ctx, creds, docType, file)
}

func (s *stubUserService) ReadDocument(ctx context.Context, creds ports.WalletCredentials, index int) (*domain.Document, []byte, error) {
	return s.readDocFn(ctx, creds, index)
}

func (s *stubUserService) GetByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	return s.getByWalletFn(ctx, wallet)
}

type stubTransactionService struct {
	ports.TransactionService
	saveFn   func(ctx context.Context, creds ports.WalletCredentials, in ports.SaveTransactionInput) (*domain.Transaction, bool, error)
	recentFn func(ctx context.Context, wallet string, limit int) ([]domain.Transaction, error)
}

func (s *stubTransactionService) Save(ctx context.Context, creds ports.WalletCredentials, in ports.SaveTransactionInput) (*domain.Transaction, bool, error) {
	return s.saveFn(ctx, creds, in)
}

func (s *stubTransactionService) Recent(ctx context.Context, wallet string, limit int) ([]domain.Transaction, error) {
	return s.recentFn(ctx, wallet, limit)
}

type stubAdminService struct {
	ports.AdminService
	deleteFn func(ctx context.Context, creds ports.WalletCredentials, target string) error
	kycFn    func(ctx context.Context, creds ports.WalletCredentials, userWallet string, status *bool) (*domain.User, error)
}

func (s *stubAdminService) Delete(ctx context.Context, creds ports.WalletCredentials, target string) error {
	return s.deleteFn(ctx, creds, target)
}

func (s *stubAdminService) SetUserKYC(ctx context.Context, creds ports.WalletCredentials, userWallet string, status *bool) (*domain.User, error) {
	return s.kycFn(ctx, creds, userWallet, status)
}

type stubContactService struct {
	ports.ContactService
	updateFn func(ctx context.Context, creds ports.WalletCredentials, id string, upd domain.ContactUpdate) (*domain.Contact, error)
}

func (s *stubContactService) Update(ctx context.Context, creds ports.WalletCredentials, id string, upd domain.ContactUpdate) (*domain.Contact, error) {
	return s.updateFn(ctx, creds, id, upd)
}

type stubThemeService struct {
	ports.ThemeService
	createFn func(ctx context.Context, creds ports.WalletCredentials, t *domain.Theme) (*domain.Theme, error)
}

func (s *stubThemeService) Create(ctx context.Context, creds ports.WalletCredentials, t *domain.Theme) (*domain.Theme, error) {
	return s.createFn(ctx, creds, t)
}

// --- request helpers ---

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type formPart struct {
	field, filename string
	content []byte
}

func multipartContext(t *testing.T, e *echo.Echo, target string, values map[string]string, files ...formPart) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func readUpload(t *testing.T, u ports.Upload) []byte {
	t.Helper()
	if u.Content == nil {
		return nil
	}
	b, err := io.ReadAll(u.Content)
	if err != nil {
		t.Fatalf("read upload: %v", err)
	}
	return b
}
