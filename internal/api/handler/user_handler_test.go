package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

const testWallet = "0x52908400098527886e0f7030069857d2e4169ee7"

func TestCredentials_Precedence(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?walletAddress=0xquery&signature=0xquerysig", nil)
	req.Header.Set(HeaderWalletSignature, "0xheadersig")
	c := e.NewContext(req, httptest.NewRecorder())

	creds := credentials(c, WalletFields{WalletAddress: "0xbody", Signature: "0xbodysig"})
	if creds.WalletAddress != "0xbody" {
		t.Fatalf("body wallet must beat query, got %q", creds.WalletAddress)
	}
	if creds.Signature != "0xheadersig" {
		t.Fatalf("header signature must beat body, got %q", creds.Signature)
	}

	creds = credentials(c, WalletFields{})
	if creds.WalletAddress != "0xquery" {
		t.Fatalf("query wallet expected as fallback, got %q", creds.WalletAddress)
	}
}

func TestUserHandler_Authenticate_PassesBodyCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		authenticateFn: func(_ context.Context, creds ports.WalletCredentials) (*domain.User, error) {
			if creds.WalletAddress != testWallet || creds.Signature != "0xsig" {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			return &domain.User{WalletAddress: testWallet}, nil
		},
	}
	h := NewUserHandler(stub, 0)

	c, rec := jsonContext(e, http.MethodPost, "/api/auth/wallet", `{"walletAddress":"`+testWallet+`","signature":"0xsig"}`)
	if err := h.Authenticate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["walletAddress"] != testWallet {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestUserHandler_Authenticate_ErrorBubbles(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		authenticateFn: func(context.Context, ports.WalletCredentials) (*domain.User, error) {
			return nil, domain.ErrSignatureMismatch
		},
	}
	h := NewUserHandler(stub, 0)

	c, _ := jsonContext(e, http.MethodPost, "/api/auth/wallet", `{}`)
	if err := h.Authenticate(c); !errors.Is(err, domain.ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestUserHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		registerFn: func(_ context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			if in.WalletAddress != testWallet || in.Name != "alice" || in.UpiID != "alice@upi" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{WalletAddress: in.WalletAddress, Name: in.Name}, nil
		},
	}
	h := NewUserHandler(stub, 0)

	c, rec := jsonContext(e, http.MethodPost, "/api/user",
		`{"walletAddress":"`+testWallet+`","name":"alice","upiId":"alice@upi","email":"alice@example.com"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Register_InvalidWallet(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterUserInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub, 0)

	c, _ := jsonContext(e, http.MethodPost, "/api/user", `{"walletAddress":"not-a-wallet","email":"nope"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := err.Error(); !containsAll(got, "walletAddress must be a valid ethereum address", "email must be a valid email") {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestUserHandler_Register_BadJSON(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewUserHandler(&stubUserService{}, 0)

	c, _ := jsonContext(e, http.MethodPost, "/api/user", `{"walletAddress":`)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_UploadDocument_Multipart(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		uploadDocFn: func(_ context.Context, creds ports.WalletCredentials, docType domain.DocumentType, file ports.Upload) (*domain.User, error) {
			if creds.WalletAddress != testWallet || creds.Signature != "0xsig" {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			if docType != domain.DocumentPAN {
				t.Fatalf("unexpected document type %q", docType)
			}
			if file.Filename != "pan.pdf" || string(readUpload(t, file)) != "%PDF" {
				t.Fatalf("unexpected upload %q", file.Filename)
			}
			return &domain.User{WalletAddress: testWallet}, nil
		},
	}
	h := NewUserHandler(stub, 1<<20)

	c, rec := multipartContext(t, e, "/api/user/document",
		map[string]string{"walletAddress": testWallet, "signature": "0xsig", "documentType": "PAN"},
		formPart{field: "document", filename: "pan.pdf", content: []byte("%PDF")})
	if err := h.UploadDocument(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UploadProfilePic_MissingFileReachesService(t *testing.T) {
	e := echo.New()
	called := false
	stub := &stubUserService{
		profilePicFn: func(_ context.Context, creds ports.WalletCredentials, file ports.Upload) (*domain.User, error) {
			called = true
			if file.Content != nil {
				t.Fatalf("expected empty upload")
			}
			return nil, domain.ErrMissingCredentials
		},
	}
	h := NewUserHandler(stub, 1<<20)

	c, _ := multipartContext(t, e, "/api/user/profile-pic", map[string]string{})
	if err := h.UploadProfilePic(c); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if !called {
		t.Fatalf("service must decide on the missing file after the gate")
	}
}

func TestUserHandler_UploadProfilePic_TooLarge(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{}, 16)

	c, _ := multipartContext(t, e, "/api/user/profile-pic",
		map[string]string{"walletAddress": testWallet},
		formPart{field: "profilePic", filename: "me.png", content: make([]byte, 1024)})
	err := h.UploadProfilePic(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestUserHandler_DownloadDocument(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		readDocFn: func(_ context.Context, creds ports.WalletCredentials, index int) (*domain.Document, []byte, error) {
			if index != 1 || creds.WalletAddress != testWallet {
				t.Fatalf("unexpected args: %d %+v", index, creds)
			}
			return &domain.Document{Type: domain.DocumentDL, Extension: ".png"}, []byte("plain"), nil
		},
	}
	h := NewUserHandler(stub, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/user/document/1", nil)
	req.Header.Set(HeaderWalletAddress, testWallet)
	req.Header.Set(HeaderWalletSignature, "0xsig")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("index")
	c.SetParamValues("1")

	if err := h.DownloadDocument(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "plain" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != `attachment; filename="DL.png"` {
		t.Fatalf("unexpected disposition %q", got)
	}
}

func TestUserHandler_DownloadDocument_BadIndex(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{}, 0)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user/document/x", nil), httptest.NewRecorder())
	c.SetParamNames("index")
	c.SetParamValues("x")

	err := h.DownloadDocument(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_GetByWallet_PathParam(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getByWalletFn: func(_ context.Context, wallet string) (*domain.User, error) {
			if wallet != testWallet {
				t.Fatalf("unexpected wallet %q", wallet)
			}
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub, 0)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("walletAddress")
	c.SetParamValues(testWallet)

	if err := h.GetByWallet(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
