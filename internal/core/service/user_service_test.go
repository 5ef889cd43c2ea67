package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
	"github.com/guda/guda-backend/internal/core/walletauth/walletauthtest"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, xorCipher{}, zerolog.Nop())
	w := walletauthtest.NewWallet(t)

	user, err := svc.Register(context.Background(), ports.RegisterUserInput{WalletAddress: w.Address, Name: "alice", Email: "alice@guda.io"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.KYCStatus {
		t.Fatalf("kyc must default to false")
	}
	if !user.Balances.ETH.IsZero() || !user.Balances.USDCPolygon.IsZero() {
		t.Fatalf("balances must default to zero: %+v", user.Balances)
	}

	if _, err := svc.Register(context.Background(), ports.RegisterUserInput{WalletAddress: w.Address}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Register_InvalidWallet(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterUserInput{WalletAddress: "alice"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_Register_RejectsDisplayNameEmail(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, nil, zerolog.Nop())

	in := ports.RegisterUserInput{WalletAddress: walletauthtest.NewWallet(t).Address, Email: "Alice <alice@guda.io>"}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_UpdateProfile_ForeignSignatureLeavesRecord(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, nil, zerolog.Nop())
	u, _ := f.seedUser(t)
	mallory := walletauthtest.NewWallet(t)

	_, err := svc.UpdateProfile(context.Background(), ports.WalletCredentials{
		WalletAddress: u.Address,
		Signature:     mallory.Sign(t, "Please sign this message to verify your identity."),
	}, ports.UserProfileUpdate{Name: "hijacked"})
	if !errors.Is(err, domain.ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
	if f.users.users[u.Address].Name != "alice" {
		t.Fatalf("record must be unchanged")
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, nil, zerolog.Nop())
	_, creds := f.seedUser(t)

	user, err := svc.UpdateProfile(context.Background(), creds, ports.UserProfileUpdate{Mobile: "9999999999"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Mobile != "9999999999" || user.Name != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserService_UploadDocument_RoundTrip(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, xorCipher{}, zerolog.Nop())
	u, creds := f.seedUser(t)

	user, err := svc.UploadDocument(context.Background(), creds, domain.DocumentPAN, ports.Upload{Filename: "pan.pdf", Content: strings.NewReader("secret pan")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.Documents) != 1 || user.Documents[0].Type != domain.DocumentPAN || user.Documents[0].Extension != ".pdf" {
		t.Fatalf("unexpected documents: %+v", user.Documents)
	}
	if string(f.files.files[user.Documents[0].Path]) == "secret pan" {
		t.Fatalf("document stored in plaintext")
	}

	doc, plain, err := svc.ReadDocument(context.Background(), creds, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(plain) != "secret pan" || doc.Path != f.users.users[u.Address].Documents[0].Path {
		t.Fatalf("unexpected document: %q", plain)
	}

	if _, _, err := svc.ReadDocument(context.Background(), creds, 1); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestUserService_UploadDocument_InvalidType(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, xorCipher{}, zerolog.Nop())
	_, creds := f.seedUser(t)

	_, err := svc.UploadDocument(context.Background(), creds, "PASSPORT", ports.Upload{Filename: "x.pdf", Content: strings.NewReader("x")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_UploadDocument_Disabled(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, nil, zerolog.Nop())
	_, creds := f.seedUser(t)

	_, err := svc.UploadDocument(context.Background(), creds, domain.DocumentDL, ports.Upload{Filename: "x.pdf", Content: strings.NewReader("x")})
	if !errors.Is(err, domain.ErrDocumentsDisabled) {
		t.Fatalf("expected ErrDocumentsDisabled, got %v", err)
	}
	if len(f.files.files) != 0 {
		t.Fatalf("nothing must be written")
	}
}

func TestUserService_GetByWallet_CaseInsensitive(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.gate, f.users, f.files, nil, zerolog.Nop())
	u, _ := f.seedUser(t)

	user, err := svc.GetByWallet(context.Background(), "0x"+strings.ToUpper(u.Address[2:]))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.WalletAddress != u.Address {
		t.Fatalf("unexpected user %s", user.WalletAddress)
	}
}
