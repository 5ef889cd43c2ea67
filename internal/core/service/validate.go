package service

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// fields checks single values that do not arrive as tagged structs
// (partial updates, multipart fields, seed flags).
var fields = validator.New()

// requireWallet validates and normalizes a wallet address supplied as data
// (not as credentials).
func requireWallet(field, addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", domain.Invalidf("%s is required", field)
	}
	if !common.IsHexAddress(addr) || !strings.HasPrefix(addr, "0x") {
		return "", domain.Invalidf("%s must be a valid ethereum address", field)
	}
	return domain.NormalizeAddress(addr), nil
}

func requireField(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.Invalidf("%s is required", field)
	}
	return nil
}

func optionalEmail(field, v string) error {
	if v == "" {
		return nil
	}
	if err := fields.Var(v, "email"); err != nil {
		return domain.Invalidf("%s must be a valid email", field)
	}
	return nil
}

// uploadExt returns the lowercase extension of an uploaded file name.
func uploadExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func readAll(file ports.Upload) ([]byte, error) {
	if file.Content == nil {
		return nil, domain.Invalidf("file is required")
	}
	b, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return b, nil
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
