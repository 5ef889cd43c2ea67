package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/ports"
)

// Headers that may carry wallet credentials on any request.
const (
	HeaderWalletAddress   = "X-Wallet-Address"
	HeaderWalletSignature = "X-Wallet-Signature"
)

// WalletFields is embedded into request bodies that carry credentials
// alongside their own payload.
type WalletFields struct {
	WalletAddress string `json:"walletAddress" form:"walletAddress"`
	Signature     string `json:"signature" form:"signature"`
}

// credentials resolves each credential field independently: header first,
// then the bound body, then the query string. GET and DELETE callers pass an
// empty WalletFields.
func credentials(c echo.Context, body WalletFields) ports.WalletCredentials {
	h := c.Request().Header
	return ports.WalletCredentials{
		WalletAddress: firstNonEmpty(h.Get(HeaderWalletAddress), body.WalletAddress, c.QueryParam("walletAddress")),
		Signature:     firstNonEmpty(h.Get(HeaderWalletSignature), body.Signature, c.QueryParam("signature")),
	}
}

// formCredentials reads credentials from a multipart form.
func formCredentials(c echo.Context) ports.WalletCredentials {
	return credentials(c, WalletFields{
		WalletAddress: c.FormValue("walletAddress"),
		Signature:     c.FormValue("signature"),
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
