// Package walletauthtest provides throwaway wallets for exercising the
// wallet authentication gate in tests.
package walletauthtest

import (
	"crypto/ecdsa"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// Wallet is a freshly generated secp256k1 key pair.
type Wallet struct {
	Key     *ecdsa.PrivateKey
	Address string // normalized lowercase hex
}

// NewWallet generates a random wallet or fails the test.
func NewWallet(t testing.TB) *Wallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return &Wallet{
		Key:     key,
		Address: domain.NormalizeAddress(crypto.PubkeyToAddress(key.PublicKey).Hex()),
	}
}

// Sign returns a 0x-prefixed personal_sign signature over message with v in {27,28}.
func (w *Wallet) Sign(t testing.TB, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), w.Key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return "0x" + hex.EncodeToString(sig)
}

// Credentials returns the wallet address with a valid signature over challenge.
func (w *Wallet) Credentials(t testing.TB, challenge string) ports.WalletCredentials {
	t.Helper()
	return ports.WalletCredentials{WalletAddress: w.Address, Signature: w.Sign(t, challenge)}
}
