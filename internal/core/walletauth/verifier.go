// Package walletauth authenticates admins and users by a signature over a
// fixed challenge message. Nothing is issued or remembered between requests:
// every privileged call presents its wallet address and signature again.
package walletauth

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/guda/guda-backend/internal/core/domain"
)

// ChallengeMessage is the text every wallet signs, for admins and users alike.
// The message carries no nonce, so a captured signature stays valid forever.
const ChallengeMessage = "Please sign this message to verify your identity."

const signatureLength = crypto.SignatureLength

// DecodeSignature parses a hex signature with or without the 0x prefix.
func DecodeSignature(signature string) ([]byte, error) {
	sig, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex: %v", domain.ErrMalformedSignature, err)
	}
	if len(sig) != signatureLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", domain.ErrMalformedSignature, signatureLength, len(sig))
	}
	return sig, nil
}

// RecoverSigner returns the address whose key produced signature over the
// personal_sign (EIP-191) hash of message. The recovery id may be 0/1 or 27/28.
func RecoverSigner(message string, signature []byte) (common.Address, error) {
	if len(signature) != signatureLength {
		return common.Address{}, fmt.Errorf("%w: expected %d bytes, got %d", domain.ErrMalformedSignature, signatureLength, len(signature))
	}

	sig := make([]byte, signatureLength)
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", domain.ErrMalformedSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verify checks that signature over ChallengeMessage was produced by claimed.
// It returns the recovered address in normalized form. Comparison ignores case.
func Verify(claimed, signature string) (string, error) {
	sig, err := DecodeSignature(signature)
	if err != nil {
		return "", err
	}

	signer, err := RecoverSigner(ChallengeMessage, sig)
	if err != nil {
		return "", err
	}

	recovered := domain.NormalizeAddress(signer.Hex())
	if recovered != domain.NormalizeAddress(claimed) {
		return "", domain.ErrSignatureMismatch
	}
	return recovered, nil
}
