// Package encryption seals KYC documents at rest.
package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "guda-document-v1"

// DocumentCipher encrypts with XChaCha20-Poly1305 under a key derived from a
// configured secret. The same secret must be used to read documents back, so
// rotating it makes earlier uploads unreadable.
type DocumentCipher struct {
	aead cipher.AEAD
}

// NewDocumentCipher derives the document key from secret with HKDF-SHA256.
func NewDocumentCipher(secret string) (*DocumentCipher, error) {
	if secret == "" {
		return nil, errors.New("document encryption secret is empty")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive document key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init document cipher: %w", err)
	}
	return &DocumentCipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *DocumentCipher) Encrypt(plaintext []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}
	return c.aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Decrypt opens ciphertext; tampering or a wrong key yields an error.
func (c *DocumentCipher) Decrypt(ciphertext, nonce []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", c.aead.NonceSize(), len(nonce))
	}
	return c.aead.Open(nil, nonce, ciphertext, nil)
}
