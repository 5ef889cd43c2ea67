package ports

import (
	"context"
	"io"
)

// FileStore writes uploads to shared storage and reads them back.
type FileStore interface {
	// Save stores r under a generated name with the given extension and
	// returns the stored path.
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
	Read(ctx context.Context, path string) ([]byte, error)
}

// DocumentCipher seals KYC documents at rest.
type DocumentCipher interface {
	Encrypt(plaintext []byte) (ciphertext, nonce []byte, err error)
	Decrypt(ciphertext, nonce []byte) ([]byte, error)
}
