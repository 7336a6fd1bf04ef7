package service

import (
	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
)

// Seal encrypts plaintext and returns a self-contained blob laid out as
// nonce || ciphertext || tag.
func Seal(aead AEAD, plaintext, aad []byte) ([]byte, error) {
	ciphertext, nonce, err := aead.Encrypt(plaintext, aad)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Open reverses Seal. Blobs too short to hold a nonce and a tag fail the same way
// as blobs whose tag does not verify.
func Open(aead AEAD, blob, aad []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	if len(blob) < nonceSize+aead.Overhead() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return aead.Decrypt(blob[nonceSize:], blob[:nonceSize], aad)
}
