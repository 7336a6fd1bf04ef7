package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func testCiphers(t *testing.T, key []byte) map[string]*Cipher {
	t.Helper()
	gcm, err := NewAESGCM(key)
	require.NoError(t, err)
	chacha, err := NewChaCha20Poly1305(key)
	require.NoError(t, err)
	return map[string]*Cipher{"aes-gcm": gcm, "chacha20-poly1305": chacha}
}

func TestNewCipher_InvalidKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 24, 31, 33, 64} {
		_, err := NewAESGCM(make([]byte, size))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "aes-gcm size %d", size)

		_, err = NewChaCha20Poly1305(make([]byte, size))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "chacha20 size %d", size)
	}
}

func TestCipher_EncryptDecrypt(t *testing.T) {
	for name, c := range testCiphers(t, newTestKey(t)) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 12, c.NonceSize())
			assert.Equal(t, 16, c.Overhead())

			tests := []struct {
				name      string
				plaintext []byte
				aad       []byte
			}{
				{name: "with aad", plaintext: []byte("secret message"), aad: []byte("1")},
				{name: "without aad", plaintext: []byte("secret message")},
				{name: "empty plaintext", plaintext: []byte{}, aad: []byte("1")},
				{name: "large plaintext", plaintext: bytes.Repeat([]byte("x"), 64*1024)},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					ciphertext, nonce, err := c.Encrypt(tt.plaintext, tt.aad)
					require.NoError(t, err)
					assert.Len(t, nonce, c.NonceSize())
					assert.Len(t, ciphertext, len(tt.plaintext)+c.Overhead())

					decrypted, err := c.Decrypt(ciphertext, nonce, tt.aad)
					require.NoError(t, err)
					assert.Equal(t, len(tt.plaintext), len(decrypted))
					assert.True(t, bytes.Equal(tt.plaintext, decrypted))
				})
			}
		})
	}
}

func TestCipher_FreshNonce(t *testing.T) {
	for name, c := range testCiphers(t, newTestKey(t)) {
		t.Run(name, func(t *testing.T) {
			plaintext := []byte("same input")
			c1, n1, err := c.Encrypt(plaintext, nil)
			require.NoError(t, err)
			c2, n2, err := c.Encrypt(plaintext, nil)
			require.NoError(t, err)

			assert.NotEqual(t, n1, n2)
			assert.NotEqual(t, c1, c2)
		})
	}
}

func TestCipher_DecryptFailures(t *testing.T) {
	key := newTestKey(t)
	otherKey := newTestKey(t)

	for name, c := range testCiphers(t, key) {
		t.Run(name, func(t *testing.T) {
			ciphertext, nonce, err := c.Encrypt([]byte("secret message"), []byte("1"))
			require.NoError(t, err)

			t.Run("wrong aad", func(t *testing.T) {
				_, err := c.Decrypt(ciphertext, nonce, []byte("2"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("missing aad", func(t *testing.T) {
				_, err := c.Decrypt(ciphertext, nonce, nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("flipped ciphertext bit", func(t *testing.T) {
				tampered := bytes.Clone(ciphertext)
				tampered[0] ^= 0x01
				_, err := c.Decrypt(tampered, nonce, []byte("1"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("flipped tag bit", func(t *testing.T) {
				tampered := bytes.Clone(ciphertext)
				tampered[len(tampered)-1] ^= 0x80
				_, err := c.Decrypt(tampered, nonce, []byte("1"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("wrong nonce size", func(t *testing.T) {
				_, err := c.Decrypt(ciphertext, nonce[:8], []byte("1"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("wrong key", func(t *testing.T) {
				other := testCiphers(t, otherKey)[name]
				_, err := other.Decrypt(ciphertext, nonce, []byte("1"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})
		})
	}
}
