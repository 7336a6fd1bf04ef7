package domain

import "fmt"

// KeySize is the length in bytes of every symmetric key held in a KeyRing.
const KeySize = 32

// Algorithm identifies the AEAD construction used to seal token payloads.
//
// Both algorithms take a 256-bit key, a 12-byte nonce and produce a 16-byte tag,
// so tokens sealed with either have the same size.
type Algorithm string

const (
	// AESGCM is AES-256-GCM. Preferred on hardware with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305. Preferred where AES has no hardware support.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm converts a configuration value into an Algorithm.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch Algorithm(value) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", fmt.Errorf("%w: %q (valid options: aes-gcm, chacha20-poly1305)", ErrUnsupportedAlgorithm, value)
	}
}
