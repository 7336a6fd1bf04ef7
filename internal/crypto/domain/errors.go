package domain

import (
	"github.com/allisson/secureid/internal/errors"
)

// Key ring and cipher errors.
var (
	// ErrUnsupportedAlgorithm indicates the configured AEAD algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates an AEAD tag did not verify or the blob was truncated.
	// The cause (wrong key, altered nonce, altered ciphertext) is deliberately not reported.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrKeyNotFound indicates the primary key version has no key in the ring.
	// This is deployment drift, not bad input, so it maps to an internal error.
	ErrKeyNotFound = errors.Wrap(errors.ErrMisconfigured, "primary key not found")

	// ErrKeysNotSet indicates SECURE_ID_KEYS is empty.
	ErrKeysNotSet = errors.Wrap(errors.ErrMisconfigured, "SECURE_ID_KEYS not set")

	// ErrPrimaryKeyVersionNotSet indicates SECURE_ID_PRIMARY_KEY_VERSION is empty.
	ErrPrimaryKeyVersionNotSet = errors.Wrap(errors.ErrMisconfigured, "SECURE_ID_PRIMARY_KEY_VERSION not set")

	// ErrInvalidKeysFormat indicates an entry of SECURE_ID_KEYS is not "version:base64".
	ErrInvalidKeysFormat = errors.Wrap(errors.ErrMisconfigured, "invalid SECURE_ID_KEYS format")

	// ErrInvalidKeyBase64 indicates a key value is not valid standard base64.
	ErrInvalidKeyBase64 = errors.Wrap(errors.ErrMisconfigured, "invalid key base64")

	// ErrDuplicateKeyVersion indicates the same version appears twice in a ring.
	ErrDuplicateKeyVersion = errors.Wrap(errors.ErrMisconfigured, "duplicate key version")

	// ErrEmptyKeyVersion indicates a key was supplied without a version.
	ErrEmptyKeyVersion = errors.Wrap(errors.ErrMisconfigured, "empty key version")

	// ErrKMSDecryptionFailed indicates the KMS keeper could not unwrap a key.
	ErrKMSDecryptionFailed = errors.Wrap(errors.ErrMisconfigured, "kms key decryption failed")
)
