package domain

import (
	"github.com/allisson/secureid/internal/errors"
)

var (
	// ErrInvalidGenerateInput indicates a token was requested with an unset RecordID.
	ErrInvalidGenerateInput = errors.Wrap(errors.ErrInvalidInput, "record id is required")

	// ErrInvalidEnvelope indicates an envelope without a key version or ciphertext.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "envelope requires version and ciphertext")

	// ErrDecode indicates the token could not be decoded into an envelope.
	ErrDecode = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrMalformedPayload indicates the decrypted payload is not a valid payload document.
	ErrMalformedPayload = errors.Wrap(errors.ErrInvalidInput, "malformed token payload")

	// ErrUnknownKeyVersion indicates the envelope names a key version absent from the key ring.
	ErrUnknownKeyVersion = errors.Wrap(errors.ErrNotFound, "unknown key version")

	// ErrModelMismatch indicates the token was issued for another model.
	ErrModelMismatch = errors.Wrap(errors.ErrNotFound, "model mismatch")

	// ErrScopeMismatch indicates the token was issued for another scope.
	ErrScopeMismatch = errors.Wrap(errors.ErrNotFound, "scope mismatch")

	// ErrExpired indicates the token has expired.
	ErrExpired = errors.Wrap(errors.ErrNotFound, "token has expired")

	// ErrSecureIDNotFound is the single outcome reported to callers for any unresolvable token.
	ErrSecureIDNotFound = errors.Wrap(errors.ErrNotFound, "secure id not found")
)
