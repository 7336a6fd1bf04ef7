// Package usecase defines interfaces and implementations for secure id use cases.
// Generation seals a record identifier under the primary key; resolution reverses it and
// reports every failure as the same "not found" outcome.
package usecase

import (
	"context"
	"time"

	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
)

// SecureIDUseCase defines the interface for issuing and resolving secure id tokens.
type SecureIDUseCase interface {
	// Generate issues a token binding id to model and scope, optionally expiring at expiresAt.
	// Any model, scope and id round trip, empty strings included. Fails with
	// cryptoDomain.ErrKeyNotFound when the primary key version is missing from the key ring, and
	// with ErrInvalidGenerateInput only for the unset RecordID{} zero value.
	Generate(
		ctx context.Context,
		model string,
		id secureIDDomain.RecordID,
		scope string,
		expiresAt *time.Time,
	) (string, error)

	// Resolve returns the identifier wrapped by token when it was issued for expectedModel and
	// expectedScope, has not expired and was sealed under a key version still in the key ring.
	// Any other input yields (RecordID{}, false). Resolve never returns an error.
	Resolve(ctx context.Context, token, expectedModel, expectedScope string) (secureIDDomain.RecordID, bool)
}
