package usecase

import (
	"context"
	"time"

	apperrors "github.com/allisson/secureid/internal/errors"
	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
)

// Binding attaches secure id generation and resolution to a record type T under a fixed model name.
type Binding[T any] struct {
	useCase SecureIDUseCase
	model   string
	idFunc  func(T) secureIDDomain.RecordID
}

// NewBinding returns a Binding for records of type T. idFunc extracts the identifier to wrap.
func NewBinding[T any](
	useCase SecureIDUseCase,
	model string,
	idFunc func(T) secureIDDomain.RecordID,
) *Binding[T] {
	return &Binding[T]{
		useCase: useCase,
		model:   model,
		idFunc:  idFunc,
	}
}

// Model returns the model name tokens are bound to.
func (b *Binding[T]) Model() string {
	return b.model
}

// Token issues a token for record.
func (b *Binding[T]) Token(ctx context.Context, record T, scope string, expiresAt *time.Time) (string, error) {
	return b.useCase.Generate(ctx, b.model, b.idFunc(record), scope, expiresAt)
}

// Resolve returns the identifier wrapped by token for this binding's model.
func (b *Binding[T]) Resolve(ctx context.Context, token, scope string) (secureIDDomain.RecordID, bool) {
	return b.useCase.Resolve(ctx, token, b.model, scope)
}

// Find resolves token and loads the record with finder.
// A finder error wrapping apperrors.ErrNotFound is reported as (zero, false, nil) like any
// unresolvable token. Other finder errors are returned.
func (b *Binding[T]) Find(
	ctx context.Context,
	token, scope string,
	finder func(ctx context.Context, id secureIDDomain.RecordID) (T, error),
) (T, bool, error) {
	var zero T

	id, ok := b.Resolve(ctx, token, scope)
	if !ok {
		return zero, false, nil
	}

	record, err := finder(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return zero, false, nil
		}
		return zero, false, err
	}

	return record, true, nil
}
