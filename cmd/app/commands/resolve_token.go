package commands

import (
	"context"
	"fmt"
	"io"

	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
	secureIDUseCase "github.com/allisson/secureid/internal/secureid/usecase"
)

type resolveTokenOutput struct {
	ID    secureIDDomain.RecordID `json:"id"`
	Model string                  `json:"model"`
}

// RunResolveToken prints the record id carried by token. Every failure is reported as
// ErrSecureIDNotFound, matching the HTTP API.
func RunResolveToken(
	ctx context.Context,
	uc secureIDUseCase.SecureIDUseCase,
	writer io.Writer,
	token, model, scope, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	id, ok := uc.Resolve(ctx, token, model, scope)
	if !ok {
		return secureIDDomain.ErrSecureIDNotFound
	}

	if format == "json" {
		return writeJSON(writer, resolveTokenOutput{ID: id, Model: model})
	}

	_, _ = fmt.Fprintln(writer, id.String())
	return nil
}
