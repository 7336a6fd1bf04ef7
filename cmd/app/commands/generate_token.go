package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
	secureIDUseCase "github.com/allisson/secureid/internal/secureid/usecase"
)

type generateTokenOutput struct {
	Token     string                  `json:"token"`
	Model     string                  `json:"model"`
	ID        secureIDDomain.RecordID `json:"id"`
	Scope     string                  `json:"scope"`
	ExpiresAt *time.Time              `json:"expires_at,omitempty"`
}

// RunGenerateToken issues a token for a record using the configured key ring. rawID is parsed as
// an integer unless stringID is set or it is not numeric. A zero ttl issues a non-expiring token.
func RunGenerateToken(
	ctx context.Context,
	uc secureIDUseCase.SecureIDUseCase,
	writer io.Writer,
	model, rawID string,
	stringID bool,
	scope string,
	ttl time.Duration,
	format string,
	now func() time.Time,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if ttl < 0 {
		return fmt.Errorf("invalid ttl: %s (must not be negative)", ttl)
	}

	id := secureIDDomain.ParseRecordID(rawID)
	if stringID {
		id = secureIDDomain.StringID(rawID)
	}

	var expiresAt *time.Time
	if ttl > 0 {
		exp := now().Add(ttl).UTC().Truncate(time.Second)
		expiresAt = &exp
	}

	token, err := uc.Generate(ctx, model, id, scope, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, generateTokenOutput{
			Token:     token,
			Model:     model,
			ID:        id,
			Scope:     scope,
			ExpiresAt: expiresAt,
		})
	}

	_, _ = fmt.Fprintln(writer, token)
	return nil
}
