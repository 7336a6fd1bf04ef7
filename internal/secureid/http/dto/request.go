// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"
	"time"

	validation "github.com/jellydator/validation"

	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
	customValidation "github.com/allisson/secureid/internal/validation"
)

// GenerateTokenRequest contains the parameters for issuing a secure id token.
type GenerateTokenRequest struct {
	ID        secureIDDomain.RecordID `json:"id"` // Integer or string record identifier
	Scope     string                  `json:"scope"`
	ExpiresAt *time.Time              `json:"expires_at,omitempty"`  // RFC3339 absolute expiration (optional)
	TTL       *int                    `json:"ttl_seconds,omitempty"` // Time-to-live in seconds (optional)
}

// Validate checks if the generate token request is valid.
// expires_at and ttl_seconds are mutually exclusive.
func (r *GenerateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.By(validateRecordID),
		),
		validation.Field(&r.Scope,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.ExpiresAt,
			validation.By(validateFutureTime),
		),
		validation.Field(&r.TTL,
			validation.When(r.ExpiresAt != nil, validation.Nil.Error("must not be set together with expires_at")),
			validation.By(validatePositiveTTL),
		),
	)
}

// ResolveTokenRequest contains the parameters for resolving a secure id token.
// Token is kept as raw JSON so that a non-string token resolves to "not found" like any other bad token.
type ResolveTokenRequest struct {
	Token json.RawMessage `json:"token"`
	Scope string          `json:"scope"`
}

// Validate checks if the resolve token request is valid. The token itself is not validated.
func (r *ResolveTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Scope,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// TokenString returns the token when it was sent as a JSON string.
func (r *ResolveTokenRequest) TokenString() (string, bool) {
	if len(r.Token) == 0 || r.Token[0] != '"' {
		return "", false
	}
	var token string
	if err := json.Unmarshal(r.Token, &token); err != nil {
		return "", false
	}
	return token, true
}

// validateRecordID ensures the record id is present.
func validateRecordID(value interface{}) error {
	id, ok := value.(secureIDDomain.RecordID)
	if !ok || id.IsZero() {
		return validation.NewError("validation_record_id", "must be a non-empty string or an integer")
	}
	return nil
}

// validateFutureTime ensures an optional timestamp lies in the future.
func validateFutureTime(value interface{}) error {
	t, ok := value.(*time.Time)
	if !ok || t == nil {
		return nil
	}
	if !t.After(time.Now()) {
		return validation.NewError("validation_future_time", "must be in the future")
	}
	return nil
}

// validatePositiveTTL ensures an optional TTL is at least one second.
func validatePositiveTTL(value interface{}) error {
	ttl, ok := value.(*int)
	if !ok || ttl == nil {
		return nil
	}
	if *ttl < 1 {
		return validation.NewError("validation_ttl", "must be at least 1 second")
	}
	return nil
}
