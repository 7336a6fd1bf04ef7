package dto

import (
	"time"

	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
)

// GenerateTokenResponse represents an issued secure id token.
type GenerateTokenResponse struct {
	Token     string     `json:"token"`
	Model     string     `json:"model"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ResolveTokenResponse represents the identifier recovered from a secure id token.
type ResolveTokenResponse struct {
	ID    secureIDDomain.RecordID `json:"id"`
	Model string                  `json:"model"`
}
