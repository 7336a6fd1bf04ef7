package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// PayloadSchemaVersion is the current layout of the encrypted payload. It evolves independently
// of key versions, which only select the key a token was sealed with.
const PayloadSchemaVersion = 1

// Payload is the fact protected inside a token. It only exists in plaintext right before
// encryption and right after decryption and is never persisted.
type Payload struct {
	Model string   `json:"model"`
	ID    RecordID `json:"id"`
	Scope string   `json:"scp"`
	// ExpiresAt is the absolute expiration as unix nanoseconds, so the token expires at exactly
	// the requested instant. Nil means the token never expires.
	ExpiresAt     *int64 `json:"exp,omitempty"`
	SchemaVersion int    `json:"sv"`
}

// NewPayload builds a payload for the current schema version.
func NewPayload(model string, id RecordID, scope string, expiresAt *time.Time) Payload {
	p := Payload{
		Model:         model,
		ID:            id,
		Scope:         scope,
		SchemaVersion: PayloadSchemaVersion,
	}
	if expiresAt != nil {
		exp := expiresAt.UnixNano()
		p.ExpiresAt = &exp
	}
	return p
}

// Marshal serializes the payload to JSON.
func (p Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Expired reports whether now is at or past the expiration.
func (p Payload) Expired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return !now.Before(time.Unix(0, *p.ExpiresAt))
}

// ExpiresAtTime returns the expiration as a UTC time, or nil.
func (p Payload) ExpiresAtTime() *time.Time {
	if p.ExpiresAt == nil {
		return nil
	}
	t := time.Unix(0, *p.ExpiresAt).UTC()
	return &t
}

// UnmarshalPayload parses and validates a payload document. Unknown fields, unknown schema
// versions and a missing id are rejected with ErrMalformedPayload. Empty model and scope
// strings are valid values.
func UnmarshalPayload(data []byte) (Payload, error) {
	var p Payload

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Payload{}, fmt.Errorf("%w: trailing data", ErrMalformedPayload)
	}

	switch {
	case p.SchemaVersion != PayloadSchemaVersion:
		return Payload{}, fmt.Errorf("%w: unsupported schema version %d", ErrMalformedPayload, p.SchemaVersion)
	case !p.ID.IsSet():
		return Payload{}, fmt.Errorf("%w: missing id", ErrMalformedPayload)
	}

	return p, nil
}
