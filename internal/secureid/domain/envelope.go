package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

var (
	tokenEncoding      = base64.RawURLEncoding.Strict()
	ciphertextEncoding = base64.StdEncoding.Strict()
)

// Envelope pairs a key version with the ciphertext sealed under that key.
type Envelope struct {
	Version    string
	Ciphertext []byte
}

type envelopeDocument struct {
	V string `json:"v"`
	D string `json:"d"`
}

// Encode renders the envelope as a URL-safe token without padding.
func (e Envelope) Encode() (string, error) {
	if e.Version == "" || len(e.Ciphertext) == 0 {
		return "", ErrInvalidEnvelope
	}

	doc, err := json.Marshal(envelopeDocument{
		V: e.Version,
		D: ciphertextEncoding.EncodeToString(e.Ciphertext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return tokenEncoding.EncodeToString(doc), nil
}

// DecodeEnvelope parses a token produced by Encode. Every failure wraps ErrDecode.
// Keys are matched exactly, so a token differing from an issued one in any character never
// decodes to the same envelope.
func DecodeEnvelope(token string) (Envelope, error) {
	if token == "" {
		return Envelope{}, fmt.Errorf("%w: empty token", ErrDecode)
	}

	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var fields map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&fields); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Envelope{}, fmt.Errorf("%w: trailing data", ErrDecode)
	}
	if len(fields) != 2 {
		return Envelope{}, fmt.Errorf("%w: unexpected fields", ErrDecode)
	}

	var doc envelopeDocument
	if err := unmarshalField(fields, "v", &doc.V); err != nil {
		return Envelope{}, err
	}
	if err := unmarshalField(fields, "d", &doc.D); err != nil {
		return Envelope{}, err
	}

	ciphertext, err := ciphertextEncoding.DecodeString(doc.D)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return Envelope{Version: doc.V, Ciphertext: ciphertext}, nil
}

func unmarshalField(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: missing %q", ErrDecode, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrDecode, key, err)
	}
	if *dst == "" {
		return fmt.Errorf("%w: empty %q", ErrDecode, key)
	}
	return nil
}
