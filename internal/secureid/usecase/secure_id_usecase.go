package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
	cryptoService "github.com/allisson/secureid/internal/crypto/service"
	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
)

// secureIDUseCase implements SecureIDUseCase on top of a key ring provider and an AEAD cipher.
type secureIDUseCase struct {
	keyRings    cryptoDomain.KeyRingProvider
	aeadManager cryptoService.AEADManager
	algorithm   cryptoDomain.Algorithm
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a SecureIDUseCase.
type Option func(*secureIDUseCase)

// WithClock replaces the clock used for expiration checks.
func WithClock(now func() time.Time) Option {
	return func(s *secureIDUseCase) {
		s.now = now
	}
}

// Generate seals a payload under the primary key and encodes it as a token.
func (s *secureIDUseCase) Generate(
	ctx context.Context,
	model string,
	id secureIDDomain.RecordID,
	scope string,
	expiresAt *time.Time,
) (string, error) {
	if !id.IsSet() {
		return "", secureIDDomain.ErrInvalidGenerateInput
	}

	plaintext, err := secureIDDomain.NewPayload(model, id, scope, expiresAt).Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	// Read the key ring once so a concurrent reload cannot mix snapshots within this call
	ring := s.keyRings.KeyRing()
	if ring == nil {
		return "", cryptoDomain.ErrKeyNotFound
	}

	key, err := ring.Primary()
	if err != nil {
		return "", err
	}

	aead, err := s.aeadManager.CreateCipher(key.Key, s.algorithm)
	if err != nil {
		return "", err
	}

	blob, err := cryptoService.Seal(aead, plaintext, []byte(key.Version))
	if err != nil {
		return "", err
	}

	return secureIDDomain.Envelope{Version: key.Version, Ciphertext: blob}.Encode()
}

// Resolve decodes and verifies token. The reason for a failed resolution is only logged at debug level.
func (s *secureIDUseCase) Resolve(
	ctx context.Context,
	token, expectedModel, expectedScope string,
) (secureIDDomain.RecordID, bool) {
	id, err := s.resolve(token, expectedModel, expectedScope)
	if err != nil {
		s.logger.DebugContext(ctx, "secure id not resolved",
			slog.String("model", expectedModel),
			slog.String("scope", expectedScope),
			slog.String("reason", err.Error()),
		)
		return secureIDDomain.RecordID{}, false
	}
	return id, true
}

func (s *secureIDUseCase) resolve(token, expectedModel, expectedScope string) (secureIDDomain.RecordID, error) {
	envelope, err := secureIDDomain.DecodeEnvelope(token)
	if err != nil {
		return secureIDDomain.RecordID{}, err
	}

	ring := s.keyRings.KeyRing()
	if ring == nil {
		return secureIDDomain.RecordID{}, secureIDDomain.ErrUnknownKeyVersion
	}

	key, ok := ring.Get(envelope.Version)
	if !ok {
		return secureIDDomain.RecordID{}, fmt.Errorf("%w: %q", secureIDDomain.ErrUnknownKeyVersion, envelope.Version)
	}

	aead, err := s.aeadManager.CreateCipher(key.Key, s.algorithm)
	if err != nil {
		return secureIDDomain.RecordID{}, err
	}

	plaintext, err := cryptoService.Open(aead, envelope.Ciphertext, []byte(envelope.Version))
	if err != nil {
		return secureIDDomain.RecordID{}, err
	}
	defer cryptoDomain.Zero(plaintext)

	payload, err := secureIDDomain.UnmarshalPayload(plaintext)
	if err != nil {
		return secureIDDomain.RecordID{}, err
	}

	if payload.Model != expectedModel {
		return secureIDDomain.RecordID{}, secureIDDomain.ErrModelMismatch
	}
	if subtle.ConstantTimeCompare([]byte(payload.Scope), []byte(expectedScope)) != 1 {
		return secureIDDomain.RecordID{}, secureIDDomain.ErrScopeMismatch
	}
	if payload.Expired(s.now()) {
		return secureIDDomain.RecordID{}, secureIDDomain.ErrExpired
	}

	return payload.ID, nil
}

// NewSecureIDUseCase creates a new SecureIDUseCase sealing tokens with algorithm.
func NewSecureIDUseCase(
	keyRings cryptoDomain.KeyRingProvider,
	aeadManager cryptoService.AEADManager,
	algorithm cryptoDomain.Algorithm,
	logger *slog.Logger,
	opts ...Option,
) SecureIDUseCase {
	s := &secureIDUseCase{
		keyRings:    keyRings,
		aeadManager: aeadManager,
		algorithm:   algorithm,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
