package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
)

// KeyRingConfig is the external descriptor a KeyRing is loaded from.
//
// Keys uses the "version:base64,version:base64" format. When KMSProvider and
// KMSKeyURI are both set every base64 value is a KMS ciphertext, otherwise it is
// the raw 32-byte key.
type KeyRingConfig struct {
	Keys           string
	PrimaryVersion string
	KMSProvider    string
	KMSKeyURI      string
}

// KMSEnabled reports whether key values must be unwrapped through a KMS keeper.
func (c KeyRingConfig) KMSEnabled() bool {
	return c.KMSProvider != "" && c.KMSKeyURI != ""
}

// ParseKeyEntries splits a "version:base64" list into versions and decoded values.
// Values are returned undecrypted; entries keep their configuration order.
func ParseKeyEntries(raw string) ([]*SymmetricKey, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrKeysNotSet
	}

	var entries []*SymmetricKey
	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" {
			zeroEntries(entries)
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeysFormat, part)
		}
		value, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			zeroEntries(entries)
			return nil, fmt.Errorf("%w for version %s: %v", ErrInvalidKeyBase64, p[0], err)
		}
		entries = append(entries, &SymmetricKey{Version: p[0], Key: value})
	}

	return entries, nil
}

// FormatKeyEntries is the inverse of ParseKeyEntries.
func FormatKeyEntries(entries []*SymmetricKey) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Version+":"+base64.StdEncoding.EncodeToString(e.Key))
	}
	return strings.Join(parts, ",")
}

// LoadKeyRing builds a KeyRing from cfg, unwrapping every key through kmsService
// when KMS is configured. Decoded key bytes are zeroed once copied into the ring.
func LoadKeyRing(
	ctx context.Context,
	cfg KeyRingConfig,
	kmsService KMSService,
	logger *slog.Logger,
) (*KeyRing, error) {
	if cfg.PrimaryVersion == "" {
		return nil, ErrPrimaryKeyVersionNotSet
	}

	entries, err := ParseKeyEntries(cfg.Keys)
	if err != nil {
		return nil, err
	}
	defer zeroEntries(entries)

	if cfg.KMSEnabled() {
		if err := unwrapEntries(ctx, cfg, kmsService, entries); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("secure id keys loaded without KMS, use a KMS provider in production")
	}

	ring, err := NewKeyRing(cfg.PrimaryVersion, entries)
	if err != nil {
		return nil, err
	}

	if _, err := ring.Primary(); err != nil {
		// Resolution can still work with the retained versions, generation cannot.
		logger.Error("secure id primary key version missing from key ring",
			slog.String("primary_version", cfg.PrimaryVersion),
			slog.Any("versions", ring.Versions()),
		)
	}

	logger.Info("secure id key ring loaded",
		slog.String("primary_version", ring.PrimaryVersion()),
		slog.Int("key_count", len(ring.Versions())),
		slog.Bool("kms", cfg.KMSEnabled()),
	)

	return ring, nil
}

// unwrapEntries replaces each entry's ciphertext with its KMS plaintext in place.
func unwrapEntries(ctx context.Context, cfg KeyRingConfig, kmsService KMSService, entries []*SymmetricKey) error {
	keeper, err := kmsService.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open kms keeper for %s: %w", cfg.KMSProvider, err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	for _, e := range entries {
		plaintext, err := keeper.Decrypt(ctx, e.Key)
		if err != nil {
			return fmt.Errorf("%w for version %s: %v", ErrKMSDecryptionFailed, e.Version, err)
		}
		Zero(e.Key)
		e.Key = plaintext
	}

	return nil
}

func zeroEntries(entries []*SymmetricKey) {
	for _, e := range entries {
		Zero(e.Key)
	}
}
