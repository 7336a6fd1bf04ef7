package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// ErrKMSEncryptionUnsupported is returned when a keeper can only unwrap keys.
var ErrKMSEncryptionUnsupported = errors.New("KMS keeper does not support encryption")

// keyWrapper is the encrypting half of *secrets.Keeper. The server only unwraps, so
// cryptoDomain.KMSKeeper does not carry it.
type keyWrapper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
}

type kmsService struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens the keeper for a key ring's KMS key.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// WrapKeys encrypts every key with the KMS key at keyURI. The returned entries carry the KMS
// ciphertext as Key and are what LoadKeyRing expects when KMS is enabled.
func WrapKeys(
	ctx context.Context,
	kms KMSService,
	keyURI string,
	keys []*cryptoDomain.SymmetricKey,
) (wrapped []*cryptoDomain.SymmetricKey, err error) {
	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			wrapped, err = nil, fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	wrapper, ok := keeper.(keyWrapper)
	if !ok {
		return nil, ErrKMSEncryptionUnsupported
	}

	wrapped = make([]*cryptoDomain.SymmetricKey, 0, len(keys))
	for _, key := range keys {
		ciphertext, err := wrapper.Encrypt(ctx, key.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt key %s with KMS: %w", key.Version, err)
		}
		wrapped = append(wrapped, &cryptoDomain.SymmetricKey{Version: key.Version, Key: ciphertext})
	}
	return wrapped, nil
}

// NewKeyRingEntry generates a random key for version and returns its SECURE_ID_KEYS entry. With
// a keyURI the key is wrapped by that KMS key; without one the raw key is encoded. The raw key
// is zeroed before returning.
func NewKeyRingEntry(ctx context.Context, kms KMSService, version, keyURI string) (string, error) {
	key := &cryptoDomain.SymmetricKey{Version: version, Key: make([]byte, cryptoDomain.KeySize)}
	if _, err := rand.Read(key.Key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	defer cryptoDomain.Zero(key.Key)

	entries := []*cryptoDomain.SymmetricKey{key}
	if keyURI != "" {
		wrapped, err := WrapKeys(ctx, kms, keyURI, entries)
		if err != nil {
			return "", err
		}
		entries = wrapped
	}

	return cryptoDomain.FormatKeyEntries(entries), nil
}
