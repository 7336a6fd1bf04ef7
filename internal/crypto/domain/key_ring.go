// Package domain defines the key material used to seal secure id tokens.
//
// A KeyRing is an immutable snapshot of every retained key plus the version used
// for new tokens. Tokens carry the version they were sealed under, so rotating the
// primary version never invalidates tokens issued before the rotation as long as
// the old version stays in the ring.
package domain

import (
	"fmt"
	"slices"
)

// SymmetricKey is a 256-bit secret identified by its version tag.
type SymmetricKey struct {
	Version string
	Key     []byte
}

// KeyRing maps key versions to keys and designates the primary version.
// A KeyRing is never mutated after construction and is safe for concurrent use.
type KeyRing struct {
	primaryVersion string
	keys           map[string]*SymmetricKey
}

// NewKeyRing builds a KeyRing from keys. Key bytes are copied, so callers may zero
// their slices afterwards.
//
// The primary version does not have to be present in keys: a ring whose primary
// is missing still resolves tokens under its retained versions, and Primary
// reports ErrKeyNotFound.
func NewKeyRing(primaryVersion string, keys []*SymmetricKey) (*KeyRing, error) {
	if primaryVersion == "" {
		return nil, ErrPrimaryKeyVersionNotSet
	}

	ring := &KeyRing{
		primaryVersion: primaryVersion,
		keys:           make(map[string]*SymmetricKey, len(keys)),
	}

	for _, k := range keys {
		if k.Version == "" {
			ring.Close()
			return nil, ErrEmptyKeyVersion
		}
		if len(k.Key) != KeySize {
			ring.Close()
			return nil, fmt.Errorf("%w: key %s must be %d bytes, got %d", ErrInvalidKeySize, k.Version, KeySize, len(k.Key))
		}
		if _, exists := ring.keys[k.Version]; exists {
			ring.Close()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKeyVersion, k.Version)
		}
		ring.keys[k.Version] = &SymmetricKey{Version: k.Version, Key: slices.Clone(k.Key)}
	}

	return ring, nil
}

// PrimaryVersion returns the version used to seal new tokens.
func (r *KeyRing) PrimaryVersion() string {
	return r.primaryVersion
}

// Primary returns the key for the primary version.
func (r *KeyRing) Primary() (*SymmetricKey, error) {
	key, ok := r.keys[r.primaryVersion]
	if !ok {
		return nil, fmt.Errorf("%w: version %s", ErrKeyNotFound, r.primaryVersion)
	}
	return key, nil
}

// Get returns the key for version. A missing version is a normal outcome for
// tokens sealed under a key that has since been retired.
func (r *KeyRing) Get(version string) (*SymmetricKey, bool) {
	key, ok := r.keys[version]
	return key, ok
}

// Versions returns every retained version in sorted order.
func (r *KeyRing) Versions() []string {
	versions := make([]string, 0, len(r.keys))
	for v := range r.keys {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions
}

// Close zeroes all key material. The ring must not be used afterwards.
func (r *KeyRing) Close() {
	for _, k := range r.keys {
		Zero(k.Key)
	}
	clear(r.keys)
}
