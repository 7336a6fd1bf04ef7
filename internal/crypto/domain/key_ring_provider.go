package domain

import "sync/atomic"

// KeyRingProvider hands out the key ring snapshot an operation works against.
// Callers read it exactly once per operation.
type KeyRingProvider interface {
	KeyRing() *KeyRing
}

// StaticKeyRingProvider always returns the same ring.
type StaticKeyRingProvider struct {
	ring *KeyRing
}

// NewStaticKeyRingProvider wraps ring.
func NewStaticKeyRingProvider(ring *KeyRing) *StaticKeyRingProvider {
	return &StaticKeyRingProvider{ring: ring}
}

// KeyRing returns the wrapped ring.
func (p *StaticKeyRingProvider) KeyRing() *KeyRing {
	return p.ring
}

// ReloadableKeyRingProvider serves the most recently stored ring. Operations that
// started before a Reload keep using the ring they already read.
type ReloadableKeyRingProvider struct {
	current atomic.Pointer[KeyRing]
}

// NewReloadableKeyRingProvider creates a provider serving ring.
func NewReloadableKeyRingProvider(ring *KeyRing) *ReloadableKeyRingProvider {
	p := &ReloadableKeyRingProvider{}
	p.current.Store(ring)
	return p
}

// KeyRing returns the current snapshot.
func (p *ReloadableKeyRingProvider) KeyRing() *KeyRing {
	return p.current.Load()
}

// Reload swaps in ring for subsequent operations and returns the previous one. The caller
// owns the previous ring and should Close it once in-flight operations are done with it.
func (p *ReloadableKeyRingProvider) Reload(ring *KeyRing) *KeyRing {
	return p.current.Swap(ring)
}
