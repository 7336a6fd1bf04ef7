/*
Package secureid issues and resolves opaque external identifiers for internal records.

A secure id token wraps a record identifier together with the record type ("model"), a
caller-declared scope and an optional expiration. Tokens are encrypted with an AEAD cipher
under the primary key of a versioned key ring and encoded as URL-safe text, so raw
sequential primary keys never leave the service.

# Architecture

  - domain: RecordID, Payload and the Envelope codec
  - usecase: token generation and resolution, generic record bindings, metrics decorator
  - http: HTTP handlers and DTOs

# Token Layout

	token    = base64url(json({"v": key_version, "d": base64(blob)}))
	blob     = nonce || AEAD(payload, aad = key_version)
	payload  = json({"model", "id", "scp", "exp", "sv"})   exp in unix nanoseconds

Tokens are stateless. Nothing is persisted when a token is generated; validity depends only on
the token bytes, the current key ring and the wall clock.

# Basic Usage

Generate a token:

	expiresAt := time.Now().Add(time.Hour)
	token, err := secureIDUseCase.Generate(ctx, "Product", domain.IntID(42), "receipt", &expiresAt)

Resolve it:

	id, ok := secureIDUseCase.Resolve(ctx, token, "Product", "receipt")
	if !ok {
	    // not found
	}

# Failure Model

Generate fails loudly when the primary key version is missing from the key ring.
Resolve never fails: a malformed, tampered, expired, mis-scoped or wrong-model token, or one
sealed under a key version that is no longer retained, all produce the same (RecordID{}, false).
The reason is only written to the debug log.

# Key Rotation

Add a new key version, make it primary and keep the old version in the ring. Tokens issued under
the old version keep resolving until that version is removed.
*/
package secureid
