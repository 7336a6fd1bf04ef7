package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
	cryptoService "github.com/allisson/secureid/internal/crypto/service"
	apperrors "github.com/allisson/secureid/internal/errors"
	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestSecureIDUseCase_RoundTrip(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	ids := []secureIDDomain.RecordID{
		secureIDDomain.IntID(42),
		secureIDDomain.IntID(0),
		secureIDDomain.IntID(-7),
		secureIDDomain.IntID(1 << 62),
		secureIDDomain.StringID(uuid.Must(uuid.NewV7()).String()),
		secureIDDomain.StringID("42"),
	}

	for _, id := range ids {
		t.Run(id.String(), func(t *testing.T) {
			token, err := uc.Generate(ctx, "Product", id, "receipt", nil)
			require.NoError(t, err)

			got, ok := uc.Resolve(ctx, token, "Product", "receipt")
			require.True(t, ok)
			assert.Equal(t, id, got)
		})
	}
}

func TestSecureIDUseCase_FreshTokenPerCall(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	t1, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)
	t2, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestSecureIDUseCase_Generate_EmptyValuesRoundTrip(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	tests := []struct {
		name  string
		model string
		id    secureIDDomain.RecordID
		scope string
	}{
		{name: "empty scope", model: "Product", id: secureIDDomain.IntID(42), scope: ""},
		{name: "empty model", model: "", id: secureIDDomain.IntID(42), scope: "receipt"},
		{name: "empty string id", model: "Product", id: secureIDDomain.StringID(""), scope: "receipt"},
		{name: "zero int id", model: "Product", id: secureIDDomain.IntID(0), scope: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := uc.Generate(ctx, tt.model, tt.id, tt.scope, nil)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			id, ok := uc.Resolve(ctx, token, tt.model, tt.scope)
			require.True(t, ok)
			assert.Equal(t, tt.id, id)

			_, ok = uc.Resolve(ctx, token, tt.model, tt.scope+"x")
			assert.False(t, ok)
		})
	}
}

func TestSecureIDUseCase_Generate_UnsetRecordID(t *testing.T) {
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	token, err := uc.Generate(context.Background(), "Product", secureIDDomain.RecordID{}, "receipt", nil)
	assert.ErrorIs(t, err, secureIDDomain.ErrInvalidGenerateInput)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Empty(t, token)
}

func TestSecureIDUseCase_ScopeBinding(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	for _, scope := range []string{"other-scope", "Receipt", "receip", "receipt ", ""} {
		id, ok := uc.Resolve(ctx, token, "Product", scope)
		assert.False(t, ok, "scope %q", scope)
		assert.Equal(t, secureIDDomain.RecordID{}, id)
	}
}

func TestSecureIDUseCase_ModelBinding(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	for _, model := range []string{"Order", "product", "Product2", ""} {
		_, ok := uc.Resolve(ctx, token, model, "receipt")
		assert.False(t, ok, "model %q", model)
	}
}

func TestSecureIDUseCase_TamperDetection(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	t.Run("truncation", func(t *testing.T) {
		for i := range len(token) {
			_, ok := uc.Resolve(ctx, token[:i], "Product", "receipt")
			assert.False(t, ok, "truncated to %d chars", i)
		}
	})

	t.Run("single character substitution", func(t *testing.T) {
		for i := range len(token) {
			for _, c := range []byte(base64URLAlphabet) {
				if c == token[i] {
					continue
				}
				tampered := []byte(token)
				tampered[i] = c
				_, ok := uc.Resolve(ctx, string(tampered), "Product", "receipt")
				require.False(t, ok, "position %d replaced with %q", i, c)
			}
		}
	})

	t.Run("appended character", func(t *testing.T) {
		_, ok := uc.Resolve(ctx, token+"A", "Product", "receipt")
		assert.False(t, ok)
	})
}

func TestSecureIDUseCase_Expiration(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := t0

	uc := newTestUseCase(
		cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")),
		WithClock(func() time.Time { return now }),
	)

	expiresAt := t0.Add(time.Hour)
	token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", &expiresAt)
	require.NoError(t, err)

	now = t0.Add(45 * time.Minute)
	id, ok := uc.Resolve(ctx, token, "Product", "receipt")
	require.True(t, ok)
	assert.Equal(t, secureIDDomain.IntID(42), id)

	now = expiresAt
	_, ok = uc.Resolve(ctx, token, "Product", "receipt")
	assert.False(t, ok, "expired exactly at expires_at")

	now = t0.Add(2 * time.Hour)
	_, ok = uc.Resolve(ctx, token, "Product", "receipt")
	assert.False(t, ok)

	t.Run("sub-second expiration", func(t *testing.T) {
		expiresAt := t0.Add(time.Hour + 900*time.Millisecond)
		token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", &expiresAt)
		require.NoError(t, err)

		now = t0.Add(time.Hour + 500*time.Millisecond)
		_, ok := uc.Resolve(ctx, token, "Product", "receipt")
		assert.True(t, ok)

		now = expiresAt.Add(-time.Nanosecond)
		_, ok = uc.Resolve(ctx, token, "Product", "receipt")
		assert.True(t, ok)

		now = expiresAt
		_, ok = uc.Resolve(ctx, token, "Product", "receipt")
		assert.False(t, ok)
	})

	t.Run("no expiration", func(t *testing.T) {
		token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
		require.NoError(t, err)

		now = t0.AddDate(50, 0, 0)
		_, ok := uc.Resolve(ctx, token, "Product", "receipt")
		assert.True(t, ok)
	})
}

func TestSecureIDUseCase_KeyRotation(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1", "2")
	provider := cryptoDomain.NewReloadableKeyRingProvider(keys.ring(t, "1", "1"))
	uc := newTestUseCase(provider)

	oldToken, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	// Rotate: add version 2 as primary, keep version 1.
	provider.Reload(keys.ring(t, "2", "1", "2"))

	newToken, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(43), "receipt", nil)
	require.NoError(t, err)

	env, err := secureIDDomain.DecodeEnvelope(newToken)
	require.NoError(t, err)
	assert.Equal(t, "2", env.Version)

	id, ok := uc.Resolve(ctx, oldToken, "Product", "receipt")
	require.True(t, ok)
	assert.Equal(t, secureIDDomain.IntID(42), id)

	id, ok = uc.Resolve(ctx, newToken, "Product", "receipt")
	require.True(t, ok)
	assert.Equal(t, secureIDDomain.IntID(43), id)

	// Retire version 1.
	provider.Reload(keys.ring(t, "2", "2"))

	_, ok = uc.Resolve(ctx, oldToken, "Product", "receipt")
	assert.False(t, ok)

	_, ok = uc.Resolve(ctx, newToken, "Product", "receipt")
	assert.True(t, ok)
}

func TestSecureIDUseCase_VersionLabelIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	keys["2"] = keys["1"]
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1", "2")))

	token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	env, err := secureIDDomain.DecodeEnvelope(token)
	require.NoError(t, err)

	// Same key material under another version label must not verify.
	relabelled, err := secureIDDomain.Envelope{Version: "2", Ciphertext: env.Ciphertext}.Encode()
	require.NoError(t, err)

	_, ok := uc.Resolve(ctx, relabelled, "Product", "receipt")
	assert.False(t, ok)
}

func TestSecureIDUseCase_MalformedInput(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1")))

	unknownVersion := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"v":"99","d":"` + base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 40)) + `"}`),
	)

	key, _ := keys.ring(t, "1", "1").Get("1")
	aead, err := cryptoService.NewAESGCM(key.Key)
	require.NoError(t, err)
	garbageBlob, err := cryptoService.Seal(aead, []byte(`{"model":"Product"}`), []byte("1"))
	require.NoError(t, err)
	malformedPayload, err := secureIDDomain.Envelope{Version: "1", Ciphertext: garbageBlob}.Encode()
	require.NoError(t, err)

	inputs := map[string]string{
		"empty":             "",
		"invalid base64":    "not valid base64!",
		"invalid":           "invalid",
		"unknown version":   unknownVersion,
		"malformed payload": malformedPayload,
		"json only":         base64.RawURLEncoding.EncodeToString([]byte(`{}`)),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			id, ok := uc.Resolve(ctx, input, "Product", "receipt")
			assert.False(t, ok)
			assert.True(t, id.IsZero())
		})
	}
}

func TestSecureIDUseCase_PrimaryKeyMissing(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	provider := cryptoDomain.NewReloadableKeyRingProvider(keys.ring(t, "1", "1"))
	uc := newTestUseCase(provider)

	oldToken, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	provider.Reload(keys.ring(t, "2", "1"))

	token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
	assert.True(t, apperrors.Is(err, apperrors.ErrMisconfigured))
	assert.Empty(t, token)

	// Retained versions still resolve.
	_, ok := uc.Resolve(ctx, oldToken, "Product", "receipt")
	assert.True(t, ok)
}

func TestSecureIDUseCase_NilKeyRing(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(nil))

	_, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)

	_, ok := uc.Resolve(ctx, "invalid", "Product", "receipt")
	assert.False(t, ok)
}

func TestSecureIDUseCase_Algorithms(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	provider := cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1"))
	aeadManager := cryptoService.NewAEADManager()

	chacha := NewSecureIDUseCase(provider, aeadManager, cryptoDomain.ChaCha20, discardLogger())
	gcm := NewSecureIDUseCase(provider, aeadManager, cryptoDomain.AESGCM, discardLogger())

	token, err := chacha.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	id, ok := chacha.Resolve(ctx, token, "Product", "receipt")
	require.True(t, ok)
	assert.Equal(t, secureIDDomain.IntID(42), id)

	_, ok = gcm.Resolve(ctx, token, "Product", "receipt")
	assert.False(t, ok)
}

func TestSecureIDUseCase_EndToEnd(t *testing.T) {
	ctx := context.Background()
	ring, err := cryptoDomain.NewKeyRing("1", []*cryptoDomain.SymmetricKey{
		{Version: "1", Key: bytes.Repeat([]byte("a"), 32)},
	})
	require.NoError(t, err)
	uc := newTestUseCase(cryptoDomain.NewStaticKeyRingProvider(ring))

	token, err := uc.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(token), 50)
	assert.Regexp(t, urlSafe, token)
	assert.NotContains(t, token, "Product")
	assert.NotContains(t, token, "receipt")

	// A literal "42" can occur by chance in random base64 text, so the raw id is checked where it
	// would actually leak: the plaintext outer document and the sealed bytes.
	env, err := secureIDDomain.DecodeEnvelope(token)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(env.Ciphertext, []byte(`"id":42`)))
	assert.False(t, bytes.Contains(env.Ciphertext, []byte("receipt")))

	var outer map[string]any
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &outer))
	assert.Len(t, outer, 2)
	assert.Equal(t, "1", outer["v"])
	assert.NotContains(t, outer, "id")
	assert.IsType(t, "", outer["d"])

	id, ok := uc.Resolve(ctx, token, "Product", "receipt")
	require.True(t, ok)
	assert.Equal(t, secureIDDomain.IntID(42), id)

	_, ok = uc.Resolve(ctx, token, "Product", "other-scope")
	assert.False(t, ok)
}

func TestSecureIDUseCase_LogsReasonAtDebugOnly(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1")
	provider := cryptoDomain.NewStaticKeyRingProvider(keys.ring(t, "1", "1"))

	var debugBuf, infoBuf bytes.Buffer
	debugUC := NewSecureIDUseCase(
		provider,
		cryptoService.NewAEADManager(),
		cryptoDomain.AESGCM,
		slog.New(slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	)
	infoUC := NewSecureIDUseCase(
		provider,
		cryptoService.NewAEADManager(),
		cryptoDomain.AESGCM,
		slog.New(slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})),
	)

	token, err := debugUC.Generate(ctx, "Product", secureIDDomain.IntID(42), "receipt", nil)
	require.NoError(t, err)

	_, ok := debugUC.Resolve(ctx, token, "Product", "wrong")
	assert.False(t, ok)
	assert.Contains(t, debugBuf.String(), "secure id not resolved")
	assert.Contains(t, debugBuf.String(), secureIDDomain.ErrScopeMismatch.Error())

	_, ok = infoUC.Resolve(ctx, token, "Product", "wrong")
	assert.False(t, ok)
	assert.Empty(t, infoBuf.String())
}

func TestSecureIDUseCase_ConcurrentUseDuringReload(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeys(t, "1", "2")
	ringA := keys.ring(t, "1", "1", "2")
	ringB := keys.ring(t, "2", "1", "2")
	provider := cryptoDomain.NewReloadableKeyRingProvider(ringA)
	uc := newTestUseCase(provider)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for i := range 200 {
			if i%2 == 0 {
				provider.Reload(ringB)
			} else {
				provider.Reload(ringA)
			}
		}
		return nil
	})

	for w := range 8 {
		g.Go(func() error {
			for i := range 50 {
				id := secureIDDomain.IntID(int64(w*1000 + i))
				scope := fmt.Sprintf("scope-%d", w)

				token, err := uc.Generate(gctx, "Product", id, scope, nil)
				if err != nil {
					return err
				}
				got, ok := uc.Resolve(gctx, token, "Product", scope)
				if !ok || got != id {
					return fmt.Errorf("worker %d: token for %s did not resolve", w, id)
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}
