package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
)

type mockKMSKeeper struct {
	mock.Mock
}

func (m *mockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

// decryptOnlyKeeper lacks Encrypt.
type decryptOnlyKeeper struct{}

func (decryptOnlyKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return ciphertext, nil
}

func (decryptOnlyKeeper) Close() error { return nil }

type mockKMSService struct {
	mock.Mock
}

func (m *mockKMSService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	args := m.Called(ctx, keyURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoDomain.KMSKeeper), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func localSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

// envValue extracts NAME="value" from command output.
func envValue(t *testing.T, output, name string) string {
	t.Helper()
	m := regexp.MustCompile(`(?m)^` + name + `="([^"]*)"$`).FindStringSubmatch(output)
	require.Len(t, m, 2, "%s not found in output:\n%s", name, output)
	return m[1]
}

func TestValidateKMSParams(t *testing.T) {
	require.NoError(t, validateKMSParams("", ""))
	require.NoError(t, validateKMSParams("localsecrets", "base64key://abc"))
	require.Error(t, validateKMSParams("localsecrets", ""))
	require.Error(t, validateKMSParams("", "base64key://abc"))
}

func TestValidateFormat(t *testing.T) {
	require.NoError(t, validateFormat("text"))
	require.NoError(t, validateFormat("json"))
	require.ErrorContains(t, validateFormat("yaml"), "invalid format")
}
