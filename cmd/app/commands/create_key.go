package commands

import (
	"context"
	"fmt"
	"io"

	cryptoService "github.com/allisson/secureid/internal/crypto/service"
)

// RunCreateKey generates the first key of a secure id key ring and prints the matching
// SECURE_ID_KEYS and SECURE_ID_PRIMARY_KEY_VERSION settings. With KMS parameters the key is
// wrapped by the KMS key before printing; without them the raw key is printed, which is only
// suitable for development.
func RunCreateKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	writer io.Writer,
	version, kmsProvider, kmsKeyURI string,
) error {
	if err := validateKMSParams(kmsProvider, kmsKeyURI); err != nil {
		return err
	}
	if version == "" {
		version = "1"
	}

	entry, err := cryptoService.NewKeyRingEntry(ctx, kmsService, version, kmsKeyURI)
	if err != nil {
		return err
	}

	if kmsProvider != "" {
		_, _ = fmt.Fprintf(writer, "# KMS Mode: key encrypted with %s\n", kmsProvider)
	} else {
		_, _ = fmt.Fprintln(writer, "# Plaintext Mode: do not use in production, pass --kms-provider and --kms-key-uri")
	}
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	writeKeyRingConfig(writer, kmsProvider, kmsKeyURI, entry, version)

	return nil
}
