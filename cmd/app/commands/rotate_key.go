package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
	cryptoService "github.com/allisson/secureid/internal/crypto/service"
)

// RunRotateKey appends a new key to an existing key ring descriptor and makes it primary.
// Existing entries are kept verbatim so tokens sealed under them keep resolving. When version is
// empty the next integer after the highest numeric version is used.
func RunRotateKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	writer io.Writer,
	version, kmsProvider, kmsKeyURI, existingKeys, existingPrimaryVersion string,
) error {
	if err := validateKMSParams(kmsProvider, kmsKeyURI); err != nil {
		return err
	}
	if existingKeys == "" {
		return fmt.Errorf("SECURE_ID_KEYS is not set, use create-key for the first key")
	}

	entries, err := cryptoDomain.ParseKeyEntries(existingKeys)
	if err != nil {
		return err
	}
	versions := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		versions[e.Version] = struct{}{}
		cryptoDomain.Zero(e.Key)
	}

	if version == "" {
		version, err = nextVersion(versions)
		if err != nil {
			return err
		}
	}
	if _, exists := versions[version]; exists {
		return fmt.Errorf("%w: %s", cryptoDomain.ErrDuplicateKeyVersion, version)
	}

	entry, err := cryptoService.NewKeyRingEntry(ctx, kmsService, version, kmsKeyURI)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(writer, "# Secure ID Key Rotation")
	_, _ = fmt.Fprintln(writer, "# Update these environment variables in your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	writeKeyRingConfig(writer, kmsProvider, kmsKeyURI, existingKeys+","+entry, version)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# Rotation Workflow:")
	_, _ = fmt.Fprintln(writer, "# 1. Update the above environment variables")
	_, _ = fmt.Fprintln(writer, "# 2. Send SIGHUP to the server or restart it")
	if existingPrimaryVersion != "" {
		_, _ = fmt.Fprintf(writer,
			"# 3. Keep version %s in SECURE_ID_KEYS for as long as its tokens must resolve\n",
			existingPrimaryVersion,
		)
	}

	return nil
}

// nextVersion returns max+1 over numeric versions. Non-numeric rings need an explicit version.
func nextVersion(versions map[string]struct{}) (string, error) {
	highest := 0
	for v := range versions {
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", fmt.Errorf("existing version %q is not numeric, pass --version explicitly", v)
		}
		highest = max(highest, n)
	}
	return strconv.Itoa(highest + 1), nil
}
