package app

import (
	"fmt"

	secureIDHTTP "github.com/allisson/secureid/internal/secureid/http"
	secureIDUseCase "github.com/allisson/secureid/internal/secureid/usecase"
)

// SecureIDUseCase returns the token generator/resolver, wrapped with metrics when enabled.
func (c *Container) SecureIDUseCase() (secureIDUseCase.SecureIDUseCase, error) {
	err := c.once(&c.secureIDUseCaseInit, "secureIDUseCase", func() error {
		uc, err := c.initSecureIDUseCase()
		if err != nil {
			return err
		}
		c.secureIDUseCase = uc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.secureIDUseCase, nil
}

// SecureIDHandler returns the HTTP handler for token endpoints.
func (c *Container) SecureIDHandler() (*secureIDHTTP.SecureIDHandler, error) {
	err := c.once(&c.secureIDHandlerInit, "secureIDHandler", func() error {
		uc, err := c.SecureIDUseCase()
		if err != nil {
			return fmt.Errorf("failed to get secure id use case for handler: %w", err)
		}
		c.secureIDHandler = secureIDHTTP.NewSecureIDHandler(uc, c.config.SecureIDDefaultTTL, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.secureIDHandler, nil
}

func (c *Container) initSecureIDUseCase() (secureIDUseCase.SecureIDUseCase, error) {
	algorithm, err := c.Algorithm()
	if err != nil {
		return nil, fmt.Errorf("invalid SECURE_ID_ALGORITHM: %w", err)
	}

	keyRings, err := c.KeyRingProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get key ring for secure id use case: %w", err)
	}

	uc := secureIDUseCase.NewSecureIDUseCase(
		keyRings,
		c.AEADManager(),
		algorithm,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secure id use case: %w", err)
		}
		uc = secureIDUseCase.NewSecureIDUseCaseWithMetrics(uc, bm)
	}

	return uc, nil
}
