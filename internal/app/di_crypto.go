package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
	cryptoService "github.com/allisson/secureid/internal/crypto/service"
	"github.com/allisson/secureid/internal/metrics"
)

// AEADManager returns the cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the service used to unwrap KMS-encrypted key ring entries.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// Algorithm returns the configured AEAD algorithm.
func (c *Container) Algorithm() (cryptoDomain.Algorithm, error) {
	return cryptoDomain.ParseAlgorithm(c.config.SecureIDAlgorithm)
}

// KeyRingProvider returns the reloadable key ring provider, loading the initial ring from
// SECURE_ID_KEYS on first access.
func (c *Container) KeyRingProvider() (*cryptoDomain.ReloadableKeyRingProvider, error) {
	err := c.once(&c.keyRingProviderInit, "keyRingProvider", func() error {
		ring, err := c.loadKeyRing(context.Background())
		if err != nil {
			return err
		}
		c.keyRingProvider = cryptoDomain.NewReloadableKeyRingProvider(ring)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.keyRingProvider, nil
}

// KeyRingMetrics returns the key ring metrics, a no-op when metrics are disabled.
func (c *Container) KeyRingMetrics() (metrics.KeyRingMetrics, error) {
	err := c.once(&c.keyRingMetricsInit, "keyRingMetrics", func() error {
		provider, err := c.MetricsProvider()
		if err != nil {
			return err
		}
		if provider == nil {
			c.keyRingMetrics = metrics.NoOpKeyRingMetrics{}
			return nil
		}

		keyRings, err := c.KeyRingProvider()
		if err != nil {
			return fmt.Errorf("failed to get key ring for key ring metrics: %w", err)
		}

		km, err := metrics.NewKeyRingMetrics(provider.MeterProvider(), c.config.MetricsNamespace, func() int {
			if ring := keyRings.KeyRing(); ring != nil {
				return len(ring.Versions())
			}
			return 0
		})
		if err != nil {
			return fmt.Errorf("failed to create key ring metrics: %w", err)
		}
		c.keyRingMetrics = km
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.keyRingMetrics, nil
}

// ReloadKeyRing loads keys from cfg and swaps them in for subsequent operations. On failure
// the current ring stays active.
func (c *Container) ReloadKeyRing(ctx context.Context, keyRingConfig cryptoDomain.KeyRingConfig) error {
	logger := c.Logger()

	provider, err := c.KeyRingProvider()
	if err != nil {
		return err
	}

	km, err := c.KeyRingMetrics()
	if err != nil {
		return err
	}

	ring, err := cryptoDomain.LoadKeyRing(ctx, keyRingConfig, c.KMSService(), logger)
	if err != nil {
		km.RecordReload(ctx, "error")
		logger.ErrorContext(ctx, "key ring reload failed, keeping current key ring", slog.Any("error", err))
		return fmt.Errorf("failed to reload key ring: %w", err)
	}

	c.retireKeyRing(provider.Reload(ring))
	km.RecordReload(ctx, "success")
	logger.InfoContext(ctx, "key ring reloaded",
		slog.String("primary_version", ring.PrimaryVersion()),
		slog.Any("versions", ring.Versions()),
	)
	return nil
}

// retireKeyRing zeroes a replaced ring after the retire delay, once operations that read it
// before the reload have finished.
func (c *Container) retireKeyRing(ring *cryptoDomain.KeyRing) {
	if ring == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.retiringKeyRings[ring] = time.AfterFunc(c.keyRingRetireDelay, func() {
		ring.Close()
		c.mu.Lock()
		delete(c.retiringKeyRings, ring)
		c.mu.Unlock()
	})
}

func (c *Container) loadKeyRing(ctx context.Context) (*cryptoDomain.KeyRing, error) {
	ring, err := cryptoDomain.LoadKeyRing(ctx, c.config.KeyRingConfig(), c.KMSService(), c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to load key ring: %w", err)
	}
	return ring, nil
}
