// Package app provides the dependency injection container that assembles the secure id service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/allisson/secureid/internal/config"
	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
	cryptoService "github.com/allisson/secureid/internal/crypto/service"
	"github.com/allisson/secureid/internal/http"
	"github.com/allisson/secureid/internal/metrics"
	secureIDHTTP "github.com/allisson/secureid/internal/secureid/http"
	secureIDUseCase "github.com/allisson/secureid/internal/secureid/usecase"
)

// defaultKeyRingRetireDelay bounds how long an operation may keep using a ring it read before
// a reload replaced it. Token operations finish in well under a millisecond.
const defaultKeyRingRetireDelay = 30 * time.Second

// Container holds application components. Each component is built on first access and
// cached; failed initializations are cached too and returned on every later call.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	keyRingMetrics  metrics.KeyRingMetrics

	// Crypto
	kmsService      cryptoService.KMSService
	aeadManager     cryptoService.AEADManager
	keyRingProvider *cryptoDomain.ReloadableKeyRingProvider

	// Replaced rings waiting to be zeroed
	keyRingRetireDelay time.Duration
	retiringKeyRings   map[*cryptoDomain.KeyRing]*time.Timer

	// Secure IDs
	secureIDUseCase secureIDUseCase.SecureIDUseCase
	secureIDHandler *secureIDHTTP.SecureIDHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	keyRingMetricsInit  sync.Once
	kmsServiceInit      sync.Once
	aeadManagerInit     sync.Once
	keyRingProviderInit sync.Once
	secureIDUseCaseInit sync.Once
	secureIDHandlerInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a container for cfg. Nothing is initialized until requested.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:             cfg,
		initErrors:         make(map[string]error),
		keyRingRetireDelay: defaultKeyRingRetireDelay,
		retiringKeyRings:   make(map[*cryptoDomain.KeyRing]*time.Timer),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// once runs init under the given sync.Once and records its error under name.
func (c *Container) once(o *sync.Once, name string, init func() error) error {
	o.Do(func() {
		if err := init(); err != nil {
			c.mu.Lock()
			c.initErrors[name] = err
			c.mu.Unlock()
		}
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// MetricsProvider returns the Prometheus-backed provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	err := c.once(&c.metricsProviderInit, "metricsProvider", func() error {
		if !c.config.MetricsEnabled {
			return nil
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create metrics provider: %w", err)
		}
		c.metricsProvider = provider
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the token operation metrics, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	err := c.once(&c.businessMetricsInit, "businessMetrics", func() error {
		provider, err := c.MetricsProvider()
		if err != nil {
			return err
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return nil
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create business metrics: %w", err)
		}
		c.businessMetrics = bm
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router configured. ctx bounds background work
// started by middleware.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	err := c.once(&c.httpServerInit, "httpServer", func() error {
		server, err := c.initHTTPServer(ctx)
		if err != nil {
			return err
		}
		c.httpServer = server
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	err := c.once(&c.metricsServerInit, "metricsServer", func() error {
		provider, err := c.MetricsProvider()
		if err != nil {
			return fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
		}
		if provider == nil {
			return nil
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown stops the servers and flushes metrics. Key rings, including replaced rings still
// waiting for their retire delay, are zeroed last.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	c.mu.Lock()
	for ring, timer := range c.retiringKeyRings {
		if timer.Stop() {
			ring.Close()
		}
		delete(c.retiringKeyRings, ring)
	}
	c.mu.Unlock()

	if c.keyRingProvider != nil {
		if ring := c.keyRingProvider.KeyRing(); ring != nil {
			ring.Close()
		}
	}

	return errors.Join(errs...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	keyRings, err := c.KeyRingProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get key ring for http server: %w", err)
	}

	handler, err := c.SecureIDHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure id handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(keyRings, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, c.config, handler, provider)
	return server, nil
}
