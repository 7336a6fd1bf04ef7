package usecase

import (
	"context"
	"time"

	"github.com/allisson/secureid/internal/metrics"
	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
)

// secureIDUseCaseWithMetrics decorates SecureIDUseCase with metrics instrumentation.
type secureIDUseCaseWithMetrics struct {
	next    SecureIDUseCase
	metrics metrics.BusinessMetrics
}

// NewSecureIDUseCaseWithMetrics wraps a SecureIDUseCase with metrics recording.
func NewSecureIDUseCaseWithMetrics(useCase SecureIDUseCase, m metrics.BusinessMetrics) SecureIDUseCase {
	return &secureIDUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Generate records metrics for token generation operations.
func (s *secureIDUseCaseWithMetrics) Generate(
	ctx context.Context,
	model string,
	id secureIDDomain.RecordID,
	scope string,
	expiresAt *time.Time,
) (string, error) {
	start := time.Now()
	token, err := s.next.Generate(ctx, model, id, scope, expiresAt)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secureid", "token_generate", status)
	s.metrics.RecordDuration(ctx, "secureid", "token_generate", time.Since(start), status)

	return token, err
}

// Resolve records metrics for token resolution operations.
func (s *secureIDUseCaseWithMetrics) Resolve(
	ctx context.Context,
	token, expectedModel, expectedScope string,
) (secureIDDomain.RecordID, bool) {
	start := time.Now()
	id, ok := s.next.Resolve(ctx, token, expectedModel, expectedScope)

	status := "resolved"
	if !ok {
		status = "not_found"
	}

	s.metrics.RecordOperation(ctx, "secureid", "token_resolve", status)
	s.metrics.RecordDuration(ctx, "secureid", "token_resolve", time.Since(start), status)

	return id, ok
}
