package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// KeyRingMetrics tracks key ring reloads and the number of key versions currently loaded.
type KeyRingMetrics interface {
	RecordReload(ctx context.Context, status string)
}

type keyRingMetrics struct {
	reloadCounter metric.Int64Counter
}

// NewKeyRingMetrics registers a reload counter and an observable gauge whose value is read
// from versionCount on every collection.
func NewKeyRingMetrics(
	meterProvider metric.MeterProvider,
	namespace string,
	versionCount func() int,
) (KeyRingMetrics, error) {
	meter := meterProvider.Meter(namespace)

	reloadCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_key_ring_reloads_total", namespace),
		metric.WithDescription("Total number of key ring reload attempts"),
		metric.WithUnit("{reload}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create key ring reload counter: %w", err)
	}

	_, err = meter.Int64ObservableGauge(
		fmt.Sprintf("%s_key_ring_versions", namespace),
		metric.WithDescription("Number of key versions in the active key ring"),
		metric.WithUnit("{key}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(versionCount()))
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create key ring versions gauge: %w", err)
	}

	return &keyRingMetrics{reloadCounter: reloadCounter}, nil
}

func (k *keyRingMetrics) RecordReload(ctx context.Context, status string) {
	k.reloadCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// NoOpKeyRingMetrics is used when METRICS_ENABLED is false.
type NoOpKeyRingMetrics struct{}

func (NoOpKeyRingMetrics) RecordReload(ctx context.Context, status string) {}
