package observability

import (
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/config"
	"github.com/abdouni493/auto-rental-application/internal/observability/logger"
	"github.com/abdouni493/auto-rental-application/internal/observability/metrics"
	"github.com/abdouni493/auto-rental-application/internal/observability/tracing"
)

var Module = fx.Module("observability",
	fx.Provide(logger.New),
	fx.Provide(newTracingConfig),
	fx.Invoke(tracing.NewProvider),
	fx.Provide(newMetricsConfig),
	fx.Provide(newMeterProvider),
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Provide(newDocumentMetrics),
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.Telemetry.TracingEnabled,
		ServiceName:      cfg.Telemetry.ServiceName,
		ServiceVersion:   cfg.Telemetry.ServiceVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.Telemetry.ExporterEndpoint,
		ExporterProtocol: cfg.Telemetry.ExporterProtocol,
		SamplingRatio:    cfg.Telemetry.SamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Environment,
	}
}

// newMeterProvider bridges otel instruments onto the default prometheus
// registry so /metrics serves both instrument families.
func newMeterProvider() (metric.MeterProvider, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}

func newDocumentMetrics(cfg metrics.Config) *metrics.DocumentMetrics {
	return metrics.DocumentWithConfig(cfg)
}
