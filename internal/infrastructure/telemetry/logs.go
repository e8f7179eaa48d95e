package telemetry

import (
	"context"
	"fmt"

	"github.com/grocery/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider exports zap records as OTLP logs
type LoggerProvider struct {
	provider *sdklog.LoggerProvider
	name     string
	logger   *zap.Logger
}

// NewLoggerProvider creates an OTLP gRPC log exporter when both telemetry and log export are on
func NewLoggerProvider(ctx context.Context, cfg config.TelemetryConfig, logCfg config.LogConfig, version string, logger *zap.Logger) (*LoggerProvider, error) {
	if !cfg.Enabled || !logCfg.OTLPExport {
		return &LoggerProvider{name: cfg.ServiceName, logger: logger}, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP log exporter: %w", err)
	}
	return newLoggerProvider(sdklog.NewBatchProcessor(exporter), cfg.ServiceName, version, logger)
}

func newLoggerProvider(processor sdklog.Processor, serviceName, version string, logger *zap.Logger) (*LoggerProvider, error) {
	res, err := newResource(serviceName, version)
	if err != nil {
		return nil, err
	}
	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(processor),
	)
	global.SetLoggerProvider(provider)
	return &LoggerProvider{provider: provider, name: serviceName, logger: logger}, nil
}

// ZapCore returns a core that forwards records to the provider, or nil when export is off
func (lp *LoggerProvider) ZapCore() zapcore.Core {
	if lp.provider == nil {
		return nil
	}
	return otelzap.NewCore(lp.name, otelzap.WithLoggerProvider(lp.provider))
}

// IsEnabled reports whether logs are exported
func (lp *LoggerProvider) IsEnabled() bool {
	return lp.provider != nil
}

// Shutdown flushes pending records
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}
	if err := lp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown logger provider: %w", err)
	}
	return nil
}
