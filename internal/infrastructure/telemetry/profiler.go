package telemetry

import (
	"fmt"
	"sync"

	"github.com/grafana/pyroscope-go"
	"github.com/grocery/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Profiler runs continuous profiling against a Pyroscope server
type Profiler struct {
	cfg     config.TelemetryConfig
	env     string
	version string
	logger  *zap.Logger

	mu       sync.Mutex
	profiler *pyroscope.Profiler
}

// NewProfiler creates a stopped profiler
func NewProfiler(cfg config.TelemetryConfig, env, version string, logger *zap.Logger) *Profiler {
	return &Profiler{cfg: cfg, env: env, version: version, logger: logger}
}

// Start begins profiling. It is a no-op when profiling is disabled or already running.
func (p *Profiler) Start() error {
	if !p.cfg.ProfilingEnabled {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profiler != nil {
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: p.cfg.ServiceName,
		ServerAddress:   p.cfg.ProfilingServerURL,
		Logger:          pyroscopeLogger{p.logger.Sugar()},
		Tags: map[string]string{
			"env":     p.env,
			"version": p.version,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope profiler: %w", err)
	}
	p.profiler = profiler
	p.logger.Info("profiler started", zap.String("server", p.cfg.ProfilingServerURL))
	return nil
}

// Stop flushes and stops profiling
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profiler == nil {
		return nil
	}
	err := p.profiler.Stop()
	p.profiler = nil
	if err != nil {
		return fmt.Errorf("stop pyroscope profiler: %w", err)
	}
	return nil
}

type pyroscopeLogger struct {
	*zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.SugaredLogger.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.SugaredLogger.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.SugaredLogger.Errorf(format, args...) }
