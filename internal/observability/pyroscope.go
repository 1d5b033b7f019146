package observability

import (
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/stathub/internal/config"
	"github.com/riskibarqy/stathub/internal/platform/logging"
)

// profileTypes adds goroutine, mutex and block profiles to cpu and heap.
var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

// InitPyroscope starts continuous profiling. The returned stop func is
// never nil.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	noop := func() error { return nil }
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return noop, nil
	}

	store := "postgres"
	if cfg.UsesMemoryStore() {
		store = "memory"
	}
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
			"store":   store,
		},
		ProfileTypes: profileTypes,
	})
	if err != nil {
		return noop, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"store", store,
	)
	return profiler.Stop, nil
}
