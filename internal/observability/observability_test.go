package observability

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/stathub/internal/config"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestInitUptrace_NoopCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "disabled", cfg: config.Config{ServiceName: "stathub-api", AppEnv: config.EnvDev}},
		{name: "enabled without dsn", cfg: config.Config{UptraceEnabled: true, ServiceName: "stathub-api", UptraceDSN: "  "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			shutdown, err := InitUptrace(tc.cfg, nil)
			require.NoError(t, err)
			require.NotNil(t, shutdown)
			require.NoError(t, shutdown(context.Background()))
		})
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	t.Parallel()

	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, stop())
}

func TestStartPprofServer_Disabled(t *testing.T) {
	t.Parallel()

	srv, err := StartPprofServer(config.Config{}, logging.NewNop())
	require.NoError(t, err)
	require.Nil(t, srv)
	require.NoError(t, StopPprofServer(srv, nil, 0))
}

func TestStartPprofServer_StartsAndStops(t *testing.T) {
	t.Parallel()

	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}
	srv, err := StartPprofServer(cfg, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, srv)
	require.NoError(t, StopPprofServer(srv, logging.NewNop(), time.Second))
}
