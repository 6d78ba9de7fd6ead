package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/gastropro/backoffice/pkg/logger"
)

func TestConfigureLogging(t *testing.T) {
	t.Cleanup(func() { logger.Replace(nil) })

	require.NoError(t, ConfigureLogging(ServerConfig{LogLevel: "debug", LogEncoding: "console"}))
	require.True(t, logger.Logger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, ConfigureLogging(ServerConfig{}))
	require.False(t, logger.Logger().Core().Enabled(zapcore.DebugLevel))
	require.True(t, logger.Logger().Core().Enabled(zapcore.InfoLevel))
}
