package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/momentics/hioload-ring/api"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		logger, err := NewLogger(LogConfig{Level: "warn", Format: format})
		require.NoError(t, err, format)
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	}
}

func TestNewLogger_Rejects(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "verbose"})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	_, err = NewLogger(LogConfig{Level: "info", Format: "xml"})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}
