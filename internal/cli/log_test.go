package cli

import (
	"context"
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/palletopt/palletizer/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, charmlog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, charmlog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, charmlog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, charmlog.InfoLevel, parseLevel("anything-else"))
}

func TestLoggerRoundTripsThroughContext(t *testing.T) {
	logger := newLogger(io.Discard, charmlog.DebugLevel)
	ctx := withLogger(context.Background(), logger)
	assert.Same(t, logger, loggerFromContext(ctx))
}

func TestLoggerFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, loggerFromContext(context.Background()))
}

func TestConfigRoundTripsThroughContext(t *testing.T) {
	cfg := config.Default()
	cfg.BaseSeed = 123
	ctx := withConfig(context.Background(), cfg)
	assert.Equal(t, int64(123), configFromContext(ctx).BaseSeed)
}

func TestConfigFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, config.Default(), configFromContext(context.Background()))
}
