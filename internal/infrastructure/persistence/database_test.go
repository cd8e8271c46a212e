package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGormLoggerFor_HonorsConfiguredLevel(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	verbose := gormLoggerFor(zapLogger, "info")
	verbose.Info(context.Background(), "connection pool ready")
	require.Len(t, recorded.All(), 1)

	silent := gormLoggerFor(zapLogger, "silent")
	silent.Info(context.Background(), "connection pool ready")
	assert.Len(t, recorded.All(), 1)
}
