package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/repool/pkg/logger"
)

// This test must run before anything else in the package touches the global
// logger: the failed Init consumes the one-time initialization, and Get must
// still hand back a usable logger afterwards.
func TestGetAfterFailedInit(t *testing.T) {
	err := logger.Init(logger.Config{Level: "not-a-level", Encoding: "json"})
	require.Error(t, err)

	log := logger.Get()
	require.NotNil(t, log)
	log.Info("usable after failed init")
}

func TestWithContextWithoutKeys(t *testing.T) {
	assert.Same(t, logger.Get(), logger.WithContext(context.Background()),
		"a context without logging keys yields the base logger")
}

func TestWithContextAttachesFields(t *testing.T) {
	ctx := context.WithValue(context.Background(), logger.PoolKey, "widgets")
	ctx = context.WithValue(ctx, logger.TypeKey, "*widget.Widget")
	ctx = context.WithValue(ctx, logger.ScenarioKey, "bench")

	log := logger.WithContext(ctx)
	require.NotNil(t, log)
	assert.NotSame(t, logger.Get(), log, "key'd context yields a child logger")
	log.Info("fields attached")
}

func TestWithContextIgnoresNonStringValues(t *testing.T) {
	ctx := context.WithValue(context.Background(), logger.PoolKey, 42)
	assert.Same(t, logger.Get(), logger.WithContext(ctx))
}
