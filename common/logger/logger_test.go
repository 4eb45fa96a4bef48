package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mohamedhosni23/apple-store-bi-project/common/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_SplitsByLevelAndTees(t *testing.T) {
	var out, errOut, extra bytes.Buffer
	log := logger.New("production", zapcore.AddSync(&out), zapcore.AddSync(&errOut), &extra)

	log.Info("seed started")
	log.Error("seed failed")

	assert.Contains(t, out.String(), "seed started")
	assert.NotContains(t, out.String(), "seed failed")
	assert.Contains(t, errOut.String(), "seed failed")
	assert.NotContains(t, errOut.String(), "seed started")
	assert.Contains(t, extra.String(), "seed started")
	assert.Contains(t, extra.String(), "seed failed")
}

func TestHelpers_AttachRunID(t *testing.T) {
	var out, errOut bytes.Buffer
	prev := logger.Log
	logger.Log = logger.New("production", zapcore.AddSync(&out), zapcore.AddSync(&errOut), nil)
	t.Cleanup(func() { logger.Log = prev })

	ctx := logger.WithRunID(context.Background(), "run-42")
	logger.Info(ctx, "orders generated", zap.Int("orders", 500))
	logger.Error(ctx, "insert failed", errors.New("timeout"))

	assert.Contains(t, out.String(), `"run_id":"run-42"`)
	assert.Contains(t, out.String(), `"orders":500`)
	assert.Contains(t, errOut.String(), `"run_id":"run-42"`)
	assert.Contains(t, errOut.String(), "timeout")
}
