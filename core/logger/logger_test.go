package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/Rocket/core/logger"
)

type ctxKey struct{}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("app", "rocket")),
	)
	log.Info("dispatched", logger.Component("engine"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "dispatched", record["msg"])
	assert.Equal(t, "engine", record["component"])
	assert.Equal(t, "rocket", record["app"])
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	log.Info("hello", logger.Path("/x"))

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "path=/x")
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
	log.Info("skipped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_Environments(t *testing.T) {
	t.Parallel()

	var dev bytes.Buffer
	logger.New(logger.WithDevelopment("api"), logger.WithOutput(&dev)).Debug("dev")
	assert.Contains(t, dev.String(), "env=development")
	assert.Contains(t, dev.String(), "service=api")

	var prod bytes.Buffer
	l := logger.New(logger.WithProduction("api"), logger.WithOutput(&prod))
	l.Debug("hidden")
	assert.Empty(t, prod.String())
	l.Info("shown")
	assert.Contains(t, prod.String(), `"env":"production"`)

	var staging bytes.Buffer
	logger.New(logger.WithStaging("api"), logger.WithOutput(&staging)).Info("x")
	assert.Contains(t, staging.String(), `"env":"staging"`)
}

func TestNew_ContextValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With("k", "v").InfoContext(ctx, "with id")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "v", record["k"])

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	require.NotNil(t, log)
	log.Error("dropped")
}
