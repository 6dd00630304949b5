package logring_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/soloqbet/internal/adapters/logring"
)

func newLogger(ring *logring.Ring, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	next := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return slog.New(logring.NewHandler(next, ring)), &buf
}

func TestHandler_CapturesAndForwards(t *testing.T) {
	ring := logring.New(5)
	logger, buf := newLogger(ring, slog.LevelInfo)

	logger.With("component", "watcher").WithGroup("market").Info("market opened", "match_id", "42")
	logger.Debug("hidden")

	entries := ring.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "market opened", entries[0].Message)
	assert.Equal(t, "watcher", entries[0].Attrs["component"])
	assert.Equal(t, "42", entries[0].Attrs["market.match_id"])
	assert.Contains(t, buf.String(), "market opened")
}

func TestRing_KeepsMostRecent(t *testing.T) {
	ring := logring.New(3)
	logger, _ := newLogger(ring, slog.LevelInfo)

	for i := range 5 {
		logger.Info(fmt.Sprintf("msg %d", i))
	}

	entries := ring.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "msg 2", entries[0].Message)
	assert.Equal(t, "msg 4", entries[2].Message)

	ring.Clear()
	assert.Empty(t, ring.Entries())
}

func TestRing_ServeHTTP(t *testing.T) {
	ring := logring.New(0)
	logger, _ := newLogger(ring, slog.LevelInfo)
	logger.Warn("provider failed", "err", "boom")

	rec := httptest.NewRecorder()
	ring.ServeHTTP(rec, httptest.NewRequest("GET", "/logs", nil))

	var got []logring.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "WARN", got[0].Level)
	assert.Equal(t, "boom", got[0].Attrs["err"])
}
