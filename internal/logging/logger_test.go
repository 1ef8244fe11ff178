package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"component": "gallery", "count": 3})
	log.Info("header mounted")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "header mounted", entry["message"])
	require.Equal(t, "gallery", entry["component"])
	require.Equal(t, float64(3), entry["count"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	called := false
	log.DebugFn("nor this", func(e *zerolog.Event) {
		called = true
		e.Int("index", 1)
	})
	require.Equal(t, "", strings.TrimSpace(buf.String()))
	require.False(t, called, "fields are not built below debug")
}

func TestLoggerDebugFnWritesFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.With("header", "h1").DebugFn("gallery settle", func(e *zerolog.Event) {
		e.Int("target", 2)
	})

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "gallery settle", entry["message"])
	require.Equal(t, "h1", entry["header"])
	require.Equal(t, float64(2), entry["target"])
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.Error(errors.New("boom"), "failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "failed", entry["message"])
	require.Equal(t, "boom", entry["error"])
}

func TestNilAndNopLoggersAreSilent(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info("x")
		nilLogger.DebugFn("x", nil)
		nilLogger.Error(errors.New("x"), "x")
		require.Nil(t, nilLogger.WithFields(map[string]any{"a": 1}))
	})
	require.NotPanics(t, func() { Nop().Warn("x") })
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}
