// SPDX-License-Identifier: MIT
package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"theme": "rose", "radius": 0.75})
	log.Info("exported")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "exported", entry["message"])
	require.Equal(t, "rose", entry["theme"])
	require.Equal(t, 0.75, entry["radius"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "INFO", Writer: buf})
	require.NoError(t, err)

	log.Debug("hidden")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"target": "s3"}).Error(errors.New("boom"), "publish failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "publish failed", entry["message"])
	require.Equal(t, "s3", entry["target"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var l *Logger
	l.Info("ignored")
	l.Error(errors.New("x"), "ignored")
	require.Nil(t, l.WithFields(map[string]any{"a": 1}))
	require.NotNil(t, l.Zerolog())

	Nop().Warn("ignored")
}
