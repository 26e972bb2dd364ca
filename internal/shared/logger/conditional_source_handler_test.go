package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/shared/config"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name             string
		level            slog.Level
		showSourceLevels []slog.Level
		shouldHaveSource bool
	}{
		{"info hidden", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn shown", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error shown", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"info shown when configured", slog.LevelInfo, []slog.Level{slog.LevelInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, tt.showSourceLevels...))

			log.Log(context.Background(), tt.level, "list page loaded")

			assert.Equal(t, tt.shouldHaveSource, strings.Contains(buf.String(), "source="), buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).
		With("ticket_id", 7).
		WithGroup("request")

	log.Info("comment appended", "path", "/chamados/7/comentarios")

	out := buf.String()
	assert.NotContains(t, out, "source=")
	assert.Contains(t, out, "ticket_id=7")
	assert.Contains(t, out, "request.path=/chamados/7/comentarios")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestInit_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}))
	t.Cleanup(func() { Logger = nil })

	NewLogger().Named("listing").Infow("page loaded", "page", 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &record))
	assert.Equal(t, "page loaded", record["msg"])
	assert.Equal(t, "listing", record["logger"])
	assert.EqualValues(t, 2, record["page"])
}

func TestSetLevel_RestoresPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}))
	t.Cleanup(func() { Logger = nil })

	prev := Level()
	SetLevel(slog.LevelError)
	NewLogger().Infow("muted")
	SetLevel(prev)
	NewLogger().Infow("shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, prev)
	assert.NotContains(t, string(data), "muted")
	assert.Contains(t, string(data), "shown")
}
