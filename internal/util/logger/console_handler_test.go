package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ConsoleHandler_WithAttrsAndGroup_PrintsQualifiedKeys(t *testing.T) {
	buffer := &bytes.Buffer{}
	log := slog.New(NewConsoleHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.WithGroup("tokens").With("userId", "42").Info("refresh token rotated", "reason", "refresh")

	output := buffer.String()
	assert.Contains(t, output, "refresh token rotated")
	assert.Contains(t, output, "tokens.userId")
	assert.Contains(t, output, "tokens.reason")
}

func Test_ConsoleHandler_BelowLevel_SkipsRecord(t *testing.T) {
	buffer := &bytes.Buffer{}
	log := slog.New(NewConsoleHandler(buffer, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Info("hidden")
	log.Warn("visible")

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "visible")
}
