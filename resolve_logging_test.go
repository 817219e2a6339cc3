package behavior

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	tags := DefineSet(WithSetName[string]("tags"))
	theme := Define(First[string], WithName[string, string]("theme"), WithDerive[string, string](func(v string) ([]Use, error) {
		return []Use{tags.Use(v)}, nil
	}))

	_, err := NewResolver(WithResolveLogger(SlogLogger(logger))).Resolve([]Use{tags.Use("a"), theme.Use("b")})
	require.NoError(t, err)

	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		events = append(events, record)
	}

	levels := map[string]string{}
	for _, record := range events {
		assert.Equal(t, "behavior resolve", record["msg"])
		levels[record["event"].(string)] = record["level"].(string)
	}
	assert.Equal(t, "DEBUG-4", levels["evaluated"])
	assert.Equal(t, "DEBUG", levels["restart"])
	assert.Equal(t, "INFO", levels["resolved"])
}

func TestSlogLoggerQuietAboveTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	set := DefineSet[int]()
	_, err := NewResolver(WithResolveLogger(SlogLogger(logger))).Resolve([]Use{set.Use(1)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "event=resolved")
	assert.NotContains(t, out, "event=evaluated")
}

func TestSlogLoggerNilIsNoop(t *testing.T) {
	logger := SlogLogger(nil)
	logger.LogResolve(ResolveLogEvent{Kind: EventFailed})
	_, ok := logger.(noopResolveLogger)
	assert.True(t, ok)
}
