package logger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/dailydle/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 30, 1, 59, 0, 0, time.UTC)
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "shown 1")
}

func TestLogger_FieldsRenderSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false), logger.WithClock(fixedClock)).
		WithPrefix("progress").
		WithFields(map[string]any{"player": "p1", "day": "2025-3-30"})

	log.Info("saved")

	line := buf.String()
	assert.Contains(t, line, "2025-03-30 01:59:00.000")
	assert.Contains(t, line, "[progress]")
	assert.Contains(t, line, "saved day=2025-3-30 player=p1")
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = parent.WithField("child", true)

	parent.Info("parent line")
	assert.NotContains(t, buf.String(), "child=")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{"Error", logger.ERROR},
		{"bogus", logger.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}

	_, ok := logger.LookupLevel("bogus")
	assert.False(t, ok)
}

func TestContextCarrier(t *testing.T) {
	log := logger.Discard()
	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
