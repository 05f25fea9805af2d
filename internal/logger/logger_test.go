package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDefaultInitializesOnce(t *testing.T) {
	first := Default()
	assert.NotNil(t, first)

	Init(true)
	assert.Same(t, first, Default(), "Init after the first call is a no-op")
}

func TestChildLoggers(t *testing.T) {
	assert.NotNil(t, Named("shi"))
	assert.NotNil(t, Named("ci").With(zap.String("book", "平水韵")))

	// package-level helpers must not panic before or after Sync
	Debug("debug message", zap.Int("chars", 20))
	Info("info message")
	Warn("warn message")
	Sync()
}
