package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rishi.log")

	log, err := New("prod", path)
	require.NoError(t, err)

	log.Info("plan generated", "modules", 3)
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "plan generated")
	assert.Contains(t, string(data), `"modules":3`)
}

func TestWith_AddsFields(t *testing.T) {
	log, logs := NewObserved()

	log.With("session", "abc").Warn("turn failed", "err", "boom")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "turn failed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "abc", fields["session"])
	assert.Equal(t, "boom", fields["err"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	log.Debug("ignored")
	log.Error("ignored", "k", "v")
	log.Sync()
}
