package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	log, err := New(Config{Level: "debug", Encoding: "json", FileName: path})
	require.NoError(t, err)

	log.Info("portfolio updated", StringField("symbol", "AAPL"), IntField("count", 2))
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"portfolio updated"`)
	assert.Contains(t, string(content), `"symbol":"AAPL"`)
}

func TestLevelFiltersDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	log, err := New(Config{Level: "warn", FileName: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Warn("shown")
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "shown")
}
