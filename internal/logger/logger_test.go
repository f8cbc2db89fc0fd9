package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, closeFn, err := New(Config{Level: "debug", FilePath: path})
	require.NoError(t, err)

	log.WithField("resource", "category").Info("hello")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "category", entry["resource"])
	assert.Contains(t, entry, "timestamp")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewDefaultsToInfo(t *testing.T) {
	log, closeFn, err := New(Config{Level: "loud"})
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
