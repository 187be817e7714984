package utils

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/selectdb/feed_observer/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyHook(t *testing.T) {
	hook := NewNotifyHook()
	assert.Equal(t, log.AllLevels, hook.Levels())

	entry := log.NewEntry(log.New())
	require.NoError(t, hook.Fire(entry))
	_, ok := entry.Data[SubjectField]
	assert.False(t, ok)

	WithSubject("AAPL", func() {
		entry := log.NewEntry(log.New())
		require.NoError(t, hook.Fire(entry))
		assert.Equal(t, "AAPL", entry.Data[SubjectField])

		WithSubject("station", func() {
			entry := log.NewEntry(log.New())
			require.NoError(t, hook.Fire(entry))
			assert.Equal(t, "station", entry.Data[SubjectField])
		})

		entry = log.NewEntry(log.New())
		require.NoError(t, hook.Fire(entry))
		assert.Equal(t, "AAPL", entry.Data[SubjectField])
	})

	entry = log.NewEntry(log.New())
	require.NoError(t, hook.Fire(entry))
	_, ok = entry.Data[SubjectField]
	assert.False(t, ok)
}

func TestNotifyHookOnLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.JSONFormatter{})
	logger.AddHook(NewNotifyHook(log.InfoLevel))

	WithSubject("GOOG", func() {
		logger.Info("pass started")
	})

	assert.Contains(t, buf.String(), `"subject":"GOOG"`)
}

func TestInitLog(t *testing.T) {
	defer log.SetOutput(io.Discard)

	err := InitLog(config.LogConfig{Level: "nope"})
	assert.Error(t, err)

	cfg := config.Default().Log
	cfg.Level = "debug"
	cfg.Filename = filepath.Join(t.TempDir(), "observer.log")
	require.NoError(t, InitLog(cfg))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
