package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SAVE_FOLDER", "./results/")
	t.Setenv("EXECUTOR_WORKERS", "0")
	t.Setenv("WORK_DELAY", "250ms")
	t.Setenv("FAL_KEY", " key ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "results", cfg.Storage.SaveFolder)
	assert.Equal(t, 1, cfg.Executor.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.Executor.WorkDelay)
	assert.True(t, cfg.Transcriber.IsConfigured())
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("EXECUTOR_QUEUE_SIZE", "lots")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
