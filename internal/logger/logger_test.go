package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuescore/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{level: "debug", debugOn: true, warnOn: true},
		{level: "INFO", debugOn: false, warnOn: true},
		{level: "error", debugOn: false, warnOn: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := New(config.LoggingConfig{Level: tt.level, Format: "json"})
			require.NoError(t, err)
			assert.Equal(t, tt.debugOn, log.Core().Enabled(-1))
			assert.Equal(t, tt.warnOn, log.Core().Enabled(1))
		})
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "bogus", Format: "json"})
	require.Error(t, err)
	assert.Nil(t, log)
	assert.Contains(t, err.Error(), `invalid LOG_LEVEL "bogus"`)
}

func TestNew_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(config.LoggingConfig{
		Level:      "info",
		Format:     "console",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	require.NoError(t, err)

	log.Info("model loaded")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"model loaded"`)
}
