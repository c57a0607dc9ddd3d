package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "!!ut", cfg.Prefix)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("prefix: \"!!test\"\nverbose: true\nlogLevel: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Prefix:   "!!test",
		Verbose:  true,
		LogLevel: logrus.DebugLevel,
		Metrics:  true,
	}, cfg)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("prefix: \"\""))
	assert.Error(t, err)

	_, err = Parse([]byte("logLevel: loud"))
	assert.Error(t, err)

	_, err = Parse([]byte("verbose: [1"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utester.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, DefaultPrefix, cfg.Prefix)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
