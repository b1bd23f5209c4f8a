package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir for pre-1.24 toolchains: change into dir and restore
// the original working directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func isolate(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:17891", cfg.ListenAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 500*time.Millisecond, cfg.StartupPrimeDelay)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TAPNOTE_LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("TAPNOTE_LOG_LEVEL", "debug")
	t.Setenv("TAPNOTE_STARTUP_PRIME_DELAY", "50ms")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 50*time.Millisecond, cfg.StartupPrimeDelay)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	yaml := "listen_addr: 127.0.0.1:4242\nlog_level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tapnote.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:4242", cfg.ListenAddr)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 500*time.Millisecond, cfg.StartupPrimeDelay, "unset keys keep defaults")
}
