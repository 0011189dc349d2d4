package hostconfig

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper ensures each test starts from a clean global viper instance,
// since Load relies on viper's package-level singleton.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// chdir switches to dir for the duration of the test and restores the
// prior working directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_DefaultsApplyWithNoConfigFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, uint64(5000), cfg.Run.YieldEveryN)
	assert.Equal(t, uint64(math.MaxUint64), cfg.Run.MaxIter)
}

func TestLoad_ReadsExplicitConfigFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "myconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_ServerPortEnvOverride(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DES_SERVER_PORT", "9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}
