// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: temp directory for user config files, environment variables
// PURPOSE: Test layered configuration loading and validation

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/clseek/pkg/config"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config at an empty temp dir and clears presets
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigFile, filepath.Join(dir, "absent.toml"))
	t.Setenv(config.EnvPreset, "")
	require.NoError(t, os.Unsetenv(config.EnvPreset))
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "", cfg.Seek.Preset)
	assert.False(t, cfg.Seek.IgnoreCase)
	assert.True(t, cfg.Seek.CountExitStatus)
	assert.Equal(t, "sh", cfg.Seek.Shell)
	assert.Equal(t, 32768, cfg.Sync.BufferSize)
	assert.True(t, cfg.Sync.Lock)
	assert.Zero(t, cfg.Sync.LockWait)
	assert.Equal(t, []string{".exe", ".com", ".bat", ".sh", ".zsh", ".pl"}, cfg.Which.Extensions)
	assert.True(t, cfg.Which.IgnoreExtension)
	assert.Equal(t, "PATH", cfg.Which.PathEnv)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.True(t, cfg.Logging.File)
	assert.Empty(t, cfg.Source)
	assert.Contains(t, config.DefaultsContent(), "[seek]")
}

func TestLoadUserFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
[seek]
ignore_case = true
preset = "-X .git"

[sync]
lock_wait = "2s"

[which]
extensions = [".py"]
`)

	t.Run("explicit_path", func(t *testing.T) {
		cfg, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.True(t, cfg.Seek.IgnoreCase)
		assert.Equal(t, "-X .git", cfg.Seek.Preset)
		assert.Equal(t, 2*time.Second, cfg.Sync.LockWait)
		assert.Equal(t, []string{".py"}, cfg.Which.Extensions)
		assert.Equal(t, "sh", cfg.Seek.Shell, "untouched keys keep their default")
		assert.Equal(t, []string{path}, cfg.Source)
	})

	t.Run("from_env_variable", func(t *testing.T) {
		t.Setenv(config.EnvConfigFile, path)
		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.True(t, cfg.Seek.IgnoreCase)
	})

	t.Run("missing_default_file_is_fine", func(t *testing.T) {
		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.False(t, cfg.Seek.IgnoreCase)
		assert.Empty(t, cfg.Source)
	})

	t.Run("missing_explicit_file_fails", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "nope.toml"), nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("CLSEEK_SEEK_IGNORE_CASE", "true")
	t.Setenv("CLSEEK_SYNC_BUFFER_SIZE", "4096")
	t.Setenv("CLSEEK_WHICH_EXTENSIONS", ".exe,.cmd")
	t.Setenv(config.EnvPreset, "-i -r")

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Seek.IgnoreCase)
	assert.Equal(t, 4096, cfg.Sync.BufferSize)
	assert.Equal(t, []string{".exe", ".cmd"}, cfg.Which.Extensions)
	assert.Equal(t, "-i -r", cfg.Seek.Preset)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "[seek]\nshell = \"bash\"\n")
	t.Setenv("CLSEEK_SEEK_SHELL", "zsh")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "zsh", cfg.Seek.Shell, "environment beats the file")

	cfg, err = config.Load(path, map[string]interface{}{"seek.shell": "fish"})
	require.NoError(t, err)
	assert.Equal(t, "fish", cfg.Seek.Shell, "overrides beat the environment")
}

func TestLoadValidation(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"bad_color", "[output]\ncolor = \"sometimes\"\n", errors.ErrConfigParse},
		{"bad_buffer", "[sync]\nbuffer_size = 0\n", errors.ErrConfigParse},
		{"empty_shell", "[seek]\nshell = \"\"\n", errors.ErrConfigParse},
		{"broken_toml", "[seek\n", errors.ErrConfigParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, dir, tt.content), nil)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestUserConfigPath(t *testing.T) {
	isolate(t)

	t.Run("xdg_config_home", func(t *testing.T) {
		xdgHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdgHome)
		require.NoError(t, os.Unsetenv(config.EnvConfigFile))

		require.NoError(t, os.MkdirAll(filepath.Join(xdgHome, "clseek"), 0755))
		path := writeConfig(t, filepath.Join(xdgHome, "clseek"), "[seek]\nrecursive = true\n")
		assert.Equal(t, path, config.UserConfigPath())

		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.True(t, cfg.Seek.Recursive)
		assert.Equal(t, []string{path}, cfg.Source)
	})

	t.Run("home_relative_env", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv(config.EnvConfigFile, "~/clseek.toml")
		assert.Equal(t, filepath.Join(home, "clseek.toml"), config.UserConfigPath())
	})
}
