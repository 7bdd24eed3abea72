package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(configContent), 0o644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir("", globalDir)
		info := manager.GlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		globalDir := t.TempDir()

		manager := NewManagerWithGlobalDir("", globalDir)
		info := manager.GlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})

	t.Run("returns empty info when global dir is empty", func(t *testing.T) {
		manager := NewManagerWithGlobalDir("", "")
		info := manager.GlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_OverrideConfigInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store]\n"), 0o644))

	info := NewManagerWithGlobalDir(path, "").OverrideConfigInfo()
	assert.Equal(t, path, info.Path)
	assert.True(t, info.Exists)

	assert.Empty(t, NewManagerWithGlobalDir("", "").OverrideConfigInfo().Path)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "tasklist")
		manager := NewManagerWithGlobalDir("", globalDir)

		path, err := manager.InitGlobalConfig(false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `backend = "cookie"`)
		assert.Contains(t, string(content), "max_age = 31536000")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		globalDir := t.TempDir()
		path := filepath.Join(globalDir, domain.ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("custom"), 0o644))

		_, err := NewManagerWithGlobalDir("", globalDir).InitGlobalConfig(false)
		assert.ErrorIs(t, err, domain.ErrConfigExists)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "custom", string(content))
	})

	t.Run("overwrites with force", func(t *testing.T) {
		globalDir := t.TempDir()
		path := filepath.Join(globalDir, domain.ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("custom"), 0o644))

		_, err := NewManagerWithGlobalDir("", globalDir).InitGlobalConfig(true)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "[store]")
	})

	t.Run("fails without global dir", func(t *testing.T) {
		_, err := NewManagerWithGlobalDir("", "").InitGlobalConfig(false)
		assert.Error(t, err)
	})
}
