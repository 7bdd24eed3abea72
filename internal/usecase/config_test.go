package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/testutil"
)

func TestShowConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{
		GlobalInfo:   domain.ConfigInfo{Path: "/home/u/.config/tasklist/config.toml", Content: "[log]", Exists: true},
		OverrideInfo: domain.ConfigInfo{Path: "/tmp/custom.toml"},
	}
	cfg := domain.NewDefaultConfig()

	out, err := NewShowConfig(manager, cfg).Execute(context.Background(), ShowConfigInput{})

	require.NoError(t, err)
	assert.Same(t, cfg, out.Effective)
	assert.Equal(t, manager.GlobalInfo, out.GlobalConfig)
	assert.Equal(t, manager.OverrideInfo, out.OverrideConfig)
}

func TestInitConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{InitPath: "/home/u/.config/tasklist/config.toml"}

	out, err := NewInitConfig(manager).Execute(context.Background(), InitConfigInput{Force: true})

	require.NoError(t, err)
	assert.Equal(t, manager.InitPath, out.Path)
	assert.True(t, manager.InitCalled)
	assert.True(t, manager.InitForce)
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	manager := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}

	_, err := NewInitConfig(manager).Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
