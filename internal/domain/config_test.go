package domain

import (
	"math"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, BackendCookie, cfg.Store.Backend)
	assert.Equal(t, "todos", cfg.Store.Key)
	assert.Equal(t, SlotOptions{Path: "/", MaxAge: 365 * 24 * time.Hour}, cfg.SlotOptions())
	assert.Equal(t, PriorityMedium, cfg.DefaultPriority())
	assert.Equal(t, FilterAll, cfg.DefaultFilter())
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Backend = "redis"
	cfg.Defaults.Priority = "urgent"
	cfg.Defaults.Filter = "overdue"
	cfg.Log.Level = "trace"
	cfg.Store.Key = ""

	cfg.Validate()

	assert.Equal(t, BackendCookie, cfg.Store.Backend)
	assert.Equal(t, "medium", cfg.Defaults.Priority)
	assert.Equal(t, "all", cfg.Defaults.Filter)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultSlotKey, cfg.Store.Key)
	assert.Len(t, cfg.Warnings, 4)
}

func TestConfig_Validate_CookieKey(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		key     string
		want    string
		warns   int
	}{
		{name: "default", backend: BackendCookie, key: "todos", want: "todos"},
		{name: "token chars", backend: BackendCookie, key: "my-todos_v2", want: "my-todos_v2"},
		{name: "space", backend: BackendCookie, key: "my todos", want: DefaultSlotKey, warns: 1},
		{name: "separator", backend: BackendCookie, key: "todos;x", want: DefaultSlotKey, warns: 1},
		{name: "non ascii", backend: BackendCookie, key: "tâches", want: DefaultSlotKey, warns: 1},
		{name: "sqlite keeps any key", backend: BackendSQLite, key: "my todos", want: "my todos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Store.Backend = tt.backend
			cfg.Store.Key = tt.key

			cfg.Validate()

			assert.Equal(t, tt.want, cfg.Store.Key)
			assert.Len(t, cfg.Warnings, tt.warns)
		})
	}
}

func TestConfig_Validate_CookiePath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Path = "/a;b"

	cfg.Validate()

	assert.Equal(t, DefaultSlotPath, cfg.Store.Path)
	assert.Len(t, cfg.Warnings, 1)
}

func TestConfig_Validate_ClampsMaxAge(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.MaxAge = math.MaxInt64

	cfg.Validate()

	assert.Equal(t, int(MaxSlotMaxAge), cfg.Store.MaxAge)
	assert.Len(t, cfg.Warnings, 1)
	assert.Positive(t, cfg.SlotOptions().MaxAge, "clamped max age never wraps negative")
}

func TestConfig_Validate_KeepsLargeValidMaxAge(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.MaxAge = 10 * DefaultMaxAge

	cfg.Validate()

	assert.Equal(t, 10*DefaultMaxAge, cfg.Store.MaxAge)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, 10*365*24*time.Hour, cfg.SlotOptions().MaxAge)
}

func TestRenderConfigTemplate_RoundTrips(t *testing.T) {
	content, err := RenderConfigTemplate(NewDefaultConfig())
	require.NoError(t, err)

	var parsed Config
	require.NoError(t, toml.Unmarshal([]byte(content), &parsed))

	want := NewDefaultConfig()
	assert.Equal(t, want.Store, parsed.Store)
	assert.Equal(t, want.Defaults, parsed.Defaults)
	assert.Equal(t, want.Log, parsed.Log)
}
