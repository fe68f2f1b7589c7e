package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, opts ...Option) *Configuration {
	t.Helper()
	cfg, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })
	return cfg
}

func TestConfiguration_SetAndGet(t *testing.T) {
	cfg := newTestConfig(t)

	cfg.Set("app.name", "widgets")
	assert.Equal(t, "widgets", cfg.GetString("app.name"))
	assert.True(t, cfg.Has("app.name"))
	assert.False(t, cfg.Has("app.missing"))
}

func TestConfiguration_NestedGet(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Set("server", map[string]any{"port": 8080, "host": "localhost"})

	assert.Equal(t, 8080, cfg.GetInt("server.port"))
	assert.Equal(t, "localhost", cfg.GetString("server.host"))
}

func TestConfiguration_TypeCoercion(t *testing.T) {
	cfg := newTestConfig(t)

	cfg.Set("count", "42")
	assert.Equal(t, 42, cfg.GetInt("count"))

	cfg.Set("enabled", "true")
	assert.True(t, cfg.GetBool("enabled"))

	cfg.Set("timeout", "30s")
	assert.Equal(t, 30*time.Second, cfg.GetDuration("timeout"))
}

func TestConfiguration_EnvironmentOverlay(t *testing.T) {
	t.Setenv("KEDGE_TEST_LISTEN_ADDR", ":9090")
	cfg := newTestConfig(t, WithEnvPrefix("KEDGE_TEST_"))

	assert.Equal(t, ":9090", cfg.GetString("listen.addr"))
}

func TestConfiguration_ChangeListenerFiresOnSet(t *testing.T) {
	cfg := newTestConfig(t)

	notified := make(chan string, 1)
	cfg.AddChangeListener(func(key string) { notified <- key })

	cfg.Set("app.name", "new-name")
	select {
	case key := <-notified:
		assert.Equal(t, "app.name", key)
	case <-time.After(time.Second):
		t.Fatal("change listener was never notified")
	}
}

func TestConfiguration_UnmarshalIntoStruct(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Set("server", map[string]any{"port": 9000, "host": "0.0.0.0"})

	type serverConfig struct {
		Port int    `config:"port"`
		Host string `config:"host"`
	}
	var sc serverConfig
	require.NoError(t, cfg.Unmarshal("server", &sc))
	assert.Equal(t, 9000, sc.Port)
	assert.Equal(t, "0.0.0.0", sc.Host)
}

func TestConfiguration_UnmarshalMissingKey(t *testing.T) {
	cfg := newTestConfig(t)
	var v struct{}
	err := cfg.Unmarshal("nope", &v)
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
		require.NoError(t, err)
		defer f.Close()
		assert.True(t, fileExists(f.Name()))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.False(t, fileExists("/nonexistent/path/config.yaml"))
	})
}
