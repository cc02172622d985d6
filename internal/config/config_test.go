package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://drr.example.com/api"
	cfg.PollInterval = Duration{5 * time.Second}
	cfg.UISettings.PageSize = 50

	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://drr.example.com/api", loaded.APIBaseURL)
	assert.Equal(t, 5*time.Second, loaded.PollInterval.Duration)
	assert.Equal(t, 50, loaded.UISettings.PageSize)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval.Duration)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url = \"http://api.test\"\n\n[ui]\npage_size = 10\n"), 0644))

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://api.test", cfg.APIBaseURL)
	assert.Equal(t, 10, cfg.UISettings.PageSize)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout.Duration)
	assert.Equal(t, "renew_date", cfg.UISettings.DefaultSort)
}

func TestInvalidDurationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval = \"soon\"\n"), 0644))

	_, err := NewConfigService(path).LoadFromPath(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DRR_API_URL", "http://env.test/api")
	t.Setenv("DRR_POLL_INTERVAL", "3s")
	t.Setenv("DRR_PAGE_SIZE", "0")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	assert.Equal(t, "http://env.test/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval.Duration)
	assert.Equal(t, 0, cfg.UISettings.PageSize)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DRR_TEST_FROM_DOTENV=yes\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DRR_TEST_FROM_DOTENV") })

	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"), path))
	assert.Equal(t, "yes", os.Getenv("DRR_TEST_FROM_DOTENV"))
}
