package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue(""))
	assert.Equal(t, "****", maskValue("secret"))
	assert.Equal(t, "po****able", maskValue("postgres://disable"))
}

func setJwtEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_JWT_ACCESS_SECRET", "access-secret-for-tests")
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "refresh-secret-for-tests")
}

func TestLoad_Defaults(t *testing.T) {
	setJwtEnv(t)

	cfg, err := Load("bankapi-does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, 15*time.Minute, cfg.Auth.Jwt.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.Jwt.RefreshExpiry)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Redis.URL)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := "AUTH_JWT_ACCESS_SECRET=file-access\n" +
		"AUTH_JWT_REFRESH_SECRET=file-refresh\n" +
		"AUTH_JWT_ACCESS_EXPIRY=30m\n" +
		"DEFAULT_CURRENCY=EUR\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.bankapi-test"), []byte(content), 0o600))
	t.Chdir(dir)
	t.Cleanup(func() {
		for _, key := range []string{
			"AUTH_JWT_ACCESS_SECRET",
			"AUTH_JWT_REFRESH_SECRET",
			"AUTH_JWT_ACCESS_EXPIRY",
			"DEFAULT_CURRENCY",
		} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := Load(".env.bankapi-test")
	require.NoError(t, err)
	assert.Equal(t, "file-access", cfg.Auth.Jwt.AccessSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.Jwt.AccessExpiry)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "refresh-secret-for-tests")

	_, err := Load("bankapi-does-not-exist.env")
	assert.Error(t, err)
}

func TestLoad_ExpiryOutOfRange(t *testing.T) {
	setJwtEnv(t)
	t.Setenv("AUTH_JWT_ACCESS_EXPIRY", "24h")

	_, err := Load("bankapi-does-not-exist.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_ACCESS_EXPIRY")
}

func TestValidate(t *testing.T) {
	valid := func() *App {
		return &App{
			DefaultCurrency: "USD",
			Auth: &Auth{Jwt: &Jwt{
				AccessSecret:  "a",
				RefreshSecret: "b",
				AccessExpiry:  time.Hour,
				RefreshExpiry: 15 * 24 * time.Hour,
			}},
			RateLimit: &RateLimit{MaxRequests: 1},
		}
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Auth.Jwt.RefreshExpiry = 16 * 24 * time.Hour
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.DefaultCurrency = "usd"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Auth = nil
	assert.Error(t, cfg.Validate())

	cfg = valid()
	assert.False(t, cfg.SharedJwtSecret())
	cfg.Auth.Jwt.RefreshSecret = "a"
	assert.True(t, cfg.SharedJwtSecret())
}

func TestFindEnvFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.find"), []byte("X=1\n"), 0o600))
	t.Chdir(nested)

	found, err := FindEnvFile(".env.find")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".env.find"), found)

	_, err = FindEnvFile(".env.nowhere-to-be-found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
