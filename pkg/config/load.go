package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first environment file found among envFilePath (each one
// searched upward from the working directory), falling back to ./.env, and
// then fills App from the environment. Variables already set in the
// environment win over file values.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Info("No valid environment files found, using default .env")
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default()
	if cfg.SharedJwtSecret() {
		logger.Warn("Access and refresh tokens share the same secret")
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db", maskValue(cfg.DB.Url),
		"redis", maskValue(cfg.Redis.URL),
		"auth_jwt_access_secret", maskValue(cfg.Auth.Jwt.AccessSecret),
		"auth_jwt_access_expiry", cfg.Auth.Jwt.AccessExpiry,
		"auth_jwt_refresh_expiry", cfg.Auth.Jwt.RefreshExpiry,
		"default_currency", cfg.DefaultCurrency,
		"metrics_enabled", cfg.Metrics.Enabled,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
