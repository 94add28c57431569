package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"COURIERLOG_APP_NAME":                os.Getenv("COURIERLOG_APP_NAME"),
		"COURIERLOG_APP_ENV":                 os.Getenv("COURIERLOG_APP_ENV"),
		"COURIERLOG_APP_PORT":                os.Getenv("COURIERLOG_APP_PORT"),
		"COURIERLOG_DATABASE_HOST":           os.Getenv("COURIERLOG_DATABASE_HOST"),
		"COURIERLOG_DATABASE_PORT":           os.Getenv("COURIERLOG_DATABASE_PORT"),
		"COURIERLOG_DATABASE_USER":           os.Getenv("COURIERLOG_DATABASE_USER"),
		"COURIERLOG_DATABASE_PASSWORD":       os.Getenv("COURIERLOG_DATABASE_PASSWORD"),
		"COURIERLOG_DATABASE_DBNAME":         os.Getenv("COURIERLOG_DATABASE_DBNAME"),
		"COURIERLOG_DATABASE_SSLMODE":        os.Getenv("COURIERLOG_DATABASE_SSLMODE"),
		"COURIERLOG_DATABASE_MAX_OPEN_CONNS": os.Getenv("COURIERLOG_DATABASE_MAX_OPEN_CONNS"),
		"COURIERLOG_DATABASE_MAX_IDLE_CONNS": os.Getenv("COURIERLOG_DATABASE_MAX_IDLE_CONNS"),
		"COURIERLOG_CLERK_SECRET_KEY":        os.Getenv("COURIERLOG_CLERK_SECRET_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "courierlog-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "courierlog", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("loads values from environment variables with COURIERLOG prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_APP_NAME", "test-app")
		os.Setenv("COURIERLOG_APP_ENV", "testing")
		os.Setenv("COURIERLOG_APP_PORT", "9000")
		os.Setenv("COURIERLOG_DATABASE_HOST", "testdb.local")
		os.Setenv("COURIERLOG_DATABASE_PORT", "5433")
		os.Setenv("COURIERLOG_DATABASE_USER", "testuser")
		os.Setenv("COURIERLOG_DATABASE_PASSWORD", "testpass")
		os.Setenv("COURIERLOG_DATABASE_DBNAME", "testdb")
		os.Setenv("COURIERLOG_DATABASE_SSLMODE", "require")
		os.Setenv("COURIERLOG_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("COURIERLOG_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("COURIERLOG_CLERK_SECRET_KEY", "sk_test_abc")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "sk_test_abc", cfg.Clerk.SecretKey)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("COURIERLOG_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"COURIERLOG_APP_ENV":           os.Getenv("COURIERLOG_APP_ENV"),
		"COURIERLOG_DATABASE_PASSWORD": os.Getenv("COURIERLOG_DATABASE_PASSWORD"),
		"COURIERLOG_DATABASE_SSLMODE":  os.Getenv("COURIERLOG_DATABASE_SSLMODE"),
		"COURIERLOG_CLERK_SECRET_KEY":  os.Getenv("COURIERLOG_CLERK_SECRET_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_APP_ENV", "production")
		os.Setenv("COURIERLOG_DATABASE_SSLMODE", "require")
		os.Setenv("COURIERLOG_CLERK_SECRET_KEY", "sk_live_abc")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_APP_ENV", "production")
		os.Setenv("COURIERLOG_DATABASE_PASSWORD", "secure-password")
		os.Setenv("COURIERLOG_CLERK_SECRET_KEY", "sk_live_abc")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires clerk.secret_key in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_APP_ENV", "production")
		os.Setenv("COURIERLOG_DATABASE_PASSWORD", "secure-password")
		os.Setenv("COURIERLOG_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "clerk.secret_key is required in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("COURIERLOG_APP_ENV", "production")
		os.Setenv("COURIERLOG_DATABASE_PASSWORD", "secure-password")
		os.Setenv("COURIERLOG_DATABASE_SSLMODE", "require")
		os.Setenv("COURIERLOG_CLERK_SECRET_KEY", "sk_live_abc")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "courier",
		Password: "p@ss/word",
		DBName:   "courierlog",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
