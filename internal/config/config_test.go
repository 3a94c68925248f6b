package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv restores the previous value when the test ends.
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	})

	t.Run("Defaults", func(t *testing.T) {
		// Only required values are set; everything else comes from struct tag defaults.
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DriverPostgres, cfg.StoreDriver)
		assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.True(t, cfg.RateLimitEnabled)
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "")

		cfg, err := LoadConfig()
		assert.Nil(t, cfg)
		assert.EqualError(t, err, "JWT_SECRET is not set")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"postgres ok", Config{JWTSecret: "s", StoreDriver: DriverPostgres, DBHost: "db"}, ""},
		{"postgres without host", Config{JWTSecret: "s", StoreDriver: DriverPostgres}, "DB_HOST is required for the postgres store"},
		{"mongo ok", Config{JWTSecret: "s", StoreDriver: DriverMongo, MongoURI: "mongodb://localhost"}, ""},
		{"mongo without uri", Config{JWTSecret: "s", StoreDriver: DriverMongo}, "MONGO_URI is required for the mongo store"},
		{"unknown driver", Config{JWTSecret: "s", StoreDriver: "sqlite"}, `unknown STORE_DRIVER "sqlite" (use "postgres" or "mongo")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCloudinaryEnabled(t *testing.T) {
	cfg := Config{CloudinaryCloudName: "demo", CloudinaryAPIKey: "key"}
	assert.False(t, cfg.CloudinaryEnabled())

	cfg.CloudinaryAPISecret = "secret"
	assert.True(t, cfg.CloudinaryEnabled())
}

func TestLoadStoreConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadStoreConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.DBHost)

	t.Setenv("STORE_DRIVER", DriverMongo)
	_, err = LoadStoreConfig()
	assert.EqualError(t, err, "MONGO_URI is required for the mongo store")
}
