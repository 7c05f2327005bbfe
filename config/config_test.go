package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "artSchoolDB", cfg.MongoDatabase)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, 120, cfg.RateLimitRPM)
	assert.Equal(t, int32(5), cfg.DBMaxConns)
	assert.False(t, cfg.RoleLegacyCoercion)
	assert.Equal(t, 10*time.Second, cfg.MongoTimeout)
	assert.Empty(t, cfg.CORSOrigins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ROLE_LEGACY_COERCION", "true")
	t.Setenv("MONGO_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.RoleLegacyCoercion)
	assert.Equal(t, 3*time.Second, cfg.MongoTimeout)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ROLE_LEGACY_COERCION", "maybe")
	t.Setenv("MONGO_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.False(t, cfg.RoleLegacyCoercion)
	assert.Equal(t, 10*time.Second, cfg.MongoTimeout)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestMongoConnectionURI(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit uri", Config{MongoURI: "mongodb://db:27017", MongoUser: "ignored"}, "mongodb://db:27017"},
		{"local without credentials", Config{MongoHost: "localhost:27017"}, "mongodb://localhost:27017"},
		{"srv with credentials", Config{MongoUser: "u", MongoPassword: "p", MongoHost: "cluster0.example.net"},
			"mongodb+srv://u:p@cluster0.example.net/?retryWrites=true&w=majority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.MongoConnectionURI())
		})
	}
}

func TestValidate_ProductionSecret(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr bool
	}{
		{"production with default secret", "production", DefaultAccessTokenSecret, true},
		{"production with empty secret", "production", "", true},
		{"production with real secret", "production", "s3cr3t-from-vault", false},
		{"development with default secret", "development", DefaultAccessTokenSecret, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Env: tt.env, AccessTokenSecret: tt.secret}
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsecureSecret)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_ProductionWithoutSecretFailsValidation(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	assert.ErrorIs(t, Load().Validate(), ErrInsecureSecret)
}
