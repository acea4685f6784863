package config

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SHOWED_POSTS", "INDEX_CACHE_TTL", "POST_STORE", "SEED_DEMO"} {
		t.Setenv(key, "")
	}

	cfg, _ := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.ShowedPosts)
	assert.Equal(t, 20*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, "mongo", cfg.PostStore)
	assert.False(t, cfg.SeedDemo)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHOWED_POSTS", "25")
	t.Setenv("INDEX_CACHE_TTL", "5")
	t.Setenv("POST_STORE", "sql")
	t.Setenv("SEED_DEMO", "true")

	cfg, _ := Load()
	assert.Equal(t, 25, cfg.ShowedPosts)
	assert.Equal(t, 5*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, "sql", cfg.PostStore)
	assert.True(t, cfg.SeedDemo)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SHOWED_POSTS", "-4")
	t.Setenv("INDEX_CACHE_TTL", "soon")

	cfg, _ := Load()
	assert.Equal(t, 10, cfg.ShowedPosts)
	assert.Equal(t, 20*time.Second, cfg.IndexCacheTTL)
}

func TestLoadNormalisesStoreNames(t *testing.T) {
	t.Setenv("POST_STORE", " SQL ")
	t.Setenv("DB_DRIVER", "SQLite")

	cfg, _ := Load()
	assert.Equal(t, PostStoreSQL, cfg.PostStore)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Env: "development", DBDriver: "sqlite", PostStore: PostStoreMongo, JWTSecret: DefaultJWTSecret}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"development may use the default secret", func(c *Config) {}, ""},
		{"sql post store", func(c *Config) { c.PostStore = PostStoreSQL }, ""},
		{"unknown post store", func(c *Config) { c.PostStore = "postgres" }, "POST_STORE"},
		{"empty post store", func(c *Config) { c.PostStore = "" }, "POST_STORE"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"production with default secret", func(c *Config) { c.Env = "production" }, "JWT_SECRET"},
		{"production with empty secret", func(c *Config) { c.Env = "production"; c.JWTSecret = "" }, "JWT_SECRET"},
		{"production with explicit secret", func(c *Config) { c.Env = "production"; c.JWTSecret = "s3cr3t" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadInProductionWithoutSecretFailsValidation(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("POST_STORE", "")
	t.Setenv("DB_DRIVER", "")

	cfg, _ := Load()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(&Config{DBDriver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}

func TestSetupMiddlewareSetsRequestIDAndErrors(t *testing.T) {
	e := echo.New()
	SetupMiddleware(e, zap.NewNop())
	e.GET("/missing", func(c echo.Context) error { return apperrors.NotFound("thing") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
}
