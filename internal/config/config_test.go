package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, "./uploads", cfg.File.UploadPath)
	assert.Equal(t, int64(10485760), cfg.File.MaxPhotoSize)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AI.GroqBaseURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AI.ReflectionModel)
	assert.Equal(t, 30000, cfg.AI.RequestTimeoutMs)
	assert.Contains(t, cfg.File.AllowedPhotoTypes, "jpg")
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("FRONTEND_BASE_URL", "https://memories.example.com")

	cfg := &Config{}
	cfg.overrideFromEnv()
	cfg.setDefaults()

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gsk_test", cfg.AI.GroqAPIKey)
	assert.Equal(t, "https://memories.example.com", cfg.Frontend.BaseURL)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()
	cfg.Database.User = "postgres"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "memories"

	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=memories")

	cfg.Database.URL = "postgres://u:p@host/db"
	require.Equal(t, "postgres://u:p@host/db", cfg.GetDSN())
}

func TestIsPhotoType(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()

	assert.True(t, cfg.IsPhotoType("jpg"))
	assert.True(t, cfg.IsPhotoType("PNG"))
	assert.False(t, cfg.IsPhotoType("pdf"))
}
