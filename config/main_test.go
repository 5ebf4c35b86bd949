package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "80", cfg.Port)
	assert.Equal(t, "azure", cfg.Provider)
	assert.Equal(t, 12*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MODEL_PROVIDER", "gemini")
	t.Setenv("GEMINI_SECRET_KEY", "test-key")
	t.Setenv("POSTGRES_DB_HOST", "db.internal")
	t.Setenv("COMPLETION_TIMEOUT", "5s")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, "gpt-4o", cfg.Azure.Deployment)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "carrier-pigeon")

	_, err := Load(context.Background())
	assert.Error(t, err)
}
