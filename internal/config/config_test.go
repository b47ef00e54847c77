package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FORMS_ADDR", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("FORMS_TOKEN_TTL_HOURS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "formdesk", cfg.MongoDB)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.Equal(t, "assets/forms", cfg.AssetsDir)
	assert.Equal(t, "assets/templates", cfg.TemplateDir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FORMS_ADDR", ":9999")
	t.Setenv("MONGO_DB", "formdesk_test")
	t.Setenv("FORMS_TOKEN_TTL_HOURS", "48")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "formdesk_test", cfg.MongoDB)
	assert.Equal(t, 48, cfg.TokenTTLHours)
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("FORMS_TOKEN_TTL_HOURS", "soon")

	assert.Equal(t, 24, Load().TokenTTLHours)
}
