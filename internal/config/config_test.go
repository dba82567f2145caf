package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/store"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, store.ModeFile, cfg.Storage().Mode)
	assert.Equal(t, "./data", cfg.Storage().DataDir)
	assert.True(t, cfg.Seed)
	assert.Equal(t, AuthHeader, cfg.AuthMode)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 1<<20, cfg.BodyLimit)
}

func TestStorage_Selection(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want store.Mode
	}{
		{name: "sqlite", env: map[string]string{"STORAGE_MODE": "sqlite"}, want: store.ModeSQLite},
		{name: "memory", env: map[string]string{"STORAGE_MODE": "memory"}, want: store.ModeMemory},
		{name: "stateless wins", env: map[string]string{"STORAGE_MODE": "file", "STATELESS": "true"}, want: store.ModeMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Storage().Mode)
		})
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown storage", env: map[string]string{"STORAGE_MODE": "s3"}},
		{name: "unknown auth", env: map[string]string{"AUTH_MODE": "oauth"}},
		{name: "jwt without secret", env: map[string]string{"AUTH_MODE": "jwt"}},
		{name: "bad duration", env: map[string]string{"JWT_TTL": "soon"}},
		{name: "no workers", env: map[string]string{"NOTIFY_WORKERS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSummary_HasNoSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("SMTP_PASSWORD", "hunter2")
	cfg, err := Load()
	require.NoError(t, err)
	for _, v := range cfg.Summary() {
		assert.NotEqual(t, "s3cr3t", v)
		assert.NotEqual(t, "hunter2", v)
	}
}
