package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnvFile keeps Load from picking up a developer's .env during tests.
const noEnvFile = "testdata/does-not-exist.env"

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, "8080", s.Server.Port)
	assert.Equal(t, "static/uploads", s.Server.UploadDir)
	assert.Equal(t, 24*time.Hour, s.Auth.TokenTTL)
	assert.Equal(t, 6, s.Auth.CodeLength)
	assert.Equal(t, 465, s.SMTP.Port)
	assert.False(t, s.SMTP.Enabled())
	assert.Equal(t, "https://geocode-maps.yandex.ru/1.x/", s.Geocoder.URL)
	assert.Equal(t, 3, s.Ranking.MinWordLength)
	assert.NotNil(t, s.Ranking.ExtraStopwords)
	assert.Equal(t, "@hourly", s.Maintenance.Schedule)
	assert.Equal(t, "info", s.Log.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("DB_NAME", "places.db")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("TRAVEL_SERVER_PORT", "9000")
	t.Setenv("TRAVEL_RANKING_MIN_WORD_LENGTH", "4")
	t.Setenv("TRAVEL_AUTH_TOKEN_TTL", "90m")

	s, err := Load("", noEnvFile)
	require.NoError(t, err)

	assert.Equal(t, "legacy-secret", s.Auth.JWTSecret)
	assert.Equal(t, "places.db", s.Database.Path)
	assert.Equal(t, 2525, s.SMTP.Port)
	assert.Equal(t, "9000", s.Server.Port)
	assert.Equal(t, 4, s.Ranking.MinWordLength)
	assert.Equal(t, 90*time.Minute, s.Auth.TokenTTL)
	assert.True(t, s.Maintenance.Enabled)
}

func TestLoad_PrefixedEnvWinsOverLegacy(t *testing.T) {
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("TRAVEL_AUTH_JWT_SECRET", "prefixed-secret")

	s, err := Load("", noEnvFile)
	require.NoError(t, err)

	assert.Equal(t, "prefixed-secret", s.Auth.JWTSecret)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "7000"
  allowed_origins: ["http://localhost:3000"]
auth:
  jwt_secret: file-secret
ranking:
  extra_stopwords: ["город"]
maintenance:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := Load(path, noEnvFile)
	require.NoError(t, err)

	assert.Equal(t, "7000", s.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, s.Server.AllowedOrigins)
	assert.Equal(t, "file-secret", s.Auth.JWTSecret)
	assert.Equal(t, []string{"город"}, s.Ranking.ExtraStopwords)
	assert.False(t, s.Maintenance.Enabled)

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("TRAVEL_SERVER_PORT", "7100")

		s, err := Load(path, noEnvFile)
		require.NoError(t, err)
		assert.Equal(t, "7100", s.Server.Port)
	})
}

func TestLoad_DotEnvFile(t *testing.T) {
	// Register restoration, then clear the variable so godotenv can set it.
	t.Setenv("PEPPER", "")
	require.NoError(t, os.Unsetenv("PEPPER"))
	t.Setenv("JWT_SECRET", "secret")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PEPPER=from-dotenv\n"), 0600))

	s, err := Load("", envPath)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", s.Auth.Pepper)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("TRAVEL_AUTH_JWT_SECRET", "")

		_, err := Load("", noEnvFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Settings {
		s := Default()
		s.Auth.JWTSecret = "secret"
		return s
	}

	tests := []struct {
		name           string
		mutate         func(s *Settings)
		expectedErrors int
		contains       string
	}{
		{"valid settings", func(s *Settings) {}, 0, ""},
		{"non numeric port", func(s *Settings) { s.Server.Port = "http" }, 1, "server.port"},
		{"port out of range", func(s *Settings) { s.Server.Port = "70000" }, 1, "server.port"},
		{"empty origin", func(s *Settings) { s.Server.AllowedOrigins = []string{" "} }, 1, "allowed_origins"},
		{"blank jwt secret", func(s *Settings) { s.Auth.JWTSecret = "  " }, 1, "jwt_secret"},
		{"short verification code", func(s *Settings) { s.Auth.CodeLength = 2 }, 1, "code_length"},
		{"bad smtp port", func(s *Settings) { s.SMTP.Server = "smtp.example.com"; s.SMTP.Port = -1 }, 1, "smtp.port"},
		{"smtp port ignored when disabled", func(s *Settings) { s.SMTP.Port = -1 }, 0, ""},
		{"zero min word length", func(s *Settings) { s.Ranking.MinWordLength = 0 }, 1, "min_word_length"},
		{"unknown log format", func(s *Settings) { s.Log.Format = "xml" }, 1, "log.format"},
		{"several problems", func(s *Settings) { s.Server.Port = ""; s.Auth.JWTSecret = "" }, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)

			problems := s.Validate()
			if len(problems) != tt.expectedErrors {
				t.Fatalf("Expected %d errors, got %d: %v", tt.expectedErrors, len(problems), problems)
			}
			if tt.contains != "" && !strings.Contains(strings.Join(problems, " "), tt.contains) {
				t.Errorf("Expected an error mentioning %q, got %v", tt.contains, problems)
			}
		})
	}
}
