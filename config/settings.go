// Package config provides configuration structures for the travel guide service.
// It defines server, storage, auth, mail, geocoding and ranking settings and
// loads them from a .env file, an optional YAML file and the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting's environment variable (TRAVEL_SERVER_PORT, ...).
const EnvPrefix = "TRAVEL"

// ServerSettings configures the HTTP layer.
type ServerSettings struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"` // CORS origins; "*" allows any
	StaticDir      string   `mapstructure:"static_dir"`      // Served under /static
	UploadDir      string   `mapstructure:"upload_dir"`      // Where place photos are written
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
}

// DatabaseSettings configures the SQLite store.
type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// AuthSettings configures password hashing, tokens and verification codes.
type AuthSettings struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	Pepper     string        `mapstructure:"pepper"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	CodeLength int           `mapstructure:"code_length"`
}

// SMTPSettings configures the verification mailer. An empty Server disables SMTP.
type SMTPSettings struct {
	Server   string        `mapstructure:"server"`
	Port     int           `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether an SMTP server is configured.
func (s SMTPSettings) Enabled() bool {
	return s.Server != ""
}

// GeocoderSettings configures the Yandex geocoder. An empty APIKey disables geocoding.
type GeocoderSettings struct {
	APIKey  string        `mapstructure:"api_key"`
	URL     string        `mapstructure:"url"`
	Lang    string        `mapstructure:"lang"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RankingSettings configures the tokenizer used by the place ranker.
type RankingSettings struct {
	MinWordLength  int      `mapstructure:"min_word_length"`
	ExtraStopwords []string `mapstructure:"extra_stopwords"`
}

// MaintenanceSettings configures the background cleanup job.
type MaintenanceSettings struct {
	Enabled       bool          `mapstructure:"enabled"`
	Schedule      string        `mapstructure:"schedule"`       // cron spec, e.g. "@hourly"
	UnverifiedTTL time.Duration `mapstructure:"unverified_ttl"` // Unverified accounts older than this are removed
}

// LogSettings configures logrus.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// Settings is the complete service configuration.
type Settings struct {
	Server      ServerSettings      `mapstructure:"server"`
	Database    DatabaseSettings    `mapstructure:"database"`
	Auth        AuthSettings        `mapstructure:"auth"`
	SMTP        SMTPSettings        `mapstructure:"smtp"`
	Geocoder    GeocoderSettings    `mapstructure:"geocoder"`
	Ranking     RankingSettings     `mapstructure:"ranking"`
	Maintenance MaintenanceSettings `mapstructure:"maintenance"`
	Log         LogSettings         `mapstructure:"log"`
}

// Default returns settings with every default applied and no secrets set.
func Default() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	return s
}

// legacyEnv maps setting keys to the bare variable names the service has always read.
var legacyEnv = map[string]string{
	"database.path":    "DB_NAME",
	"auth.jwt_secret":  "JWT_SECRET",
	"auth.pepper":      "PEPPER",
	"geocoder.api_key": "GEOCODER_API_KEY",
	"smtp.server":      "SMTP_SERVER",
	"smtp.port":        "SMTP_PORT",
	"smtp.user":        "SMTP_USER",
	"smtp.password":    "SMTP_PASS",
}

// Load reads configuration. Values from envFiles (default ".env") are exported
// to the environment first; configPath, when non-empty, names a YAML/JSON/TOML
// file. Environment variables override the file, and defaults fill the rest.
func Load(configPath string, envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing .env is normal outside development
		_ = godotenv.Load(f)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	settings.ApplyDefaults()

	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return settings, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("server.upload_dir", d.Server.UploadDir)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.pepper", "")
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)
	v.SetDefault("auth.code_length", d.Auth.CodeLength)

	v.SetDefault("smtp.server", "")
	v.SetDefault("smtp.port", d.SMTP.Port)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.timeout", d.SMTP.Timeout)

	v.SetDefault("geocoder.api_key", "")
	v.SetDefault("geocoder.url", d.Geocoder.URL)
	v.SetDefault("geocoder.lang", d.Geocoder.Lang)
	v.SetDefault("geocoder.timeout", d.Geocoder.Timeout)

	v.SetDefault("ranking.min_word_length", d.Ranking.MinWordLength)
	v.SetDefault("ranking.extra_stopwords", d.Ranking.ExtraStopwords)

	v.SetDefault("maintenance.enabled", true)
	v.SetDefault("maintenance.schedule", d.Maintenance.Schedule)
	v.SetDefault("maintenance.unverified_ttl", d.Maintenance.UnverifiedTTL)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// ApplyDefaults fills zero values with defaults.
func (s *Settings) ApplyDefaults() {
	if s.Server.Port == "" {
		s.Server.Port = "8080"
	}
	if s.Server.AllowedOrigins == nil {
		s.Server.AllowedOrigins = []string{"http://localhost:8080"}
	}
	if s.Server.StaticDir == "" {
		s.Server.StaticDir = "static"
	}
	if s.Server.UploadDir == "" {
		s.Server.UploadDir = "static/uploads"
	}
	if s.Server.MaxBodyBytes == 0 {
		s.Server.MaxBodyBytes = 32 << 20
	}

	if s.Database.Path == "" {
		s.Database.Path = "travel_guide.db"
	}

	if s.Auth.TokenTTL == 0 {
		s.Auth.TokenTTL = 24 * time.Hour
	}
	if s.Auth.CodeLength == 0 {
		s.Auth.CodeLength = 6
	}

	if s.SMTP.Port == 0 {
		s.SMTP.Port = 465
	}
	if s.SMTP.Timeout == 0 {
		s.SMTP.Timeout = 30 * time.Second
	}

	if s.Geocoder.URL == "" {
		s.Geocoder.URL = "https://geocode-maps.yandex.ru/1.x/"
	}
	if s.Geocoder.Lang == "" {
		s.Geocoder.Lang = "ru_RU"
	}
	if s.Geocoder.Timeout == 0 {
		s.Geocoder.Timeout = 10 * time.Second
	}

	if s.Ranking.MinWordLength == 0 {
		s.Ranking.MinWordLength = 3
	}
	if s.Ranking.ExtraStopwords == nil {
		s.Ranking.ExtraStopwords = []string{}
	}

	if s.Maintenance.Schedule == "" {
		s.Maintenance.Schedule = "@hourly"
	}
	if s.Maintenance.UnverifiedTTL == 0 {
		s.Maintenance.UnverifiedTTL = 72 * time.Hour
	}

	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Log.Format == "" {
		s.Log.Format = "text"
	}
}

// Validate returns a description of every invalid setting.
func (s *Settings) Validate() []string {
	var problems []string

	if port, err := strconv.Atoi(s.Server.Port); err != nil || port <= 0 || port > 65535 {
		problems = append(problems, "server.port must be a number between 1 and 65535, got '"+s.Server.Port+"'")
	}
	if s.Server.MaxBodyBytes < 0 {
		problems = append(problems, "server.max_body_bytes cannot be negative")
	}
	for _, origin := range s.Server.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			problems = append(problems, "server.allowed_origins cannot contain empty values")
			break
		}
	}

	if strings.TrimSpace(s.Auth.JWTSecret) == "" {
		problems = append(problems, "auth.jwt_secret (JWT_SECRET) is required")
	}
	if s.Auth.TokenTTL < 0 {
		problems = append(problems, "auth.token_ttl cannot be negative")
	}
	if s.Auth.CodeLength < 4 || s.Auth.CodeLength > 32 {
		problems = append(problems, "auth.code_length must be between 4 and 32")
	}

	if s.SMTP.Enabled() && (s.SMTP.Port <= 0 || s.SMTP.Port > 65535) {
		problems = append(problems, "smtp.port must be between 1 and 65535")
	}

	if s.Ranking.MinWordLength < 1 {
		problems = append(problems, "ranking.min_word_length must be at least 1")
	}

	if s.Maintenance.Enabled && s.Maintenance.UnverifiedTTL < 0 {
		problems = append(problems, "maintenance.unverified_ttl cannot be negative")
	}

	if s.Log.Format != "text" && s.Log.Format != "json" {
		problems = append(problems, "log.format must be 'text' or 'json', got '"+s.Log.Format+"'")
	}

	return problems
}
