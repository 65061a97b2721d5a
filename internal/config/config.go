package config

import (
	"fmt"
	"strings"
	"time"

	"gosurvey/internal/errors"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Ops      OpsConfig
	Database DatabaseConfig
	Sheet    SheetConfig
	AI       AIConfig
	Report   ReportConfig
	Log      LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	GinMode string `env:"GIN_MODE" envDefault:"release" validate:"oneof=debug release test"`
}

// OpsConfig holds the health/metrics/pprof listener settings
type OpsConfig struct {
	Port    string `env:"OPS_PORT" envDefault:"6060" validate:"required,numeric"`
	Enabled bool   `env:"OPS_ENABLED" envDefault:"true"`
}

// DatabaseConfig holds the relational cache connection settings
type DatabaseConfig struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	URL    string `env:"DATABASE_URL" envDefault:"file:gosurvey.db?_pragma=busy_timeout(5000)" validate:"required"`
}

// SheetConfig describes where the survey tabs come from
type SheetConfig struct {
	ID      string `env:"SHEET_ID" validate:"required_without=File"`
	Format  string `env:"SHEET_FORMAT" envDefault:"csv" validate:"oneof=csv xlsx"`
	File    string `env:"SHEET_FILE"`
	BaseURL string `env:"SHEET_BASE_URL" envDefault:"https://docs.google.com/spreadsheets/d" validate:"required,url"`

	TabIntake string `env:"SHEET_TAB_INTAKE" envDefault:"Intake" validate:"required"`
	TabCEO    string `env:"SHEET_TAB_CEO" envDefault:"CEO" validate:"required"`
	TabTech   string `env:"SHEET_TAB_TECH" envDefault:"Tech" validate:"required"`
	TabStaff  string `env:"SHEET_TAB_STAFF" envDefault:"Staff" validate:"required"`

	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"20s" validate:"gt=0"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m" validate:"gte=0"`
}

// AIConfig holds summarization service settings; an empty key disables it
type AIConfig struct {
	OpenAIKey string        `env:"OPENAI_API_KEY"`
	Model     string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL   string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1" validate:"required,url"`
	Timeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	MaxTokens int           `env:"MAX_TOKENS" envDefault:"200" validate:"gt=0"`
}

// ReportConfig bounds the length of generated insight fragments
type ReportConfig struct {
	MinChars int `env:"REPORT_MIN_CHARS" envDefault:"100" validate:"gt=0"`
	MaxChars int `env:"REPORT_MAX_CHARS" envDefault:"150" validate:"gtfield=MinChars"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"INFO"`
	File  string `env:"LOG_FILE"`
}

// Enabled reports whether a summarization backend is configured
func (c AIConfig) Enabled() bool {
	return strings.TrimSpace(c.OpenAIKey) != ""
}

// Load reads .env (when present) and the environment, then validates the result
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds the configuration from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse environment")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return errors.ConfigInvalid("invalid fields: " + strings.Join(fields, ", "))
		}
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}
