package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tbxark/intakeflow/submission"
)

const EnvPrefix = "INTAKEFLOW"

// Config holds all application configuration
type Config struct {
	Submission SubmissionConfig `mapstructure:"submission"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Session    SessionConfig    `mapstructure:"session"`
	Log        LogConfig        `mapstructure:"log"`
	LLM        LLMConfig        `mapstructure:"llm"`
}

type SubmissionConfig struct {
	AckDelay      time.Duration `mapstructure:"ack_delay"`
	ReentryPolicy string        `mapstructure:"reentry_policy"`
}

// CatalogConfig points at a YAML symptom/FAQ catalog. Empty uses the built-in one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// LLMConfig enables model-backed recognition and the chat assistant when APIKey is set.
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// Load reads configPath when given, then applies INTAKEFLOW_* environment
// overrides on top of the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("submission.ack_delay", submission.DefaultAckDelay)
	v.SetDefault("submission.reentry_policy", string(submission.PolicyReject))

	v.SetDefault("catalog.path", "")

	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.cleanup_interval", 5*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.base_url", EnvPrefix+"_LLM_BASE_URL", "OPENAI_BASE_URL")
}

func (c *Config) Validate() error {
	if c.Submission.AckDelay <= 0 {
		return fmt.Errorf("submission.ack_delay must be positive")
	}
	if _, err := submission.ParsePolicy(c.Submission.ReentryPolicy); err != nil {
		return fmt.Errorf("submission.reentry_policy: %w", err)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("session.cleanup_interval must be positive")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.LLM.Enabled() && c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required when llm.api_key is set")
	}
	return nil
}

// Policy returns the validated re-entry policy.
func (c *Config) Policy() submission.Policy {
	p, _ := submission.ParsePolicy(c.Submission.ReentryPolicy)
	return p
}
