package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from:
// 1. Default values
// 2. The YAML file at configPath (optional)
// 3. BOT_* environment variables
//
// The resulting configuration is validated before being returned.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, everything can come from env vars.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration against its struct tags plus
// cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	if cfg.Travel.DynamicEnabled && cfg.Gemini.APIKey == "" {
		return fmt.Errorf("travel.dynamic_enabled requires gemini.api_key")
	}
	if cfg.Travel.AIImageEnabled && cfg.Gemini.APIKey == "" {
		return fmt.Errorf("travel.ai_image_enabled requires gemini.api_key")
	}
	if cfg.Cache.Enabled && cfg.Cache.UploadURL == "" {
		return fmt.Errorf("cache.enabled requires cache.upload_url")
	}

	return nil
}
