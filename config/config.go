package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/uvzlabs/launchpad/course"
)

// Config stores all configuration of the application.
type Config struct {
	InputMode    string        `mapstructure:"input_mode"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	ModelName    string        `mapstructure:"model_name"`
	WhopAPIKey   string        `mapstructure:"whop_api_key"`
	WhopBaseURL  string        `mapstructure:"whop_base_url"`
	TellmURL     string        `mapstructure:"tellm_url"`
	UseFakes     bool          `mapstructure:"use_fakes"`
	CallTimeout  time.Duration `mapstructure:"call_timeout"`
	ListenAddr   string        `mapstructure:"listen_addr"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		InputMode:    string(course.ModeKeywords),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		ModelName:    "gpt-4o-mini",
		WhopAPIKey:   os.Getenv("WHOP_API_KEY"),
		WhopBaseURL:  "https://api.whop.com",
		TellmURL:     "http://localhost:8000",
		UseFakes:     false,
		CallTimeout:  2 * time.Minute,
		ListenAddr:   ":8080",
	}
}

// Mode returns the configured input mode as a domain value.
func (c *Config) Mode() course.InputMode {
	return course.InputMode(c.InputMode)
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".launchpad"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; defaults and env cover it
	}

	// Environment variables
	v.SetEnvPrefix("LAUNCHPAD")
	v.AutomaticEnv()
	v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	v.BindEnv("whop_api_key", "WHOP_API_KEY")
	for _, key := range []string{"input_mode", "model_name", "whop_base_url", "tellm_url", "use_fakes", "call_timeout", "listen_addr"} {
		v.BindEnv(key)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validateConfig(config *Config) error {
	switch course.InputMode(config.InputMode) {
	case course.ModeKeywords, course.ModeUVZ:
	default:
		return fmt.Errorf("input_mode must be %q or %q, got %q", course.ModeKeywords, course.ModeUVZ, config.InputMode)
	}

	if config.UseFakes {
		return nil
	}
	if config.OpenAIAPIKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}
	if config.WhopAPIKey == "" {
		return fmt.Errorf("Whop API key is required")
	}
	return nil
}
