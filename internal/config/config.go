package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Network    NetworkConfig    `toml:"network"`
	Extraction ExtractionConfig `toml:"extraction"`
	Browser    BrowserConfig    `toml:"browser"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Addr         string `toml:"addr"`
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`
}

type NetworkConfig struct {
	StrategyTimeout int    `toml:"strategy_timeout"`
	UserAgent       string `toml:"user_agent"`
	BrowserAgent    string `toml:"browser_agent"`
}

type ExtractionConfig struct {
	// MinTranscriptLength is the shortest normalized transcript accepted as
	// a success; anything shorter fails the strategy and the chain moves on.
	MinTranscriptLength int                `toml:"min_transcript_length"`
	DefaultLanguage     string             `toml:"default_language"`
	APIKey              string             `toml:"api_key"`
	EnableHeadless      bool               `toml:"enable_headless"`
	Confidence          map[string]float64 `toml:"confidence"`
}

type BrowserConfig struct {
	Default        string `toml:"default"`
	CookiesEnabled bool   `toml:"cookies_enabled"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15,
			WriteTimeout: 120,
		},
		Network: NetworkConfig{
			StrategyTimeout: 30,
			UserAgent:       "",
			BrowserAgent:    "auto",
		},
		Extraction: ExtractionConfig{
			MinTranscriptLength: 50,
			DefaultLanguage:     "en",
			EnableHeadless:      false,
			Confidence: map[string]float64{
				"official":   0.95,
				"innertube":  0.9,
				"watchpage":  0.8,
				"headless":   0.7,
				"ytapi":      0.6,
				"captionlib": 0.5,
			},
		},
		Browser: BrowserConfig{
			Default:        "auto",
			CookiesEnabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return cfg, fmt.Errorf("error finding home directory: %w", err)
			}
			configHome = filepath.Join(home, ".config")
		}

		viper.AddConfigPath(filepath.Join(configHome, "ytscribe"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("YTSCRIBE")

	if err := viper.ReadInConfig(); err != nil {
		// No config file means defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Extraction.APIKey == "" {
		cfg.Extraction.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}

	return cfg, nil
}
