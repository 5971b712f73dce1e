package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"tourguide/internal/types"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Catalog struct {
		BaseURL      string        `mapstructure:"baseURL"`
		APIKeyEnv    string        `mapstructure:"apiKeyEnv"`
		CacheTTL     time.Duration `mapstructure:"cacheTTL"`
		Bounds       types.Bounds  `mapstructure:"bounds"`
		DefaultLimit int           `mapstructure:"defaultLimit"`
	} `mapstructure:"catalog"`
	Location struct {
		PollInterval time.Duration `mapstructure:"pollInterval"`
	} `mapstructure:"location"`
	Proximity struct {
		ThresholdMeters  float64       `mapstructure:"thresholdMeters"`
		Cooldown         time.Duration `mapstructure:"cooldown"`
		TrackingInterval time.Duration `mapstructure:"trackingInterval"`
		AccuracyAdvisory float64       `mapstructure:"accuracyAdvisory"`
	} `mapstructure:"proximity"`
	LLM struct {
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
		MaxTokens   int32   `mapstructure:"maxTokens"`
		HistorySize int     `mapstructure:"historySize"`
		ContextTopK int     `mapstructure:"contextTopK"`
	} `mapstructure:"llm"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
