package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Discovery DiscoveryConfig
	Store     StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProvidersConfig holds credentials and endpoints for the external data
// providers. Which keys are present decides the sourcing mode at job
// creation: search+completion -> web-search, completion only -> ai-research,
// neither -> mock.
type ProvidersConfig struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Search   SearchConfig   `mapstructure:"search"`
	Shopping ShoppingConfig `mapstructure:"shopping"`
}

// LLMConfig holds the structured-completion provider configuration
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// SearchConfig holds the web-search provider configuration
type SearchConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ShoppingConfig holds the shopping/price provider configuration
type ShoppingConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// DiscoveryConfig holds pipeline tuning knobs
type DiscoveryConfig struct {
	BatchSize           int           `mapstructure:"batch_size"`
	BatchDelay          time.Duration `mapstructure:"batch_delay"`
	MaxVendorsPerQuery  int           `mapstructure:"max_vendors_per_query"`
	PriceResultCap      int           `mapstructure:"price_result_cap"`
	ContactFetchTimeout time.Duration `mapstructure:"contact_fetch_timeout"`
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Type        string `mapstructure:"type"` // "memory" or "postgres"
	DatabaseURL string `mapstructure:"database_url"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vendorscout/")

	v.SetEnvPrefix("VENDORSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Provider defaults. API keys default to empty: an absent key disables
	// the provider rather than failing startup.
	v.SetDefault("providers.llm.api_key", "")
	v.SetDefault("providers.llm.base_url", "https://api.openai.com")
	v.SetDefault("providers.llm.model", "gpt-4o-mini")
	v.SetDefault("providers.search.api_key", "")
	v.SetDefault("providers.search.base_url", "https://google.serper.dev")
	v.SetDefault("providers.shopping.api_key", "")
	v.SetDefault("providers.shopping.base_url", "https://google.serper.dev")

	// Discovery defaults
	v.SetDefault("discovery.batch_size", 3)
	v.SetDefault("discovery.batch_delay", "2s")
	v.SetDefault("discovery.max_vendors_per_query", 10)
	v.SetDefault("discovery.price_result_cap", 10)
	v.SetDefault("discovery.contact_fetch_timeout", "10s")

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.database_url", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "memory" && config.Store.Type != "postgres" {
		return fmt.Errorf("store type must be 'memory' or 'postgres', got: %s", config.Store.Type)
	}

	if config.Store.Type == "postgres" && config.Store.DatabaseURL == "" {
		return fmt.Errorf("database URL is required when store type is 'postgres'")
	}

	if config.Discovery.BatchSize < 1 {
		return fmt.Errorf("discovery batch size must be at least 1, got: %d", config.Discovery.BatchSize)
	}

	if config.Discovery.MaxVendorsPerQuery < 1 || config.Discovery.MaxVendorsPerQuery > 50 {
		return fmt.Errorf("discovery max vendors per query must be within [1,50], got: %d", config.Discovery.MaxVendorsPerQuery)
	}

	return nil
}
