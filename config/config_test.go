package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("VENDORSCOUT_SERVER_PORT")
		os.Unsetenv("VENDORSCOUT_SERVER_ENVIRONMENT")
		os.Unsetenv("VENDORSCOUT_PROVIDERS_LLM_API_KEY")
		os.Unsetenv("VENDORSCOUT_PROVIDERS_LLM_BASE_URL")
		os.Unsetenv("VENDORSCOUT_PROVIDERS_LLM_MODEL")
		os.Unsetenv("VENDORSCOUT_PROVIDERS_SEARCH_API_KEY")
		os.Unsetenv("VENDORSCOUT_PROVIDERS_SHOPPING_API_KEY")
		os.Unsetenv("VENDORSCOUT_DISCOVERY_BATCH_SIZE")
		os.Unsetenv("VENDORSCOUT_DISCOVERY_BATCH_DELAY")
		os.Unsetenv("VENDORSCOUT_DISCOVERY_MAX_VENDORS_PER_QUERY")
		os.Unsetenv("VENDORSCOUT_STORE_TYPE")
		os.Unsetenv("VENDORSCOUT_STORE_DATABASE_URL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Providers.LLM.APIKey != "" {
			t.Errorf("Providers.LLM.APIKey = %s, want empty", cfg.Providers.LLM.APIKey)
		}
		if cfg.Providers.LLM.Model != "gpt-4o-mini" {
			t.Errorf("Providers.LLM.Model = %s, want gpt-4o-mini", cfg.Providers.LLM.Model)
		}
		if cfg.Discovery.BatchSize != 3 {
			t.Errorf("Discovery.BatchSize = %d, want 3", cfg.Discovery.BatchSize)
		}
		if cfg.Discovery.BatchDelay != 2*time.Second {
			t.Errorf("Discovery.BatchDelay = %v, want 2s", cfg.Discovery.BatchDelay)
		}
		if cfg.Discovery.MaxVendorsPerQuery != 10 {
			t.Errorf("Discovery.MaxVendorsPerQuery = %d, want 10", cfg.Discovery.MaxVendorsPerQuery)
		}
		if cfg.Discovery.ContactFetchTimeout != 10*time.Second {
			t.Errorf("Discovery.ContactFetchTimeout = %v, want 10s", cfg.Discovery.ContactFetchTimeout)
		}
		if cfg.Store.Type != "memory" {
			t.Errorf("Store.Type = %s, want memory", cfg.Store.Type)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VENDORSCOUT_SERVER_PORT", "9090")
		os.Setenv("VENDORSCOUT_SERVER_ENVIRONMENT", "production")
		os.Setenv("VENDORSCOUT_PROVIDERS_LLM_API_KEY", "sk-test")
		os.Setenv("VENDORSCOUT_PROVIDERS_SEARCH_API_KEY", "serper-test")
		os.Setenv("VENDORSCOUT_DISCOVERY_BATCH_SIZE", "5")
		os.Setenv("VENDORSCOUT_DISCOVERY_BATCH_DELAY", "500ms")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Providers.LLM.APIKey != "sk-test" {
			t.Errorf("Providers.LLM.APIKey = %s, want sk-test", cfg.Providers.LLM.APIKey)
		}
		if cfg.Providers.Search.APIKey != "serper-test" {
			t.Errorf("Providers.Search.APIKey = %s, want serper-test", cfg.Providers.Search.APIKey)
		}
		if cfg.Discovery.BatchSize != 5 {
			t.Errorf("Discovery.BatchSize = %d, want 5", cfg.Discovery.BatchSize)
		}
		if cfg.Discovery.BatchDelay != 500*time.Millisecond {
			t.Errorf("Discovery.BatchDelay = %v, want 500ms", cfg.Discovery.BatchDelay)
		}
	})

	t.Run("rejects unknown store type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VENDORSCOUT_STORE_TYPE", "cassandra")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want store type error")
		}
	})

	t.Run("rejects postgres store without database url", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VENDORSCOUT_STORE_TYPE", "postgres")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want database url error")
		}
	})

	t.Run("rejects batch size below one", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VENDORSCOUT_DISCOVERY_BATCH_SIZE", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want batch size error")
		}
	})

	t.Run("rejects max vendors per query above fifty", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VENDORSCOUT_DISCOVERY_MAX_VENDORS_PER_QUERY", "51")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want max vendors error")
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Discovery: DiscoveryConfig{BatchSize: 3, MaxVendorsPerQuery: 10},
			Store:     StoreConfig{Type: "memory"},
		}
	}

	t.Run("accepts memory store", func(t *testing.T) {
		if err := validate(base()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("accepts postgres store with url", func(t *testing.T) {
		cfg := base()
		cfg.Store.Type = "postgres"
		cfg.Store.DatabaseURL = "postgres://localhost:5432/vendorscout"
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})
}
