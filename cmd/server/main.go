package main

import (
	"fmt"
	"log"
	"os"

	"github.com/vendorscout/backend/config"
	"github.com/vendorscout/backend/internal/domain"
	httpDelivery "github.com/vendorscout/backend/internal/delivery/http"
	"github.com/vendorscout/backend/internal/infrastructure/contact"
	"github.com/vendorscout/backend/internal/infrastructure/llm"
	"github.com/vendorscout/backend/internal/infrastructure/pricing"
	"github.com/vendorscout/backend/internal/infrastructure/search"
	"github.com/vendorscout/backend/internal/infrastructure/sourcing"
	"github.com/vendorscout/backend/internal/infrastructure/store/memory"
	"github.com/vendorscout/backend/internal/infrastructure/store/postgres"
	"github.com/vendorscout/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting VendorScout Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Type: %s", cfg.Store.Type)

	// Initialize persistence
	var store domain.Store
	if cfg.Store.Type == "postgres" {
		pgStore, err := postgres.NewStore(cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		store = pgStore
		log.Printf("Postgres store connected")
	} else {
		store = memory.NewStore()
		log.Printf("In-memory store active (data is volatile)")
	}

	// Initialize providers. Absent credentials leave a client nil, which
	// drives sourcing-mode selection and disables enrichment.
	var completionClient domain.CompletionClient
	if cfg.Providers.LLM.APIKey != "" {
		completionClient = llm.NewClient(cfg.Providers.LLM.APIKey, cfg.Providers.LLM.BaseURL, cfg.Providers.LLM.Model)
		log.Printf("LLM provider configured: %s (model: %s)", cfg.Providers.LLM.BaseURL, cfg.Providers.LLM.Model)
	} else {
		log.Printf("LLM provider NOT configured")
	}

	var searchClient domain.SearchClient
	if cfg.Providers.Search.APIKey != "" {
		searchClient = search.NewClient(cfg.Providers.Search.APIKey, cfg.Providers.Search.BaseURL)
		log.Printf("Search provider configured: %s", cfg.Providers.Search.BaseURL)
	} else {
		log.Printf("Search provider NOT configured")
	}

	var shoppingClient domain.ShoppingClient
	if cfg.Providers.Shopping.APIKey != "" {
		shoppingClient = pricing.NewClient(cfg.Providers.Shopping.APIKey, cfg.Providers.Shopping.BaseURL)
		log.Printf("Shopping provider configured: %s", cfg.Providers.Shopping.BaseURL)
	} else {
		log.Printf("Shopping provider NOT configured - price enrichment disabled")
	}

	strategy := sourcing.SelectStrategy(completionClient, searchClient)
	enricher := pricing.NewEnricher(shoppingClient, cfg.Discovery.PriceResultCap)
	extractor := contact.NewExtractor(cfg.Discovery.ContactFetchTimeout)
	registry := usecase.NewJobRegistry()

	// Initialize usecase layer
	discoveryService := usecase.NewDiscoveryService(
		store,
		registry,
		strategy,
		enricher,
		extractor,
		usecase.DiscoveryServiceConfig{
			BatchSize:  cfg.Discovery.BatchSize,
			BatchDelay: cfg.Discovery.BatchDelay,
		},
	)

	log.Printf("Discovery: mode=%s, batch_size=%d, batch_delay=%s",
		strategy.Mode(), cfg.Discovery.BatchSize, cfg.Discovery.BatchDelay)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(discoveryService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
