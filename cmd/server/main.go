package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Lakeram21/RSP-precurement/config"
	httpDelivery "github.com/Lakeram21/RSP-precurement/internal/delivery/http"
	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/Lakeram21/RSP-precurement/internal/infrastructure/cache"
	"github.com/Lakeram21/RSP-precurement/internal/infrastructure/ebay"
	"github.com/Lakeram21/RSP-precurement/internal/infrastructure/scraper"
	"github.com/Lakeram21/RSP-precurement/internal/infrastructure/transport"
	"github.com/Lakeram21/RSP-precurement/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting RSP Procurement Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)
	log.Printf("Providers enabled: %v", cfg.Providers.Enabled)

	responseCache := cache.NewMemoryCache()

	// Each scraped site gets its own session so cookies never bleed
	// between providers.
	newSession := func() *transport.Session {
		return transport.NewSession(cfg.Scraper.Timeout, cfg.Scraper.UserAgent)
	}

	providers := []domain.Provider{
		scraper.NewDigiKey(newSession()),
		scraper.NewGalco(newSession()),
		scraper.NewMouser(newSession()),
		scraper.NewRS(cfg.Scraper.Timeout),
		scraper.NewRadwell(newSession()),
	}

	if cfg.Ebay.ClientID != "" && cfg.Ebay.ClientSecret != "" {
		tokens := ebay.NewTokenCache(cfg.Ebay.ClientID, cfg.Ebay.ClientSecret, cfg.Ebay.IdentityURL)
		client := ebay.NewClient(tokens, cfg.Ebay.APIBaseURL)
		providers = append(providers, ebay.NewAdapter(client))
		log.Printf("eBay Browse API configured: %s (client: %s...)", cfg.Ebay.APIBaseURL, cfg.Ebay.ClientID[:min(8, len(cfg.Ebay.ClientID))])
	} else {
		log.Printf("eBay Browse API not configured; marketplace provider unavailable")
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		usecase.SearchServiceConfig{ProviderTimeout: cfg.Scraper.Timeout},
		providers...,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, responseCache, cfg.Providers.Enabled, cfg.Cache.TTL)

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
