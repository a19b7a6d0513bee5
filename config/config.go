package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Ebay      EbayConfig
	Scraper   ScraperConfig
	Providers ProvidersConfig
	Cache     CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EbayConfig holds eBay Browse API configuration. Credentials come from
// the environment (RSP_EBAY_CLIENT_ID, RSP_EBAY_CLIENT_SECRET), never
// from files checked into the repo.
type EbayConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	APIBaseURL   string `mapstructure:"api_base_url"`
	IdentityURL  string `mapstructure:"identity_url"`
}

// ScraperConfig holds settings shared by the scraped-site providers
type ScraperConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ProvidersConfig selects which providers a search fans out to
type ProvidersConfig struct {
	Enabled []string `mapstructure:"enabled"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/rsp/")

	// Environment variable settings
	v.SetEnvPrefix("RSP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
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

	// eBay defaults (credentials have no default)
	v.SetDefault("ebay.api_base_url", "https://api.ebay.com")
	v.SetDefault("ebay.identity_url", "https://api.ebay.com/identity/v1/oauth2/token")

	// Scraper defaults
	v.SetDefault("scraper.timeout", "45s")
	v.SetDefault("scraper.user_agent", "")

	// The marketplace provider is opt-in: it needs credentials, the
	// scraped sites do not.
	v.SetDefault("providers.enabled", []string{
		"DigiKey", "Galco", "Mouser", "RS Electric", "Radwell",
	})

	// Cache defaults
	v.SetDefault("cache.ttl", "15m")
}

// validate validates the configuration
func validate(config *Config) error {
	if len(config.Providers.Enabled) == 0 {
		return fmt.Errorf("at least one provider must be enabled")
	}

	for _, name := range config.Providers.Enabled {
		if name == "eBay" {
			if config.Ebay.ClientID == "" || config.Ebay.ClientSecret == "" {
				return fmt.Errorf("eBay credentials are required when the eBay provider is enabled (set RSP_EBAY_CLIENT_ID and RSP_EBAY_CLIENT_SECRET)")
			}
		}
	}

	if config.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper timeout must be positive, got: %s", config.Scraper.Timeout)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	return nil
}

// loadEnvFile loads a .env file from the working directory into the
// process environment. Missing file is fine; existing variables win over
// file entries.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}
