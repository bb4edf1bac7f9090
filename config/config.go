// Package config loads server configuration from built-in defaults layered
// with SONGSWIPE_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every environment override. A double underscore
// separates nesting levels so single underscores survive inside key names:
// SONGSWIPE_SERVER__PORT=9090, SONGSWIPE_DISCOVERY__POOL_SIZE=10.
const EnvPrefix = "SONGSWIPE_"

type ServerConfig struct {
	Port           string   `koanf:"port"`
	AllowedOrigins []string `koanf:"allowed_origins"`
	LogLevel       string   `koanf:"log_level"`
}

type AWSConfig struct {
	Region string `koanf:"region"`
}

type DiscoveryConfig struct {
	PoolSize    int `koanf:"pool_size"`
	Parallelism int `koanf:"parallelism"`
	// LearnerWindow is how many recent likes feed the taste vector.
	LearnerWindow int `koanf:"learner_window"`
}

type LivenessConfig struct {
	BoundaryHour int    `koanf:"boundary_hour"`
	Timezone     string `koanf:"timezone"`
}

type CatalogConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

type InsightsConfig struct {
	Window         int `koanf:"window"`
	NumClusters    int `koanf:"num_clusters"`
	MinClusterSize int `koanf:"min_cluster_size"`
}

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	AWS       AWSConfig       `koanf:"aws"`
	Discovery DiscoveryConfig `koanf:"discovery"`
	Liveness  LivenessConfig  `koanf:"liveness"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Insights  InsightsConfig  `koanf:"insights"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			LogLevel:       "info",
		},
		AWS: AWSConfig{
			Region: "",
		},
		Discovery: DiscoveryConfig{
			PoolSize:      15,
			Parallelism:   8,
			LearnerWindow: 20,
		},
		Liveness: LivenessConfig{
			BoundaryHour: 9,
			Timezone:     "America/New_York",
		},
		Catalog: CatalogConfig{
			ClientID:     "",
			ClientSecret: "",
		},
		Insights: InsightsConfig{
			Window:         50,
			NumClusters:    3,
			MinClusterSize: 3,
		},
	}
}

// Load builds the configuration: defaults first, environment on top.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	envProvider := env.Provider(EnvPrefix, ".", func(key string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the services would otherwise have to guard
// against individually.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.Discovery.PoolSize <= 0 {
		return fmt.Errorf("discovery pool size must be positive, got %d", c.Discovery.PoolSize)
	}
	if c.Discovery.Parallelism <= 0 {
		return fmt.Errorf("discovery parallelism must be positive, got %d", c.Discovery.Parallelism)
	}
	if c.Discovery.LearnerWindow <= 0 {
		return fmt.Errorf("learner window must be positive, got %d", c.Discovery.LearnerWindow)
	}
	if c.Liveness.BoundaryHour < 0 || c.Liveness.BoundaryHour > 23 {
		return fmt.Errorf("liveness boundary hour %d out of range", c.Liveness.BoundaryHour)
	}
	if c.Liveness.Timezone == "" {
		return fmt.Errorf("liveness timezone must not be empty")
	}
	return nil
}
