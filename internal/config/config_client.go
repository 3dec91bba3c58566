package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerAddress is the account server base URL used by the client.
	ServerAddress string
	// TailorAddress is the resume-tailoring API base URL used by the client.
	TailorAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Path is the local cache database file path.
	Path string
}

// ClientThrottle holds admission-control settings for generation calls.
type ClientThrottle struct {
	// MaxCallsPerMinute caps calls admitted within a sliding 60-second window.
	MaxCallsPerMinute int
	// MinCallSpacing is the minimum interval between two admitted calls.
	MinCallSpacing time.Duration
	// GenerationCooldown is the minimum interval between two credit spends.
	GenerationCooldown time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the balance sync job should run.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Throttle contains generation admission-control settings.
	Throttle ClientThrottle
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Adapter.ServerAddress,
			TailorAddress:  cfg.Adapter.TailorAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Path: cfg.Storage.Local.Path,
		},
		Throttle: ClientThrottle{
			MaxCallsPerMinute:  cfg.Throttle.MaxCallsPerMinute,
			MinCallSpacing:     cfg.Throttle.MinCallSpacing,
			GenerationCooldown: cfg.Throttle.GenerationCooldown,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}

	return clientCfg, clientCfg.validate()
}
