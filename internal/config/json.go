package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		AdminEmails     []string `json:"admin_emails"`
		StartingCredits int64    `json:"starting_credits"`
		Version         string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`

		Local struct {
			Path string `json:"path"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		RateLimitPerMinute int      `json:"rate_limit_per_minute"`
	} `json:"server,omitempty"`

	Billing struct {
		StripeKey     string `json:"stripe_key"`
		WebhookSecret string `json:"webhook_secret"`
		Pack3PriceID  string `json:"pack3_price_id"`
		Pack8PriceID  string `json:"pack8_price_id"`
		SuccessURL    string `json:"success_url"`
		CancelURL     string `json:"cancel_url"`
	} `json:"billing,omitempty"`

	Adapter struct {
		ServerAddress  string   `json:"server_address"`
		TailorAddress  string   `json:"tailor_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Throttle struct {
		MaxCallsPerMinute  int      `json:"max_calls_per_minute"`
		MinCallSpacing     Duration `json:"min_call_spacing"`
		GenerationCooldown Duration `json:"generation_cooldown"`
	} `json:"throttle,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:    jsonCfg.App.TokenSignKey,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.App.TokenDuration),
			AdminEmails:     jsonCfg.App.AdminEmails,
			StartingCredits: jsonCfg.App.StartingCredits,
			Version:         jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
			Local: Local{
				Path: jsonCfg.Storage.Local.Path,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimitPerMinute: jsonCfg.Server.RateLimitPerMinute,
		},
		Billing: Billing{
			StripeKey:     jsonCfg.Billing.StripeKey,
			WebhookSecret: jsonCfg.Billing.WebhookSecret,
			Pack3PriceID:  jsonCfg.Billing.Pack3PriceID,
			Pack8PriceID:  jsonCfg.Billing.Pack8PriceID,
			SuccessURL:    jsonCfg.Billing.SuccessURL,
			CancelURL:     jsonCfg.Billing.CancelURL,
		},
		Adapter: Adapter{
			ServerAddress:  jsonCfg.Adapter.ServerAddress,
			TailorAddress:  jsonCfg.Adapter.TailorAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Throttle: Throttle{
			MaxCallsPerMinute:  jsonCfg.Throttle.MaxCallsPerMinute,
			MinCallSpacing:     time.Duration(jsonCfg.Throttle.MinCallSpacing),
			GenerationCooldown: time.Duration(jsonCfg.Throttle.GenerationCooldown),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
