package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bnema/wakasync/internal/config"
	"github.com/bnema/wakasync/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	config     config.Config
	httpClient *http.Client
	clock      ports.Clock
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return &app{
		config:     cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		clock:      ports.SystemClock{},
	}, nil
}

// exportOptions are the per-invocation overrides applied on top of the
// resolved configuration.
type exportOptions struct {
	databasePath   string
	solidtimeURL   string
	apiKey         string
	organizationID string
	gapSeconds     int
	minDurationSec int
}

func (a *app) effectiveConfig(opts exportOptions) config.Config {
	cfg := a.config
	if opts.databasePath != "" {
		cfg.DatabasePath = opts.databasePath
	}
	if opts.solidtimeURL != "" {
		cfg.SolidtimeURL = opts.solidtimeURL
	}
	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}
	if opts.organizationID != "" {
		cfg.OrganizationID = opts.organizationID
	}
	if opts.gapSeconds > 0 {
		cfg.Gap = time.Duration(opts.gapSeconds) * time.Second
	}
	if opts.minDurationSec > 0 {
		cfg.MinDuration = time.Duration(opts.minDurationSec) * time.Second
	}

	return cfg
}
