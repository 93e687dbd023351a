package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RecipePath string // hcl recipe files
	RecipeID   string // which recipe to compile; optional for single-recipe paths
	Format     string // target workflow format

	CatalogPath string // hcl tool manifests
	CatalogURL  string // catalog service bulk-lookup endpoint

	OutPath   string // result destination; empty means stdout
	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RecipePath == "" {
		return nil, errors.New("RecipePath is a required configuration field and cannot be empty")
	}
	if cfg.CatalogPath != "" && cfg.CatalogURL != "" {
		return nil, errors.New("catalog and catalog-url are mutually exclusive; provide at most one")
	}

	return &cfg, nil
}
