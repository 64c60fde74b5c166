package app

import (
	"fmt"

	"github.com/blackwell-systems/vitalwatch/internal/config"
	"github.com/blackwell-systems/vitalwatch/internal/health"
	"github.com/blackwell-systems/vitalwatch/internal/kb"
	"github.com/blackwell-systems/vitalwatch/internal/output"
	"github.com/blackwell-systems/vitalwatch/internal/store"
)

// sessionData holds everything a command run needs, built fresh per
// invocation. There are no long-lived singletons; commands are stateless
// over the export directory.
type sessionData struct {
	cfg   *config.Config
	rows  []health.MetricRow
	facts []kb.Fact
}

// loadConfig applies global flags and loads the configuration.
func loadConfig() (*config.Config, error) {
	if flagNoColor {
		output.SetNoColor(true)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDataDir != "" {
		cfg.ExportDir = flagDataDir
	}
	return cfg, nil
}

// loadData loads the config and the full metric table. Commands that need
// the knowledge base call buildFacts afterwards.
func loadData() (*sessionData, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	rows, err := health.LoadDir(cfg.ExportDir)
	if err != nil {
		return nil, fmt.Errorf("loading export data from %s: %w", cfg.ExportDir, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no CSV data found in %s (set export_dir in config or pass --data-dir)", cfg.ExportDir)
	}

	return &sessionData{cfg: cfg, rows: rows}, nil
}

// buildFacts constructs the knowledge base from the loaded rows, caching it
// for the rest of the command run.
func (d *sessionData) buildFacts() []kb.Fact {
	if d.facts == nil {
		d.facts = kb.Build(d.rows, health.CurrentMetrics(d.rows))
	}
	return d.facts
}

// openStore opens the SQLite database at the configured location.
func openStore() (*store.DB, error) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
