// Package config provides configuration loading and defaults for vitalwatch.
package config

// DefaultExportDir is the default location of WHOOP CSV exports.
const DefaultExportDir = "~/whoop-data"

// DefaultConfigDir is the default location for vitalwatch configuration.
const DefaultConfigDir = "~/.config/vitalwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "vitalwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultRetrieval holds the default retrieval tuning.
var DefaultRetrieval = Retrieval{
	MaxResults:  10,
	SummaryCap:  8,
	HistoryDays: 30,
}

// DefaultForecast holds the default forecast settings.
var DefaultForecast = Forecast{
	SaveHistory:  false,
	HistoryLimit: 20,
	ShowWithheld: false,
}

// DefaultAssistant holds the default LLM assistant settings.
var DefaultAssistant = Assistant{
	Provider:  "anthropic",
	Model:     "claude-sonnet-4-20250514",
	MaxTokens: 1024,
}

// DefaultWatch holds the default watcher settings.
var DefaultWatch = Watch{
	IntervalSeconds: 300,
	Notify:          true,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
