// Package config provides configuration management for the epochscript CLI.
package config

import (
	"runtime"
	"time"
)

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string      `koanf:"output"`
	Verbose      bool        `koanf:"verbose"`
	LogLevel     string      `koanf:"log_level"`
	Jobs         int         `koanf:"jobs"`
	Extensions   []string    `koanf:"extensions"`
	Raw          bool        `koanf:"raw"`
	Watch        WatchConfig `koanf:"watch"`
	REPL         REPLConfig  `koanf:"repl"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when none was found. Not read from any source.
	ProjectRoot string `koanf:"-"`
}

// WatchConfig holds options for the watch command.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

// Debounce returns the debounce interval as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// REPLConfig holds options for the repl command.
type REPLConfig struct {
	HistoryFile string `koanf:"history_file"`
}

// Default configuration values.
const (
	DefaultOutput     = "auto"
	DefaultLogLevel   = "warn"
	DefaultExtension  = ".eps"
	DefaultDebounceMS = 100
	DefaultEnvPrefix  = "EPOCHSCRIPT_"
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"epochscript.yaml", "epochscript.yml"}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		Jobs:         runtime.NumCPU(),
		Extensions:   []string{DefaultExtension},
		Watch:        WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}

// defaultsMap mirrors Default for the koanf confmap provider.
func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"output":            d.OutputFormat,
		"verbose":           d.Verbose,
		"log_level":         d.LogLevel,
		"jobs":              d.Jobs,
		"extensions":        d.Extensions,
		"raw":               d.Raw,
		"watch.debounce_ms": d.Watch.DebounceMS,
		"repl.history_file": d.REPL.HistoryFile,
	}
}
