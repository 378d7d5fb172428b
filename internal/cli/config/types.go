// Package config loads hoshi CLI configuration.
//
// Values are layered, lowest to highest precedence: built-in defaults,
// hoshi.yaml (or hoshi.yml) found in the working directory or a parent,
// HOSHI_* environment variables, and flags set on the command line.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/hoshi/internal/engine"
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/lint"
)

// Default configuration values.
const (
	DefaultOutput         = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultColor          = "auto"
	DefaultQualifiedOrder = "name-first"
	DefaultHistoryFile    = ".hoshi_history" // relative to the home directory
)

// Config holds all CLI configuration options.
type Config struct {
	Output      string     `koanf:"output"`
	Color       string     `koanf:"color"`
	Pretty      bool       `koanf:"pretty"`
	Verbose     bool       `koanf:"verbose"`
	Concurrency int        `koanf:"concurrency"`
	Emit        EmitConfig `koanf:"emit"`
	Lint        LintConfig `koanf:"lint"`
	Repl        ReplConfig `koanf:"repl"`
}

// EmitConfig controls SQL emission.
type EmitConfig struct {
	// QualifiedOrder is "name-first" (id.users) or "qualifier-first" (users.id).
	QualifiedOrder string `koanf:"qualified_order"`
}

// LintConfig configures the checker.
//
//	lint:
//	  disabled: [HS04]
//	  severity:
//	    HS05: warning
//	  rules:
//	    HS03:
//	      ignore: [id]
type LintConfig struct {
	Disabled []string                  `koanf:"disabled"`
	Severity map[string]core.Severity  `koanf:"severity"`
	Rules    map[string]map[string]any `koanf:"rules"`
}

// ReplConfig configures the interactive shell.
type ReplConfig struct {
	HistoryFile string `koanf:"history_file"`
}

// Default returns the configuration used when nothing was loaded.
func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		Color:  DefaultColor,
		Emit:   EmitConfig{QualifiedOrder: DefaultQualifiedOrder},
		Repl:   ReplConfig{HistoryFile: DefaultHistoryFile},
	}
}

// LintConfig converts the lint section into checker configuration.
// Rule IDs are matched case-insensitively.
func (c *Config) LintConfig() *lint.Config {
	cfg := lint.NewConfig()
	for _, id := range c.Lint.Disabled {
		cfg.Disable(normalizeRuleID(id))
	}
	for id, sev := range c.Lint.Severity {
		cfg.SetSeverity(normalizeRuleID(id), sev)
	}
	for id, opts := range c.Lint.Rules {
		for key, value := range opts {
			cfg.SetOption(normalizeRuleID(id), key, value)
		}
	}
	return cfg
}

// FormatOptions converts the emit section into emitter options. Invalid
// values are rejected by Validate; here they fall back to the default.
func (c *Config) FormatOptions() format.Options {
	order, _ := format.ParseColumnOrder(c.Emit.QualifiedOrder)
	return format.Options{ColumnOrder: order}
}

// EngineConfig builds the engine configuration.
func (c *Config) EngineConfig(logger *slog.Logger) engine.Config {
	return engine.Config{
		Logger:      logger,
		Lint:        c.LintConfig(),
		Format:      c.FormatOptions(),
		Pretty:      c.Pretty,
		Concurrency: c.Concurrency,
	}
}
