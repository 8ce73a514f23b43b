package services

import (
	"fmt"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driven"
)

// Config keys for engine settings.
const (
	keyEngineStrategy = "engine.strategy"
	keyEngineMaxDepth = "engine.max_depth"
)

// EngineSettings selects the default materializer and its options.
type EngineSettings struct {
	Strategy domain.Strategy
	Options  Options
}

// DefaultEngineSettings returns the settings used when nothing is configured.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Strategy: domain.StrategyIndexed,
		Options:  Options{MaxDepth: DefaultMaxDepth},
	}
}

func (s EngineSettings) withDefaults() EngineSettings {
	defaults := DefaultEngineSettings()
	if s.Strategy == "" {
		s.Strategy = defaults.Strategy
	}
	if s.Options.MaxDepth <= 0 {
		s.Options.MaxDepth = defaults.Options.MaxDepth
	}
	return s
}

// LoadEngineSettings reads engine settings from the config store.
// Missing keys fall back to defaults; an unknown strategy or a negative
// depth limit is an error.
func LoadEngineSettings(cfg driven.ConfigStore) (EngineSettings, error) {
	settings := DefaultEngineSettings()
	if cfg == nil {
		return settings, nil
	}

	if raw := cfg.GetString(keyEngineStrategy); raw != "" {
		strategy := domain.Strategy(raw)
		if !strategy.IsValid() {
			return EngineSettings{}, fmt.Errorf("%s: %w: %q", keyEngineStrategy, domain.ErrUnsupportedStrategy, raw)
		}
		settings.Strategy = strategy
	}

	if _, ok := cfg.Get(keyEngineMaxDepth); ok {
		depth := cfg.GetInt(keyEngineMaxDepth)
		if depth <= 0 {
			return EngineSettings{}, fmt.Errorf("%s: %w: must be positive, got %d",
				keyEngineMaxDepth, domain.ErrInvalidInput, depth)
		}
		settings.Options.MaxDepth = depth
	}

	return settings, nil
}
