package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/snapcore/go-linguist/pluralforms"
)

// validation errors.
var (
	errEmptyDomain      = errors.New("catalog.domain cannot be empty")
	errInvalidLogLevel  = errors.New("invalid log.level value")
	errInvalidLogFormat = errors.New("invalid log.format value, expected console or json")
)

// validate checks the configuration and compiles the plural rule
// overrides.
func (cfg *Config) validate() error {
	if cfg.Catalog.Domain == "" {
		return errEmptyDomain
	}

	if level, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || level == zerolog.NoLevel {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	cfg.Catalog.plurals = make(map[string]pluralforms.Expression, len(cfg.Catalog.PluralRules))
	for lang, rule := range cfg.Catalog.PluralRules {
		expr, err := pluralforms.Compile(rule)
		if err != nil {
			return fmt.Errorf("invalid plural rule for %s: %w", lang, err)
		}
		cfg.Catalog.plurals[lang] = expr
	}

	return nil
}
