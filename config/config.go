// Package config loads the settings of applications and tools built on
// go-linguist: where the catalogs live, which languages to use and how
// to log.
//
// Settings are layered. Defaults are applied first, then a YAML file,
// then LINGUIST_* environment variables.
package config

import (
	"github.com/rs/zerolog"

	"github.com/snapcore/go-linguist"
	"github.com/snapcore/go-linguist/pluralforms"
)

// Config is the complete configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig selects the catalogs to load.
type CatalogConfig struct {
	// Dir is the directory holding <domain>_<locale>.ts files.
	Dir string `yaml:"dir" env:"LINGUIST_DIR"`
	// Domain is the catalog file name prefix, such as "skype".
	Domain string `yaml:"domain" env:"LINGUIST_DOMAIN"`
	// Languages are the preferred languages, most preferred first. When
	// empty, the user's environment decides.
	Languages []string `yaml:"languages" env:"LINGUIST_LANGUAGES"`
	// StrictMissingKeys logs every missing translation once.
	StrictMissingKeys bool `yaml:"strict_missing_keys" env:"LINGUIST_STRICT_MISSING_KEYS"`
	// PluralRules overrides the plural rule of a language with a gettext
	// plural expression, for example {"bg": "n != 1"}.
	PluralRules map[string]string `yaml:"plural_rules"`

	plurals map[string]pluralforms.Expression
}

// LogConfig configures the global zerolog logger.
type LogConfig struct {
	// Level is one of the zerolog level names.
	Level string `yaml:"level" env:"LINGUIST_LOG_LEVEL"`
	// Format is "console" or "json".
	Format string `yaml:"format" env:"LINGUIST_LOG_FORMAT"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Dir:    linguist.DefaultLocaleDir,
			Domain: "skype",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// and the environment, in that order. An empty path or a missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.readYAML(path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TextDomain returns the text domain described by cfg, logging to
// logger. Plural rule overrides take precedence over the built-in rules.
func (cfg *Config) TextDomain(logger *zerolog.Logger) *linguist.TextDomain {
	td := &linguist.TextDomain{
		Name:          cfg.Catalog.Domain,
		LocaleDir:     cfg.Catalog.Dir,
		StrictMissing: cfg.Catalog.StrictMissingKeys,
		Logger:        logger,
	}
	if len(cfg.Catalog.plurals) > 0 {
		td.PluralResolver = cfg.Catalog.pluralRule
	}
	return td
}

// pluralRule returns the override for language, or for its base
// language, falling back to pluralforms.ForLanguage.
func (c *CatalogConfig) pluralRule(language string) pluralforms.Rule {
	if expr, ok := c.plurals[language]; ok {
		return pluralforms.Rule{Expr: expr}
	}
	if tag, err := pluralforms.ParseLocale(language); err == nil {
		base, _ := tag.Base()
		if expr, ok := c.plurals[base.String()]; ok {
			return pluralforms.Rule{Expr: expr}
		}
	}
	return pluralforms.ForLanguage(language)
}
