package config

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging sets the global zerolog level and points the global
// logger at f, in the configured format.
func SetupLogging(cfg *Config, f *os.File) {
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	var w io.Writer = f
	if cfg.Log.Format != "json" {
		w = ConsoleWriter(f)
	}
	log.Logger = log.Output(w)
}

// isTerminal returns true if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// ConsoleWriter returns a writer for zerolog that has NoColor:isTerminal(f).
func ConsoleWriter(f *os.File) io.Writer {
	return zerolog.ConsoleWriter{Out: f, NoColor: !isTerminal(f), TimeFormat: time.DateTime}
}
