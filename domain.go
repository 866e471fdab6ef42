// Package linguist loads Qt Linguist translation catalogs (.ts files) and
// looks up translated strings in them.
//
// A TextDomain finds the catalogs of an application on disk, one file
// per language, and builds Translators that consult them in order of
// preference. A Session holds the Translator of the current UI language
// and switches it atomically.
package linguist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/snapcore/go-linguist/pluralforms"
)

// TextDomain represents the translatable strings of one application.
//
// The Locale and UserLocale methods can be used to access translations
// of those strings in various languages. Catalogs are loaded on first
// use and cached.
type TextDomain struct {
	// Name is the name of the text domain, the prefix of its catalog
	// files.
	Name string
	// LocaleDir is the directory holding the catalogs of the domain. If
	// it is empty, DefaultLocaleDir will be used.
	LocaleDir string
	// PathResolver is called to determine the path of a particular
	// locale's catalog. If it is nil then DefaultResolver will be used.
	PathResolver PathResolver
	// PluralResolver returns the plural rule for a catalog's language.
	// If it is nil then pluralforms.ForLanguage will be used.
	PluralResolver PluralResolver
	// StrictMissing makes Translators log every missing translation once.
	StrictMissing bool
	// Logger receives load and lookup events. If it is nil, the global
	// zerolog logger is used.
	Logger *zerolog.Logger

	mu      sync.Mutex
	cache   map[string]*domainEntry
	missing sync.Map
}

type domainEntry struct {
	mu      sync.Mutex
	done    bool
	catalog *Catalog
}

// DefaultLocaleDir is where catalogs are looked up when
// TextDomain.LocaleDir is empty.
const DefaultLocaleDir = "lang"

// PathResolver resolves the path of a catalog.
type PathResolver func(root string, locale string, domain string) string

// PluralResolver returns the plural rule of a language.
type PluralResolver func(language string) pluralforms.Rule

// DefaultResolver resolves paths in the format used by Qt applications:
// <root>/<domain>_<locale>.ts
func DefaultResolver(root string, locale string, domain string) string {
	return filepath.Join(root, fmt.Sprintf("%s_%s.ts", domain, locale))
}

func (t *TextDomain) logger() *zerolog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	l := log.With().Str("sys", "linguist").Logger()
	return &l
}

func (t *TextDomain) localeDir() string {
	if t.LocaleDir == "" {
		return DefaultLocaleDir
	}
	return t.LocaleDir
}

// candidates returns the paths tried for a locale, in order.
func (t *TextDomain) candidates(locale string) []string {
	resolver := t.PathResolver
	if resolver == nil {
		resolver = DefaultResolver
	}
	path := resolver(t.localeDir(), locale, t.Name)
	paths := []string{path, path + ".gz", path + ".zst"}
	if strings.HasSuffix(path, ".ts") {
		base := strings.TrimSuffix(path, ".ts")
		paths = append(paths, base+".po", base+".mo")
	}
	return paths
}

// Load returns the catalog of a single locale, such as "bg_BG", without
// any fallback. It returns nil and no error if the locale has no
// catalog.
//
// The result is cached, including the absence of a catalog. A catalog
// that fails to parse is not cached, so that a corrected file can be
// loaded by a later call.
func (t *TextDomain) Load(locale string) (*Catalog, error) {
	t.mu.Lock()
	if t.cache == nil {
		t.cache = make(map[string]*domainEntry)
	}
	entry, ok := t.cache[locale]
	if !ok {
		entry = &domainEntry{}
		t.cache[locale] = entry
	}
	t.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.done {
		return entry.catalog, nil
	}
	catalog, err := t.read(locale)
	if err != nil {
		return nil, err
	}
	entry.catalog, entry.done = catalog, true
	return catalog, nil
}

func (t *TextDomain) read(locale string) (*Catalog, error) {
	logger := t.logger()
	for _, path := range t.candidates(locale) {
		catalog, err := ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			logger.Error().
				Err(err).
				Str("locale", locale).
				Str("path", path).
				Msg("Failed to load language")
			return nil, fmt.Errorf("failed to load language %s: %w", locale, err)
		}

		if catalog.Language == "" {
			catalog.Language = locale
			if !catalog.ownRule {
				catalog.plural = pluralforms.ForLanguage(locale)
			}
		}
		if t.PluralResolver != nil {
			catalog.plural = t.PluralResolver(catalog.Language)
		}
		stats := catalog.Stats()
		logger.Info().
			Str("locale", locale).
			Str("path", path).
			Int("contexts", stats.Contexts).
			Int("messages", stats.Messages).
			Msg("Loaded locale")
		if stats.FormMismatch > 0 {
			logger.Warn().
				Str("locale", locale).
				Int("messages", stats.FormMismatch).
				Int("forms", catalog.plural.Forms).
				Msg("Numerus messages do not match the plural rule")
		}
		return catalog, nil
	}
	logger.Debug().Str("locale", locale).Str("domain", t.Name).Msg("No catalog for locale")
	return nil, nil
}

// Preload loads a list of locales concurrently (if they're available).
// This is useful if you want to limit IO to a specific time in your app,
// for example startup. Subsequent calls to Preload or Locale using a
// locale given here will not do any IO.
//
// The first parse error is returned.
func (t *TextDomain) Preload(locales ...string) error {
	var g errgroup.Group
	for _, locale := range locales {
		g.Go(func() error {
			_, err := t.Load(locale)
			return err
		})
	}
	return g.Wait()
}

// Locale returns a Translator for a list of languages.
//
// Each language is expanded into its fallbacks (bg_BG.UTF-8 gives
// bg_BG.utf8, bg_BG, bg and so on). If a translation is not found in the
// first catalog, each subsequent one is consulted until a match is
// found. If no match is found, the original strings are returned.
// Missing and broken catalogs are skipped.
func (t *TextDomain) Locale(languages ...string) *Translator {
	tr, _ := t.locale(languages)
	return tr
}

// locale is like Locale, but also returns the first load error.
func (t *TextDomain) locale(languages []string) (*Translator, error) {
	tr := &Translator{
		strict:  t.StrictMissing,
		logger:  *t.logger(),
		missing: &t.missing,
	}
	var firstErr error
	for _, lang := range normalizeLanguages(languages) {
		catalog, err := t.Load(lang)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if catalog != nil {
			tr.catalogs = append(tr.catalogs, catalog)
		}
	}
	return tr, firstErr
}

// UserLocale returns a Translator for the user's languages, as given by
// the environment.
func (t *TextDomain) UserLocale() *Translator {
	return t.Locale(UserLanguages()...)
}

// available maps the tags of the catalogs found in the locale
// directory to the locale names used in their file names.
func (t *TextDomain) available() ([]language.Tag, []string, error) {
	entries, err := os.ReadDir(t.localeDir())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read locale directory: %w", err)
	}
	prefix := t.Name + "_"
	byTag := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, ext := range fileExtensions {
			if !strings.HasSuffix(name, ext) {
				continue
			}
			locale := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
			tag, err := pluralforms.ParseLocale(locale)
			if err != nil {
				t.logger().Warn().Err(err).Str("file", name).Msg("Skipping invalid locale file")
				break
			}
			if _, ok := byTag[tag.String()]; !ok {
				byTag[tag.String()] = locale
			}
			break
		}
	}

	keys := make([]string, 0, len(byTag))
	for key := range byTag {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	tags := make([]language.Tag, len(keys))
	locales := make([]string, len(keys))
	for i, key := range keys {
		tags[i] = language.MustParse(key)
		locales[i] = byTag[key]
	}
	return tags, locales, nil
}

// Available returns the languages that have a catalog in the locale
// directory, sorted by tag. It assumes the file layout of
// DefaultResolver.
func (t *TextDomain) Available() ([]language.Tag, error) {
	tags, _, err := t.available()
	return tags, err
}

// Match returns the locale name of the available catalog that best
// matches the given preferences. Preferences may be locale names such as
// "bg_BG.UTF-8" or HTTP Accept-Language values such as
// "bg-BG,bg;q=0.9,en;q=0.5". ErrLocaleNotFound is returned when nothing
// matches.
func (t *TextDomain) Match(preferences ...string) (string, error) {
	tags, locales, err := t.available()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("%w: no catalogs in %s", ErrLocaleNotFound, t.localeDir())
	}

	var wanted []language.Tag
	for _, pref := range preferences {
		if strings.ContainsAny(pref, ",;") {
			accepted, _, err := language.ParseAcceptLanguage(pref)
			if err != nil {
				continue
			}
			wanted = append(wanted, accepted...)
			continue
		}
		if tag, err := pluralforms.ParseLocale(pref); err == nil {
			wanted = append(wanted, tag)
		}
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(wanted...)
	if confidence == language.No {
		return "", fmt.Errorf("%w: %s", ErrLocaleNotFound, strings.Join(preferences, ", "))
	}
	return locales[index], nil
}
