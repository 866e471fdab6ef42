package linguist

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// Translator looks up messages in an ordered list of catalogs, such as
// bg_BG followed by bg. Use TextDomain.Locale to obtain one.
//
// The zero value translates nothing and returns the source text of every
// message.
type Translator struct {
	catalogs []*Catalog

	strict bool
	logger zerolog.Logger
	// missing deduplicates strict mode warnings. The key is
	// msg+"\x00"+language+"\x00"+context+"\x04"+source.
	missing *sync.Map
}

// NewTranslator returns a Translator consulting catalogs in order.
func NewTranslator(catalogs ...*Catalog) *Translator {
	return &Translator{
		catalogs: catalogs,
		logger:   zerolog.Nop(),
		missing:  &sync.Map{},
	}
}

// Catalogs returns the catalogs consulted by t, in order.
func (t *Translator) Catalogs() []*Catalog {
	return t.catalogs
}

// Language returns the language of the first catalog, or the empty
// string if t has none.
func (t *Translator) Language() string {
	if len(t.catalogs) == 0 {
		return ""
	}
	return t.catalogs[0].Language
}

// Lookup asks each catalog in turn and returns the first translation
// found. When every catalog misses, the error of the last one is
// returned. A *PluralFormError is returned together with the closest
// plural form, as by Catalog.Lookup.
func (t *Translator) Lookup(context, source, disambiguation string, n int) (string, error) {
	var err error = &LookupError{Context: context, Source: source, Disambiguation: disambiguation}
	for _, c := range t.catalogs {
		var text string
		text, err = c.Lookup(context, source, disambiguation, n)
		if err == nil || errors.Is(err, ErrPluralFormMismatch) {
			return text, err
		}
	}
	return "", err
}

// Translate returns the translation of source, falling back to source
// itself when no catalog has one. See Catalog.Lookup for the meaning of
// the arguments.
func (t *Translator) Translate(context, source, disambiguation string, n int) string {
	text, err := t.Lookup(context, source, disambiguation, n)
	switch {
	case err == nil:
		return text
	case errors.Is(err, ErrPluralFormMismatch):
		t.logMissingOnce(context, source, err, "Plural form mismatch")
		return text
	}
	t.logMissingOnce(context, source, err, "Missing translation")
	return source
}

// Tr translates source in context.
func (t *Translator) Tr(context, source string) string {
	return t.Translate(context, source, "", -1)
}

// TrN translates a numerus message, picking the plural form for n.
//
//	linguist.ArgN(tr.TrN("Events", "%n new event(s)", 7), 7)
func (t *Translator) TrN(context, source string, n int) string {
	return t.Translate(context, source, "", n)
}

// logMissingOnce logs a failed lookup once per (message, language,
// context, source) when strict mode is enabled.
func (t *Translator) logMissingOnce(context, source string, err error, msg string) {
	if !t.strict || t.missing == nil {
		return
	}
	language := t.Language()
	id := msg + "\x00" + language + "\x00" + context + "\x04" + source
	if _, loaded := t.missing.LoadOrStore(id, struct{}{}); !loaded {
		t.logger.Warn().
			Err(err).
			Str("locale", language).
			Str("context", context).
			Str("source", source).
			Msg(msg)
	}
}
