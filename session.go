package linguist

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Session holds the Translator of an application's current language.
//
// SwitchLocale builds the new Translator off to the side and publishes
// it with a single atomic store, so concurrent readers always see either
// the old or the new language, never a mix of both.
type Session struct {
	domain  *TextDomain
	current atomic.Pointer[Translator]
}

// NewSession returns a Session for domain that translates nothing until
// SwitchLocale succeeds.
func NewSession(domain *TextDomain) *Session {
	s := &Session{domain: domain}
	s.current.Store(&Translator{})
	return s
}

// SwitchLocale makes languages the current languages of the session.
//
// If a catalog of any requested language is malformed, or none of the
// languages has a catalog, the current Translator is kept and an error
// is returned. The latter matches ErrLocaleNotFound.
func (s *Session) SwitchLocale(languages ...string) error {
	tr, err := s.domain.locale(languages)
	if err != nil {
		return err
	}
	if len(tr.catalogs) == 0 {
		return fmt.Errorf("failed to load language %s: %w", strings.Join(languages, ", "), ErrLocaleNotFound)
	}
	s.current.Store(tr)
	s.domain.logger().Info().
		Strs("languages", languages).
		Str("locale", tr.Language()).
		Msg("Switched locale")
	return nil
}

// Translator returns the current Translator.
func (s *Session) Translator() *Translator {
	return s.current.Load()
}

// Language returns the language of the current Translator, or the empty
// string while the session shows source texts.
func (s *Session) Language() string {
	return s.Translator().Language()
}

// Translate translates source with the current Translator.
func (s *Session) Translate(context, source, disambiguation string, n int) string {
	return s.Translator().Translate(context, source, disambiguation, n)
}

// Tr translates source in context with the current Translator.
func (s *Session) Tr(context, source string) string {
	return s.Translator().Tr(context, source)
}

// TrN translates a numerus message with the current Translator.
func (s *Session) TrN(context, source string, n int) string {
	return s.Translator().TrN(context, source, n)
}
