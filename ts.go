package linguist

// Status marks whether a translation may be served. The zero value is
// Finished, the state of a translation without a type attribute.
type Status int

const (
	// Finished translations have been reviewed and are served.
	Finished Status = iota
	// Unfinished translations are served, but still await review.
	Unfinished
	// Obsolete translations belong to source strings that no longer
	// exist. They are kept for reference and never served.
	Obsolete
	// Vanished is the Qt 5 spelling of Obsolete for messages that
	// disappeared from the sources but whose translation was finished.
	Vanished
)

var statusNames = [...]string{
	Finished:   "",
	Unfinished: "unfinished",
	Obsolete:   "obsolete",
	Vanished:   "vanished",
}

// String returns the value of the type attribute for s.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "invalid"
	}
	return statusNames[s]
}

// Active reports whether a translation with this status may be returned
// by a lookup.
func (s Status) Active() bool {
	return s == Finished || s == Unfinished
}

func parseStatus(attr string) (Status, bool) {
	for s, name := range statusNames {
		if name == attr {
			return Status(s), true
		}
	}
	return Finished, false
}

// Location points at a use of a message in the application sources.
type Location struct {
	Filename string
	Line     string
}

// Text is a translated string together with its length variants. When a
// translation declares variants, Variants holds all of them in order of
// preference and Text is the first one.
type Text struct {
	Text     string
	Variants []string
}

// String returns the text served to callers.
func (t Text) String() string {
	return t.Text
}

// Translation is the translated side of a message. Singular messages use
// Text and Variants; numerus messages use Forms, indexed by the plural
// rule of the catalog's language.
type Translation struct {
	Status   Status
	Text     string
	Variants []string
	Forms    []Text
}

// Message is a single translatable unit.
type Message struct {
	// ID is the optional identifier used by id based translation.
	ID string
	// Source is the text in the source language. Together with the
	// context name and Comment it forms the lookup key.
	Source    string
	OldSource string
	// Comment disambiguates messages with identical source text.
	Comment    string
	OldComment string
	// ExtraComment and TranslatorComment are notes for translators and
	// take no part in lookup.
	ExtraComment      string
	TranslatorComment string
	Locations         []Location
	// Numerus is set for messages with plural forms.
	Numerus     bool
	Translation Translation
}

// Context groups the messages of one UI component.
type Context struct {
	Name     string
	Comment  string
	Messages []*Message
}

type msgKey struct {
	context, source, comment string
}

type srcKey struct {
	context, source string
}
