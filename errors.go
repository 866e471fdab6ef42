package linguist

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("malformed translation catalog")
	// ErrLookupMiss is matched by every *LookupError.
	ErrLookupMiss = errors.New("no active translation")
	// ErrPluralFormMismatch is matched by every *PluralFormError.
	ErrPluralFormMismatch = errors.New("plural form not present")
	// ErrLocaleNotFound is returned when none of the requested locales
	// has a catalog.
	ErrLocaleNotFound = errors.New("no catalog for locale")
)

// ParseError reports a catalog that could not be loaded.
type ParseError struct {
	// File is the path of the catalog, if it was read from a file.
	File string
	// Line is the line of the document where the problem was found, or
	// zero if it is not known.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	name := e.File
	if name == "" {
		name = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("cannot parse %s:%d: %v", name, e.Line, e.Err)
	}
	return fmt.Sprintf("cannot parse %s: %v", name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// LookupError reports that no active message matches a lookup key.
type LookupError struct {
	Language       string
	Context        string
	Source         string
	Disambiguation string
}

func (e *LookupError) Error() string {
	if e.Disambiguation != "" {
		return fmt.Sprintf("%s: no %s translation for %q (%s) in context %q",
			ErrLookupMiss, e.Language, e.Source, e.Disambiguation, e.Context)
	}
	return fmt.Sprintf("%s: no %s translation for %q in context %q",
		ErrLookupMiss, e.Language, e.Source, e.Context)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookupMiss
}

// PluralFormError reports a plural form index that a numerus message
// does not define.
type PluralFormError struct {
	Language string
	Context  string
	Source   string
	// Index is the form selected by the plural rule and Forms the number
	// of forms the message has.
	Index int
	Forms int
}

func (e *PluralFormError) Error() string {
	return fmt.Sprintf("%s: %s message %q in context %q has %d forms, wanted form %d",
		ErrPluralFormMismatch, e.Language, e.Source, e.Context, e.Forms, e.Index)
}

func (e *PluralFormError) Is(target error) bool {
	return target == ErrPluralFormMismatch
}
