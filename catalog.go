package linguist

import (
	"errors"
	"math"

	"github.com/snapcore/go-linguist/pluralforms"
)

// Catalog holds the translations of one application into one language,
// as stored in a single .ts document.
//
// The exported fields describe the document. A Catalog must not be
// modified once it has been returned by ParseTS, ReadFile, ParsePO or
// NewCatalog; from then on it is safe for concurrent use by any number
// of readers.
type Catalog struct {
	// Version is the version of the TS format, such as "2.0".
	Version string
	// Language is the target language, such as "bg_BG".
	Language string
	// SourceLanguage is the language of the source texts. Empty means
	// English.
	SourceLanguage string
	// DefaultCodec is the codec the application used for its source
	// texts, as declared by older versions of the format.
	DefaultCodec string
	Contexts     []*Context

	plural pluralforms.Rule

	// ownRule is set when plural came from the document itself, such as
	// a Plural-Forms header, rather than from Language.
	ownRule bool

	exact    map[msgKey]*Message
	bySource map[srcKey][]*Message
	byName   map[string]*Context
}

// NewCatalog builds a catalog from contexts created in code.
func NewCatalog(language, sourceLanguage string, contexts ...*Context) *Catalog {
	c := &Catalog{
		Version:        "2.1",
		Language:       language,
		SourceLanguage: sourceLanguage,
		Contexts:       contexts,
	}
	c.init(nil)
	return c
}

// init indexes the active messages. When a context holds several active
// messages with the same source and disambiguation, the first one wins.
func (c *Catalog) init(rule *pluralforms.Rule) {
	c.ownRule = rule != nil
	if rule != nil {
		c.plural = *rule
	} else {
		c.plural = pluralforms.ForLanguage(c.Language)
	}
	c.exact = make(map[msgKey]*Message)
	c.bySource = make(map[srcKey][]*Message)
	c.byName = make(map[string]*Context, len(c.Contexts))
	for _, ctx := range c.Contexts {
		if _, ok := c.byName[ctx.Name]; !ok {
			c.byName[ctx.Name] = ctx
		}
		for _, msg := range ctx.Messages {
			if !msg.Translation.Status.Active() {
				continue
			}
			key := msgKey{ctx.Name, msg.Source, msg.Comment}
			if _, ok := c.exact[key]; ok {
				continue
			}
			c.exact[key] = msg
			src := srcKey{ctx.Name, msg.Source}
			c.bySource[src] = append(c.bySource[src], msg)
		}
	}
}

// WithPluralRule returns a catalog sharing c's messages that selects
// plural forms with expr instead of the rule for c's language.
func (c *Catalog) WithPluralRule(expr pluralforms.Expression) *Catalog {
	cp := *c
	cp.plural = pluralforms.Rule{Expr: expr}
	return &cp
}

// PluralRule returns the rule used to select plural forms. Forms is zero
// for rules installed with WithPluralRule.
func (c *Catalog) PluralRule() pluralforms.Rule {
	return c.plural
}

// Context returns the context with the given name, or nil.
func (c *Catalog) Context(name string) *Context {
	return c.byName[name]
}

// Walk calls fn for every message in document order, including obsolete
// ones, until fn returns false.
func (c *Catalog) Walk(fn func(ctx *Context, msg *Message) bool) {
	for _, ctx := range c.Contexts {
		for _, msg := range ctx.Messages {
			if !fn(ctx, msg) {
				return
			}
		}
	}
}

func (c *Catalog) find(context, source, disambiguation string) *Message {
	if msg, ok := c.exact[msgKey{context, source, disambiguation}]; ok {
		return msg
	}
	if disambiguation != "" {
		return c.exact[msgKey{context, source, ""}]
	}
	if candidates := c.bySource[srcKey{context, source}]; len(candidates) == 1 {
		return candidates[0]
	}
	return nil
}

// Lookup returns the translation of source in the named context.
//
// disambiguation selects among messages sharing the same source text. If
// no message carries the requested disambiguation, the one without any
// is used; an empty disambiguation matches a message with any
// disambiguation, provided it is the only candidate.
//
// n is the count used to pick the plural form of numerus messages. A
// negative n means no count and selects the first form. Counts beyond
// the range of the plural rule are treated as its largest value. n is
// ignored for other messages.
//
// Obsolete messages and empty translations are never returned; a
// *LookupError is returned instead. If the plural rule selects a form the
// message lacks, the last form is returned along with a
// *PluralFormError.
func (c *Catalog) Lookup(context, source, disambiguation string, n int) (string, error) {
	miss := &LookupError{
		Language:       c.Language,
		Context:        context,
		Source:         source,
		Disambiguation: disambiguation,
	}
	msg := c.find(context, source, disambiguation)
	if msg == nil {
		return "", miss
	}
	tr := &msg.Translation
	if !msg.Numerus {
		if tr.Text == "" {
			return "", miss
		}
		return tr.Text, nil
	}

	if len(tr.Forms) == 0 {
		return "", miss
	}
	index := 0
	if n >= 0 && c.plural.Expr != nil {
		count := uint32(math.MaxUint32)
		if uint64(n) < math.MaxUint32 {
			count = uint32(n)
		}
		index = c.plural.Expr.Eval(count)
	}
	if index < 0 || index >= len(tr.Forms) {
		last := tr.Forms[len(tr.Forms)-1].Text
		if last == "" {
			return "", miss
		}
		return last, &PluralFormError{
			Language: c.Language,
			Context:  context,
			Source:   source,
			Index:    index,
			Forms:    len(tr.Forms),
		}
	}
	if tr.Forms[index].Text == "" {
		return "", miss
	}
	return tr.Forms[index].Text, nil
}

// Translate is like Lookup, but never fails: the source text is returned
// when there is no translation, and the closest plural form when the
// requested one is missing.
func (c *Catalog) Translate(context, source, disambiguation string, n int) string {
	text, err := c.Lookup(context, source, disambiguation, n)
	if err == nil || errors.Is(err, ErrPluralFormMismatch) {
		return text
	}
	return source
}

// Stats summarises the state of a catalog.
type Stats struct {
	Contexts   int
	Messages   int
	Finished   int
	Unfinished int
	Obsolete   int
	Numerus    int
	// Untranslated counts active messages with an empty translation.
	Untranslated int
	// FormMismatch counts active numerus messages whose number of forms
	// differs from what the plural rule expects.
	FormMismatch int
}

// Stats counts the messages of c by state.
func (c *Catalog) Stats() Stats {
	s := Stats{Contexts: len(c.Contexts)}
	c.Walk(func(_ *Context, msg *Message) bool {
		s.Messages++
		tr := &msg.Translation
		switch tr.Status {
		case Finished:
			s.Finished++
		case Unfinished:
			s.Unfinished++
		default:
			s.Obsolete++
			return true
		}
		if msg.Numerus {
			s.Numerus++
			if c.plural.Forms > 0 && len(tr.Forms) != c.plural.Forms {
				s.FormMismatch++
			}
			for _, form := range tr.Forms {
				if form.Text == "" {
					s.Untranslated++
					break
				}
			}
		} else if tr.Text == "" {
			s.Untranslated++
		}
		return true
	})
	return s
}
