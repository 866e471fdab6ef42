package linguist

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/snapcore/go-linguist/pluralforms"
)

// DefaultPOContext is the context that receives gettext entries without
// a msgctxt.
var DefaultPOContext = ""

const (
	moMagicLE = 0x950412de
	moMagicBE = 0xde120495
)

var errBadMagic = errors.New("bad magic number")

// ParsePO imports a gettext .po file. Each msgctxt becomes a context,
// msgid becomes the source text and plural entries become numerus
// messages with their msgstr[N] in order.
//
// language names the target language; if it is empty the Language
// header of the file is used. A valid Plural-Forms header replaces the
// built-in rule of the language. Entries without a translation are
// imported as unfinished.
func ParsePO(r io.Reader, language string) (*Catalog, error) {
	return parsePO(r, language, "")
}

// ParseMO is like ParsePO for compiled .mo files.
func ParseMO(r io.Reader, language string) (*Catalog, error) {
	return parseMO(r, language, "")
}

func parsePO(r io.Reader, language, file string) (*Catalog, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	po := gotext.NewPo()
	po.Parse(buf)
	return importDomain(po.GetDomain(), language, file)
}

func parseMO(r io.Reader, language, file string) (*Catalog, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	if len(buf) < 28 {
		return nil, &ParseError{File: file, Err: io.ErrUnexpectedEOF}
	}
	if magic := binary.LittleEndian.Uint32(buf); magic != moMagicLE && magic != moMagicBE {
		return nil, &ParseError{File: file, Err: errBadMagic}
	}
	mo := gotext.NewMo()
	mo.Parse(buf)
	return importDomain(mo.GetDomain(), language, file)
}

func importDomain(dom *gotext.Domain, language, file string) (*Catalog, error) {
	if language == "" {
		language = dom.Headers.Get("Language")
	}

	catalog := &Catalog{Version: "2.1", Language: language}
	if ctx := gettextContext(DefaultPOContext, dom.GetTranslations()); len(ctx.Messages) > 0 {
		catalog.Contexts = append(catalog.Contexts, ctx)
	}
	ctxTs := dom.GetCtxTranslations()
	names := make([]string, 0, len(ctxTs))
	for name := range ctxTs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ctx := gettextContext(name, ctxTs[name])
		if name == DefaultPOContext && len(catalog.Contexts) > 0 && catalog.Contexts[0].Name == name {
			catalog.Contexts[0].Messages = append(catalog.Contexts[0].Messages, ctx.Messages...)
			continue
		}
		catalog.Contexts = append(catalog.Contexts, ctx)
	}

	rule, err := gettextPluralRule(dom.Headers.Get("Plural-Forms"))
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	catalog.init(rule)
	return catalog, nil
}

func gettextContext(name string, translations map[string]*gotext.Translation) *Context {
	ids := make([]string, 0, len(translations))
	for id := range translations {
		if id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	ctx := &Context{Name: name}
	for _, id := range ids {
		ctx.Messages = append(ctx.Messages, gettextMessage(translations[id]))
	}
	return ctx
}

func gettextMessage(tr *gotext.Translation) *Message {
	msg := &Message{
		Source:  tr.ID,
		Numerus: tr.PluralID != "",
	}
	for _, ref := range tr.Refs {
		loc := Location{Filename: ref}
		if i := strings.LastIndexByte(ref, ':'); i > 0 {
			loc = Location{Filename: ref[:i], Line: ref[i+1:]}
		}
		msg.Locations = append(msg.Locations, loc)
	}

	translated := false
	if msg.Numerus {
		last := -1
		for i := range tr.Trs {
			if i > last {
				last = i
			}
		}
		for i := 0; i <= last; i++ {
			msg.Translation.Forms = append(msg.Translation.Forms, Text{Text: tr.Trs[i]})
			translated = translated || tr.Trs[i] != ""
		}
		if last < 0 {
			msg.Translation.Forms = []Text{{}}
		}
	} else {
		msg.Translation.Text = tr.Trs[0]
		translated = msg.Translation.Text != ""
	}
	if !translated {
		msg.Translation.Status = Unfinished
	}
	return msg
}

// gettextPluralRule compiles a Plural-Forms header such as
// "nplurals=2; plural=(n != 1);". It returns nil if the header is empty.
func gettextPluralRule(header string) (*pluralforms.Rule, error) {
	if header == "" {
		return nil, nil
	}
	rule := &pluralforms.Rule{}
	for _, field := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(field), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "nplurals":
			forms, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || forms < 1 {
				return nil, fmt.Errorf("invalid nplurals %q", strings.TrimSpace(value))
			}
			rule.Forms = forms
		case "plural":
			expr, err := pluralforms.Compile(value)
			if err != nil {
				return nil, err
			}
			rule.Expr = expr
		}
	}
	if rule.Expr == nil {
		return nil, nil
	}
	return rule, nil
}
