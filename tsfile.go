package linguist

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParseTS parses a Qt Linguist translation source (.ts) document into a
// Catalog.
//
// Documents in encodings other than UTF-8 are decoded according to their
// XML declaration. A document that is not well formed, declares an
// unknown encoding or codec, or contains a numerus message without plural
// forms is rejected with a *ParseError.
func ParseTS(r io.Reader) (*Catalog, error) {
	return parseTS(r, "")
}

func parseTS(r io.Reader, file string) (*Catalog, error) {
	p := &tsParser{dec: xml.NewDecoder(r), file: file}
	p.dec.CharsetReader = charset.NewReaderLabel
	catalog, err := p.document()
	if err != nil {
		return nil, err
	}
	catalog.init(nil)
	return catalog, nil
}

type tsParser struct {
	dec  *xml.Decoder
	file string
}

func (p *tsParser) errorf(format string, args ...interface{}) error {
	line, _ := p.dec.InputPos()
	return &ParseError{File: p.file, Line: line, Err: fmt.Errorf(format, args...)}
}

// token returns the next token, turning decoder failures into a
// *ParseError. io.EOF is returned as is.
func (p *tsParser) token() (xml.Token, error) {
	tok, err := p.dec.Token()
	if err == nil || err == io.EOF {
		return tok, err
	}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return nil, &ParseError{File: p.file, Line: syntaxErr.Line, Err: errors.New(syntaxErr.Msg)}
	}
	line, _ := p.dec.InputPos()
	return nil, &ParseError{File: p.file, Line: line, Err: err}
}

// next is like token, but treats the end of the document as an error.
func (p *tsParser) next() (xml.Token, error) {
	tok, err := p.token()
	if err == io.EOF {
		return nil, p.errorf("unexpected end of document")
	}
	return tok, err
}

func (p *tsParser) skip() error {
	for depth := 1; depth > 0; {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// children calls fn for every child element of the element being read,
// until its end tag. fn must consume the child including its end tag.
func (p *tsParser) children(fn func(xml.StartElement) error) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// byteValue decodes a <byte value="x1b"/> element, which Qt uses for
// characters that cannot appear in XML. The element is consumed.
func (p *tsParser) byteValue(start xml.StartElement) (rune, error) {
	value := attr(start, "value")
	var v uint64
	var err error
	if strings.HasPrefix(value, "x") {
		v, err = strconv.ParseUint(value[1:], 16, 32)
	} else {
		v, err = strconv.ParseUint(value, 10, 32)
	}
	if err != nil || !byteChar(rune(v)) {
		return 0, p.errorf("invalid byte value %q", value)
	}
	return rune(v), p.skip()
}

// byteChar reports whether r can be carried by a <byte> element: a
// control character, or any other character XML 1.0 allows.
func byteChar(r rune) bool {
	switch {
	case r < 0x20:
		return true
	case r <= 0xd7ff:
		return true
	case r >= 0xe000 && r <= 0xfffd:
		return true
	case r >= 0x10000 && r <= 0x10ffff:
		return true
	}
	return false
}

// text reads the character content of the current element.
func (p *tsParser) text() (string, error) {
	t, err := p.variantText()
	return t.Text, err
}

// variantText reads the content of an element that may hold length
// variants.
func (p *tsParser) variantText() (Text, error) {
	var b strings.Builder
	var variants []string
	for {
		tok, err := p.next()
		if err != nil {
			return Text{}, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "byte":
				r, err := p.byteValue(t)
				if err != nil {
					return Text{}, err
				}
				b.WriteRune(r)
			case "lengthvariant":
				v, err := p.text()
				if err != nil {
					return Text{}, err
				}
				variants = append(variants, v)
			default:
				if err := p.skip(); err != nil {
					return Text{}, err
				}
			}
		case xml.EndElement:
			if len(variants) > 0 {
				return Text{Text: variants[0], Variants: variants}, nil
			}
			return Text{Text: b.String()}, nil
		}
	}
}

func (p *tsParser) document() (*Catalog, error) {
	var catalog *Catalog
	for {
		tok, err := p.token()
		if err == io.EOF {
			if catalog == nil {
				return nil, p.errorf("no <TS> element found")
			}
			return catalog, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if catalog != nil {
			return nil, p.errorf("unexpected <%s> after </TS>", start.Name.Local)
		}
		if start.Name.Local != "TS" {
			return nil, p.errorf("root element is <%s>, expected <TS>", start.Name.Local)
		}
		if catalog, err = p.ts(start); err != nil {
			return nil, err
		}
	}
}

func (p *tsParser) ts(start xml.StartElement) (*Catalog, error) {
	catalog := &Catalog{
		Version:        attr(start, "version"),
		Language:       attr(start, "language"),
		SourceLanguage: attr(start, "sourcelanguage"),
	}
	byName := make(map[string]*Context)
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "defaultcodec":
			codec, err := p.text()
			if err != nil {
				return err
			}
			if enc, _ := charset.Lookup(codec); codec != "" && enc == nil {
				return p.errorf("unknown default codec %q", codec)
			}
			catalog.DefaultCodec = codec
		case "context":
			ctx, err := p.context()
			if err != nil {
				return err
			}
			if existing, ok := byName[ctx.Name]; ok {
				existing.Messages = append(existing.Messages, ctx.Messages...)
				if existing.Comment == "" {
					existing.Comment = ctx.Comment
				}
				return nil
			}
			byName[ctx.Name] = ctx
			catalog.Contexts = append(catalog.Contexts, ctx)
		default:
			return p.skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (p *tsParser) context() (*Context, error) {
	ctx := &Context{}
	err := p.children(func(child xml.StartElement) (err error) {
		switch child.Name.Local {
		case "name":
			ctx.Name, err = p.text()
		case "comment":
			ctx.Comment, err = p.text()
		case "message":
			var msg *Message
			if msg, err = p.message(child); err == nil {
				ctx.Messages = append(ctx.Messages, msg)
			}
		default:
			err = p.skip()
		}
		return err
	})
	return ctx, err
}

func (p *tsParser) message(start xml.StartElement) (*Message, error) {
	msg := &Message{
		ID:      attr(start, "id"),
		Numerus: attr(start, "numerus") == "yes",
	}
	err := p.children(func(child xml.StartElement) (err error) {
		switch child.Name.Local {
		case "location":
			msg.Locations = append(msg.Locations, Location{
				Filename: attr(child, "filename"),
				Line:     attr(child, "line"),
			})
			err = p.skip()
		case "source":
			msg.Source, err = p.text()
		case "oldsource":
			msg.OldSource, err = p.text()
		case "comment":
			msg.Comment, err = p.text()
		case "oldcomment":
			msg.OldComment, err = p.text()
		case "extracomment":
			msg.ExtraComment, err = p.text()
		case "translatorcomment":
			msg.TranslatorComment, err = p.text()
		case "translation":
			err = p.translation(child, msg)
		default:
			err = p.skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if msg.Numerus && len(msg.Translation.Forms) == 0 {
		return nil, p.errorf("numerus message %q has no plural forms", msg.Source)
	}
	return msg, nil
}

func (p *tsParser) translation(start xml.StartElement, msg *Message) error {
	tr := &msg.Translation
	typ := attr(start, "type")
	status, ok := parseStatus(typ)
	if !ok {
		return p.errorf("unknown translation type %q", typ)
	}
	tr.Status = status

	var b strings.Builder
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "numerusform":
				form, err := p.variantText()
				if err != nil {
					return err
				}
				tr.Forms = append(tr.Forms, form)
			case "lengthvariant":
				v, err := p.text()
				if err != nil {
					return err
				}
				tr.Variants = append(tr.Variants, v)
			case "byte":
				r, err := p.byteValue(t)
				if err != nil {
					return err
				}
				b.WriteRune(r)
			default:
				if err := p.skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			switch {
			case msg.Numerus:
				// Text between numerus forms is indentation.
			case len(tr.Variants) > 0:
				tr.Text = tr.Variants[0]
			default:
				tr.Text = b.String()
			}
			return nil
		}
	}
}
