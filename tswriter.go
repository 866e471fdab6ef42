package linguist

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

const tsTemplateData = `{{ define "text" }}{{ if .Variants }}{{ range .Variants }}<lengthvariant>{{ protect . }}</lengthvariant>{{ end }}{{ else }}{{ protect .Text }}{{ end }}{{ end }}<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="{{ attr .Version }}"{{ with .Language }} language="{{ attr . }}"{{ end }}{{ with .SourceLanguage }} sourcelanguage="{{ attr . }}"{{ end }}>
{{ with .DefaultCodec }}<defaultcodec>{{ protect . }}</defaultcodec>
{{ end }}{{ range .Contexts }}<context>
    <name>{{ protect .Name }}</name>
{{ with .Comment }}    <comment>{{ protect . }}</comment>
{{ end }}{{ range .Messages }}    <message{{ with .ID }} id="{{ attr . }}"{{ end }}{{ if .Numerus }} numerus="yes"{{ end }}>
{{ range .Locations }}        <location filename="{{ attr .Filename }}"{{ with .Line }} line="{{ attr . }}"{{ end }}/>
{{ end }}        <source>{{ protect .Source }}</source>
{{ with .OldSource }}        <oldsource>{{ protect . }}</oldsource>
{{ end }}{{ with .Comment }}        <comment>{{ protect . }}</comment>
{{ end }}{{ with .OldComment }}        <oldcomment>{{ protect . }}</oldcomment>
{{ end }}{{ with .ExtraComment }}        <extracomment>{{ protect . }}</extracomment>
{{ end }}{{ with .TranslatorComment }}        <translatorcomment>{{ protect . }}</translatorcomment>
{{ end }}{{ if .Numerus }}        <translation{{ status .Translation.Status }}>
{{ range .Translation.Forms }}            <numerusform{{ if .Variants }} variants="yes"{{ end }}>{{ template "text" . }}</numerusform>
{{ end }}        </translation>
{{ else }}        <translation{{ status .Translation.Status }}{{ if .Translation.Variants }} variants="yes"{{ end }}>{{ template "text" .Translation }}</translation>
{{ end }}    </message>
{{ end }}</context>
{{ end }}</TS>
`

var tsTemplate = template.Must(template.New("ts").Funcs(template.FuncMap{
	"protect": protect,
	"attr":    protectAttr,
	"status":  statusAttr,
}).Parse(tsTemplateData))

// protect escapes text the way Qt Linguist does. Control characters,
// which XML 1.0 cannot carry, are written as <byte> elements.
func protect(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString("&quot;")
		case '&':
			b.WriteString("&amp;")
		case '>':
			b.WriteString("&gt;")
		case '<':
			b.WriteString("&lt;")
		case '\'':
			b.WriteString("&apos;")
		case '\n', '\t':
			b.WriteRune(c)
		default:
			if c < 0x20 {
				fmt.Fprintf(&b, `<byte value="x%x"/>`, c)
			} else {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

// protectAttr escapes an attribute value. Tabs and line breaks are
// written as character references and other control characters are
// dropped.
func protectAttr(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c == '"':
			b.WriteString("&quot;")
		case c == '&':
			b.WriteString("&amp;")
		case c == '<':
			b.WriteString("&lt;")
		case c == '>':
			b.WriteString("&gt;")
		case c == '\'':
			b.WriteString("&apos;")
		case c == '\t' || c == '\n' || c == '\r':
			fmt.Fprintf(&b, "&#%d;", c)
		case c < 0x20:
			// Not representable in an attribute.
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func statusAttr(s Status) string {
	if s == Finished {
		return ""
	}
	return fmt.Sprintf(` type="%s"`, s)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo writes c as a UTF-8 encoded .ts document, laid out the way Qt
// Linguist writes it. Reading the output with ParseTS gives back a
// catalog equal to c.
func (c *Catalog) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := tsTemplate.Execute(cw, c)
	return cw.n, err
}
