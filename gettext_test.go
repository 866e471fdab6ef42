package linguist

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePO(t *testing.T) {
	c := readFixture(t, "skype_de.po")
	assert.Equal(t, "de_DE", c.Language)
	assert.Equal(t, "2.1", c.Version)

	var names []string
	for _, ctx := range c.Contexts {
		names = append(names, ctx.Name)
	}
	assert.Equal(t, []string{DefaultPOContext, "Chat", "Events"}, names)

	msg := c.Context(DefaultPOContext).Messages[0]
	assert.Equal(t, &Message{
		Source:      "Version",
		Locations:   []Location{{Filename: "src/main.cpp", Line: "10"}},
		Translation: Translation{Text: "Version"},
	}, msg)

	assert.Equal(t, "%1 schreibt…", c.Translate("Chat", "%1 is writing...", "", -1))
	assertMiss(t, c, "Chat", "Send contacts", "")
	assert.Equal(t, Unfinished, c.Context("Chat").Messages[1].Translation.Status)
}

func TestParsePOPlural(t *testing.T) {
	c := readFixture(t, "skype_de.po")
	assert.Equal(t, 2, c.PluralRule().Forms)

	msg := c.Context("Events").Messages[0]
	assert.True(t, msg.Numerus)
	assert.Equal(t, []Text{{Text: "%n neues Ereignis"}, {Text: "%n neue Ereignisse"}}, msg.Translation.Forms)

	assert.Equal(t, "%n neues Ereignis", c.Translate("Events", "%n new event(s)", "", 1))
	assert.Equal(t, "%n neue Ereignisse", c.Translate("Events", "%n new event(s)", "", 0))
	assert.Equal(t, "%n neue Ereignisse", c.Translate("Events", "%n new event(s)", "", 12))
}

func TestParsePOLanguageArgument(t *testing.T) {
	c, err := ParsePO(strings.NewReader(`msgid ""
msgstr ""
"Language: de_DE\n"
"Plural-Forms: nplurals=3; plural=n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2;\n"

msgctxt "Events"
msgid "%n new event(s)"
msgid_plural "%n new events"
msgstr[0] "%n новое событие"
msgstr[1] "%n новых события"
msgstr[2] "%n новых событий"
`), "ru")
	require.NoError(t, err)
	assert.Equal(t, "ru", c.Language)
	assert.Equal(t, 3, c.PluralRule().Forms)
	assert.Equal(t, "%n новое событие", c.Translate("Events", "%n new event(s)", "", 21))
	assert.Equal(t, "%n новых события", c.Translate("Events", "%n new event(s)", "", 3))
	assert.Equal(t, "%n новых событий", c.Translate("Events", "%n new event(s)", "", 11))
}

func TestParsePOWithoutPluralHeader(t *testing.T) {
	c, err := ParsePO(strings.NewReader(`msgid "Remove"
msgstr "ลบออก"
`), "th_TH")
	require.NoError(t, err)
	// The built-in rule of the language applies.
	assert.Equal(t, 1, c.PluralRule().Forms)
	assert.Equal(t, "ลบออก", c.Translate(DefaultPOContext, "Remove", "", -1))
}

func TestParsePOBadPluralRule(t *testing.T) {
	for _, header := range []string{
		"nplurals=2; plural=(n !=;",
		"nplurals=two; plural=(n != 1);",
		"nplurals=0; plural=0;",
	} {
		_, err := ParsePO(strings.NewReader(`msgid ""
msgstr ""
"Plural-Forms: `+header+`\n"
`), "de")
		assert.True(t, errors.Is(err, ErrParse), "%s: %v", header, err)
	}
}

func TestParseMO(t *testing.T) {
	c, err := ReadFile(filepath.Join("testdata", "mo", "skype_ru.mo"))
	require.NoError(t, err)
	assert.Equal(t, "ru_RU", c.Language)
	assert.Equal(t, 3, c.PluralRule().Forms)

	assert.Equal(t, "Удалить", c.Translate(DefaultPOContext, "Remove", "", -1))
	assert.Equal(t, "%1 пишет…", c.Translate("Chat", "%1 is writing...", "", -1))
	for n, want := range map[int]string{
		1:  "%n новое событие",
		3:  "%n новых события",
		11: "%n новых событий",
		21: "%n новое событие",
	} {
		assert.Equal(t, want, c.Translate("Events", "%n new event(s)", "", n), "n=%d", n)
	}
}

func TestTextDomainLoadsMO(t *testing.T) {
	domain := &TextDomain{Name: "skype", LocaleDir: filepath.Join("testdata", "mo"), Logger: quietLogger()}
	ru := domain.Locale("ru_RU.UTF-8")
	assert.Equal(t, "ru_RU", ru.Language())
	assert.Equal(t, "%1 пишет…", ru.Tr("Chat", "%1 is writing..."))
}

func TestParseMOInvalid(t *testing.T) {
	for _, data := range []string{"", "short", strings.Repeat("x", 40)} {
		_, err := ParseMO(strings.NewReader(data), "ru")
		assert.True(t, errors.Is(err, ErrParse), "%q", data)
	}
}
