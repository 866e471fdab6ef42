package pluralforms

import (
	"strings"

	"golang.org/x/text/language"
)

// Rule pairs a plural form expression with the number of forms a
// translation in that language is expected to carry.
type Rule struct {
	Expr  Expression
	Forms int
}

// The numerus rules below follow the ones used by Qt Linguist, which group
// languages into a small number of families. They differ from CLDR in a
// few places (Hungarian, Turkish and Persian use a single form).
var (
	oneForm    = Rule{MustCompile("0"), 1}
	germanic   = Rule{MustCompile("n != 1"), 2}
	french     = Rule{MustCompile("n > 1"), 2}
	latvian    = Rule{MustCompile("n%10==1 && n%100!=11 ? 0 : n != 0 ? 1 : 2"), 3}
	irish      = Rule{MustCompile("n==1 ? 0 : n==2 ? 1 : 2"), 3}
	czech      = Rule{MustCompile("n==1 ? 0 : (n>=2 && n<=4) ? 1 : 2"), 3}
	slovenian  = Rule{MustCompile("n%100==1 ? 0 : n%100==2 ? 1 : n%100==3 || n%100==4 ? 2 : 3"), 4}
	lithuanian = Rule{MustCompile("n%10==1 && n%100!=11 ? 0 : n%10>=2 && (n%100<10 || n%100>=20) ? 1 : 2"), 3}
	polish     = Rule{MustCompile("n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2"), 3}
	romanian   = Rule{MustCompile("n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2"), 3}
	russian    = Rule{MustCompile("n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2"), 3}
	icelandic  = Rule{MustCompile("n%10==1 && n%100!=11 ? 0 : 1"), 2}
	maltese    = Rule{MustCompile("n==1 ? 0 : (n==0 || (n%100>=1 && n%100<=10)) ? 1 : (n%100>=11 && n%100<=19) ? 2 : 3"), 4}
	welsh      = Rule{MustCompile("n==1 ? 0 : n==2 ? 1 : (n==8 || n==11) ? 2 : 3"), 4}
	arabic     = Rule{MustCompile("n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5"), 6}
)

var rules = map[string]Rule{
	"ja": oneForm, "zh": oneForm, "ko": oneForm, "th": oneForm,
	"vi": oneForm, "id": oneForm, "ms": oneForm, "tr": oneForm,
	"hu": oneForm, "fa": oneForm, "my": oneForm, "bo": oneForm,
	"dz": oneForm, "jv": oneForm, "su": oneForm, "tt": oneForm,
	"yo": oneForm, "za": oneForm,

	"fr": french, "br": french, "fil": french, "tl": french,
	"mg": french, "oc": french, "ti": french, "wa": french,
	"pt-BR": french,

	"lv": latvian,
	"ga": irish,
	"cs": czech, "sk": czech,
	"sl": slovenian,
	"lt": lithuanian,
	"pl": polish,
	"ro": romanian, "mo": romanian,
	"ru": russian, "uk": russian, "be": russian,
	"sr": russian, "hr": russian, "bs": russian,
	"is": icelandic, "mk": icelandic,
	"mt": maltese,
	"cy": welsh,
	"ar": arabic,
}

// ParseLocale converts a locale identifier as found in catalogs and the
// environment ("bg_BG", "pt_BR.UTF-8", "sr@latin", "en-GB") to a
// language tag.
func ParseLocale(locale string) (language.Tag, error) {
	if idx := strings.IndexAny(locale, ".@"); idx >= 0 {
		locale = locale[:idx]
	}
	return language.Parse(strings.ReplaceAll(locale, "_", "-"))
}

// ForLanguage returns the plural rule for a locale identifier. A rule for
// the full tag (such as "pt-BR") takes precedence over one for its base
// language. Unknown or unparseable locales get the Germanic rule, the
// same fallback used when a catalog carries no plural information.
func ForLanguage(locale string) Rule {
	tag, err := ParseLocale(locale)
	if err != nil {
		return germanic
	}
	if rule, ok := rules[tag.String()]; ok {
		return rule
	}
	base, _ := tag.Base()
	if rule, ok := rules[base.String()]; ok {
		return rule
	}
	return germanic
}

// Germanic returns the rule used for languages with a singular form for
// one and a plural form for everything else.
func Germanic() Rule {
	return germanic
}
