package linguist

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
)

var osGetenv = os.Getenv

// LocaleAliasFile lists locale aliases such as "bokmal nb_NO.ISO-8859-1",
// in the format of the X11 and glibc locale.alias files.
var LocaleAliasFile = "/usr/share/locale/locale.alias"

var (
	aliasesOnce sync.Once
	aliases     map[string]string
)

func localeAliases() map[string]string {
	aliasesOnce.Do(func() {
		f, err := os.Open(LocaleAliasFile)
		if err != nil {
			return
		}
		defer f.Close()
		aliases, _ = parseLocaleAlias(f)
	})
	return aliases
}

func parseLocaleAlias(r io.Reader) (map[string]string, error) {
	result := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		result[fields[0]] = fields[1]
	}
	return result, scanner.Err()
}

// UserLanguages returns the user's preferred languages from the
// environment, following the precedence of gettext: LANGUAGE, LC_ALL,
// LC_MESSAGES, then LANG. LANGUAGE is only honoured when a locale is set.
func UserLanguages() []string {
	var locale string
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if locale = osGetenv(name); locale != "" {
			break
		}
	}
	if locale == "" {
		return nil
	}
	if language := osGetenv("LANGUAGE"); language != "" && locale != "C" {
		return strings.Split(language, ":")
	}
	return []string{locale}
}

// normalizeLanguages resolves aliases and expands each language into its
// fallbacks, dropping duplicates. A "C" or "POSIX" entry ends the list.
func normalizeLanguages(languages []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, lang := range languages {
		if lang == "C" || lang == "POSIX" {
			break
		}
		if alias, ok := localeAliases()[lang]; ok {
			lang = alias
		}
		for _, l := range expandLocale(lang) {
			if l == "" || seen[l] {
				continue
			}
			seen[l] = true
			result = append(result, l)
		}
	}
	return result
}

// normalizeCodeset lowercases a ".codeset" suffix and strips everything
// but letters and digits. An all digit codeset gains an "iso" prefix.
func normalizeCodeset(codeset string) string {
	var b strings.Builder
	digits := true
	for _, c := range strings.TrimPrefix(codeset, ".") {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			digits = false
			b.WriteRune(c | 0x20)
		case '0' <= c && c <= '9':
			b.WriteRune(c)
		}
	}
	if digits {
		return ".iso" + b.String()
	}
	return "." + b.String()
}

// expandLocale returns locale followed by its less specific variants, in
// the order gettext searches them: modifier, then territory, then codeset
// are dropped last to first.
func expandLocale(locale string) []string {
	lang, modifier := splitAt(locale, '@')
	lang, codeset := splitAt(lang, '.')
	lang, territory := splitAt(lang, '_')

	codesets := []string{""}
	if codeset != "" {
		codesets = []string{codeset}
		if norm := normalizeCodeset(codeset); norm != codeset {
			codesets = append(codesets, norm)
		}
		codesets = append(codesets, "")
	}
	territories := []string{""}
	if territory != "" {
		territories = []string{territory, ""}
	}
	modifiers := []string{""}
	if modifier != "" {
		modifiers = []string{modifier, ""}
	}

	var result []string
	for _, m := range modifiers {
		for _, t := range territories {
			for _, c := range codesets {
				result = append(result, lang+t+c+m)
			}
		}
	}
	return result
}

// splitAt splits s before the first sep, which stays on the second half.
func splitAt(s string, sep byte) (string, string) {
	if i := strings.IndexByte(s, sep); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}
