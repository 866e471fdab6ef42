package linguist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocaleAlias(t *testing.T) {
	aliases, err := parseLocaleAlias(strings.NewReader(`
# locale.alias
	# indented comment
bulgarian-only
bulgarian       bg_BG.CP1251
thai            th_TH.TIS-620
`))
	require.NoError(t, err)
	assert.Equal(t, aliases, map[string]string{
		"bulgarian": "bg_BG.CP1251",
		"thai":      "th_TH.TIS-620",
	})
}

func TestNormalizeCodeset(t *testing.T) {
	for codeset, want := range map[string]string{
		".UTF-8":      ".utf8",
		".utf8":       ".utf8",
		".CP1251":     ".cp1251",
		".TIS-620":    ".tis620",
		".ISO-8859-5": ".iso88595",
		".8859-5":     ".iso88595",
		".88595":      ".iso88595",
	} {
		assert.Equal(t, want, normalizeCodeset(codeset))
	}
}

func TestExpandLocale(t *testing.T) {
	assert.Equal(t, expandLocale("bg"), []string{"bg"})
	assert.Equal(t, expandLocale("bg_BG"), []string{"bg_BG", "bg"})
	assert.Equal(t, expandLocale("bg_BG.UTF-8"), []string{"bg_BG.UTF-8", "bg_BG.utf8", "bg_BG", "bg.UTF-8", "bg.utf8", "bg"})
	assert.Equal(t, expandLocale("bg_BG.utf8"), []string{"bg_BG.utf8", "bg_BG", "bg.utf8", "bg"})
	assert.Equal(t, expandLocale("sr_RS.UTF-8@latin"), []string{
		"sr_RS.UTF-8@latin", "sr_RS.utf8@latin", "sr_RS@latin", "sr.UTF-8@latin", "sr.utf8@latin", "sr@latin",
		"sr_RS.UTF-8", "sr_RS.utf8", "sr_RS", "sr.UTF-8", "sr.utf8", "sr",
	})
}

func mockGetenv(env map[string]string) (restore func()) {
	old := osGetenv
	osGetenv = func(name string) string {
		return env[name]
	}
	return func() {
		osGetenv = old
	}
}

func TestUserLanguages(t *testing.T) {
	env := map[string]string{}
	restore := mockGetenv(env)
	defer restore()

	assert.Equal(t, UserLanguages(), []string(nil))

	// LANGUAGE alone is not enough
	env["LANGUAGE"] = "bg_BG:th"
	assert.Equal(t, UserLanguages(), []string(nil))
	delete(env, "LANGUAGE")

	env["LANG"] = "bg_BG@lang"
	assert.Equal(t, UserLanguages(), []string{"bg_BG@lang"})

	env["LC_MESSAGES"] = "bg_BG@messages"
	assert.Equal(t, UserLanguages(), []string{"bg_BG@messages"})

	env["LC_ALL"] = "bg_BG.UTF-8"
	assert.Equal(t, UserLanguages(), []string{"bg_BG.UTF-8"})

	env["LANGUAGE"] = "bg_BG:th_TH:th"
	assert.Equal(t, UserLanguages(), []string{"bg_BG", "th_TH", "th"})

	// The C locale disables LANGUAGE
	env["LC_ALL"] = "C"
	assert.Equal(t, UserLanguages(), []string{"C"})
}

func TestNormalizeLanguages(t *testing.T) {
	assert.Equal(t, normalizeLanguages([]string{"bg_BG", "th_TH", "bg", "C", "de"}), []string{"bg_BG", "bg", "th_TH", "th"})
	assert.Equal(t, normalizeLanguages([]string{"POSIX", "bg"}), []string(nil))
}
