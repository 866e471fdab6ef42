package linguist

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSwitchLocale(t *testing.T) {
	s := NewSession(&TextDomain{Name: "skype", LocaleDir: "testdata", Logger: quietLogger()})
	assert.Equal(t, "", s.Language())
	assert.Equal(t, "%1 is writing...", s.Tr("Chat", "%1 is writing..."))

	require.NoError(t, s.SwitchLocale("bg"))
	assert.Equal(t, "bg_BG", s.Language())
	assert.Equal(t, "%1 пише…", s.Tr("Chat", "%1 is writing..."))
	assert.Equal(t, "%n пропуснати събития", s.TrN("Events", "%n new event(s)", 3))
	assert.Equal(t, "Задръж", s.Translate("CallView", "Hold", "Button", -1))

	require.NoError(t, s.SwitchLocale("de_DE.UTF-8"))
	assert.Equal(t, "de_DE", s.Language())
	assert.Equal(t, "%1 schreibt…", s.Tr("Chat", "%1 is writing..."))
}

func TestSessionSwitchLocaleNotFound(t *testing.T) {
	s := NewSession(&TextDomain{Name: "skype", LocaleDir: "testdata", Logger: quietLogger()})
	require.NoError(t, s.SwitchLocale("bg"))
	before := s.Translator()

	err := s.SwitchLocale("ja", "fr")
	assert.True(t, errors.Is(err, ErrLocaleNotFound))
	assert.Contains(t, err.Error(), "ja, fr")
	assert.Same(t, before, s.Translator())
	assert.Equal(t, "%1 пише…", s.Tr("Chat", "%1 is writing..."))
}

func TestSessionSwitchLocaleParseError(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "skype_bg.ts", "skype_bg.ts")
	copyFixture(t, dir, "malformed/type.ts", "skype_xx.ts")

	s := NewSession(&TextDomain{Name: "skype", LocaleDir: dir, Logger: quietLogger()})
	require.NoError(t, s.SwitchLocale("bg"))

	// A broken catalog fails the switch even when a fallback loads.
	err := s.SwitchLocale("xx", "bg")
	assert.True(t, errors.Is(err, ErrParse))
	assert.Equal(t, "bg_BG", s.Language())
}

func TestSessionConcurrentSwitch(t *testing.T) {
	s := NewSession(&TextDomain{Name: "skype", LocaleDir: "testdata", Logger: quietLogger()})
	valid := map[string]bool{
		"Skype API Authorisation Request": true,
		"Заявено пълномощно по Skype API": true,
		"คำขอการอนุมัติ Skype API":        true,
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				tr := s.Translator()
				text := tr.Tr("API", "Skype API Authorisation Request")
				if !valid[text] {
					t.Errorf("unexpected translation %q", text)
					return
				}
				// A single Translator is never partially switched.
				if lang := tr.Language(); lang != "" {
					assert.Equal(t, lang, tr.Catalogs()[0].Language)
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		locale := "bg"
		if i%2 == 1 {
			locale = "th"
		}
		assert.NoError(t, s.SwitchLocale(locale))
	}
	close(stop)
	wg.Wait()
	assert.Equal(t, "th_TH", s.Language())
}
