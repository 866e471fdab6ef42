package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/snapcore/go-linguist/pluralforms"
)

func Test(t *testing.T) {
	TestingT(t)
}

var _ = Suite(&configSuite{})

type configSuite struct {
	dir     string
	restore []func()
}

var envNames = []string{
	"LINGUIST_DIR",
	"LINGUIST_DOMAIN",
	"LINGUIST_LANGUAGES",
	"LINGUIST_STRICT_MISSING_KEYS",
	"LINGUIST_LOG_LEVEL",
	"LINGUIST_LOG_FORMAT",
}

func (s *configSuite) SetUpTest(c *C) {
	s.dir = c.MkDir()
	for _, name := range envNames {
		s.unsetenv(name)
	}
}

func (s *configSuite) TearDownTest(c *C) {
	for i := len(s.restore) - 1; i >= 0; i-- {
		s.restore[i]()
	}
	s.restore = nil
}

func (s *configSuite) unsetenv(name string) {
	old, ok := os.LookupEnv(name)
	os.Unsetenv(name)
	s.restore = append(s.restore, func() {
		if ok {
			os.Setenv(name, old)
		} else {
			os.Unsetenv(name)
		}
	})
}

func (s *configSuite) setenv(name, value string) {
	s.unsetenv(name)
	os.Setenv(name, value)
}

func (s *configSuite) writeYAML(c *C, data string) string {
	path := filepath.Join(s.dir, "linguist.yaml")
	c.Assert(os.WriteFile(path, []byte(data), 0o644), IsNil)
	return path
}

func (s *configSuite) TestDefaults(c *C) {
	cfg, err := Load("")
	c.Assert(err, IsNil)
	c.Check(cfg.Catalog.Dir, Equals, "lang")
	c.Check(cfg.Catalog.Domain, Equals, "skype")
	c.Check(cfg.Catalog.Languages, IsNil)
	c.Check(cfg.Catalog.StrictMissingKeys, Equals, false)
	c.Check(cfg.Log.Level, Equals, "info")
	c.Check(cfg.Log.Format, Equals, "console")
}

func (s *configSuite) TestMissingFileIsSkipped(c *C) {
	cfg, err := Load(filepath.Join(s.dir, "nonexistent.yaml"))
	c.Assert(err, IsNil)
	c.Check(cfg.Catalog.Domain, Equals, "skype")
}

func (s *configSuite) TestYAML(c *C) {
	path := s.writeYAML(c, `
catalog:
  dir: /usr/share/skype/lang
  languages: [bg_BG, en]
  strict_missing_keys: true
  plural_rules:
    bg: "n != 1"
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	c.Assert(err, IsNil)
	c.Check(cfg.Catalog.Dir, Equals, "/usr/share/skype/lang")
	c.Check(cfg.Catalog.Domain, Equals, "skype")
	c.Check(cfg.Catalog.Languages, DeepEquals, []string{"bg_BG", "en"})
	c.Check(cfg.Catalog.StrictMissingKeys, Equals, true)
	c.Check(cfg.Catalog.PluralRules, DeepEquals, map[string]string{"bg": "n != 1"})
	c.Check(cfg.Log.Level, Equals, "debug")
	c.Check(cfg.Log.Format, Equals, "json")
}

func (s *configSuite) TestEnvOverridesYAML(c *C) {
	path := s.writeYAML(c, `
catalog:
  dir: from-yaml
  domain: from-yaml
`)
	s.setenv("LINGUIST_DIR", "from-env")
	s.setenv("LINGUIST_LANGUAGES", "th_TH,en")
	s.setenv("LINGUIST_STRICT_MISSING_KEYS", "true")
	s.setenv("LINGUIST_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	c.Assert(err, IsNil)
	c.Check(cfg.Catalog.Dir, Equals, "from-env")
	c.Check(cfg.Catalog.Domain, Equals, "from-yaml")
	c.Check(cfg.Catalog.Languages, DeepEquals, []string{"th_TH", "en"})
	c.Check(cfg.Catalog.StrictMissingKeys, Equals, true)
	c.Check(cfg.Log.Level, Equals, "warn")
}

func (s *configSuite) TestInvalidEnv(c *C) {
	s.setenv("LINGUIST_STRICT_MISSING_KEYS", "maybe")
	_, err := Load("")
	c.Assert(err, ErrorMatches, "(?s)parse env: .*")
}

func (s *configSuite) TestInvalidYAML(c *C) {
	path := s.writeYAML(c, "catalog: [\n")
	_, err := Load(path)
	c.Assert(err, ErrorMatches, "(?s)failed to parse YAML from .*")
}

func (s *configSuite) TestValidation(c *C) {
	for _, test := range []struct {
		yaml string
		err  error
	}{
		{"catalog:\n  domain: \"\"\n", errEmptyDomain},
		{"log:\n  level: loud\n", errInvalidLogLevel},
		{"log:\n  format: xml\n", errInvalidLogFormat},
	} {
		_, err := Load(s.writeYAML(c, test.yaml))
		c.Check(errors.Is(err, test.err), Equals, true, Commentf("yaml %q: %v", test.yaml, err))
	}

	_, err := Load(s.writeYAML(c, "catalog:\n  plural_rules:\n    bg: \"n !=\"\n"))
	c.Check(err, ErrorMatches, "(?s)invalid plural rule for bg: .*")
}

func (s *configSuite) TestTextDomain(c *C) {
	cfg, err := Load(s.writeYAML(c, `
catalog:
  dir: testdir
  domain: app
  strict_missing_keys: true
  plural_rules:
    bg: "n == 1 ? 0 : n == 2 ? 1 : 2"
`))
	c.Assert(err, IsNil)

	td := cfg.TextDomain(nil)
	c.Check(td.Name, Equals, "app")
	c.Check(td.LocaleDir, Equals, "testdir")
	c.Check(td.StrictMissing, Equals, true)
	c.Assert(td.PluralResolver, NotNil)

	rule := td.PluralResolver("bg_BG")
	c.Check(rule.Expr.Eval(2), Equals, 1)
	c.Check(rule.Expr.Eval(5), Equals, 2)

	// Languages without an override keep the built-in rule.
	c.Check(td.PluralResolver("th_TH"), DeepEquals, pluralforms.ForLanguage("th_TH"))
}

func (s *configSuite) TestTextDomainWithoutOverrides(c *C) {
	cfg, err := Load("")
	c.Assert(err, IsNil)
	c.Check(cfg.TextDomain(nil).PluralResolver, IsNil)
}
