package pluralforms

import "testing"

func TestForLanguage(t *testing.T) {
	for _, test := range []struct {
		locale string
		forms  int
		counts map[uint32]int
	}{
		{"bg_BG", 2, map[uint32]int{0: 1, 1: 0, 2: 1, 5: 1, 7: 1, 21: 1}},
		{"th_TH", 1, map[uint32]int{0: 0, 1: 0, 7: 0}},
		{"th", 1, map[uint32]int{3: 0}},
		{"fr_FR.UTF-8", 2, map[uint32]int{0: 0, 1: 0, 2: 1}},
		{"pt_BR", 2, map[uint32]int{0: 0, 1: 0, 2: 1}},
		{"pt_PT", 2, map[uint32]int{0: 1, 1: 0, 2: 1}},
		{"ru_RU", 3, map[uint32]int{1: 0, 2: 1, 5: 2, 11: 2, 21: 0, 22: 1}},
		{"sr@latin", 3, map[uint32]int{1: 0, 3: 1, 10: 2}},
		{"cs", 3, map[uint32]int{1: 0, 4: 1, 5: 2}},
		{"ar", 6, map[uint32]int{0: 0, 1: 1, 2: 2, 3: 3, 11: 4, 100: 5}},
		{"en-GB", 2, map[uint32]int{1: 0, 2: 1}},
		{"C", 2, map[uint32]int{1: 0, 2: 1}},
		{"", 2, map[uint32]int{1: 0, 0: 1}},
	} {
		rule := ForLanguage(test.locale)
		if rule.Forms != test.forms {
			t.Errorf("%q: expected %d forms, got %d", test.locale, test.forms, rule.Forms)
		}
		for n, expected := range test.counts {
			if got := rule.Expr.Eval(n); got != expected {
				t.Errorf("%q: n = %d, expected form %d, got %d", test.locale, n, expected, got)
			}
		}
	}
}

func TestParseLocale(t *testing.T) {
	tag, err := ParseLocale("bg_BG.UTF-8@euro")
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "bg-BG", tag.String())

	if _, err := ParseLocale("not a locale"); err == nil {
		t.Error("expected an error for an invalid locale")
	}
}

func TestRuleFormsMatchExpression(t *testing.T) {
	// No rule may select a form index outside the number of forms it
	// declares.
	for lang, rule := range rules {
		for n := uint32(0); n < 1000; n++ {
			if i := rule.Expr.Eval(n); i < 0 || i >= rule.Forms {
				t.Fatalf("%s: n = %d selects form %d of %d", lang, n, i, rule.Forms)
			}
		}
	}
}
