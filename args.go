package linguist

import (
	"strconv"
	"strings"
)

// Arg replaces the place markers %1 to %99 in text with args, %1 being
// args[0]. A two digit marker such as %12 is used when there are enough
// arguments for it, otherwise only its first digit is. Markers without a
// matching argument are left as they are.
//
// Catalogs return translations with their markers intact; Arg is applied
// by the caller after the lookup:
//
//	linguist.Arg(tr.Tr("Chat", "%1 is writing..."), "Alice")
func Arg(text string, args ...string) string {
	if len(args) == 0 || !strings.Contains(text, "%") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '%' || i+1 >= len(text) || !isDigit(text[i+1]) || text[i+1] == '0' {
			b.WriteByte(text[i])
			continue
		}
		num, width := int(text[i+1]-'0'), 1
		if i+2 < len(text) && isDigit(text[i+2]) {
			if two := num*10 + int(text[i+2]-'0'); two <= len(args) {
				num, width = two, 2
			}
		}
		if num > len(args) {
			b.WriteByte(text[i])
			continue
		}
		b.WriteString(args[num-1])
		i += width
	}
	return b.String()
}

// ArgN replaces the count markers %n and %Ln of a numerus translation
// with n.
func ArgN(text string, n int) string {
	if !strings.Contains(text, "%") {
		return text
	}
	count := strconv.Itoa(n)
	return strings.NewReplacer("%Ln", count, "%n", count).Replace(text)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
