package charset

import (
	"unicode"

	"github.com/dhamidi/combine/intset"
)

var latin1Classes = buildLatin1Classes()

// The Latin-1 registry carries the POSIX names only, materialized
// over 0..0xFF from the stdlib character predicates.
func buildLatin1Classes() map[string]intset.Set {
	u := intset.Range{Lo: 0, Hi: 0xFF}
	build := func(pred func(rune) bool) intset.Set {
		return intset.Build(u, pred)
	}

	isDigit := func(c rune) bool { return c >= '0' && c <= '9' }
	isAlpha := func(c rune) bool {
		return unicode.IsUpper(c) || unicode.IsLower(c) || unicode.IsTitle(c)
	}
	isPunct := func(c rune) bool { return unicode.IsPunct(c) || unicode.IsSymbol(c) }
	isGraph := func(c rune) bool { return unicode.IsGraphic(c) && !unicode.IsSpace(c) }

	return map[string]intset.Set{
		"alpha":  build(isAlpha),
		"digit":  build(isDigit),
		"alnum":  build(func(c rune) bool { return isAlpha(c) || isDigit(c) }),
		"upper":  build(unicode.IsUpper),
		"lower":  build(unicode.IsLower),
		"space":  build(unicode.IsSpace),
		"blank":  build(func(c rune) bool { return c == '\t' || c == ' ' || c == 0xA0 }),
		"cntrl":  build(unicode.IsControl),
		"punct":  build(isPunct),
		"graph":  build(isGraph),
		"print":  build(unicode.IsGraphic),
		"word":   build(func(c rune) bool { return isAlpha(c) || isDigit(c) || c == '_' }),
		"ascii":  intset.Of(intset.Range{Lo: 0, Hi: 0x7F}),
		"xdigit": build(func(c rune) bool { return isDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f') }),
	}
}
