package parse

import (
	"fmt"

	"github.com/dhamidi/combine/charset"
	"github.com/dhamidi/combine/intset"
)

func quoteRune(c rune) string {
	return "`" + string(c) + "'"
}

// compileDesc resolves a charset descriptor at construction time.
// Names resolve against the Unicode registry; the Latin-1 registry
// agrees with it on the shared 0..0xFF range. A malformed descriptor
// is a programming error in the grammar, so it panics rather than
// producing a parse failure.
func compileDesc(desc any) intset.Set {
	set, err := charset.Compile(charset.Unicode, desc)
	if err != nil {
		panic(fmt.Sprintf("parse: bad charset descriptor: %v", err))
	}
	return set
}

// descError picks the failure description for a class primitive:
// the bare codepoint for singletons, the bare name for a single named
// class, and a "one of" union otherwise.
func descError(desc any) string {
	if c, ok := charset.Singleton(desc); ok {
		return quoteRune(c)
	}
	if name, ok := charset.Name(desc); ok {
		return name
	}
	return "one of " + charset.Describe(desc)
}

// Any consumes one codepoint.
func Any() Parser[rune] {
	return func(st State) (rune, State, *Error) {
		cp, size, ok := st.next()
		if !ok {
			return 0, st, unexpected(st, eofDesc)
		}
		return cp, st.advance(size), nil
	}
}

// Char consumes the codepoint c.
func Char(c rune) Parser[rune] {
	return func(st State) (rune, State, *Error) {
		cp, size, ok := st.next()
		if !ok || cp != c {
			return 0, st, expected(st, quoteRune(c))
		}
		return cp, st.advance(size), nil
	}
}

// OneOf consumes one codepoint belonging to the class described by
// desc: a codepoint, an inclusive intset.Range, a class name, or a
// nested list of these.
func OneOf(desc any) Parser[rune] {
	set := compileDesc(desc)
	errDesc := descError(desc)
	return func(st State) (rune, State, *Error) {
		cp, size, ok := st.next()
		if !ok || !set.Contains(cp) {
			return 0, st, expected(st, errDesc)
		}
		return cp, st.advance(size), nil
	}
}

// NoneOf consumes one codepoint not belonging to the described class.
func NoneOf(desc any) Parser[rune] {
	set := compileDesc(desc)
	errDesc := "not " + charset.Describe(desc)
	return func(st State) (rune, State, *Error) {
		cp, size, ok := st.next()
		if !ok || set.Contains(cp) {
			return 0, st, expected(st, errDesc)
		}
		return cp, st.advance(size), nil
	}
}

// Satisfy consumes one codepoint for which pred holds. When a name is
// supplied the failure reads "<name> expected"; otherwise the
// offending codepoint is reported.
func Satisfy(pred func(rune) bool, name ...string) Parser[rune] {
	return func(st State) (rune, State, *Error) {
		cp, size, ok := st.next()
		if !ok {
			if len(name) > 0 {
				return 0, st, expected(st, name[0])
			}
			return 0, st, unexpected(st, eofDesc)
		}
		if !pred(cp) {
			if len(name) > 0 {
				return 0, st, expected(st, name[0])
			}
			return 0, st, unexpected(st, quoteRune(cp))
		}
		return cp, st.advance(size), nil
	}
}

// Str consumes the codepoints of s, advancing the position by the
// codepoint length of s.
func Str(s string) Parser[string] {
	return func(st State) (string, State, *Error) {
		cur := st
		for _, want := range s {
			cp, size, ok := cur.next()
			if !ok || cp != want {
				return "", st, expected(st, "`"+s+"'")
			}
			cur = cur.advance(size)
		}
		return s, cur, nil
	}
}

// EOF succeeds only at the end of input.
func EOF() Parser[any] {
	return func(st State) (any, State, *Error) {
		if st.off < len(st.src) {
			return nil, st, expected(st, eofDesc)
		}
		return nil, st, nil
	}
}
