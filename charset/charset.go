// Package charset provides named character classes over interval sets
// and the normalization of user-supplied class descriptors.
//
// Two registries exist: Latin1, with the POSIX class names over
// 0..0xFF, and Unicode, with the POSIX names plus the 30 Unicode
// general categories under both their short and long names.
package charset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/combine/intset"
)

// Table selects one of the two class registries.
type Table int

const (
	Latin1 Table = iota
	Unicode
)

func (t Table) String() string {
	if t == Latin1 {
		return "latin1"
	}
	return "unicode"
}

// Universe returns the codepoint range the table's classes live in.
func (t Table) Universe() intset.Range {
	if t == Latin1 {
		return intset.Range{Lo: 0, Hi: 0xFF}
	}
	return intset.Range{Lo: 0, Hi: 0x10FFFF}
}

func (t Table) classes() map[string]intset.Set {
	if t == Latin1 {
		return latin1Classes
	}
	return unicodeClasses
}

// Lookup resolves a class name against the table.
func (t Table) Lookup(name string) (intset.Set, bool) {
	s, ok := t.classes()[name]
	return s, ok
}

// Names returns the table's class names, sorted.
func (t Table) Names() []string {
	m := t.classes()
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Compile normalizes a class descriptor into an interval set.
// A descriptor is a codepoint (rune or int), an intset.Range, an
// intset.Set, a class name resolved against t, or an arbitrarily
// nested []any of these. Malformed descriptors are construction
// errors, never parse failures.
func Compile(t Table, desc any) (intset.Set, error) {
	switch v := desc.(type) {
	case rune:
		return intset.Of(intset.Range{Lo: v, Hi: v}), nil
	case int:
		return intset.Of(intset.Range{Lo: rune(v), Hi: rune(v)}), nil
	case intset.Range:
		if v.Lo > v.Hi {
			return intset.Set{}, fmt.Errorf("charset: inverted range %#x-%#x", v.Lo, v.Hi)
		}
		u := t.Universe()
		if v.Lo < u.Lo || v.Hi > u.Hi {
			return intset.Set{}, fmt.Errorf("charset: range %v outside %s universe", v, t)
		}
		return intset.Of(v), nil
	case intset.Set:
		return v, nil
	case string:
		s, ok := t.Lookup(v)
		if !ok {
			return intset.Set{}, fmt.Errorf("charset: unknown class %q in %s table", v, t)
		}
		return s, nil
	case []any:
		acc := intset.Set{}
		for _, e := range v {
			s, err := Compile(t, e)
			if err != nil {
				return intset.Set{}, err
			}
			acc = intset.Union(acc, s)
		}
		return acc, nil
	default:
		return intset.Set{}, fmt.Errorf("charset: cannot compile descriptor of type %T", desc)
	}
}

// Singleton reports whether desc denotes exactly one codepoint and
// returns it.
func Singleton(desc any) (rune, bool) {
	switch v := desc.(type) {
	case rune:
		return v, true
	case int:
		return rune(v), true
	case intset.Range:
		if v.Lo == v.Hi {
			return v.Lo, true
		}
	case []any:
		if len(v) == 1 {
			return Singleton(v[0])
		}
	}
	return 0, false
}

// Name reports whether desc is a single symbolic class name.
func Name(desc any) (string, bool) {
	switch v := desc.(type) {
	case string:
		return v, true
	case []any:
		if len(v) == 1 {
			return Name(v[0])
		}
	}
	return "", false
}

// Describe renders a descriptor for use in error messages.
// Codepoints render backquoted, ranges as a span, names as
// themselves, and lists as a comma-separated union.
func Describe(desc any) string {
	switch v := desc.(type) {
	case rune:
		return "`" + string(v) + "'"
	case int:
		return "`" + string(rune(v)) + "'"
	case intset.Range:
		if v.Lo == v.Hi {
			return "`" + string(v.Lo) + "'"
		}
		return "`" + string(v.Lo) + "'..`" + string(v.Hi) + "'"
	case intset.Set:
		rs := v.Ranges()
		parts := make([]string, len(rs))
		for i, r := range rs {
			parts[i] = Describe(r)
		}
		return strings.Join(parts, ", ")
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Describe(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", desc)
	}
}
