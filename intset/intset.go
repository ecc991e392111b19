// Package intset implements sets of codepoints as sorted slices of
// disjoint inclusive ranges. The canonical form keeps ranges sorted by
// lower bound, pairwise disjoint, and non-adjacent, so any two sets
// with the same members compare equal range-for-range.
package intset

import (
	"fmt"
	"sort"
	"strings"
)

// Range is an inclusive span of codepoints.
type Range struct {
	Lo, Hi rune
}

func (r Range) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("%#x", r.Lo)
	}
	return fmt.Sprintf("%#x-%#x", r.Lo, r.Hi)
}

// Set is an immutable set of codepoints in canonical interval form.
// The zero value is the empty set.
type Set struct {
	ranges []Range
}

// Of builds a set from ranges in any order. Ranges may overlap or
// touch; the result is canonical.
func Of(ranges ...Range) Set {
	rs := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		rs = append(rs, r)
	}
	return normalize(rs)
}

// New builds a set from any mix of codepoints (rune or int), Range
// values, Set values, and nested slices of these. An inverted range
// or unsupported element type is a construction error.
func New(members ...any) (Set, error) {
	var rs []Range
	var collect func(m any) error
	collect = func(m any) error {
		switch v := m.(type) {
		case rune:
			rs = append(rs, Range{v, v})
		case int:
			rs = append(rs, Range{rune(v), rune(v)})
		case Range:
			if v.Lo > v.Hi {
				return fmt.Errorf("intset: inverted range %#x-%#x", v.Lo, v.Hi)
			}
			rs = append(rs, v)
		case Set:
			rs = append(rs, v.ranges...)
		case []any:
			for _, e := range v {
				if err := collect(e); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("intset: cannot build set from %T", m)
		}
		return nil
	}
	for _, m := range members {
		if err := collect(m); err != nil {
			return Set{}, err
		}
	}
	return normalize(rs), nil
}

// normalize sorts ranges by lower bound and folds them onto a stack,
// extending the top whenever the next range starts at or below
// top.Hi+1.
func normalize(rs []Range) Set {
	if len(rs) == 0 {
		return Set{}
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Lo != rs[j].Lo {
			return rs[i].Lo < rs[j].Lo
		}
		return rs[i].Hi < rs[j].Hi
	})
	out := make([]Range, 0, len(rs))
	out = append(out, rs[0])
	for _, r := range rs[1:] {
		top := &out[len(out)-1]
		if r.Lo <= top.Hi+1 {
			if r.Hi > top.Hi {
				top.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return Set{ranges: out}
}

// Insert returns the set extended with r.
func (s Set) Insert(r Range) Set {
	rs := make([]Range, 0, len(s.ranges)+1)
	rs = append(rs, s.ranges...)
	rs = append(rs, r)
	return normalize(rs)
}

// Union merges two sets by sort-merging their range lists and folding
// the result.
func Union(a, b Set) Set {
	rs := make([]Range, 0, len(a.ranges)+len(b.ranges))
	i, j := 0, 0
	for i < len(a.ranges) && j < len(b.ranges) {
		if a.ranges[i].Lo <= b.ranges[j].Lo {
			rs = append(rs, a.ranges[i])
			i++
		} else {
			rs = append(rs, b.ranges[j])
			j++
		}
	}
	rs = append(rs, a.ranges[i:]...)
	rs = append(rs, b.ranges[j:]...)
	return normalize(rs)
}

// Complement returns the codepoints of universe absent from s.
func Complement(s Set, universe Range) Set {
	var rs []Range
	next := universe.Lo
	for _, r := range s.ranges {
		if r.Hi < universe.Lo {
			continue
		}
		if r.Lo > universe.Hi {
			break
		}
		if r.Lo > next {
			rs = append(rs, Range{next, r.Lo - 1})
		}
		if r.Hi+1 > next {
			next = r.Hi + 1
		}
	}
	if next <= universe.Hi {
		rs = append(rs, Range{next, universe.Hi})
	}
	return Set{ranges: rs}
}

// Build materializes the subset of universe satisfying pred.
func Build(universe Range, pred func(rune) bool) Set {
	var rs []Range
	lo := universe.Lo
	open := false
	var start rune
	for c := lo; c <= universe.Hi; c++ {
		if pred(c) {
			if !open {
				start = c
				open = true
			}
		} else if open {
			rs = append(rs, Range{start, c - 1})
			open = false
		}
	}
	if open {
		rs = append(rs, Range{start, universe.Hi})
	}
	return Set{ranges: rs}
}

// Contains reports membership of c by binary search.
func (s Set) Contains(c rune) bool {
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].Hi >= c
	})
	return i < len(s.ranges) && s.ranges[i].Lo <= c
}

// Excludes is the negative membership guard.
func (s Set) Excludes(c rune) bool {
	return !s.Contains(c)
}

// Ranges returns the canonical range list. Callers must not modify it.
func (s Set) Ranges() []Range {
	return s.ranges
}

// Size returns the number of member codepoints.
func (s Set) Size() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Min returns the smallest member. It panics on the empty set.
func (s Set) Min() rune {
	if len(s.ranges) == 0 {
		panic("intset: Min of empty set")
	}
	return s.ranges[0].Lo
}

// Equal reports whether two sets have the same members. Canonical
// form makes this a range-for-range comparison.
func (s Set) Equal(o Set) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i, r := range s.ranges {
		if o.ranges[i] != r {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
