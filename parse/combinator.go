package parse

import (
	"fmt"
	"strings"
)

// Pair is the value of a two-parser sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the value of a three-parser sequence.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is the value of a four-parser sequence.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Bound limits a repetition. Max < 0 means unbounded.
type Bound struct {
	Min, Max int
}

// Exactly repeats exactly n times.
func Exactly(n int) Bound {
	return Bound{Min: n, Max: n}
}

// AtLeast repeats min or more times.
func AtLeast(min int) Bound {
	return Bound{Min: min, Max: -1}
}

// Bounds repeats between min and max times inclusive.
func Bounds(min, max int) Bound {
	return Bound{Min: min, Max: max}
}

func oneBound(bs []Bound) Bound {
	if len(bs) == 0 {
		return Bound{Min: 0, Max: -1}
	}
	return bs[0]
}

func (b Bound) done(n int) bool {
	return b.Max >= 0 && n >= b.Max
}

// Return succeeds without consuming, yielding v.
func Return[V any](v V) Parser[V] {
	return func(st State) (V, State, *Error) {
		return v, st, nil
	}
}

// Empty succeeds without consuming, yielding the empty list.
func Empty[V any]() Parser[[]V] {
	return func(st State) ([]V, State, *Error) {
		return []V{}, st, nil
	}
}

// FailWith always fails with the given free-form message.
func FailWith[V any](text string) Parser[V] {
	return func(st State) (V, State, *Error) {
		var zero V
		return zero, st, failure(st, text)
	}
}

// Lazy defers the construction of a parser until it runs, enabling
// self-referential grammars.
func Lazy[V any](f func() Parser[V]) Parser[V] {
	return func(st State) (V, State, *Error) {
		return f()(st)
	}
}

// Seq2 runs a then b, yielding the pair of their values.
func Seq2[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return func(st State) (Pair[A, B], State, *Error) {
		va, st1, err := a(st)
		if err != nil {
			return Pair[A, B]{}, st1, err
		}
		vb, st2, err := b(st1)
		if err != nil {
			return Pair[A, B]{}, st2, err
		}
		return Pair[A, B]{va, vb}, st2, nil
	}
}

// Seq3 runs three parsers in order, yielding a flat triple.
func Seq3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Triple[A, B, C]] {
	return Map(Seq2(Seq2(a, b), c), func(v Pair[Pair[A, B], C]) Triple[A, B, C] {
		return Triple[A, B, C]{v.First.First, v.First.Second, v.Second}
	})
}

// Seq4 runs four parsers in order, yielding a flat quadruple.
func Seq4[A, B, C, D any](a Parser[A], b Parser[B], c Parser[C], d Parser[D]) Parser[Quad[A, B, C, D]] {
	return Map(Seq2(Seq3(a, b, c), d), func(v Pair[Triple[A, B, C], D]) Quad[A, B, C, D] {
		return Quad[A, B, C, D]{v.First.First, v.First.Second, v.First.Third, v.Second}
	})
}

// Seq runs the parsers in order, collecting their values.
func Seq[V any](ps ...Parser[V]) Parser[[]V] {
	return func(st State) ([]V, State, *Error) {
		values := make([]V, 0, len(ps))
		cur := st
		for _, p := range ps {
			v, next, err := p(cur)
			if err != nil {
				return nil, next, err
			}
			values = append(values, v)
			cur = next
		}
		return values, cur, nil
	}
}

// Cons prepends the value of h to the list parsed by t.
func Cons[V any](h Parser[V], t Parser[[]V]) Parser[[]V] {
	return Ap(h, t, func(v V, vs []V) []V {
		return append([]V{v}, vs...)
	})
}

// Concat joins two list parsers.
func Concat[V any](a, b Parser[[]V]) Parser[[]V] {
	return Ap(a, b, func(va, vb []V) []V {
		out := make([]V, 0, len(va)+len(vb))
		out = append(out, va...)
		return append(out, vb...)
	})
}

// SConcat joins two string parsers.
func SConcat(a, b Parser[string]) Parser[string] {
	return Ap(a, b, func(va, vb string) string { return va + vb })
}

// SCons prepends a codepoint to a string.
func SCons(c Parser[rune], s Parser[string]) Parser[string] {
	return Ap(c, s, func(vc rune, vs string) string { return string(vc) + vs })
}

// SAppend appends a codepoint to a string.
func SAppend(s Parser[string], c Parser[rune]) Parser[string] {
	return Ap(s, c, func(vs string, vc rune) string { return vs + string(vc) })
}

// Ap runs a then b and combines their values with f.
func Ap[A, B, C any](a Parser[A], b Parser[B], f func(A, B) C) Parser[C] {
	return func(st State) (C, State, *Error) {
		var zero C
		va, st1, err := a(st)
		if err != nil {
			return zero, st1, err
		}
		vb, st2, err := b(st1)
		if err != nil {
			return zero, st2, err
		}
		return f(va, vb), st2, nil
	}
}

// SkipLeft runs a then b, keeping b's value.
func SkipLeft[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Ap(a, b, func(_ A, vb B) B { return vb })
}

// SkipRight runs a then b, keeping a's value.
func SkipRight[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Ap(a, b, func(va A, _ B) A { return va })
}

// SkipAround runs pre, p, post, keeping p's value.
func SkipAround[A, B, C any](pre Parser[A], p Parser[B], post Parser[C]) Parser[B] {
	return SkipRight(SkipLeft(pre, p), post)
}

// Between runs pre, p, post, keeping p's value.
func Between[A, B, C any](pre Parser[A], post Parser[C], p Parser[B]) Parser[B] {
	return SkipAround(pre, p, post)
}

// Alt tries each alternative from the same state, unconditionally
// backtracking on failure regardless of how much the failed branch
// consumed. Failures merge pairwise via Error.Alt.
func Alt[V any](ps ...Parser[V]) Parser[V] {
	return func(st State) (V, State, *Error) {
		var zero V
		if len(ps) == 0 {
			return zero, st, failure(st, "empty alternative")
		}
		var accErr *Error
		accState := st
		for _, p := range ps {
			v, next, err := p(st)
			if err == nil {
				return v, next, nil
			}
			if accErr == nil {
				accErr, accState = err, next
				continue
			}
			merged := accErr.Alt(err)
			if merged != accErr {
				accState = next
			}
			accErr = merged
		}
		return zero, accState, accErr
	}
}

// Map transforms p's value with f.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(st State) (B, State, *Error) {
		var zero B
		v, next, err := p(st)
		if err != nil {
			return zero, next, err
		}
		return f(v), next, nil
	}
}

// As discards p's value and yields x instead.
func As[A, B any](p Parser[A], x B) Parser[B] {
	return Map(p, func(A) B { return x })
}

// Tag pairs p's value with the tag t.
func Tag[T, V any](p Parser[V], t T) Parser[Pair[T, V]] {
	return Map(p, func(v V) Pair[T, V] { return Pair[T, V]{t, v} })
}

// Filter succeeds only when pred holds for p's value; a rejected
// value fails at the construct's start position.
func Filter[V any](p Parser[V], pred func(V) bool) Parser[V] {
	return func(st State) (V, State, *Error) {
		var zero V
		v, next, err := p(st)
		if err != nil {
			return zero, next, err
		}
		if !pred(v) {
			return zero, st, failure(st, fmt.Sprintf("`%v' failed predicate", v))
		}
		return v, next, nil
	}
}

// Reverse yields p's list value reversed.
func Reverse[V any](p Parser[[]V]) Parser[[]V] {
	return Map(p, func(vs []V) []V {
		out := make([]V, len(vs))
		for i, v := range vs {
			out[len(vs)-1-i] = v
		}
		return out
	})
}

// Many greedily collects p's values until it fails or the bound's max
// is reached, then succeeds when at least the bound's min were
// collected and propagates the inner failure otherwise. An iteration
// that succeeds without advancing the position ends the loop, so
// repetition always terminates; if that leaves fewer than the min,
// Many fails with "more input expected".
func Many[V any](p Parser[V], bound ...Bound) Parser[[]V] {
	b := oneBound(bound)
	return func(st State) ([]V, State, *Error) {
		var values []V
		cur := st
		for !b.done(len(values)) {
			v, next, err := p(cur)
			if err != nil {
				if len(values) < b.Min {
					return nil, next, err
				}
				break
			}
			if next.pos == cur.pos {
				break
			}
			values = append(values, v)
			cur = next
		}
		if len(values) < b.Min {
			return nil, cur, expected(cur, "more input")
		}
		if values == nil {
			values = []V{}
		}
		return values, cur, nil
	}
}

// Many1 is Many with a minimum of one.
func Many1[V any](p Parser[V], bound ...Bound) Parser[[]V] {
	b := oneBound(bound)
	b.Min = 1
	return Many(p, b)
}

// Reduce is Many folding in place: each parsed value folds into the
// accumulator with f instead of appending to a list.
func Reduce[V, A any](p Parser[V], zero A, f func(V, A) A, bound ...Bound) Parser[A] {
	b := oneBound(bound)
	return func(st State) (A, State, *Error) {
		acc := zero
		count := 0
		cur := st
		for !b.done(count) {
			v, next, err := p(cur)
			if err != nil {
				if count < b.Min {
					var z A
					return z, next, err
				}
				break
			}
			if next.pos == cur.pos {
				break
			}
			acc = f(v, acc)
			count++
			cur = next
		}
		if count < b.Min {
			var z A
			return z, cur, expected(cur, "more input")
		}
		return acc, cur, nil
	}
}

// StringOf repeats a codepoint-yielding parser and collects the
// result into a string. The argument may be a Parser[rune],
// Parser[[]rune] or Parser[string], or any charset descriptor, which
// is shorthand for OneOf(desc). Any other parser type violates the
// construction contract and panics.
func StringOf(pOrDesc any, bound ...Bound) Parser[string] {
	var p Parser[string]
	switch inner := pOrDesc.(type) {
	case Parser[string]:
		p = inner
	case Parser[rune]:
		p = Map(inner, func(c rune) string { return string(c) })
	case Parser[[]rune]:
		p = Map(inner, func(cs []rune) string { return string(cs) })
	default:
		p = Map(OneOf(pOrDesc), func(c rune) string { return string(c) })
	}
	chunks := Many(p, oneBound(bound))
	return Map(chunks, func(cs []string) string {
		var b strings.Builder
		for _, c := range cs {
			b.WriteString(c)
		}
		return b.String()
	})
}

// ManyUntil collects term's values until end succeeds. end is probed
// with lookahead on each iteration and its success consumes nothing.
func ManyUntil[V, E any](term Parser[V], end Parser[E]) Parser[[]V] {
	return func(st State) ([]V, State, *Error) {
		values := []V{}
		cur := st
		for {
			if _, _, err := end(cur); err == nil {
				return values, cur, nil
			}
			v, next, err := term(cur)
			if err != nil {
				return nil, st, err
			}
			if next.pos == cur.pos {
				return values, cur, nil
			}
			values = append(values, v)
			cur = next
		}
	}
}

// SkipMany consumes left greedily, then matches right from the final
// position, yielding right's value.
func SkipMany[A, B any](left Parser[A], right Parser[B]) Parser[B] {
	return func(st State) (B, State, *Error) {
		cur := st
		for {
			_, next, err := left(cur)
			if err != nil || next.pos == cur.pos {
				break
			}
			cur = next
		}
		return right(cur)
	}
}

// Sep parses zero or more terms separated by sep, with no trailing
// separator: a separator is only consumed when another term follows.
func Sep[V, S any](term Parser[V], sep Parser[S]) Parser[[]V] {
	return sepCommon(term, sep, 0, false)
}

// Sep1 is Sep with at least one term.
func Sep1[V, S any](term Parser[V], sep Parser[S]) Parser[[]V] {
	return sepCommon(term, sep, 1, false)
}

// SepEnd is Sep accepting an optional trailing separator.
func SepEnd[V, S any](term Parser[V], sep Parser[S]) Parser[[]V] {
	return sepCommon(term, sep, 0, true)
}

// SepEnd1 is SepEnd with at least one term.
func SepEnd1[V, S any](term Parser[V], sep Parser[S]) Parser[[]V] {
	return sepCommon(term, sep, 1, true)
}

func sepCommon[V, S any](term Parser[V], sep Parser[S], min int, trailing bool) Parser[[]V] {
	return func(st State) ([]V, State, *Error) {
		values := []V{}
		v, cur, err := term(st)
		if err != nil {
			if min > 0 {
				// final failure reports the construct's boundary
				return nil, st, err
			}
			return values, st, nil
		}
		values = append(values, v)
		for {
			_, afterSep, err := sep(cur)
			if err != nil {
				return values, cur, nil
			}
			v, afterTerm, err := term(afterSep)
			if err != nil {
				if trailing {
					return values, afterSep, nil
				}
				return values, cur, nil
			}
			values = append(values, v)
			cur = afterTerm
		}
	}
}

// ChainLeft parses one or more terms joined by op, whose value is a
// binary combiner applied left-associatively. An op with no term
// after it fails at the post-operator position.
func ChainLeft[V any](term Parser[V], op Parser[func(V, V) V]) Parser[V] {
	return func(st State) (V, State, *Error) {
		var zero V
		acc, cur, err := term(st)
		if err != nil {
			return zero, st, err
		}
		for {
			f, afterOp, err := op(cur)
			if err != nil {
				return acc, cur, nil
			}
			right, afterTerm, err := term(afterOp)
			if err != nil {
				return zero, st, err
			}
			acc = f(acc, right)
			cur = afterTerm
		}
	}
}

// ChainRight is ChainLeft with right associativity: application is
// deferred until the chain completes.
func ChainRight[V any](term Parser[V], op Parser[func(V, V) V]) Parser[V] {
	return func(st State) (V, State, *Error) {
		var zero V
		var terms []V
		var ops []func(V, V) V
		v, cur, err := term(st)
		if err != nil {
			return zero, st, err
		}
		terms = append(terms, v)
		for {
			f, afterOp, err := op(cur)
			if err != nil {
				break
			}
			right, afterTerm, err := term(afterOp)
			if err != nil {
				return zero, st, err
			}
			ops = append(ops, f)
			terms = append(terms, right)
			cur = afterTerm
		}
		acc := terms[len(terms)-1]
		for i := len(ops) - 1; i >= 0; i-- {
			acc = ops[i](terms[i], acc)
		}
		return acc, cur, nil
	}
}

// Lookahead runs p and, on success, restores the input position
// before yielding p's value.
func Lookahead[V any](p Parser[V]) Parser[V] {
	return func(st State) (V, State, *Error) {
		v, _, err := p(st)
		if err != nil {
			var zero V
			return zero, st, err
		}
		return v, st, nil
	}
}

// Exclude inverts p: p succeeding is a failure reporting what was
// found, p failing is a zero-width success.
func Exclude[V any](p Parser[V]) Parser[any] {
	return func(st State) (any, State, *Error) {
		v, _, err := p(st)
		if err == nil {
			return nil, st, unexpected(st, fmt.Sprintf("%v", v))
		}
		return nil, st, nil
	}
}

// Bind feeds p's value into f to obtain the parser to continue with.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(st State) (B, State, *Error) {
		var zero B
		v, next, err := p(st)
		if err != nil {
			return zero, next, err
		}
		return f(v)(next)
	}
}

// Label rewrites failures of p that occurred at or before p's start
// into "<name> expected" there; failures further in are more
// informative than the label and pass through unchanged.
func Label[V any](p Parser[V], name string) Parser[V] {
	return func(st State) (V, State, *Error) {
		v, next, err := p(st)
		if err != nil && err.Pos <= st.pos {
			var zero V
			return zero, st, expected(st, name)
		}
		return v, next, err
	}
}

// ParseWith adapts an external match function into a parser. f
// receives the unconsumed input and returns a value and the
// remainder, which must be a suffix of its input; the position
// advances by the number of codepoints consumed. Errors surface as
// free-form failures under name.
func ParseWith[V any](name string, f func(string) (V, string, error)) Parser[V] {
	return func(st State) (V, State, *Error) {
		var zero V
		rest := st.Rest()
		v, remainder, err := f(rest)
		if err != nil {
			return zero, st, failure(st, name+": "+err.Error())
		}
		consumed := len(rest) - len(remainder)
		if consumed < 0 || rest[consumed:] != remainder {
			return zero, st, failure(st, name+": remainder is not a suffix of the input")
		}
		target := st.off + consumed
		cur := st
		for cur.off < target {
			_, size, ok := cur.next()
			if !ok {
				break
			}
			cur = cur.advance(size)
		}
		return v, cur, nil
	}
}

// ExternalParser is anything exposing a Parse method with the
// value/remainder/error shape ParseWith adapts.
type ExternalParser[V any] interface {
	Parse(input string) (V, string, error)
}

// ParseAs adapts a module-shaped external parser.
func ParseAs[V any](name string, m ExternalParser[V]) Parser[V] {
	return ParseWith(name, m.Parse)
}
