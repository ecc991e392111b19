package parse

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func digitsToInt(cs []rune) int {
	n := 0
	for _, c := range cs {
		n = n*10 + int(c-'0')
	}
	return n
}

func TestReturnAndEmpty(t *testing.T) {
	r := Match("abc", Return(42))
	if r.Status != Success || r.Value != 42 || r.Rest != "abc" || r.Pos != 0 {
		t.Errorf("Return: %+v", r)
	}
	e := Match("abc", Empty[rune]())
	if e.Status != Success || len(e.Value) != 0 || e.Rest != "abc" {
		t.Errorf("Empty: %+v", e)
	}
}

func TestFailWith(t *testing.T) {
	r := Match("abc", FailWith[int]("nope"))
	if r.Status != Failure || r.Err.Kind != Message || r.Err.Desc != "nope" || r.Err.Pos != 0 {
		t.Errorf("FailWith: %+v", r.Err)
	}
}

func TestSeq2(t *testing.T) {
	p := Seq2(Char('a'), OneOf("digit"))
	r := Match("a7x", p)
	if r.Status != Success || r.Value.First != 'a' || r.Value.Second != '7' || r.Rest != "x" {
		t.Errorf("Seq2: %+v", r)
	}

	r = Match("ax", p)
	if r.Status != Failure || r.Err.Desc != "digit" || r.Err.Pos != 1 {
		t.Errorf("Seq2 failure: %+v", r.Err)
	}
}

func TestSeqSlice(t *testing.T) {
	p := Seq(Str("foo"), Str("bar"))
	r := Match("foobar", p)
	if r.Status != Success || strings.Join(r.Value, "") != "foobar" {
		t.Errorf("Seq: %+v", r)
	}
}

func TestConsAndConcat(t *testing.T) {
	head := Char('a')
	tail := Many(OneOf("digit"))
	r := Match("a12", Cons(head, tail))
	if r.Status != Success || string(r.Value) != "a12" {
		t.Errorf("Cons: %+v", r)
	}

	c := Concat(Many1(OneOf("lower")), Many1(OneOf("digit")))
	rc := Match("ab12", c)
	if rc.Status != Success || string(rc.Value) != "ab12" {
		t.Errorf("Concat: %+v", rc)
	}
}

func TestStringJoiners(t *testing.T) {
	r := Match("foobar", SConcat(Str("foo"), Str("bar")))
	if r.Status != Success || r.Value != "foobar" {
		t.Errorf("SConcat: %+v", r)
	}
	r = Match("xyz", SCons(Char('x'), Str("yz")))
	if r.Status != Success || r.Value != "xyz" {
		t.Errorf("SCons: %+v", r)
	}
	r = Match("xyz", SAppend(Str("xy"), Char('z')))
	if r.Status != Success || r.Value != "xyz" {
		t.Errorf("SAppend: %+v", r)
	}
}

func TestSkips(t *testing.T) {
	r := Match("(x)", Between(Char('('), Char(')'), Char('x')))
	if r.Status != Success || r.Value != 'x' || r.Rest != "" {
		t.Errorf("Between: %+v", r)
	}
	r = Match("ab", SkipLeft(Char('a'), Char('b')))
	if r.Status != Success || r.Value != 'b' {
		t.Errorf("SkipLeft: %+v", r)
	}
	r = Match("ab", SkipRight(Char('a'), Char('b')))
	if r.Status != Success || r.Value != 'a' {
		t.Errorf("SkipRight: %+v", r)
	}
}

func TestAltBacktracksUnconditionally(t *testing.T) {
	// the first branch consumes 'a' before failing; the second still
	// starts from the original position
	first := Map(Seq2(Char('a'), Char('b')), func(p Pair[rune, rune]) string { return "ab" })
	p := Alt(first, Str("ax"))
	r := Match("ax", p)
	if r.Status != Success || r.Value != "ax" {
		t.Errorf("Alt: %+v", r)
	}
}

func TestAltMergesErrors(t *testing.T) {
	p := Alt(Char('a'), Char('b'))
	r := Match("z", p)
	if r.Status != Failure || r.Err.Desc != "`a' or `b'" || r.Err.Pos != 0 {
		t.Errorf("Alt merge: %+v", r.Err)
	}

	// the branch that got further wins
	far := Seq2(Char('z'), Char('q'))
	p2 := Alt(Map(far, func(Pair[rune, rune]) rune { return 'z' }), Char('b'))
	r2 := Match("zx", p2)
	if r2.Status != Failure || r2.Err.Desc != "`q'" || r2.Err.Pos != 1 {
		t.Errorf("Alt furthest: %+v", r2.Err)
	}
}

func TestMapAsTag(t *testing.T) {
	r := Match("7", Map(OneOf("digit"), func(c rune) int { return int(c - '0') }))
	if r.Status != Success || r.Value != 7 {
		t.Errorf("Map: %+v", r)
	}
	r2 := Match("x", As(Char('x'), "found"))
	if r2.Status != Success || r2.Value != "found" {
		t.Errorf("As: %+v", r2)
	}
	r3 := Match("x", Tag(Char('x'), "char"))
	if r3.Status != Success || r3.Value.First != "char" || r3.Value.Second != 'x' {
		t.Errorf("Tag: %+v", r3)
	}
}

func TestFilter(t *testing.T) {
	even := Filter(
		Map(Many1(OneOf("digit")), digitsToInt),
		func(n int) bool { return n%2 == 0 },
	)
	r := Match("42", even)
	if r.Status != Success || r.Value != 42 {
		t.Errorf("Filter pass: %+v", r)
	}
	r = Match("43", even)
	if r.Status != Failure || r.Err.Kind != Message || r.Err.Desc != "`43' failed predicate" || r.Err.Pos != 0 {
		t.Errorf("Filter reject: %+v", r.Err)
	}
}

func TestReverse(t *testing.T) {
	r := Match("abc", Reverse(Many(Any())))
	if r.Status != Success || string(r.Value) != "cba" {
		t.Errorf("Reverse: %+v", r)
	}
}

func TestMany(t *testing.T) {
	digit := OneOf("digit")
	tests := []struct {
		name  string
		bound []Bound
		input string
		ok    bool
		value string
		rest  string
	}{
		{"zero or more empty", nil, "abc", true, "", "abc"},
		{"zero or more some", nil, "12a", true, "12", "a"},
		{"exact stops at max", []Bound{Exactly(2)}, "1234", true, "12", "34"},
		{"min unmet fails", []Bound{AtLeast(2)}, "1a", false, "", ""},
		{"bounds", []Bound{Bounds(1, 3)}, "12345", true, "123", "45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Match(tt.input, Many(digit, tt.bound...))
			if tt.ok != (r.Status == Success) {
				t.Fatalf("status = %v, want ok=%v", r.Status, tt.ok)
			}
			if !tt.ok {
				return
			}
			if string(r.Value) != tt.value || r.Rest != tt.rest {
				t.Errorf("got %q rest %q, want %q rest %q", string(r.Value), r.Rest, tt.value, tt.rest)
			}
		})
	}
}

func TestManyPropagatesInnerFailure(t *testing.T) {
	r := Match("1a", Many(OneOf("digit"), AtLeast(2)))
	if r.Status != Failure || r.Err.Desc != "digit" || r.Err.Pos != 1 {
		t.Errorf("Err = %+v", r.Err)
	}
}

func TestManyTerminatesWithoutProgress(t *testing.T) {
	r := Match("abc", Many(Return('x')))
	if r.Status != Success || len(r.Value) != 0 || r.Rest != "abc" {
		t.Errorf("Many of zero-width parser: %+v", r)
	}
}

func TestMany1(t *testing.T) {
	r := Match("12a", Many1(OneOf("digit")))
	if r.Status != Success || string(r.Value) != "12" {
		t.Errorf("Many1: %+v", r)
	}
	r = Match("a", Many1(OneOf("digit")))
	if r.Status != Failure {
		t.Errorf("Many1 on no match: %+v", r)
	}
}

func TestReduce(t *testing.T) {
	sum := Reduce(
		Map(OneOf("digit"), func(c rune) int { return int(c - '0') }),
		0,
		func(v, acc int) int { return acc + v },
	)
	r := Match("123x", sum)
	if r.Status != Success || r.Value != 6 || r.Rest != "x" {
		t.Errorf("Reduce: %+v", r)
	}
}

func TestStringOf(t *testing.T) {
	r := Match("42abc", StringOf("digit", AtLeast(1)))
	if r.Status != Success || r.Value != "42" || r.Rest != "abc" {
		t.Errorf("StringOf desc: %+v", r)
	}

	r = Match("ababX", StringOf(Str("ab")))
	if r.Status != Success || r.Value != "abab" || r.Rest != "X" {
		t.Errorf("StringOf parser: %+v", r)
	}

	r = Match("xyz", StringOf(OneOf("lower"), Exactly(2)))
	if r.Status != Success || r.Value != "xy" || r.Rest != "z" {
		t.Errorf("StringOf rune parser: %+v", r)
	}
}

func TestManyUntil(t *testing.T) {
	body := ManyUntil(Any(), Char(']'))
	r := Match("ab]", body)
	if r.Status != Success || string(r.Value) != "ab" || r.Rest != "]" {
		t.Errorf("ManyUntil: %+v", r)
	}
}

func TestManyUntilReportsConstructBoundary(t *testing.T) {
	// the terminator never appears; the failure surfaces at the
	// construct's start state
	body := ManyUntil(OneOf("digit"), Char(']'))
	r := Match("12x", body)
	if r.Status != Failure {
		t.Fatalf("want failure: %+v", r)
	}
	if r.Rest != "12x" || r.Pos != 0 {
		t.Errorf("boundary: rest %q pos %d", r.Rest, r.Pos)
	}
	if r.Err.Pos != 2 {
		t.Errorf("error position should stay informative: %+v", r.Err)
	}
}

func TestSkipMany(t *testing.T) {
	p := SkipMany(Char(' '), Char('x'))
	r := Match("   x", p)
	if r.Status != Success || r.Value != 'x' || r.Rest != "" {
		t.Errorf("SkipMany: %+v", r)
	}
	r = Match("x", p)
	if r.Status != Success || r.Value != 'x' {
		t.Errorf("SkipMany no left: %+v", r)
	}
}

func TestSep(t *testing.T) {
	digit := OneOf("digit")
	comma := Char(',')
	tests := []struct {
		name  string
		p     Parser[[]rune]
		input string
		ok    bool
		value string
		rest  string
	}{
		{"sep empty", Sep(digit, comma), "x", true, "", "x"},
		{"sep list", Sep(digit, comma), "1,2,3x", true, "123", "x"},
		{"sep leaves trailing separator", Sep(digit, comma), "1,2,", true, "12", ","},
		{"sep1 list", Sep1(digit, comma), "1,2", true, "12", ""},
		{"sep1 empty fails", Sep1(digit, comma), "x", false, "", ""},
		{"sep_end consumes trailing separator", SepEnd(digit, comma), "1,2,", true, "12", ""},
		{"sep_end no trailing", SepEnd(digit, comma), "1,2x", true, "12", "x"},
		{"sep_end1 empty fails", SepEnd1(digit, comma), "", false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Match(tt.input, tt.p)
			if tt.ok != (r.Status == Success) {
				t.Fatalf("status = %v, want ok=%v", r.Status, tt.ok)
			}
			if !tt.ok {
				return
			}
			if string(r.Value) != tt.value || r.Rest != tt.rest {
				t.Errorf("got %q rest %q, want %q rest %q", string(r.Value), r.Rest, tt.value, tt.rest)
			}
		})
	}
}

func TestChainLeft(t *testing.T) {
	num := Map(Many1(OneOf("digit")), digitsToInt)
	sub := As(Char('-'), func(a, b int) int { return a - b })
	r := Match("10-2-3", ChainLeft(num, sub))
	if r.Status != Success || r.Value != 5 {
		t.Errorf("ChainLeft: %+v", r)
	}
}

func TestChainRight(t *testing.T) {
	num := Map(Many1(OneOf("digit")), digitsToInt)
	sub := As(Char('-'), func(a, b int) int { return a - b })
	r := Match("10-2-3", ChainRight(num, sub))
	if r.Status != Success || r.Value != 11 {
		t.Errorf("ChainRight: %+v", r)
	}
}

func TestChainFailsOnTrailingOperator(t *testing.T) {
	num := Map(Many1(OneOf("digit")), digitsToInt)
	add := As(Char('+'), func(a, b int) int { return a + b })
	r := Match("1+", ChainLeft(num, add))
	if r.Status != Failure {
		t.Fatalf("want failure: %+v", r)
	}
	if r.Err.Pos != 2 {
		t.Errorf("error should point past the operator: %+v", r.Err)
	}
	if r.Rest != "1+" || r.Pos != 0 {
		t.Errorf("failure reports the construct boundary: rest %q pos %d", r.Rest, r.Pos)
	}
}

func TestLookahead(t *testing.T) {
	r := Match("abc", Lookahead(Str("ab")))
	if r.Status != Success || r.Value != "ab" || r.Rest != "abc" || r.Pos != 0 {
		t.Errorf("Lookahead: %+v", r)
	}
	r = Match("xbc", Lookahead(Str("ab")))
	if r.Status != Failure {
		t.Errorf("Lookahead failure: %+v", r)
	}
}

func TestExclude(t *testing.T) {
	r := Match("abc", Exclude(Str("ab")))
	if r.Status != Failure || r.Err.Kind != Unexpected || r.Err.Desc != "ab" {
		t.Errorf("Exclude hit: %+v", r.Err)
	}
	r = Match("xbc", Exclude(Str("ab")))
	if r.Status != Success || r.Rest != "xbc" {
		t.Errorf("Exclude miss: %+v", r)
	}
}

func TestBind(t *testing.T) {
	// length-prefixed input: a digit saying how many letters follow
	p := Bind(OneOf("digit"), func(d rune) Parser[[]rune] {
		return Many(OneOf("lower"), Exactly(int(d-'0')))
	})
	r := Match("3abcd", p)
	if r.Status != Success || string(r.Value) != "abc" || r.Rest != "d" {
		t.Errorf("Bind: %+v", r)
	}
}

func TestLabel(t *testing.T) {
	ident := Label(Many1(OneOf("lower")), "identifier")
	r := Match("123", ident)
	if r.Status != Failure || r.Err.Desc != "identifier" || r.Err.Pos != 0 {
		t.Errorf("Label rewrite: %+v", r.Err)
	}

	// a failure further in is already informative and survives
	p := Label(Seq2(Char('a'), Char('b')), "pair")
	r2 := Match("ax", p)
	if r2.Status != Failure || r2.Err.Desc != "`b'" || r2.Err.Pos != 1 {
		t.Errorf("Label passthrough: %+v", r2.Err)
	}
}

func TestLazy(t *testing.T) {
	// nested brackets need a self-reference
	var nested Parser[rune]
	nested = Alt(
		Char('x'),
		Between(Char('['), Char(']'), Lazy(func() Parser[rune] { return nested })),
	)
	r := Match("[[x]]", nested)
	if r.Status != Success || r.Value != 'x' || r.Rest != "" {
		t.Errorf("Lazy: %+v", r)
	}
}

func TestParseWith(t *testing.T) {
	leadingInt := func(s string) (int, string, error) {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 {
			return 0, "", errors.New("no digits")
		}
		n, err := strconv.Atoi(s[:i])
		return n, s[i:], err
	}

	p := ParseWith("int", leadingInt)
	r := Match("123rest", p)
	if r.Status != Success || r.Value != 123 || r.Rest != "rest" || r.Pos != 3 {
		t.Errorf("ParseWith: %+v", r)
	}

	r = Match("abc", p)
	if r.Status != Failure || r.Err.Kind != Message || r.Err.Desc != "int: no digits" {
		t.Errorf("ParseWith failure: %+v", r.Err)
	}
}

type versionParser struct{}

func (versionParser) Parse(s string) (string, string, error) {
	if !strings.HasPrefix(s, "v") {
		return "", "", errors.New("missing v prefix")
	}
	i := 1
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	return s[:i], s[i:], nil
}

func TestParseAs(t *testing.T) {
	p := ParseAs[string]("version", versionParser{})
	r := Match("v1.2 beta", p)
	if r.Status != Success || r.Value != "v1.2" || r.Rest != " beta" {
		t.Errorf("ParseAs: %+v", r)
	}
}
