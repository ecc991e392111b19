package charset

import (
	"unicode"

	"github.com/dhamidi/combine/intset"
)

// longNames maps each Unicode general category to its long-form
// alias. Both spellings resolve to the same set.
var longNames = map[string]string{
	"Lu": "uppercase_letter",
	"Ll": "lowercase_letter",
	"Lt": "titlecase_letter",
	"Lm": "modifier_letter",
	"Lo": "other_letter",
	"Mn": "nonspacing_mark",
	"Mc": "spacing_mark",
	"Me": "enclosing_mark",
	"Nd": "decimal_number",
	"Nl": "letter_number",
	"No": "other_number",
	"Pc": "connector_punctuation",
	"Pd": "dash_punctuation",
	"Ps": "open_punctuation",
	"Pe": "close_punctuation",
	"Pi": "initial_punctuation",
	"Pf": "final_punctuation",
	"Po": "other_punctuation",
	"Sm": "math_symbol",
	"Sc": "currency_symbol",
	"Sk": "modifier_symbol",
	"So": "other_symbol",
	"Zs": "space_separator",
	"Zl": "line_separator",
	"Zp": "paragraph_separator",
	"Cc": "control",
	"Cf": "format",
	"Co": "private_use",
	"Cs": "surrogate",
	"Cn": "unassigned",
}

var unicodeClasses = buildUnicodeClasses()

// fromRangeTable converts a stdlib range table into an interval set,
// expanding strided entries.
func fromRangeTable(rt *unicode.RangeTable) intset.Set {
	var rs []intset.Range
	for _, r := range rt.R16 {
		if r.Stride == 1 {
			rs = append(rs, intset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			rs = append(rs, intset.Range{Lo: c, Hi: c})
		}
	}
	for _, r := range rt.R32 {
		if r.Stride == 1 {
			rs = append(rs, intset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			rs = append(rs, intset.Range{Lo: c, Hi: c})
		}
	}
	return intset.Of(rs...)
}

func buildUnicodeClasses() map[string]intset.Set {
	universe := intset.Range{Lo: 0, Hi: 0x10FFFF}
	classes := make(map[string]intset.Set)

	assigned := intset.Set{}
	for short, long := range longNames {
		if short == "Cn" {
			continue
		}
		set := fromRangeTable(unicode.Categories[short])
		classes[short] = set
		classes[long] = set
		assigned = intset.Union(assigned, set)
	}
	// Cn has no stdlib table: it is everything the other 29
	// categories leave unassigned.
	cn := intset.Complement(assigned, universe)
	classes["Cn"] = cn
	classes["unassigned"] = cn

	letter := fromRangeTable(unicode.L)
	mark := fromRangeTable(unicode.M)
	number := fromRangeTable(unicode.N)
	punctCat := fromRangeTable(unicode.P)
	symbol := fromRangeTable(unicode.S)
	sepSpace := classes["Zs"]

	alpha := intset.Union(intset.Union(classes["Lu"], classes["Ll"]), classes["Lt"])
	digit := classes["Nd"]
	alnum := intset.Union(alpha, digit)
	punct := intset.Union(punctCat, symbol)
	graph := intset.Union(intset.Union(letter, mark), intset.Union(number, punct))
	space := intset.Union(
		fromRangeTable(unicode.Z),
		intset.Of(intset.Range{Lo: 0x09, Hi: 0x0D}, intset.Range{Lo: 0x85, Hi: 0x85}),
	)

	classes["alpha"] = alpha
	classes["digit"] = digit
	classes["alnum"] = alnum
	classes["upper"] = classes["Lu"]
	classes["lower"] = classes["Ll"]
	classes["space"] = space
	classes["blank"] = intset.Union(sepSpace, intset.Of(intset.Range{Lo: '\t', Hi: '\t'}))
	classes["cntrl"] = classes["Cc"]
	classes["punct"] = punct
	classes["graph"] = graph
	classes["print"] = intset.Union(graph, sepSpace)
	classes["word"] = intset.Union(alnum, intset.Of(intset.Range{Lo: '_', Hi: '_'}))
	classes["ascii"] = intset.Of(intset.Range{Lo: 0, Hi: 0x7F})
	classes["xdigit"] = intset.Of(
		intset.Range{Lo: '0', Hi: '9'},
		intset.Range{Lo: 'A', Hi: 'F'},
		intset.Range{Lo: 'a', Hi: 'f'},
	)
	return classes
}
