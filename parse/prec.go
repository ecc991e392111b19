package parse

import "fmt"

type opKind int

const (
	opPrefix opKind = iota
	opPostfix
	opInfixLeft
	opInfixRight
)

func (k opKind) String() string {
	switch k {
	case opPrefix:
		return "prefix"
	case opPostfix:
		return "postfix"
	case opInfixLeft:
		return "infix-left"
	default:
		return "infix-right"
	}
}

// Operator describes one operator for the precedence engine: its
// shape, binding powers, and combining function. Values are produced
// by PrefixOp, PostfixOp, InfixLeft and InfixRight.
//
// A user-declared precedence p encodes as binding power 2p; the
// asymmetric (2p-1, 2p) and (2p, 2p-1) pairs express left and right
// associativity on the same tier, so a single ">= minimum" test
// drives both.
type Operator[V any] struct {
	kind     opKind
	lbp, rbp int
	unary    func(V) V
	binary   func(V, V) V
}

// OpNode is the value built by the default combining function when an
// operator builder is given none: the operator's parsed value tagged
// with its operands. Grammars using it must produce `any` values.
type OpNode struct {
	Kind string
	Op   any
	Args []any
}

func defaultUnary[V, O any](kind opKind, op O) func(V) V {
	return func(v V) V {
		node := OpNode{Kind: kind.String(), Op: op, Args: []any{v}}
		out, ok := any(node).(V)
		if !ok {
			panic(fmt.Sprintf("parse: default %s constructor requires an `any`-valued grammar", kind))
		}
		return out
	}
}

func defaultBinary[V, O any](kind opKind, op O) func(V, V) V {
	return func(a, b V) V {
		node := OpNode{Kind: kind.String(), Op: op, Args: []any{a, b}}
		out, ok := any(node).(V)
		if !ok {
			panic(fmt.Sprintf("parse: default %s constructor requires an `any`-valued grammar", kind))
		}
		return out
	}
}

// PrefixOp declares a prefix operator at the given precedence. When f
// is omitted the operator builds OpNode values.
func PrefixOp[V, O any](op Parser[O], precedence int, f ...func(V) V) Parser[Operator[V]] {
	return Map(op, func(ov O) Operator[V] {
		un := firstUnary(opPrefix, ov, f)
		return Operator[V]{kind: opPrefix, lbp: 2 * precedence, unary: un}
	})
}

// PostfixOp declares a postfix operator at the given precedence.
func PostfixOp[V, O any](op Parser[O], precedence int, f ...func(V) V) Parser[Operator[V]] {
	return Map(op, func(ov O) Operator[V] {
		un := firstUnary(opPostfix, ov, f)
		return Operator[V]{kind: opPostfix, lbp: 2*precedence - 1, unary: un}
	})
}

// InfixLeft declares a left-associative infix operator at the given
// precedence.
func InfixLeft[V, O any](op Parser[O], precedence int, f ...func(V, V) V) Parser[Operator[V]] {
	return Map(op, func(ov O) Operator[V] {
		bin := firstBinary(opInfixLeft, ov, f)
		return Operator[V]{kind: opInfixLeft, lbp: 2*precedence - 1, rbp: 2 * precedence, binary: bin}
	})
}

// InfixRight declares a right-associative infix operator at the given
// precedence.
func InfixRight[V, O any](op Parser[O], precedence int, f ...func(V, V) V) Parser[Operator[V]] {
	return Map(op, func(ov O) Operator[V] {
		bin := firstBinary(opInfixRight, ov, f)
		return Operator[V]{kind: opInfixRight, lbp: 2 * precedence, rbp: 2*precedence - 1, binary: bin}
	})
}

func firstUnary[V, O any](kind opKind, op O, f []func(V) V) func(V) V {
	if len(f) > 0 && f[0] != nil {
		return f[0]
	}
	return defaultUnary[V](kind, op)
}

func firstBinary[V, O any](kind opKind, op O, f []func(V, V) V) func(V, V) V {
	if len(f) > 0 && f[0] != nil {
		return f[0]
	}
	return defaultBinary[V](kind, op)
}

// Prec parses an expression over term and the operators yielded by
// op, by precedence climbing. Prefix operators are recognized before
// the leading term; postfix and infix operators drive the climbing
// loop, with the right operand of an infix parsed recursively at the
// operator's right binding power.
func Prec[V any](term Parser[V], op Parser[Operator[V]]) Parser[V] {
	return precAt(term, op, 0)
}

func precAt[V any](term Parser[V], op Parser[Operator[V]], minBP int) Parser[V] {
	return func(st State) (V, State, *Error) {
		var zero V

		// Leading term, or a prefix operator binding an operand
		// parsed at the operator's power.
		value, cur, err := leading(term, op, st)
		if err != nil {
			return zero, cur, err
		}

		for {
			desc, afterOp, err := op(cur)
			if err != nil {
				return value, cur, nil
			}
			switch {
			case desc.kind == opPostfix && desc.lbp >= minBP:
				value = desc.unary(value)
				cur = afterOp
			case (desc.kind == opInfixLeft || desc.kind == opInfixRight) && desc.lbp >= minBP:
				right, afterRight, err := precAt(term, op, desc.rbp)(afterOp)
				if err != nil {
					return zero, afterRight, err
				}
				value = desc.binary(value, right)
				cur = afterRight
			default:
				// below threshold or not usable here: rewind
				return value, cur, nil
			}
		}
	}
}

func leading[V any](term Parser[V], op Parser[Operator[V]], st State) (V, State, *Error) {
	var zero V
	if desc, afterOp, err := op(st); err == nil && desc.kind == opPrefix {
		operand, afterOperand, err := precAt(term, op, desc.lbp)(afterOp)
		if err != nil {
			return zero, afterOperand, err
		}
		return desc.unary(operand), afterOperand, nil
	}
	return term(st)
}
