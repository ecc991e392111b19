package parse

import "errors"

// State is the immutable cursor a parser consumes: the full input,
// the byte offset of the cursor, the codepoint position, and the
// invocation's encoding. Backtracking is reusing an earlier State.
type State struct {
	src     string
	off     int
	pos     int
	enc     Encoding
	tabSize int
}

// Rest returns the unconsumed input.
func (s State) Rest() string {
	return s.src[s.off:]
}

// Pos returns the codepoint position of the cursor.
func (s State) Pos() int {
	return s.pos
}

func (s State) advance(size int) State {
	s.off += size
	s.pos++
	return s
}

// next decodes one codepoint at the cursor.
func (s State) next() (rune, int, bool) {
	return s.enc.decode(s.src, s.off)
}

// Parser consumes input from a State and either yields a value with
// the state after it, or a positioned failure with the state it
// failed with (see Result for which combinators report their start).
type Parser[V any] func(State) (V, State, *Error)

// Option configures a parser invocation.
type Option func(*State)

// WithEncoding fixes the input encoding for the invocation. The
// default is UTF8.
func WithEncoding(enc Encoding) Option {
	return func(s *State) {
		s.enc = enc
	}
}

// WithTabSize sets the tab stop width used when rendering failure
// positions.
func WithTabSize(n int) Option {
	return func(s *State) {
		s.tabSize = n
	}
}

// Status reports whether a Match succeeded.
type Status int

const (
	Success Status = iota
	Failure
)

// Result is the outcome of Match: on Success, the remaining input,
// position and value; on Failure, the input and position of the state
// the parser failed with (the construct's start for ChainLeft,
// ChainRight, Sep1, SepEnd1 and ManyUntil) together with the failure
// itself, whose Pos marks where matching failed.
type Result[V any] struct {
	Status Status
	Rest   string
	Pos    int
	Value  V
	Err    *Error
}

func newState(input string, opts []Option) State {
	st := State{src: input, tabSize: DefaultTabSize}
	for _, opt := range opts {
		opt(&st)
	}
	return st
}

// Match runs p against input and returns the raw result tuple.
func Match[V any](input string, p Parser[V], opts ...Option) Result[V] {
	st := newState(input, opts)
	v, next, err := p(st)
	if err != nil {
		return Result[V]{Status: Failure, Rest: next.Rest(), Pos: next.pos, Err: err}
	}
	return Result[V]{Status: Success, Rest: next.Rest(), Pos: next.pos, Value: v}
}

// Parse runs p against input and returns its value, or an error
// carrying the rendered failure message. Rendering happens here and
// nowhere else.
func Parse[V any](input string, p Parser[V], opts ...Option) (V, error) {
	st := newState(input, opts)
	v, _, err := p(st)
	if err != nil {
		var zero V
		return zero, errors.New(FullMessage(err, input, st.enc, st.tabSize))
	}
	return v, nil
}
