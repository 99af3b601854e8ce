// Package lexer converts .int source text into a flat token stream.
//
// The input is first cut into fragments at whitespace and at operator
// symbols, then every fragment is classified on its own. Whitespace only
// matters inside string literals, where fragments are kept untrimmed.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/zurustar/intc/pkg/compiler/token"
)

// State is the lexer mode while walking fragments.
type State int

const (
	StateNormal State = iota
	StateInString
	StateInComment
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateInString:
		return "string"
	case StateInComment:
		return "comment"
	}
	return "unknown"
}

// Lexer tokenizes .int source code.
type Lexer struct {
	input  string
	state  State
	tokens []token.Token
}

// New creates a new Lexer.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize is shorthand for New(input).Tokenize().
func Tokenize(input string) []token.Token {
	return New(input).Tokenize()
}

// Tokenize returns every token of the input. It never fails: words that are
// not recognized become identifiers, and an unterminated string or comment
// simply runs to the end of the input.
func (l *Lexer) Tokenize() []token.Token {
	l.state = StateNormal
	l.tokens = make([]token.Token, 0, len(l.input)/2)

	for _, frag := range Fragments(l.input) {
		switch l.state {
		case StateInComment:
			l.comment(frag)
		case StateInString:
			l.quoted(frag)
		default:
			l.normal(frag)
		}
	}

	return l.tokens
}

// State returns the mode the lexer was left in after the last Tokenize call.
func (l *Lexer) State() State {
	return l.state
}

// Fragments cuts input at whitespace and operator symbols. Each separator is
// returned as a fragment of its own; nothing is dropped, so concatenating the
// result gives back the input.
func Fragments(input string) []string {
	var frags []string
	start := 0
	for i, ch := range input {
		if !unicode.IsSpace(ch) && !token.IsOperator(ch) {
			continue
		}
		if start < i {
			frags = append(frags, input[start:i])
		}
		end := i + len(string(ch))
		frags = append(frags, input[i:end])
		start = end
	}
	if start < len(input) {
		frags = append(frags, input[start:])
	}
	return frags
}

func (l *Lexer) emit(tok token.Token) {
	l.tokens = append(l.tokens, tok)
}

// comment drops everything up to and including the closing '#'.
func (l *Lexer) comment(frag string) {
	if strings.HasPrefix(strings.TrimSpace(frag), "#") {
		l.state = StateNormal
	}
}

func (l *Lexer) quoted(frag string) {
	if strings.HasPrefix(frag, "\"") && !l.escaped() {
		l.state = StateNormal
		l.emit(token.NewOperator(token.OP_QUOTE))
		return
	}
	l.emit(token.NewLiteral(token.StringLiteral(frag)))
}

// escaped reports whether the last string fragment ends in an odd run of
// backslashes, which turns a following quote into string content.
func (l *Lexer) escaped() bool {
	if len(l.tokens) == 0 {
		return false
	}
	last := l.tokens[len(l.tokens)-1]
	if last.Kind != token.LITERAL || last.Literal.Type != token.TYPE_STRING {
		return false
	}
	s := last.Literal.Str
	n := len(s) - len(strings.TrimRight(s, "\\"))
	return n%2 == 1
}

func (l *Lexer) normal(frag string) {
	word := strings.TrimSpace(frag)
	if word == "" {
		return
	}

	first := []rune(word)[0]
	if op, ok := token.LookupOperator(first); ok {
		switch op {
		case token.OP_HASH:
			l.state = StateInComment
			return
		case token.OP_QUOTE:
			l.state = StateInString
		}
		l.emit(token.NewOperator(op))
		return
	}

	l.emit(Classify(word))
}

// Classify turns a trimmed, non-operator word into a token: a primitive type,
// a keyword, an integer, a real, a boolean, or an identifier, tried in that
// order.
func Classify(word string) token.Token {
	if t, ok := token.LookupType(word); ok {
		return token.NewPrimitive(t)
	}
	if k, ok := token.LookupKeyword(word); ok {
		return token.NewKeyword(k)
	}
	if v, err := strconv.ParseInt(word, 10, 32); err == nil {
		return token.NewLiteral(token.IntLiteral(int32(v)))
	}
	if isRealNumber(word) {
		if v, err := strconv.ParseFloat(word, 32); err == nil {
			return token.NewLiteral(token.RealLiteral(float32(v)))
		}
	}
	switch word {
	case "true":
		return token.NewLiteral(token.BoolLiteral(true))
	case "false":
		return token.NewLiteral(token.BoolLiteral(false))
	}
	return token.NewIdent(word)
}

// isRealNumber rejects the inf/nan spellings and hex forms that ParseFloat
// would accept, so names like "nan" stay identifiers.
func isRealNumber(word string) bool {
	for _, ch := range word {
		if !unicode.IsDigit(ch) && !strings.ContainsRune("+-.eE", ch) {
			return false
		}
	}
	return true
}
