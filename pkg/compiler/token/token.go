// Package token defines the flat token model shared by the lexer, the
// structural parser and the code generator.
package token

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant of the token union a Token holds.
type Kind int

const (
	OPERATOR Kind = iota
	PRIMITIVE
	IDENT
	KEYWORD
	LITERAL
)

// Operator is a single-character punctuation or symbol.
type Operator int

const (
	OP_ADD     Operator = iota // +
	OP_SUB                     // -
	OP_MUL                     // *
	OP_DIV                     // /
	OP_EQ                      // =
	OP_REF                     // &
	OP_HASH                    // #
	OP_LESS                    // <
	OP_GREATER                 // >
	OP_SC_OPEN                 // {
	OP_SC_CLOSE                // }
	OP_BR_OPEN                 // (
	OP_BR_CLOSE                // )
	OP_QUOTE                   // "
	OP_COMMA                   // ,
	OP_DOT                     // .
	OP_EOL                     // ;
)

// PrimitiveType is one of the built-in value types.
type PrimitiveType int

const (
	TYPE_REAL PrimitiveType = iota
	TYPE_INT
	TYPE_STRING
	TYPE_BOOL
	TYPE_FUNC
)

// Keyword is a control keyword.
type Keyword int

const (
	KEY_IF Keyword = iota
	KEY_ELSE
	KEY_LOOP
	KEY_RETURN
	KEY_IMPORT
	KEY_GLOBAL
)

// IdentPrefix is prepended to every identifier when it is written out, so a
// source name can never collide with a reserved word of the target language.
const IdentPrefix = "intc_"

var operators = map[rune]Operator{
	'+': OP_ADD,
	'-': OP_SUB,
	'*': OP_MUL,
	'/': OP_DIV,
	'=': OP_EQ,
	'&': OP_REF,
	'#': OP_HASH,
	'<': OP_LESS,
	'>': OP_GREATER,
	'{': OP_SC_OPEN,
	'}': OP_SC_CLOSE,
	'(': OP_BR_OPEN,
	')': OP_BR_CLOSE,
	'"': OP_QUOTE,
	',': OP_COMMA,
	'.': OP_DOT,
	';': OP_EOL,
}

var operatorSymbols = map[Operator]string{
	OP_ADD:      "+",
	OP_SUB:      "-",
	OP_MUL:      "*",
	OP_DIV:      "/",
	OP_EQ:       "=",
	OP_REF:      "&",
	OP_HASH:     "#",
	OP_LESS:     "<",
	OP_GREATER:  ">",
	OP_SC_OPEN:  "{",
	OP_SC_CLOSE: "}",
	OP_BR_OPEN:  "(",
	OP_BR_CLOSE: ")",
	OP_QUOTE:    "\"",
	OP_COMMA:    ",",
	OP_DOT:      ".",
	OP_EOL:      ";",
}

var types = map[string]PrimitiveType{
	"real":   TYPE_REAL,
	"int":    TYPE_INT,
	"string": TYPE_STRING,
	"bool":   TYPE_BOOL,
	"func":   TYPE_FUNC,
}

var typeNames = map[PrimitiveType]string{
	TYPE_REAL:   "real",
	TYPE_INT:    "int",
	TYPE_STRING: "string",
	TYPE_BOOL:   "bool",
	TYPE_FUNC:   "func",
}

// keywords maps keyword spellings to their Keyword. Both "loop" and "while"
// open a loop.
var keywords = map[string]Keyword{
	"if":     KEY_IF,
	"else":   KEY_ELSE,
	"loop":   KEY_LOOP,
	"while":  KEY_LOOP,
	"ret":    KEY_RETURN,
	"import": KEY_IMPORT,
	"global": KEY_GLOBAL,
}

var keywordNames = map[Keyword]string{
	KEY_IF:     "if",
	KEY_ELSE:   "else",
	KEY_LOOP:   "loop",
	KEY_RETURN: "ret",
	KEY_IMPORT: "import",
	KEY_GLOBAL: "global",
}

// LookupOperator returns the operator spelled by ch.
func LookupOperator(ch rune) (Operator, bool) {
	op, ok := operators[ch]
	return op, ok
}

// IsOperator reports whether ch is one of the operator symbols.
func IsOperator(ch rune) bool {
	_, ok := operators[ch]
	return ok
}

// LookupType returns the primitive type spelled by word.
func LookupType(word string) (PrimitiveType, bool) {
	t, ok := types[word]
	return t, ok
}

// LookupKeyword returns the keyword spelled by word.
func LookupKeyword(word string) (Keyword, bool) {
	k, ok := keywords[word]
	return k, ok
}

func (o Operator) String() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return "UNKNOWN"
}

func (t PrimitiveType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

func (k Keyword) String() string {
	if s, ok := keywordNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Literal is a typed value. Type selects which of the value fields is
// meaningful; a TYPE_FUNC literal carries no value.
type Literal struct {
	Type PrimitiveType
	Real float32
	Int  int32
	Str  string
	Bool bool
}

func RealLiteral(v float32) Literal { return Literal{Type: TYPE_REAL, Real: v} }
func IntLiteral(v int32) Literal { return Literal{Type: TYPE_INT, Int: v} }
func StringLiteral(v string) Literal { return Literal{Type: TYPE_STRING, Str: v} }
func BoolLiteral(v bool) Literal { return Literal{Type: TYPE_BOOL, Bool: v} }
func FuncLiteral() Literal { return Literal{Type: TYPE_FUNC} }

// ZeroValue returns the default value of t.
func ZeroValue(t PrimitiveType) Literal {
	switch t {
	case TYPE_REAL:
		return RealLiteral(0)
	case TYPE_INT:
		return IntLiteral(0)
	case TYPE_STRING:
		return StringLiteral("")
	case TYPE_BOOL:
		return BoolLiteral(false)
	default:
		return FuncLiteral()
	}
}

// Text returns the value's textual form.
func (l Literal) Text() string {
	switch l.Type {
	case TYPE_REAL:
		return strconv.FormatFloat(float64(l.Real), 'f', -1, 32)
	case TYPE_INT:
		return strconv.FormatInt(int64(l.Int), 10)
	case TYPE_STRING:
		return l.Str
	case TYPE_BOOL:
		return strconv.FormatBool(l.Bool)
	default:
		return ""
	}
}

// Token is one element of the flat token stream. Kind selects which of the
// payload fields is meaningful. Tokens are plain values and compare with ==.
type Token struct {
	Kind     Kind
	Operator Operator
	Type     PrimitiveType
	Ident    string
	Keyword  Keyword
	Literal  Literal
}

func NewOperator(op Operator) Token { return Token{Kind: OPERATOR, Operator: op} }
func NewPrimitive(t PrimitiveType) Token { return Token{Kind: PRIMITIVE, Type: t} }
func NewIdent(name string) Token { return Token{Kind: IDENT, Ident: name} }
func NewKeyword(k Keyword) Token { return Token{Kind: KEYWORD, Keyword: k} }
func NewLiteral(lit Literal) Token { return Token{Kind: LITERAL, Literal: lit} }

// Is reports whether tok is the operator op.
func (tok Token) Is(op Operator) bool {
	return tok.Kind == OPERATOR && tok.Operator == op
}

// IsKeyword reports whether tok is the keyword k.
func (tok Token) IsKeyword(k Keyword) bool {
	return tok.Kind == KEYWORD && tok.Keyword == k
}

// String returns a debug representation of the token.
func (tok Token) String() string {
	switch tok.Kind {
	case OPERATOR:
		return fmt.Sprintf("OP(%s)", tok.Operator)
	case PRIMITIVE:
		return fmt.Sprintf("TYPE(%s)", tok.Type)
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", tok.Ident)
	case KEYWORD:
		return fmt.Sprintf("KEY(%s)", tok.Keyword)
	case LITERAL:
		return fmt.Sprintf("LIT(%s:%q)", tok.Literal.Type, tok.Literal.Text())
	}
	return "UNKNOWN"
}
