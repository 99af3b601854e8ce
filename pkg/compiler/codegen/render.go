package codegen

import "github.com/zurustar/intc/pkg/compiler/token"

// Token renders a single token. The mapping does not depend on context.
func Token(tok token.Token) string {
	switch tok.Kind {
	case token.OPERATOR:
		return Operator(tok.Operator)
	case token.PRIMITIVE:
		return Type(tok.Type)
	case token.IDENT:
		return Ident(tok.Ident)
	case token.KEYWORD:
		return Keyword(tok.Keyword)
	case token.LITERAL:
		return Literal(tok.Literal)
	}
	return ""
}

// Ident renders an identifier with the reserved prefix.
func Ident(name string) string {
	return token.IdentPrefix + name
}

// Operator renders an operator. Scope delimiters and the statement
// terminator carry their line breaks.
func Operator(op token.Operator) string {
	switch op {
	case token.OP_SC_OPEN:
		return "{\n"
	case token.OP_SC_CLOSE:
		return "}\n\n"
	case token.OP_EOL:
		return ";\n"
	}
	return op.String()
}

// Keyword renders a keyword as its C++ counterpart. import and global
// produce no text.
func Keyword(k token.Keyword) string {
	switch k {
	case token.KEY_IF:
		return "if "
	case token.KEY_ELSE:
		return "else "
	case token.KEY_LOOP:
		return "while "
	case token.KEY_RETURN:
		return "return "
	}
	return ""
}

// Type renders a primitive type as a C++ type name followed by a space.
func Type(t token.PrimitiveType) string {
	switch t {
	case token.TYPE_REAL:
		return "float "
	case token.TYPE_INT:
		return "int "
	case token.TYPE_STRING:
		return "std::string "
	case token.TYPE_BOOL:
		return "bool "
	}
	return "void "
}

// Literal renders a value. Strings are spliced as-is; the surrounding quote
// tokens are rendered separately.
func Literal(lit token.Literal) string {
	if lit.Type == token.TYPE_FUNC {
		return " "
	}
	return lit.Text()
}
