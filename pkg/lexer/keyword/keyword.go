// Package keyword enumerates the token classes emitted by the lexer.
package keyword

type Keyword int

const (
	UNDEFINED Keyword = iota
	IDENT
	EOF

	COLON
	BANG
	AT
	SPREAD
	PIPE
	EQUALS
	AND
	VARIABLE

	STRING
	BLOCKSTRING
	INTEGER
	FLOAT

	LPAREN
	RPAREN
	LBRACK
	RBRACK
	LBRACE
	RBRACE
)

func (k Keyword) String() string {
	switch k {
	case UNDEFINED:
		return "UNDEFINED"
	case IDENT:
		return "IDENT"
	case EOF:
		return "EOF"
	case COLON:
		return "COLON"
	case BANG:
		return "BANG"
	case AT:
		return "AT"
	case SPREAD:
		return "SPREAD"
	case PIPE:
		return "PIPE"
	case EQUALS:
		return "EQUALS"
	case AND:
		return "AND"
	case VARIABLE:
		return "VARIABLE"
	case STRING:
		return "STRING"
	case BLOCKSTRING:
		return "BLOCKSTRING"
	case INTEGER:
		return "INTEGER"
	case FLOAT:
		return "FLOAT"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACK:
		return "LBRACK"
	case RBRACK:
		return "RBRACK"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	default:
		return "INVALID"
	}
}
