// Package literal provides the byte sequences the engine writes to output or
// compares selections against.
package literal

var (
	QUOTE = []byte("\"")
	COMMA = []byte(",")
	COLON = []byte(":")

	LBRACK = []byte("[")
	RBRACK = []byte("]")
	LBRACE = []byte("{")
	RBRACE = []byte("}")

	NULL  = []byte("null")
	TRUE  = []byte("true")
	FALSE = []byte("false")

	TYPENAME = []byte("__typename")

	SKIP    = []byte("skip")
	INCLUDE = []byte("include")
	IF      = []byte("if")
)
