package lexer

import (
	"fmt"

	"github.com/spectql/spectql/pkg/lexer/position"
)

type ErrorKind int

const (
	UnknownCharacter ErrorKind = iota + 1
	UnexpectedCharacter
	UnterminatedString
	UnterminatedBlockString
	UnknownEscapeSequence
	UnexpectedEndOfFile
	InvalidNumber
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownCharacter:
		return "unknown character"
	case UnexpectedCharacter:
		return "unexpected character"
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedBlockString:
		return "unterminated block string literal"
	case UnknownEscapeSequence:
		return "unknown escape sequence"
	case UnexpectedEndOfFile:
		return "unexpected end of input"
	case InvalidNumber:
		return "invalid number literal"
	default:
		return "invalid lexer error kind"
	}
}

// Error is a lexical error at an exact point in the input. Position is the
// zero width location of the offending character, Literal the offending
// character or sequence when one exists.
type Error struct {
	Kind     ErrorKind
	Literal  string
	Position position.Position
}

func (e *Error) Error() string {
	if e.Literal == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Position)
	}
	return fmt.Sprintf("%s %q at %s", e.Kind, e.Literal, e.Position)
}

func newError(kind ErrorKind, literal string, at position.Position) *Error {
	return &Error{
		Kind:     kind,
		Literal:  literal,
		Position: at,
	}
}
