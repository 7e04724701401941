package astparser

import (
	"fmt"

	"github.com/spectql/spectql/pkg/lexer"
	"github.com/spectql/spectql/pkg/lexer/identkeyword"
	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/position"
)

// lexerErrorMessage renders a lexical error for the response errors array,
// the location travels separately.
func lexerErrorMessage(err *lexer.Error) string {
	if err.Literal == "" {
		return err.Kind.String()
	}
	return fmt.Sprintf("%s %q", err.Kind, err.Literal)
}

// ErrUnexpectedToken carries everything needed to render an unexpected token
// error, including the full expectation list.
type ErrUnexpectedToken struct {
	keyword  keyword.Keyword
	expected []keyword.Keyword
	position position.Position
	literal  string
}

func (e ErrUnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token - keyword: '%s' literal: '%s' - expected: '%s' position: '%s'", e.keyword, e.literal, e.expected, e.position)
}

// ErrUnexpectedIdentKey is the ident flavored variant of ErrUnexpectedToken,
// raised when an identifier is found where a specific name keyword is
// required or forbidden.
type ErrUnexpectedIdentKey struct {
	keyword  identkeyword.IdentKeyword
	expected []identkeyword.IdentKeyword
	position position.Position
	literal  string
}

func (e ErrUnexpectedIdentKey) Error() string {
	return fmt.Sprintf("unexpected ident - keyword: '%s' literal: '%s' - expected: '%s' position: '%s'", e.keyword, e.literal, e.expected, e.position)
}
