// Package token defines the spanned tokens produced by the lexer.
package token

import (
	"fmt"

	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/position"
)

// Token is one lexical element of the input. Literal is a slice of the
// original document, it stays valid for as long as the input string lives.
type Token struct {
	Keyword keyword.Keyword
	Literal string
	Span    position.Span
}

func (t Token) String() string {
	return fmt.Sprintf("token:: Keyword: %s, Literal: %q, Span: %s", t.Keyword, t.Literal, t.Span)
}

func New(k keyword.Keyword, literal string, span position.Span) Token {
	return Token{
		Keyword: k,
		Literal: literal,
		Span:    span,
	}
}

// EOF returns the end of file token at the given position.
func EOF(at position.Position) Token {
	return Token{
		Keyword: keyword.EOF,
		Span:    position.ZeroWidth(at),
	}
}
