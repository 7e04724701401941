package astparser

import (
	"github.com/spectql/spectql/pkg/lexer"
	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/token"
)

// Tokenizer eagerly drains the lexer into a token slice. The first lexical
// error aborts tokenization, a document with a lexical error has no usable
// token stream.
type Tokenizer struct {
	lexer        *lexer.Lexer
	tokens       []token.Token
	eofToken     token.Token
	maxTokens    int
	currentToken int
}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		tokens: make([]token.Token, 0, 64),
		lexer:  &lexer.Lexer{},
	}
}

func (t *Tokenizer) Tokenize(input string) *lexer.Error {
	t.lexer.SetInput(input)
	t.tokens = t.tokens[:0]

	for {
		next, err := t.lexer.Read()
		if err != nil {
			return err
		}
		if next.Keyword == keyword.EOF {
			t.eofToken = next
			t.maxTokens = len(t.tokens)
			t.currentToken = -1
			return nil
		}
		t.tokens = append(t.tokens, next)
	}
}

// Read consumes and returns the next token, or the EOF token once the stream
// is exhausted.
func (t *Tokenizer) Read() token.Token {
	if t.currentToken+1 < t.maxTokens {
		t.currentToken++
		return t.tokens[t.currentToken]
	}
	return t.eofToken
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() token.Token {
	if t.currentToken+1 < t.maxTokens {
		return t.tokens[t.currentToken+1]
	}
	return t.eofToken
}
