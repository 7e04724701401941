package astparser

import (
	"github.com/spectql/spectql/internal/pkg/quotes"
	"github.com/spectql/spectql/pkg/lexer/identkeyword"
	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/token"
	"github.com/spectql/spectql/pkg/operationreport"
)

func (p *Parser) read() token.Token {
	return p.tokenizer.Read()
}

func (p *Parser) peek() token.Token {
	return p.tokenizer.Peek()
}

func (p *Parser) peekEquals(key keyword.Keyword) bool {
	return p.peek().Keyword == key
}

func (p *Parser) peekEqualsIdentKey(identKey identkeyword.IdentKeyword) bool {
	next := p.peek()
	if next.Keyword != keyword.IDENT {
		return false
	}
	return identkeyword.KeywordFromLiteral(next.Literal) == identKey
}

// skip consumes the next token when it matches key. A mismatch consumes
// nothing and returns false. Hitting EOF while looking for key is a hard
// error, a document never ends in the middle of a construct that makes skip
// worth calling.
func (p *Parser) skip(key keyword.Keyword) (token.Token, bool) {
	next := p.peek()
	if next.Keyword == keyword.EOF {
		p.errUnexpectedToken(next, key)
		return next, false
	}
	if next.Keyword != key {
		return next, false
	}
	return p.read(), true
}

func (p *Parser) mustRead(key keyword.Keyword) (next token.Token) {
	next = p.read()
	if next.Keyword != key {
		p.errUnexpectedToken(next, key)
	}
	return
}

func (p *Parser) mustReadIdentKey(key identkeyword.IdentKeyword) (next token.Token) {
	next = p.read()
	if next.Keyword != keyword.IDENT {
		p.errUnexpectedToken(next, keyword.IDENT)
		return
	}
	identKey := identkeyword.KeywordFromLiteral(next.Literal)
	if identKey != key {
		p.errUnexpectedIdentKey(next, identKey, key)
	}
	return
}

func (p *Parser) mustReadExceptIdentKey(key identkeyword.IdentKeyword) (next token.Token) {
	next = p.read()
	if next.Keyword != keyword.IDENT {
		p.errUnexpectedToken(next, keyword.IDENT)
		return
	}
	identKey := identkeyword.KeywordFromLiteral(next.Literal)
	if identKey == key {
		p.errUnexpectedIdentKey(next, identKey, key)
	}
	return
}

// errUnexpectedToken records the first parse error, parsing stops at the
// first error and later calls are dropped.
func (p *Parser) errUnexpectedToken(unexpected token.Token, expected ...keyword.Keyword) {
	if p.report.HasErrors() {
		return
	}
	err := ErrUnexpectedToken{
		keyword:  unexpected.Keyword,
		expected: expected,
		position: unexpected.Span.Start,
		literal:  unexpected.Literal,
	}
	p.report.AddInternalError(err)
	p.report.AddExternalError(operationreport.ExternalError{
		Message:   unexpectedTokenMessage(unexpected, expected),
		Locations: operationreport.LocationsFromSpan(unexpected.Span),
	})
}

func (p *Parser) errUnexpectedIdentKey(unexpected token.Token, identKey identkeyword.IdentKeyword, expected ...identkeyword.IdentKeyword) {
	if p.report.HasErrors() {
		return
	}
	err := ErrUnexpectedIdentKey{
		keyword:  identKey,
		expected: expected,
		position: unexpected.Span.Start,
		literal:  unexpected.Literal,
	}
	p.report.AddInternalError(err)
	p.report.AddExternalError(operationreport.ExternalError{
		Message:   "unexpected name " + quotes.WrapString(unexpected.Literal),
		Locations: operationreport.LocationsFromSpan(unexpected.Span),
	})
}

func unexpectedTokenMessage(unexpected token.Token, expected []keyword.Keyword) string {
	got := unexpected.Keyword.String()
	if unexpected.Literal != "" {
		got = quotes.WrapString(unexpected.Literal)
	}
	out := "unexpected token " + got
	for i, key := range expected {
		if i == 0 {
			out += ", expected " + key.String()
		} else {
			out += " or " + key.String()
		}
	}
	return out
}
