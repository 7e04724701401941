// Package lexer turns a GraphQL document into a sequence of spanned tokens.
//
// The lexer is a single pass, non restartable reader over a borrowed input
// string. Token literals are slices of that string, no payload bytes are
// copied. Escape sequences inside string tokens are validated here but left
// encoded, decoding happens during value parsing.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/position"
	"github.com/spectql/spectql/pkg/lexer/runes"
	"github.com/spectql/spectql/pkg/lexer/token"
)

const bomPrefix = "\ufeff"

// Lexer emits tokens from an input string.
type Lexer struct {
	input      string
	pos        position.Position
	lastWasCR  bool
	emittedEOF bool
}

func NewLexer(input string) *Lexer {
	l := &Lexer{}
	l.SetInput(input)
	return l
}

// SetInput sets a new input and resets all position state.
func (l *Lexer) SetInput(input string) {
	l.input = input
	l.pos = position.Position{}
	l.lastWasCR = false
	l.emittedEOF = false
}

// Read emits the next token, this cannot be undone. The EOF token is emitted
// exactly once, reading past it is a programming error and panics.
func (l *Lexer) Read() (token.Token, *Error) {
	if l.emittedEOF {
		panic("lexer: Read after EOF token was emitted")
	}

	l.skipIgnored()

	start := l.pos

	if l.atEOF() {
		l.emittedEOF = true
		return token.EOF(start), nil
	}

	b := l.peekByte()

	if k, ok := punctuator(b); ok {
		l.advance()
		return l.emit(k, start), nil
	}

	switch b {
	case runes.DOT:
		return l.readSpread(start)
	case runes.DOLLAR:
		return l.readVariable(start)
	case runes.QUOTE:
		return l.readString(start)
	}

	if b == runes.SUB || byteIsDigit(b) {
		return l.readNumber(start)
	}

	if byteIsIdentStart(b) {
		return l.readIdent(start), nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos.Index:])
	return token.Token{}, newError(UnknownCharacter, string(r), start)
}

func (l *Lexer) emit(k keyword.Keyword, start position.Position) token.Token {
	return token.New(k, l.input[start.Index:l.pos.Index], position.StartEnd(start, l.pos))
}

func punctuator(b byte) (keyword.Keyword, bool) {
	switch b {
	case runes.BANG:
		return keyword.BANG, true
	case runes.COLON:
		return keyword.COLON, true
	case runes.EQUALS:
		return keyword.EQUALS, true
	case runes.AT:
		return keyword.AT, true
	case runes.PIPE:
		return keyword.PIPE, true
	case runes.AND:
		return keyword.AND, true
	case runes.LPAREN:
		return keyword.LPAREN, true
	case runes.RPAREN:
		return keyword.RPAREN, true
	case runes.LBRACK:
		return keyword.LBRACK, true
	case runes.RBRACK:
		return keyword.RBRACK, true
	case runes.LBRACE:
		return keyword.LBRACE, true
	case runes.RBRACE:
		return keyword.RBRACE, true
	default:
		return keyword.UNDEFINED, false
	}
}

// skipIgnored swallows everything the GraphQL lexical grammar treats as
// ignored: BOM, horizontal tab, space, line terminators, commas and comments.
func (l *Lexer) skipIgnored() {
	for !l.atEOF() {
		if strings.HasPrefix(l.input[l.pos.Index:], bomPrefix) {
			l.advance()
			continue
		}
		switch l.peekByte() {
		case runes.SPACE, runes.TAB, runes.COMMA, runes.LINETERMINATOR, runes.CARRIAGERETURN:
			l.advance()
		case runes.HASHTAG:
			l.skipComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipComment() {
	for !l.atEOF() {
		b := l.peekByte()
		if b == runes.LINETERMINATOR || b == runes.CARRIAGERETURN {
			return
		}
		l.advance()
	}
}

func (l *Lexer) readIdent(start position.Position) token.Token {
	for !l.atEOF() && byteIsIdent(l.peekByte()) {
		l.advance()
	}
	return l.emit(keyword.IDENT, start)
}

func (l *Lexer) readVariable(start position.Position) (token.Token, *Error) {
	l.advance() // $

	if l.atEOF() {
		return token.Token{}, newError(UnexpectedEndOfFile, "", l.pos)
	}
	if !byteIsIdentStart(l.peekByte()) {
		return token.Token{}, newError(UnexpectedCharacter, string(l.peekByte()), l.pos)
	}

	nameStart := l.pos.Index
	for !l.atEOF() && byteIsIdent(l.peekByte()) {
		l.advance()
	}

	tok := l.emit(keyword.VARIABLE, start)
	tok.Literal = l.input[nameStart:l.pos.Index]
	return tok, nil
}

func (l *Lexer) readSpread(start position.Position) (token.Token, *Error) {
	for i := 0; i < 3; i++ {
		if l.atEOF() {
			return token.Token{}, newError(UnexpectedEndOfFile, "", l.pos)
		}
		if l.peekByte() != runes.DOT {
			return token.Token{}, newError(UnexpectedCharacter, string(l.peekByte()), l.pos)
		}
		l.advance()
	}
	return l.emit(keyword.SPREAD, start), nil
}

// readNumber scans int and float literals following the GraphQL number
// grammar: an optional leading minus, no leading zeros, an optional fraction
// requiring at least one digit and an optional exponent requiring at least
// one digit.
func (l *Lexer) readNumber(start position.Position) (token.Token, *Error) {
	isFloat := false

	if l.peekByte() == runes.SUB {
		l.advance()
	}

	if l.atEOF() {
		return token.Token{}, newError(UnexpectedEndOfFile, "", l.pos)
	}

	switch b := l.peekByte(); {
	case b == '0':
		l.advance()
		if !l.atEOF() && byteIsDigit(l.peekByte()) {
			return token.Token{}, newError(UnexpectedCharacter, string(l.peekByte()), l.pos)
		}
	case byteIsDigit(b):
		for !l.atEOF() && byteIsDigit(l.peekByte()) {
			l.advance()
		}
	default:
		return token.Token{}, newError(UnexpectedCharacter, string(b), l.pos)
	}

	if !l.atEOF() && l.peekByte() == runes.DOT {
		l.advance()
		isFloat = true
		if err := l.readDigits(); err != nil {
			return token.Token{}, err
		}
	}

	if !l.atEOF() && (l.peekByte() == 'e' || l.peekByte() == 'E') {
		l.advance()
		isFloat = true
		if !l.atEOF() && (l.peekByte() == runes.ADD || l.peekByte() == runes.SUB) {
			l.advance()
		}
		if err := l.readDigits(); err != nil {
			return token.Token{}, err
		}
	}

	// a number token must not run straight into a name or another number
	if !l.atEOF() {
		if b := l.peekByte(); byteIsIdentStart(b) || byteIsDigit(b) || b == runes.DOT {
			return token.Token{}, newError(UnexpectedCharacter, string(b), l.pos)
		}
	}

	if isFloat {
		return l.emit(keyword.FLOAT, start), nil
	}
	return l.emit(keyword.INTEGER, start), nil
}

func (l *Lexer) readDigits() *Error {
	if l.atEOF() {
		return newError(UnexpectedEndOfFile, "", l.pos)
	}
	if !byteIsDigit(l.peekByte()) {
		return newError(UnexpectedCharacter, string(l.peekByte()), l.pos)
	}
	for !l.atEOF() && byteIsDigit(l.peekByte()) {
		l.advance()
	}
	return nil
}

func (l *Lexer) readString(start position.Position) (token.Token, *Error) {
	l.advance() // opening quote

	if !l.atEOF() && l.peekByte() == runes.QUOTE {
		l.advance()
		if !l.atEOF() && l.peekByte() == runes.QUOTE {
			l.advance()
			return l.readBlockString(start)
		}
		// empty string
		tok := l.emit(keyword.STRING, start)
		tok.Literal = ""
		return tok, nil
	}

	contentStart := l.pos.Index

	for {
		if l.atEOF() {
			return token.Token{}, newError(UnterminatedString, "", l.pos)
		}

		switch l.peekByte() {
		case runes.QUOTE:
			contentEnd := l.pos.Index
			l.advance()
			tok := l.emit(keyword.STRING, start)
			tok.Literal = l.input[contentStart:contentEnd]
			return tok, nil
		case runes.LINETERMINATOR, runes.CARRIAGERETURN:
			return token.Token{}, newError(UnterminatedString, "", l.pos)
		case runes.BACKSLASH:
			if err := l.readEscapeSequence(); err != nil {
				return token.Token{}, err
			}
		default:
			l.advance()
		}
	}
}

func (l *Lexer) readEscapeSequence() *Error {
	l.advance() // backslash

	if l.atEOF() {
		return newError(UnexpectedEndOfFile, "", l.pos)
	}

	at := l.pos
	b := l.peekByte()
	l.advance()

	switch b {
	case runes.QUOTE, runes.BACKSLASH, runes.SLASH, 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
		return l.readUnicodeEscape(at)
	default:
		return newError(UnknownEscapeSequence, `\`+string(b), at)
	}
}

// readUnicodeEscape validates \uXXXX and the variable width \u{HEX} form.
func (l *Lexer) readUnicodeEscape(at position.Position) *Error {
	if l.atEOF() {
		return newError(UnexpectedEndOfFile, "", l.pos)
	}

	if l.peekByte() == runes.LBRACE {
		l.advance()
		digits := 0
		for {
			if l.atEOF() {
				return newError(UnexpectedEndOfFile, "", l.pos)
			}
			b := l.peekByte()
			if b == runes.RBRACE {
				l.advance()
				if digits == 0 {
					return newError(UnknownEscapeSequence, `\u{}`, at)
				}
				return nil
			}
			if !byteIsHex(b) {
				return newError(UnknownEscapeSequence, `\u{`+string(b), at)
			}
			l.advance()
			digits++
		}
	}

	for i := 0; i < 4; i++ {
		if l.atEOF() {
			return newError(UnexpectedEndOfFile, "", l.pos)
		}
		if !byteIsHex(l.peekByte()) {
			return newError(UnknownEscapeSequence, `\u`+string(l.peekByte()), at)
		}
		l.advance()
	}
	return nil
}

// readBlockString scans a """ delimited block string. The closing delimiter
// is found with a consecutive quote counter so that \""" stays part of the
// content.
func (l *Lexer) readBlockString(start position.Position) (token.Token, *Error) {
	contentStart := l.pos.Index
	quotes := 0

	for {
		if l.atEOF() {
			return token.Token{}, newError(UnterminatedBlockString, "", l.pos)
		}

		switch l.peekByte() {
		case runes.QUOTE:
			l.advance()
			quotes++
			if quotes == 3 {
				contentEnd := l.pos.Index - 3
				tok := l.emit(keyword.BLOCKSTRING, start)
				tok.Literal = l.input[contentStart:contentEnd]
				return tok, nil
			}
		case runes.BACKSLASH:
			l.advance()
			quotes = 0
			if strings.HasPrefix(l.input[l.pos.Index:], `"""`) {
				l.advance()
				l.advance()
				l.advance()
			}
		default:
			l.advance()
			quotes = 0
		}
	}
}

// advance consumes the rune at the current position, keeping line and char
// counts in sync. CRLF counts as a single line terminator.
func (l *Lexer) advance() {
	b := l.input[l.pos.Index]

	if b >= utf8.RuneSelf {
		_, size := utf8.DecodeRuneInString(l.input[l.pos.Index:])
		l.pos.Index += size
		l.pos.Char++
		l.lastWasCR = false
		return
	}

	l.pos.Index++

	switch b {
	case runes.LINETERMINATOR:
		if l.lastWasCR {
			l.lastWasCR = false
		} else {
			l.pos.Line++
			l.pos.Char = 0
		}
	case runes.CARRIAGERETURN:
		l.pos.Line++
		l.pos.Char = 0
		l.lastWasCR = true
	default:
		l.pos.Char++
		l.lastWasCR = false
	}
}

func (l *Lexer) peekByte() byte {
	return l.input[l.pos.Index]
}

func (l *Lexer) atEOF() bool {
	return l.pos.Index >= len(l.input)
}

func byteIsIdentStart(b byte) bool {
	return b == runes.UNDERSCORE || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func byteIsIdent(b byte) bool {
	return byteIsIdentStart(b) || byteIsDigit(b)
}

func byteIsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func byteIsHex(b byte) bool {
	return byteIsDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
