package lexer

import (
	"fmt"
	"testing"

	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/position"
)

func TestLexer_Read(t *testing.T) {

	type checkFunc func(lex *Lexer, i int)

	run := func(input string, checks ...checkFunc) {
		lex := NewLexer(input)
		for i := range checks {
			checks[i](lex, i+1)
		}
	}

	mustRead := func(k keyword.Keyword, wantLiteral string) checkFunc {
		return func(lex *Lexer, i int) {
			tok, err := lex.Read()
			if err != nil {
				panic(fmt.Errorf("mustRead: %w [check: %d]", err, i))
			}
			if k != tok.Keyword {
				panic(fmt.Errorf("mustRead: want(keyword): %s, got: %s [check: %d]", k, tok, i))
			}
			if wantLiteral != tok.Literal {
				panic(fmt.Errorf("mustRead: want(literal): %q, got: %q [check: %d]", wantLiteral, tok.Literal, i))
			}
		}
	}

	mustReadSpan := func(startIndex, startLine, startChar, endIndex, endLine, endChar int) checkFunc {
		return func(lex *Lexer, i int) {
			tok, err := lex.Read()
			if err != nil {
				panic(fmt.Errorf("mustReadSpan: %w [check: %d]", err, i))
			}
			want := position.Span{
				Start: position.Position{Index: startIndex, Line: startLine, Char: startChar},
				End:   position.Position{Index: endIndex, Line: endLine, Char: endChar},
			}
			if want != tok.Span {
				panic(fmt.Errorf("mustReadSpan: want: %s, got: %s [check: %d]", want, tok.Span, i))
			}
		}
	}

	mustErr := func(kind ErrorKind, literal string, index, line, char int) checkFunc {
		return func(lex *Lexer, i int) {
			var err *Error
			for {
				tok, readErr := lex.Read()
				if readErr != nil {
					err = readErr
					break
				}
				if tok.Keyword == keyword.EOF {
					panic(fmt.Errorf("mustErr: reached EOF without error [check: %d]", i))
				}
			}
			if kind != err.Kind {
				panic(fmt.Errorf("mustErr: want(kind): %s, got: %s [check: %d]", kind, err.Kind, i))
			}
			if literal != err.Literal {
				panic(fmt.Errorf("mustErr: want(literal): %q, got: %q [check: %d]", literal, err.Literal, i))
			}
			want := position.Position{Index: index, Line: line, Char: char}
			if want != err.Position {
				panic(fmt.Errorf("mustErr: want(position): %s, got: %s [check: %d]", want, err.Position, i))
			}
		}
	}

	t.Run("eof", func(t *testing.T) {
		run("", mustRead(keyword.EOF, ""))
	})
	t.Run("read after eof panics", func(t *testing.T) {
		lex := NewLexer("")
		_, _ = lex.Read()
		defer func() {
			if recover() == nil {
				t.Fatal("want panic on Read past EOF")
			}
		}()
		_, _ = lex.Read()
	})
	t.Run("ident", func(t *testing.T) {
		run("foo", mustRead(keyword.IDENT, "foo"))
	})
	t.Run("ident with underscore and digits", func(t *testing.T) {
		run("__type_2", mustRead(keyword.IDENT, "__type_2"))
	})
	t.Run("punctuators", func(t *testing.T) {
		run("! : = @ | & ( ) [ ] { }",
			mustRead(keyword.BANG, "!"),
			mustRead(keyword.COLON, ":"),
			mustRead(keyword.EQUALS, "="),
			mustRead(keyword.AT, "@"),
			mustRead(keyword.PIPE, "|"),
			mustRead(keyword.AND, "&"),
			mustRead(keyword.LPAREN, "("),
			mustRead(keyword.RPAREN, ")"),
			mustRead(keyword.LBRACK, "["),
			mustRead(keyword.RBRACK, "]"),
			mustRead(keyword.LBRACE, "{"),
			mustRead(keyword.RBRACE, "}"),
			mustRead(keyword.EOF, ""),
		)
	})
	t.Run("spread", func(t *testing.T) {
		run("...", mustRead(keyword.SPREAD, "..."))
	})
	t.Run("incomplete spread", func(t *testing.T) {
		run("..", mustErr(UnexpectedEndOfFile, "", 2, 0, 2))
	})
	t.Run("spread into ident", func(t *testing.T) {
		run("..x", mustErr(UnexpectedCharacter, "x", 2, 0, 2))
	})
	t.Run("variable", func(t *testing.T) {
		run("$foo", mustRead(keyword.VARIABLE, "foo"))
	})
	t.Run("variable whitespace after dollar", func(t *testing.T) {
		run("$ foo", mustErr(UnexpectedCharacter, " ", 1, 0, 1))
	})
	t.Run("integer", func(t *testing.T) {
		run("1337", mustRead(keyword.INTEGER, "1337"))
	})
	t.Run("negative integer", func(t *testing.T) {
		run("-1337", mustRead(keyword.INTEGER, "-1337"))
	})
	t.Run("zero", func(t *testing.T) {
		run("0", mustRead(keyword.INTEGER, "0"))
	})
	t.Run("float", func(t *testing.T) {
		run("13.37", mustRead(keyword.FLOAT, "13.37"))
	})
	t.Run("negative float", func(t *testing.T) {
		run("-13.37", mustRead(keyword.FLOAT, "-13.37"))
	})
	t.Run("float with exponent", func(t *testing.T) {
		run("1.2e3", mustRead(keyword.FLOAT, "1.2e3"))
	})
	t.Run("integer with signed exponent", func(t *testing.T) {
		run("10E-3", mustRead(keyword.FLOAT, "10E-3"))
	})
	t.Run("float span", func(t *testing.T) {
		run("4.123", mustReadSpan(0, 0, 0, 5, 0, 5))
	})
	t.Run("incomplete float", func(t *testing.T) {
		run("1.", mustErr(UnexpectedEndOfFile, "", 2, 0, 2))
	})
	t.Run("leading zero", func(t *testing.T) {
		run("00", mustErr(UnexpectedCharacter, "0", 1, 0, 1))
	})
	t.Run("float with double dot", func(t *testing.T) {
		run("1.2.3", mustErr(UnexpectedCharacter, ".", 3, 0, 3))
	})
	t.Run("number running into ident", func(t *testing.T) {
		run("1x", mustErr(UnexpectedCharacter, "x", 1, 0, 1))
	})
	t.Run("exponent without digits", func(t *testing.T) {
		run("1e", mustErr(UnexpectedEndOfFile, "", 2, 0, 2))
	})
	t.Run("lonely minus", func(t *testing.T) {
		run("-", mustErr(UnexpectedEndOfFile, "", 1, 0, 1))
	})
	t.Run("string", func(t *testing.T) {
		run(`"foo"`, mustRead(keyword.STRING, "foo"))
	})
	t.Run("empty string", func(t *testing.T) {
		run(`""`, mustRead(keyword.STRING, ""))
	})
	t.Run("string span covers quotes", func(t *testing.T) {
		run(`"foo"`, mustReadSpan(0, 0, 0, 5, 0, 5))
	})
	t.Run("string with escapes", func(t *testing.T) {
		run(`"f\"o\\o\n"`, mustRead(keyword.STRING, `f\"o\\o\n`))
	})
	t.Run("string with unicode escape", func(t *testing.T) {
		run(`"F \u{1F600}"`, mustRead(keyword.STRING, `F \u{1F600}`))
	})
	t.Run("unknown escape", func(t *testing.T) {
		run(`"bad \z esc"`, mustErr(UnknownEscapeSequence, `\z`, 6, 0, 6))
	})
	t.Run("invalid unicode escape", func(t *testing.T) {
		run(`"\uXYZ"`, mustErr(UnknownEscapeSequence, `\uX`, 2, 0, 2))
	})
	t.Run("unterminated string", func(t *testing.T) {
		run(`"foo`, mustErr(UnterminatedString, "", 4, 0, 4))
	})
	t.Run("string with line break", func(t *testing.T) {
		run("\"foo\nbar\"", mustErr(UnterminatedString, "", 4, 0, 4))
	})
	t.Run("block string", func(t *testing.T) {
		run(`"""foo bar"""`, mustRead(keyword.BLOCKSTRING, "foo bar"))
	})
	t.Run("block string with single quotes inside", func(t *testing.T) {
		run(`"""fo"o"""`, mustRead(keyword.BLOCKSTRING, `fo"o`))
	})
	t.Run("block string with escaped triple quote", func(t *testing.T) {
		run(`"""fo\"""o"""`, mustRead(keyword.BLOCKSTRING, `fo\"""o`))
	})
	t.Run("block string spanning lines", func(t *testing.T) {
		run("\"\"\"foo\nbar\"\"\"", mustRead(keyword.BLOCKSTRING, "foo\nbar"))
	})
	t.Run("unterminated block string", func(t *testing.T) {
		run(`"""foo`, mustErr(UnterminatedBlockString, "", 6, 0, 6))
	})
	t.Run("unknown character", func(t *testing.T) {
		run("%", mustErr(UnknownCharacter, "%", 0, 0, 0))
	})
	t.Run("unknown multibyte character", func(t *testing.T) {
		run("ä", mustErr(UnknownCharacter, "ä", 0, 0, 0))
	})
	t.Run("comment is ignored", func(t *testing.T) {
		run("foo # a comment\nbar",
			mustRead(keyword.IDENT, "foo"),
			mustRead(keyword.IDENT, "bar"),
			mustRead(keyword.EOF, ""),
		)
	})
	t.Run("commas are ignored", func(t *testing.T) {
		run("foo,bar,,baz",
			mustRead(keyword.IDENT, "foo"),
			mustRead(keyword.IDENT, "bar"),
			mustRead(keyword.IDENT, "baz"),
		)
	})
	t.Run("byte order mark is ignored", func(t *testing.T) {
		run("\ufefffoo", mustRead(keyword.IDENT, "foo"))
	})
	t.Run("crlf counts as one line terminator", func(t *testing.T) {
		run("foo\r\nbar",
			mustReadSpan(0, 0, 0, 3, 0, 3),
			mustReadSpan(5, 1, 0, 8, 1, 3),
		)
	})
	t.Run("line and char tracking", func(t *testing.T) {
		run("foo\n  bar",
			mustReadSpan(0, 0, 0, 3, 0, 3),
			mustReadSpan(6, 1, 2, 9, 1, 5),
		)
	})
	t.Run("whitespace only changes positions", func(t *testing.T) {
		run("  , # comment\n foo",
			mustRead(keyword.IDENT, "foo"),
		)
	})
	t.Run("query document", func(t *testing.T) {
		run(`query Q($id: ID!) { hero(episode: JEDI) @include(if: $yes) { ...frag } }`,
			mustRead(keyword.IDENT, "query"),
			mustRead(keyword.IDENT, "Q"),
			mustRead(keyword.LPAREN, "("),
			mustRead(keyword.VARIABLE, "id"),
			mustRead(keyword.COLON, ":"),
			mustRead(keyword.IDENT, "ID"),
			mustRead(keyword.BANG, "!"),
			mustRead(keyword.RPAREN, ")"),
			mustRead(keyword.LBRACE, "{"),
			mustRead(keyword.IDENT, "hero"),
			mustRead(keyword.LPAREN, "("),
			mustRead(keyword.IDENT, "episode"),
			mustRead(keyword.COLON, ":"),
			mustRead(keyword.IDENT, "JEDI"),
			mustRead(keyword.RPAREN, ")"),
			mustRead(keyword.AT, "@"),
			mustRead(keyword.IDENT, "include"),
			mustRead(keyword.LPAREN, "("),
			mustRead(keyword.IDENT, "if"),
			mustRead(keyword.COLON, ":"),
			mustRead(keyword.VARIABLE, "yes"),
			mustRead(keyword.RPAREN, ")"),
			mustRead(keyword.LBRACE, "{"),
			mustRead(keyword.SPREAD, "..."),
			mustRead(keyword.IDENT, "frag"),
			mustRead(keyword.RBRACE, "}"),
			mustRead(keyword.RBRACE, "}"),
			mustRead(keyword.EOF, ""),
		)
	})
}
