package astparser

import (
	"github.com/spectql/spectql/internal/pkg/quotes"
	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/lexer/identkeyword"
	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/position"
	"github.com/spectql/spectql/pkg/lexer/token"
	"github.com/spectql/spectql/pkg/operationreport"
	"github.com/spectql/spectql/pkg/schema"
)

// parseValue parses an input literal against the declared type. expected is
// nil when the schema gives no hint, the literal then parses to its inferred
// kind. constContext forbids variables, default values must be constant.
func (p *Parser) parseValue(expected *ast.Type, constContext bool) (value ast.Value) {
	next := p.read()
	switch next.Keyword {
	case keyword.VARIABLE:
		if constContext {
			p.errValue(next.Span, "variable "+quotes.WrapString("$"+next.Literal)+" not allowed in constant value")
			return
		}
		return ast.Value{
			Kind: ast.ValueKindVariable,
			Raw:  next.Literal,
			Span: next.Span,
		}
	case keyword.INTEGER, keyword.FLOAT, keyword.STRING, keyword.BLOCKSTRING:
		return p.parseScalarLiteral(next, expected)
	case keyword.IDENT:
		switch identkeyword.KeywordFromLiteral(next.Literal) {
		case identkeyword.TRUE:
			return ast.Value{Kind: ast.ValueKindBoolean, BoolValue: true, Raw: next.Literal, Span: next.Span}
		case identkeyword.FALSE:
			return ast.Value{Kind: ast.ValueKindBoolean, BoolValue: false, Raw: next.Literal, Span: next.Span}
		case identkeyword.NULL:
			return ast.Value{Kind: ast.ValueKindNull, Raw: next.Literal, Span: next.Span}
		default:
			// any other bare name is an enum value, membership is a
			// validation concern
			return ast.Value{Kind: ast.ValueKindEnum, Raw: next.Literal, Span: next.Span}
		}
	case keyword.LBRACK:
		return p.parseListValue(next, expected, constContext)
	case keyword.LBRACE:
		return p.parseObjectValue(next, expected, constContext)
	default:
		p.errUnexpectedToken(next)
		return
	}
}

// parseScalarLiteral hands the literal to the expected scalar's ParseLiteral
// when the schema expects a scalar here. A rejected literal falls back to the
// inferred coercion, the type mismatch is a validation concern, not a parse
// error.
func (p *Parser) parseScalarLiteral(tok token.Token, expected *ast.Type) (value ast.Value) {
	scalarToken, ok := p.scalarToken(tok)
	if !ok {
		return
	}

	if expected != nil {
		if metaType, found := p.schema.LookupType(*expected); found {
			if scalar, isScalar := metaType.(*schema.ScalarType); isScalar {
				if parsed, err := scalar.ParseLiteral(scalarToken); err == nil {
					parsed.Span = tok.Span
					return parsed
				}
			}
		}
	}

	return p.parseInferredScalar(tok, scalarToken)
}

// parseInferredScalar coerces the literal through the builtin scalar matching
// its token class: Int and Float for number tokens, String for both string
// forms.
func (p *Parser) parseInferredScalar(tok token.Token, scalarToken schema.ScalarToken) (value ast.Value) {
	name := "String"
	switch tok.Keyword {
	case keyword.INTEGER:
		name = "Int"
	case keyword.FLOAT:
		name = "Float"
	}

	metaType, found := p.schema.TypeByName(name)
	scalar, isScalar := metaType.(*schema.ScalarType)
	if !found || !isScalar {
		p.errValue(tok.Span, "expected scalar type "+quotes.WrapString(name)+" to be defined")
		return
	}

	parsed, err := scalar.ParseLiteral(scalarToken)
	if err != nil {
		p.errValue(tok.Span, err.Error())
		return
	}
	parsed.Span = tok.Span
	return parsed
}

// scalarToken decodes the token into the form scalar types consume: raw text
// for numbers, decoded content for strings.
func (p *Parser) scalarToken(tok token.Token) (schema.ScalarToken, bool) {
	switch tok.Keyword {
	case keyword.INTEGER:
		return schema.ScalarToken{Kind: schema.ScalarTokenInt, Literal: tok.Literal}, true
	case keyword.FLOAT:
		return schema.ScalarToken{Kind: schema.ScalarTokenFloat, Literal: tok.Literal}, true
	case keyword.STRING:
		decoded, err := unescapeString(tok.Literal)
		if err != nil {
			p.errValue(tok.Span, err.Error())
			return schema.ScalarToken{}, false
		}
		return schema.ScalarToken{Kind: schema.ScalarTokenString, Literal: decoded}, true
	default:
		return schema.ScalarToken{Kind: schema.ScalarTokenBlockString, Literal: trimBlockString(tok.Literal)}, true
	}
}

func (p *Parser) parseListValue(opening token.Token, expected *ast.Type, constContext bool) ast.Value {
	var itemExpected *ast.Type
	if expected != nil && expected.Kind == ast.TypeKindList {
		itemExpected = expected.ItemType
	}

	value := ast.Value{Kind: ast.ValueKindList}
	for {
		if p.report.HasErrors() {
			return value
		}
		next := p.peek()
		switch next.Keyword {
		case keyword.RBRACK:
			closing := p.read()
			value.Span = position.StartEnd(opening.Span.Start, closing.Span.End)
			return value
		case keyword.EOF:
			p.errUnexpectedToken(p.read(), keyword.RBRACK)
			return value
		default:
			value.ListItems = append(value.ListItems, p.parseValue(itemExpected, constContext))
		}
	}
}

func (p *Parser) parseObjectValue(opening token.Token, expected *ast.Type, constContext bool) ast.Value {
	var inputObject *schema.InputObjectType
	if expected != nil {
		if metaType, found := p.schema.LookupType(*expected); found {
			inputObject, _ = metaType.(*schema.InputObjectType)
		}
	}

	value := ast.Value{Kind: ast.ValueKindObject}
	for {
		if p.report.HasErrors() {
			return value
		}
		next := p.peek()
		switch next.Keyword {
		case keyword.RBRACE:
			closing := p.read()
			value.Span = position.StartEnd(opening.Span.Start, closing.Span.End)
			return value
		case keyword.IDENT:
			name := p.read()
			p.mustRead(keyword.COLON)
			if p.report.HasErrors() {
				return value
			}

			var fieldExpected *ast.Type
			if inputObject != nil {
				if fieldDefinition, ok := inputObject.FieldByName(name.Literal); ok {
					fieldExpected = &fieldDefinition.Type
				}
			}

			fieldValue := p.parseValue(fieldExpected, constContext)
			value.ObjectFields = append(value.ObjectFields, ast.ObjectField{
				Name:     name.Literal,
				NameSpan: name.Span,
				Value:    fieldValue,
				Span:     position.StartEnd(name.Span.Start, fieldValue.Span.End),
			})
		default:
			p.errUnexpectedToken(p.read(), keyword.IDENT, keyword.RBRACE)
			return value
		}
	}
}

func (p *Parser) errValue(at position.Span, message string) {
	if p.report.HasErrors() {
		return
	}
	p.report.AddExternalError(operationreport.ExternalError{
		Message:   message,
		Locations: operationreport.LocationsFromSpan(at),
	})
}
