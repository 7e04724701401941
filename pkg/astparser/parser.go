// Package astparser parses executable GraphQL documents into the spanned
// document tree.
//
// Parsing is schema directed: the parser threads the field lists of the
// enclosing type through the selection sets it descends into and hands
// declared argument types to the value parser. Missing schema information
// degrades to syntax only parsing, it never fails the parse. The first error
// is fatal, there is no recovery.
package astparser

import (
	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/lexer/identkeyword"
	"github.com/spectql/spectql/pkg/lexer/keyword"
	"github.com/spectql/spectql/pkg/lexer/position"
	"github.com/spectql/spectql/pkg/lexer/token"
	"github.com/spectql/spectql/pkg/operationreport"
	"github.com/spectql/spectql/pkg/schema"
)

// ParseDocumentString parses the input against the schema and returns the
// document together with the report collecting any error.
func ParseDocumentString(definitions *schema.Schema, input string) (*ast.Document, operationreport.Report) {
	parser := NewParser()
	var report operationreport.Report
	document := parser.Parse(definitions, input, &report)
	return document, report
}

type Parser struct {
	schema    *schema.Schema
	tokenizer *Tokenizer
	report    *operationreport.Report
	document  *ast.Document
}

func NewParser() *Parser {
	return &Parser{
		tokenizer: NewTokenizer(),
	}
}

func (p *Parser) Parse(definitions *schema.Schema, input string, report *operationreport.Report) *ast.Document {
	p.schema = definitions
	p.report = report
	p.document = &ast.Document{}

	if err := p.tokenizer.Tokenize(input); err != nil {
		report.AddInternalError(err)
		report.AddExternalError(operationreport.ExternalError{
			Message:   lexerErrorMessage(err),
			Locations: []operationreport.Location{operationreport.LocationFromPosition(err.Position)},
		})
		return p.document
	}

	p.parseDocument()
	return p.document
}

func (p *Parser) parseDocument() {
	for {
		if p.report.HasErrors() {
			return
		}
		next := p.peek()
		switch next.Keyword {
		case keyword.EOF:
			return
		case keyword.LBRACE:
			p.parseShorthandOperation()
		case keyword.IDENT:
			switch identkeyword.KeywordFromLiteral(next.Literal) {
			case identkeyword.QUERY:
				p.parseOperationDefinition(ast.OperationTypeQuery, p.read())
			case identkeyword.MUTATION:
				p.parseOperationDefinition(ast.OperationTypeMutation, p.read())
			case identkeyword.SUBSCRIPTION:
				p.parseOperationDefinition(ast.OperationTypeSubscription, p.read())
			case identkeyword.FRAGMENT:
				p.parseFragmentDefinition(p.read())
			default:
				p.errUnexpectedToken(p.read())
			}
		default:
			p.errUnexpectedToken(p.read())
		}
	}
}

// parseShorthandOperation parses the { ... } form, an anonymous query.
func (p *Parser) parseShorthandOperation() {
	operation := &ast.OperationDefinition{
		OperationType: ast.OperationTypeQuery,
	}
	operation.SelectionSet = p.parseSelectionSet(p.hintForType(p.schema.QueryTypeName()))
	operation.Span = operation.SelectionSet.Span
	p.document.Definitions = append(p.document.Definitions, operation)
}

func (p *Parser) parseOperationDefinition(operationType ast.OperationType, keywordToken token.Token) {
	operation := &ast.OperationDefinition{
		OperationType: operationType,
	}

	if p.peekEquals(keyword.IDENT) {
		name := p.read()
		operation.Name = name.Literal
		operation.NameSpan = name.Span
	}
	if p.peekEquals(keyword.LPAREN) {
		operation.VariableDefinitions = p.parseVariableDefinitions()
	}
	operation.Directives = p.parseDirectives()
	if p.report.HasErrors() {
		return
	}

	operation.SelectionSet = p.parseSelectionSet(p.hintForType(p.rootTypeName(operationType)))
	operation.Span = position.StartEnd(keywordToken.Span.Start, operation.SelectionSet.Span.End)
	p.document.Definitions = append(p.document.Definitions, operation)
}

func (p *Parser) rootTypeName(operationType ast.OperationType) string {
	switch operationType {
	case ast.OperationTypeMutation:
		return p.schema.MutationTypeName()
	case ast.OperationTypeSubscription:
		return p.schema.SubscriptionTypeName()
	default:
		return p.schema.QueryTypeName()
	}
}

func (p *Parser) parseFragmentDefinition(keywordToken token.Token) {
	fragment := &ast.FragmentDefinition{}

	// "on" would make the type condition of a spread ambiguous
	name := p.mustReadExceptIdentKey(identkeyword.ON)
	if p.report.HasErrors() {
		return
	}
	fragment.Name = name.Literal
	fragment.NameSpan = name.Span

	p.mustReadIdentKey(identkeyword.ON)
	typeCondition := p.mustRead(keyword.IDENT)
	if p.report.HasErrors() {
		return
	}
	fragment.TypeCondition = typeCondition.Literal
	fragment.TypeConditionSpan = typeCondition.Span

	fragment.Directives = p.parseDirectives()
	if p.report.HasErrors() {
		return
	}

	fragment.SelectionSet = p.parseSelectionSet(p.hintForType(fragment.TypeCondition))
	fragment.Span = position.StartEnd(keywordToken.Span.Start, fragment.SelectionSet.Span.End)
	p.document.Definitions = append(p.document.Definitions, fragment)
}

func (p *Parser) parseVariableDefinitions() []ast.VariableDefinition {
	p.mustRead(keyword.LPAREN)

	var definitions []ast.VariableDefinition
	for {
		if p.report.HasErrors() {
			return definitions
		}
		next := p.peek()
		switch next.Keyword {
		case keyword.RPAREN:
			if len(definitions) == 0 {
				p.errUnexpectedToken(p.read(), keyword.VARIABLE)
				return definitions
			}
			p.read()
			return definitions
		case keyword.VARIABLE:
			definitions = append(definitions, p.parseVariableDefinition(p.read()))
		default:
			p.errUnexpectedToken(p.read(), keyword.VARIABLE, keyword.RPAREN)
			return definitions
		}
	}
}

func (p *Parser) parseVariableDefinition(variable token.Token) ast.VariableDefinition {
	definition := ast.VariableDefinition{
		Name:     variable.Literal,
		NameSpan: variable.Span,
	}

	p.mustRead(keyword.COLON)
	definition.Type = p.parseType()
	if p.report.HasErrors() {
		return definition
	}
	definition.Span = position.StartEnd(variable.Span.Start, definition.Type.Span.End)

	if _, hasDefault := p.skip(keyword.EQUALS); hasDefault {
		value := p.parseValue(&definition.Type, true)
		definition.DefaultValue = &value
		definition.Span.End = value.Span.End
	}

	return definition
}

func (p *Parser) parseType() (out ast.Type) {
	next := p.read()
	switch next.Keyword {
	case keyword.IDENT:
		out = ast.Type{
			Kind: ast.TypeKindNamed,
			Name: next.Literal,
			Span: next.Span,
		}
	case keyword.LBRACK:
		item := p.parseType()
		if p.report.HasErrors() {
			return
		}
		closing := p.mustRead(keyword.RBRACK)
		out = ast.Type{
			Kind:     ast.TypeKindList,
			ItemType: &item,
			Span:     position.StartEnd(next.Span.Start, closing.Span.End),
		}
	default:
		p.errUnexpectedToken(next, keyword.IDENT, keyword.LBRACK)
		return
	}

	if bang, nonNull := p.skip(keyword.BANG); nonNull {
		out.NonNull = true
		out.Span.End = bang.Span.End
	}
	return
}

// fieldsHint carries the field list of the type a selection set is parsed
// against. A zero hint means the type is unknown and parsing proceeds on
// syntax alone.
type fieldsHint struct {
	typeName string
	fields   []schema.FieldDefinition
}

func (h fieldsHint) fieldByName(name string) (*schema.FieldDefinition, bool) {
	for i := range h.fields {
		if h.fields[i].FieldName == name {
			return &h.fields[i], true
		}
	}
	return nil, false
}

func (p *Parser) hintForType(typeName string) fieldsHint {
	if typeName == "" {
		return fieldsHint{}
	}
	return fieldsHint{
		typeName: typeName,
		fields:   p.schema.FieldsByTypeName(typeName),
	}
}

func (p *Parser) parseSelectionSet(hint fieldsHint) (set ast.SelectionSet) {
	opening := p.mustRead(keyword.LBRACE)
	if p.report.HasErrors() {
		return
	}

	for {
		if p.report.HasErrors() {
			return
		}
		next := p.peek()
		switch next.Keyword {
		case keyword.RBRACE:
			if len(set.Selections) == 0 {
				p.errUnexpectedToken(p.read(), keyword.IDENT, keyword.SPREAD)
				return
			}
			closing := p.read()
			set.Span = position.StartEnd(opening.Span.Start, closing.Span.End)
			return
		case keyword.IDENT:
			set.Selections = append(set.Selections, p.parseField(hint))
		case keyword.SPREAD:
			set.Selections = append(set.Selections, p.parseFragmentSelection(p.read(), hint))
		default:
			p.errUnexpectedToken(p.read(), keyword.IDENT, keyword.SPREAD, keyword.RBRACE)
			return
		}
	}
}

func (p *Parser) parseField(hint fieldsHint) *ast.Field {
	field := &ast.Field{}

	first := p.mustRead(keyword.IDENT)
	field.Name = first.Literal
	field.NameSpan = first.Span
	field.Span = first.Span

	if _, aliased := p.skip(keyword.COLON); aliased {
		name := p.mustRead(keyword.IDENT)
		if p.report.HasErrors() {
			return field
		}
		field.Alias = first.Literal
		field.AliasSpan = first.Span
		field.Name = name.Literal
		field.NameSpan = name.Span
		field.Span.End = name.Span.End
	}

	fieldDefinition, hasDefinition := hint.fieldByName(field.Name)

	if p.peekEquals(keyword.LPAREN) {
		arguments, argumentsSpan := p.parseArguments(func(argumentName string) *ast.Type {
			if !hasDefinition {
				return nil
			}
			argument, ok := fieldDefinition.ArgumentByName(argumentName)
			if !ok {
				return nil
			}
			return &argument.Type
		})
		if p.report.HasErrors() {
			return field
		}
		field.Arguments = arguments
		field.Span.End = argumentsSpan.End
	}

	field.DirectiveList = p.parseDirectives()
	if p.report.HasErrors() {
		return field
	}
	if len(field.DirectiveList) != 0 {
		field.Span.End = field.DirectiveList[len(field.DirectiveList)-1].Span.End
	}

	if p.peekEquals(keyword.LBRACE) {
		subHint := fieldsHint{}
		if hasDefinition {
			subHint = p.hintForType(fieldDefinition.FieldType.NamedType())
		}
		set := p.parseSelectionSet(subHint)
		if p.report.HasErrors() {
			return field
		}
		field.SelectionSet = &set
		field.Span.End = set.Span.End
	}

	return field
}

// parseFragmentSelection disambiguates what follows a spread: "on" starts a
// typed inline fragment, any other name is a fragment spread, a directive or
// brace starts an untyped inline fragment inheriting the enclosing type.
func (p *Parser) parseFragmentSelection(spread token.Token, hint fieldsHint) ast.Selection {
	next := p.peek()
	switch next.Keyword {
	case keyword.IDENT:
		if p.peekEqualsIdentKey(identkeyword.ON) {
			p.read()
			return p.parseTypedInlineFragment(spread)
		}
		return p.parseFragmentSpread(spread)
	case keyword.AT, keyword.LBRACE:
		return p.parseInlineFragmentBody(spread, hint, position.Span{})
	default:
		p.errUnexpectedToken(p.read(), keyword.IDENT, keyword.AT, keyword.LBRACE)
		return &ast.FragmentSpread{}
	}
}

func (p *Parser) parseFragmentSpread(spread token.Token) *ast.FragmentSpread {
	fragmentSpread := &ast.FragmentSpread{}

	name := p.mustReadExceptIdentKey(identkeyword.ON)
	if p.report.HasErrors() {
		return fragmentSpread
	}
	fragmentSpread.Name = name.Literal
	fragmentSpread.NameSpan = name.Span
	fragmentSpread.Span = position.StartEnd(spread.Span.Start, name.Span.End)

	fragmentSpread.DirectiveList = p.parseDirectives()
	if len(fragmentSpread.DirectiveList) != 0 {
		fragmentSpread.Span.End = fragmentSpread.DirectiveList[len(fragmentSpread.DirectiveList)-1].Span.End
	}
	return fragmentSpread
}

func (p *Parser) parseTypedInlineFragment(spread token.Token) *ast.InlineFragment {
	typeCondition := p.mustRead(keyword.IDENT)
	if p.report.HasErrors() {
		return &ast.InlineFragment{}
	}
	return p.parseInlineFragmentBody(spread, p.hintForType(typeCondition.Literal), typeCondition.Span)
}

func (p *Parser) parseInlineFragmentBody(spread token.Token, hint fieldsHint, typeConditionSpan position.Span) *ast.InlineFragment {
	inline := &ast.InlineFragment{
		TypeConditionSpan: typeConditionSpan,
	}
	if typeConditionSpan.IsSet() {
		inline.TypeCondition = hint.typeName
	}

	inline.DirectiveList = p.parseDirectives()
	if p.report.HasErrors() {
		return inline
	}

	inline.SelectionSet = p.parseSelectionSet(hint)
	inline.Span = position.StartEnd(spread.Span.Start, inline.SelectionSet.Span.End)
	return inline
}

func (p *Parser) parseArguments(argumentType func(name string) *ast.Type) ([]ast.Argument, position.Span) {
	opening := p.mustRead(keyword.LPAREN)
	span := opening.Span

	var arguments []ast.Argument
	for {
		if p.report.HasErrors() {
			return arguments, span
		}
		next := p.peek()
		switch next.Keyword {
		case keyword.RPAREN:
			if len(arguments) == 0 {
				p.errUnexpectedToken(p.read(), keyword.IDENT)
				return arguments, span
			}
			closing := p.read()
			span.End = closing.Span.End
			return arguments, span
		case keyword.IDENT:
			name := p.read()
			p.mustRead(keyword.COLON)
			if p.report.HasErrors() {
				return arguments, span
			}
			value := p.parseValue(argumentType(name.Literal), false)
			arguments = append(arguments, ast.Argument{
				Name:     name.Literal,
				NameSpan: name.Span,
				Value:    value,
				Span:     position.StartEnd(name.Span.Start, value.Span.End),
			})
		default:
			p.errUnexpectedToken(p.read(), keyword.IDENT, keyword.RPAREN)
			return arguments, span
		}
	}
}

func (p *Parser) parseDirectives() []ast.Directive {
	var directives []ast.Directive
	for p.peekEquals(keyword.AT) {
		at := p.read()
		name := p.mustRead(keyword.IDENT)
		if p.report.HasErrors() {
			return directives
		}

		directive := ast.Directive{
			Name:     name.Literal,
			NameSpan: name.Span,
			Span:     position.StartEnd(at.Span.Start, name.Span.End),
		}

		definition, hasDefinition := p.schema.DirectiveByName(directive.Name)
		if p.peekEquals(keyword.LPAREN) {
			arguments, argumentsSpan := p.parseArguments(func(argumentName string) *ast.Type {
				if !hasDefinition {
					return nil
				}
				argument, ok := definition.ArgumentByName(argumentName)
				if !ok {
					return nil
				}
				return &argument.Type
			})
			if p.report.HasErrors() {
				return directives
			}
			directive.Arguments = arguments
			directive.Span.End = argumentsSpan.End
		}

		directives = append(directives, directive)
	}
	return directives
}
