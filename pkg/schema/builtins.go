package schema

import (
	"fmt"
	"strconv"

	"github.com/spectql/spectql/pkg/ast"
)

// builtinScalars are registered into every schema before user types. Their
// ParseLiteral funcs decide which token classes a literal position accepts,
// true/false/null literals never reach a scalar, the parser resolves those
// from ident keywords first.
var builtinScalars = []*ScalarType{
	{
		TypeName:     "Int",
		Describe:     "A signed 32 bit integer.",
		ParseLiteral: parseIntLiteral,
	},
	{
		TypeName:     "Float",
		Describe:     "A signed double precision floating point value.",
		ParseLiteral: parseFloatLiteral,
	},
	{
		TypeName:     "String",
		Describe:     "A UTF-8 character sequence.",
		ParseLiteral: parseStringLiteral,
	},
	{
		TypeName:     "Boolean",
		Describe:     "true or false.",
		ParseLiteral: parseBooleanLiteral,
	},
	{
		TypeName:     "ID",
		Describe:     "A unique identifier, serialized as a string.",
		ParseLiteral: parseIDLiteral,
	},
}

var builtinDirectives = []DirectiveDefinition{
	{
		Name:     "skip",
		Describe: "Excludes the annotated selection when the if argument is true.",
		Arguments: []InputValueDefinition{
			{Name: "if", Type: nonNullNamedType("Boolean")},
		},
		Locations: []DirectiveLocation{
			DirectiveLocationField,
			DirectiveLocationFragmentSpread,
			DirectiveLocationInlineFragment,
		},
	},
	{
		Name:     "include",
		Describe: "Includes the annotated selection only when the if argument is true.",
		Arguments: []InputValueDefinition{
			{Name: "if", Type: nonNullNamedType("Boolean")},
		},
		Locations: []DirectiveLocation{
			DirectiveLocationField,
			DirectiveLocationFragmentSpread,
			DirectiveLocationInlineFragment,
		},
	},
	{
		Name:     "deprecated",
		Describe: "Marks the annotated element as no longer supported.",
		Arguments: []InputValueDefinition{
			{Name: "reason", Type: namedType("String")},
		},
		Locations: []DirectiveLocation{
			DirectiveLocationField,
		},
	},
}

func namedType(name string) ast.Type {
	return ast.Type{Kind: ast.TypeKindNamed, Name: name}
}

func nonNullNamedType(name string) ast.Type {
	return ast.Type{Kind: ast.TypeKindNamed, Name: name, NonNull: true}
}

func parseIntLiteral(tok ScalarToken) (ast.Value, error) {
	if tok.Kind != ScalarTokenInt {
		return ast.Value{}, fmt.Errorf("Int cannot represent non-integer value %s", tok.Literal)
	}
	parsed, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil || parsed > 2147483647 || parsed < -2147483648 {
		return ast.Value{}, fmt.Errorf("Int cannot represent value outside 32 bit range: %s", tok.Literal)
	}
	return ast.Value{Kind: ast.ValueKindInteger, Raw: tok.Literal}, nil
}

func parseFloatLiteral(tok ScalarToken) (ast.Value, error) {
	switch tok.Kind {
	case ScalarTokenInt:
		return ast.Value{Kind: ast.ValueKindFloat, Raw: tok.Literal}, nil
	case ScalarTokenFloat:
		if _, err := strconv.ParseFloat(tok.Literal, 64); err != nil {
			return ast.Value{}, fmt.Errorf("Float cannot represent value %s", tok.Literal)
		}
		return ast.Value{Kind: ast.ValueKindFloat, Raw: tok.Literal}, nil
	default:
		return ast.Value{}, fmt.Errorf("Float cannot represent non-numeric value %q", tok.Literal)
	}
}

func parseStringLiteral(tok ScalarToken) (ast.Value, error) {
	switch tok.Kind {
	case ScalarTokenString, ScalarTokenBlockString:
		return ast.Value{Kind: ast.ValueKindString, Raw: tok.Literal}, nil
	default:
		return ast.Value{}, fmt.Errorf("String cannot represent non-string value %s", tok.Literal)
	}
}

func parseBooleanLiteral(tok ScalarToken) (ast.Value, error) {
	return ast.Value{}, fmt.Errorf("Boolean cannot represent value %s", tok.Literal)
}

func parseIDLiteral(tok ScalarToken) (ast.Value, error) {
	switch tok.Kind {
	case ScalarTokenInt:
		return ast.Value{Kind: ast.ValueKindInteger, Raw: tok.Literal}, nil
	case ScalarTokenString:
		return ast.Value{Kind: ast.ValueKindString, Raw: tok.Literal}, nil
	default:
		return ast.Value{}, fmt.Errorf("ID cannot represent value %s", tok.Literal)
	}
}
