package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectql/spectql/pkg/ast"
)

func petSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(Config{
		QueryTypeName: "Query",
		Types: []MetaType{
			&ObjectType{
				TypeName: "Query",
				Fields: []FieldDefinition{
					{FieldName: "pet", FieldType: namedType("Pet")},
					{FieldName: "pets", FieldType: ast.Type{
						Kind:     ast.TypeKindList,
						ItemType: &ast.Type{Kind: ast.TypeKindNamed, Name: "Pet", NonNull: true},
						NonNull:  true,
					}},
					{FieldName: "search", FieldType: namedType("SearchResult"), Arguments: []InputValueDefinition{
						{Name: "filter", Type: namedType("PetFilter")},
					}},
				},
			},
			&InterfaceType{
				TypeName: "Pet",
				Fields: []FieldDefinition{
					{FieldName: "name", FieldType: nonNullNamedType("String")},
				},
			},
			&ObjectType{
				TypeName:   "Dog",
				Interfaces: []string{"Pet"},
				Fields: []FieldDefinition{
					{FieldName: "name", FieldType: nonNullNamedType("String")},
					{FieldName: "barkVolume", FieldType: namedType("Int")},
				},
			},
			&ObjectType{
				TypeName:   "Cat",
				Interfaces: []string{"Pet"},
				Fields: []FieldDefinition{
					{FieldName: "name", FieldType: nonNullNamedType("String")},
					{FieldName: "meowVolume", FieldType: namedType("Int")},
				},
			},
			&ObjectType{
				TypeName: "Owner",
				Fields: []FieldDefinition{
					{FieldName: "name", FieldType: namedType("String")},
				},
			},
			&UnionType{TypeName: "SearchResult", Members: []string{"Dog", "Owner"}},
			&EnumType{TypeName: "PetKind", Values: []EnumValue{{Name: "DOG"}, {Name: "CAT"}}},
			&InputObjectType{
				TypeName: "PetFilter",
				Fields: []InputValueDefinition{
					{Name: "kind", Type: namedType("PetKind")},
					{Name: "nameLike", Type: namedType("String")},
				},
			},
		},
	})
	require.NoError(t, err)
	return s
}

func TestNewSchemaErrors(t *testing.T) {
	t.Run("missing query root", func(t *testing.T) {
		_, err := NewSchema(Config{})
		assert.EqualError(t, err, "schema: query root type is mandatory")
	})
	t.Run("query root not an object", func(t *testing.T) {
		_, err := NewSchema(Config{
			QueryTypeName: "Query",
			Types:         []MetaType{&EnumType{TypeName: "Query", Values: []EnumValue{{Name: "A"}}}},
		})
		assert.EqualError(t, err, `schema: root type "Query" is not a registered object type`)
	})
	t.Run("duplicate type", func(t *testing.T) {
		_, err := NewSchema(Config{
			QueryTypeName: "Query",
			Types: []MetaType{
				&ObjectType{TypeName: "Query"},
				&ObjectType{TypeName: "Query"},
			},
		})
		assert.EqualError(t, err, `schema: duplicate type "Query"`)
	})
	t.Run("builtin scalar shadowed", func(t *testing.T) {
		_, err := NewSchema(Config{
			QueryTypeName: "Query",
			Types: []MetaType{
				&ObjectType{TypeName: "Query"},
				&ScalarType{TypeName: "String"},
			},
		})
		assert.EqualError(t, err, `schema: duplicate type "String"`)
	})
	t.Run("field references unknown type", func(t *testing.T) {
		_, err := NewSchema(Config{
			QueryTypeName: "Query",
			Types: []MetaType{
				&ObjectType{TypeName: "Query", Fields: []FieldDefinition{
					{FieldName: "ghost", FieldType: namedType("Ghost")},
				}},
			},
		})
		assert.EqualError(t, err, `schema: field Query.ghost references unknown type "Ghost"`)
	})
	t.Run("unknown interface", func(t *testing.T) {
		_, err := NewSchema(Config{
			QueryTypeName: "Query",
			Types: []MetaType{
				&ObjectType{TypeName: "Query", Interfaces: []string{"Node"}},
			},
		})
		assert.EqualError(t, err, `schema: type "Query" implements unknown interface "Node"`)
	})
	t.Run("empty union", func(t *testing.T) {
		_, err := NewSchema(Config{
			QueryTypeName: "Query",
			Types: []MetaType{
				&ObjectType{TypeName: "Query"},
				&UnionType{TypeName: "Empty"},
			},
		})
		assert.EqualError(t, err, `schema: union "Empty" has no members`)
	})
	t.Run("object in input position", func(t *testing.T) {
		_, err := NewSchema(Config{
			QueryTypeName: "Query",
			Types: []MetaType{
				&ObjectType{TypeName: "Query", Fields: []FieldDefinition{
					{FieldName: "echo", FieldType: namedType("String"), Arguments: []InputValueDefinition{
						{Name: "input", Type: namedType("Query")},
					}},
				}},
			},
		})
		assert.EqualError(t, err, `schema: Query.echo references OBJECT type "Query" in input position`)
	})
}

func TestSchemaLookups(t *testing.T) {
	s := petSchema(t)

	query := s.QueryType()
	assert.Equal(t, "Query", query.Name())

	_, hasMutation := s.MutationType()
	assert.False(t, hasMutation)

	pet, ok := s.TypeByName("Pet")
	require.True(t, ok)
	assert.Equal(t, KindInterface, pet.Kind())

	fields := s.FieldsByTypeName("Pet")
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].FieldName)

	assert.Nil(t, s.FieldsByTypeName("SearchResult"))

	listOfPets := ast.Type{
		Kind:     ast.TypeKindList,
		ItemType: &ast.Type{Kind: ast.TypeKindNamed, Name: "Pet", NonNull: true},
		NonNull:  true,
	}
	inner, ok := s.LookupType(listOfPets)
	require.True(t, ok)
	assert.Equal(t, "Pet", inner.Name())

	skip, ok := s.DirectiveByName("skip")
	require.True(t, ok)
	ifArg, ok := skip.ArgumentByName("if")
	require.True(t, ok)
	assert.Equal(t, "Boolean!", ifArg.Type.String())
}

func TestTypeListOrder(t *testing.T) {
	s := petSchema(t)

	var names []string
	for _, metaType := range s.TypeList() {
		names = append(names, metaType.Name())
	}

	// Kind buckets first (enum, input object, interface, scalar, object,
	// union), name order inside each bucket.
	assert.Equal(t, []string{
		"PetKind",
		"PetFilter",
		"Pet",
		"Boolean", "Float", "ID", "Int", "String",
		"Cat", "Dog", "Owner", "Query",
		"SearchResult",
	}, names)

	var directiveNames []string
	for _, d := range s.DirectiveList() {
		directiveNames = append(directiveNames, d.Name)
	}
	assert.Equal(t, []string{"deprecated", "include", "skip"}, directiveNames)
}

func TestPossibleTypes(t *testing.T) {
	s := petSchema(t)

	pet, _ := s.TypeByName("Pet")
	petNames := possibleNames(s, pet)
	assert.Equal(t, []string{"Cat", "Dog"}, petNames)

	union, _ := s.TypeByName("SearchResult")
	assert.Equal(t, []string{"Dog", "Owner"}, possibleNames(s, union))

	dog, _ := s.TypeByName("Dog")
	assert.Equal(t, []string{"Dog"}, possibleNames(s, dog))

	assert.True(t, s.IsPossibleType(pet, dog.(*ObjectType)))
	owner, _ := s.TypeByName("Owner")
	assert.False(t, s.IsPossibleType(pet, owner.(*ObjectType)))

	assert.True(t, s.TypeOverlap(pet, union))
	cat, _ := s.TypeByName("Cat")
	assert.False(t, s.TypeOverlap(cat, union))
}

func possibleNames(s *Schema, t MetaType) []string {
	var out []string
	for _, object := range s.PossibleTypes(t) {
		out = append(out, object.Name())
	}
	return out
}

func TestIsSubtype(t *testing.T) {
	s := petSchema(t)

	assert.True(t, s.IsNamedSubtype("Dog", "Pet"))
	assert.True(t, s.IsNamedSubtype("Dog", "SearchResult"))
	assert.False(t, s.IsNamedSubtype("Owner", "Pet"))
	assert.True(t, s.IsNamedSubtype("Pet", "Pet"))

	// Non-null is a subtype of nullable, never the other way around.
	assert.True(t, s.IsSubtype(nonNullNamedType("Dog"), namedType("Pet")))
	assert.False(t, s.IsSubtype(namedType("Dog"), nonNullNamedType("Pet")))

	listOf := func(item ast.Type) ast.Type {
		return ast.Type{Kind: ast.TypeKindList, ItemType: &item}
	}
	assert.True(t, s.IsSubtype(listOf(namedType("Dog")), listOf(namedType("Pet"))))
	assert.False(t, s.IsSubtype(listOf(namedType("Dog")), namedType("Pet")))
}

func TestMakeType(t *testing.T) {
	s := petSchema(t)

	wrapped, err := s.MakeType(ast.Type{
		Kind:     ast.TypeKindList,
		ItemType: &ast.Type{Kind: ast.TypeKindNamed, Name: "Pet", NonNull: true},
		NonNull:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "[Pet!]!", wrapped.String())
	assert.True(t, wrapped.IsNonNull())
	assert.Equal(t, "Pet", wrapped.InnermostConcrete().Name())

	item, ok := wrapped.ListItemType()
	require.True(t, ok)
	assert.Equal(t, "Pet!", item.String())

	_, err = s.MakeWrappedTypeByName("Ghost")
	assert.EqualError(t, err, `schema: type "Ghost" not found`)
}

func TestBuiltinScalarLiterals(t *testing.T) {
	intScalar := builtinScalars[0]
	require.Equal(t, "Int", intScalar.TypeName)

	value, err := intScalar.ParseLiteral(ScalarToken{Kind: ScalarTokenInt, Literal: "42"})
	require.NoError(t, err)
	assert.Equal(t, ast.ValueKindInteger, value.Kind)
	assert.Equal(t, "42", value.Raw)

	_, err = intScalar.ParseLiteral(ScalarToken{Kind: ScalarTokenInt, Literal: "2147483648"})
	assert.Error(t, err)
	_, err = intScalar.ParseLiteral(ScalarToken{Kind: ScalarTokenFloat, Literal: "1.5"})
	assert.Error(t, err)

	floatScalar := builtinScalars[1]
	value, err = floatScalar.ParseLiteral(ScalarToken{Kind: ScalarTokenInt, Literal: "7"})
	require.NoError(t, err)
	assert.Equal(t, ast.ValueKindFloat, value.Kind)

	idScalar := builtinScalars[4]
	value, err = idScalar.ParseLiteral(ScalarToken{Kind: ScalarTokenString, Literal: "abc"})
	require.NoError(t, err)
	assert.Equal(t, ast.ValueKindString, value.Kind)
	_, err = idScalar.ParseLiteral(ScalarToken{Kind: ScalarTokenFloat, Literal: "1.0"})
	assert.Error(t, err)
}
