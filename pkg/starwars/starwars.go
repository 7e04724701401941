// Package starwars is the canonical hero/droid/episode fixture used by the
// execution and engine tests.
package starwars

import (
	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/schema"
)

func namedType(name string) ast.Type {
	return ast.Type{Kind: ast.TypeKindNamed, Name: name}
}

func nonNullNamedType(name string) ast.Type {
	return ast.Type{Kind: ast.TypeKindNamed, Name: name, NonNull: true}
}

func listOfNamedType(name string) ast.Type {
	item := namedType(name)
	return ast.Type{Kind: ast.TypeKindList, ItemType: &item}
}

func enumDefault(name string) *ast.Value {
	return &ast.Value{Kind: ast.ValueKindEnum, Raw: name}
}

func characterFields() []schema.FieldDefinition {
	return []schema.FieldDefinition{
		{FieldName: "id", FieldType: nonNullNamedType("ID")},
		{FieldName: "name", FieldType: nonNullNamedType("String")},
		{FieldName: "friends", FieldType: listOfNamedType("Character")},
		{FieldName: "appearsIn", FieldType: listOfNamedType("Episode")},
	}
}

// NewSchema builds the Star Wars schema: the Character interface with Human
// and Droid beneath it, the SearchResult union and all three operation roots.
func NewSchema() *schema.Schema {
	lengthUnitArg := schema.InputValueDefinition{
		Name:         "unit",
		Type:         namedType("LengthUnit"),
		DefaultValue: enumDefault("METER"),
	}

	return schema.MustNewSchema(schema.Config{
		QueryTypeName:        "Query",
		MutationTypeName:     "Mutation",
		SubscriptionTypeName: "Subscription",
		Types: []schema.MetaType{
			&schema.EnumType{
				TypeName: "Episode",
				Describe: "The episodes of the original trilogy.",
				Values: []schema.EnumValue{
					{Name: "NEWHOPE"},
					{Name: "EMPIRE"},
					{Name: "JEDI"},
				},
			},
			&schema.EnumType{
				TypeName: "LengthUnit",
				Values: []schema.EnumValue{
					{Name: "METER"},
					{Name: "FOOT"},
				},
			},
			&schema.InterfaceType{
				TypeName: "Character",
				Describe: "A character in the Star Wars trilogy.",
				Fields:   characterFields(),
			},
			&schema.ObjectType{
				TypeName:   "Human",
				Interfaces: []string{"Character"},
				Fields: append(characterFields(),
					schema.FieldDefinition{FieldName: "homePlanet", FieldType: namedType("String")},
					schema.FieldDefinition{
						FieldName: "height",
						FieldType: namedType("Float"),
						Arguments: []schema.InputValueDefinition{lengthUnitArg},
					},
				),
			},
			&schema.ObjectType{
				TypeName:   "Droid",
				Interfaces: []string{"Character"},
				Fields: append(characterFields(),
					schema.FieldDefinition{FieldName: "primaryFunction", FieldType: namedType("String")},
				),
			},
			&schema.ObjectType{
				TypeName: "Starship",
				Fields: []schema.FieldDefinition{
					{FieldName: "id", FieldType: nonNullNamedType("ID")},
					{FieldName: "name", FieldType: nonNullNamedType("String")},
					{
						FieldName: "length",
						FieldType: namedType("Float"),
						Arguments: []schema.InputValueDefinition{lengthUnitArg},
					},
				},
			},
			&schema.UnionType{
				TypeName: "SearchResult",
				Members:  []string{"Human", "Droid", "Starship"},
			},
			&schema.InputObjectType{
				TypeName: "ReviewInput",
				Fields: []schema.InputValueDefinition{
					{Name: "stars", Type: nonNullNamedType("Int")},
					{Name: "commentary", Type: namedType("String")},
				},
			},
			&schema.ObjectType{
				TypeName: "Review",
				Fields: []schema.FieldDefinition{
					{FieldName: "episode", FieldType: namedType("Episode")},
					{FieldName: "stars", FieldType: nonNullNamedType("Int")},
					{FieldName: "commentary", FieldType: namedType("String")},
				},
			},
			&schema.ObjectType{
				TypeName: "Query",
				Fields: []schema.FieldDefinition{
					{
						FieldName: "hero",
						FieldType: namedType("Character"),
						Arguments: []schema.InputValueDefinition{
							{Name: "episode", Type: namedType("Episode")},
						},
					},
					{
						FieldName: "human",
						FieldType: namedType("Human"),
						Arguments: []schema.InputValueDefinition{
							{Name: "id", Type: nonNullNamedType("ID")},
						},
					},
					{
						FieldName: "droid",
						FieldType: namedType("Droid"),
						Arguments: []schema.InputValueDefinition{
							{Name: "id", Type: nonNullNamedType("ID")},
						},
					},
					{
						FieldName: "character",
						FieldType: namedType("Character"),
						Arguments: []schema.InputValueDefinition{
							{Name: "id", Type: nonNullNamedType("ID")},
						},
					},
					{
						FieldName: "search",
						FieldType: listOfNamedType("SearchResult"),
						Arguments: []schema.InputValueDefinition{
							{Name: "text", Type: nonNullNamedType("String")},
						},
					},
				},
			},
			&schema.ObjectType{
				TypeName: "Mutation",
				Fields: []schema.FieldDefinition{
					{
						FieldName: "createReview",
						FieldType: namedType("Review"),
						Arguments: []schema.InputValueDefinition{
							{Name: "episode", Type: namedType("Episode")},
							{Name: "review", Type: nonNullNamedType("ReviewInput")},
						},
					},
				},
			},
			&schema.ObjectType{
				TypeName: "Subscription",
				Fields: []schema.FieldDefinition{
					{
						FieldName: "reviewAdded",
						FieldType: namedType("Review"),
						Arguments: []schema.InputValueDefinition{
							{Name: "episode", Type: namedType("Episode")},
						},
					},
				},
			},
		},
	})
}
