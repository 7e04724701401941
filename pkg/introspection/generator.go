package introspection

import (
	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/schema"
)

// Generate renders the full introspection data for the registry. Types come
// out in kind bucket order, directives by name, both taken straight from the
// registry's list accessors.
func Generate(definitions *schema.Schema) Data {
	g := generator{definitions: definitions}

	out := Schema{
		QueryType: &TypeName{Name: definitions.QueryTypeName()},
		Types:     make([]FullType, 0, len(definitions.TypeList())),
	}
	if name := definitions.MutationTypeName(); name != "" {
		out.MutationType = &TypeName{Name: name}
	}
	if name := definitions.SubscriptionTypeName(); name != "" {
		out.SubscriptionType = &TypeName{Name: name}
	}

	for _, t := range definitions.TypeList() {
		out.Types = append(out.Types, g.fullType(t))
	}
	for _, directive := range definitions.DirectiveList() {
		out.Directives = append(out.Directives, g.directive(directive))
	}

	return Data{Schema: out}
}

type generator struct {
	definitions *schema.Schema
}

func (g *generator) fullType(t schema.MetaType) FullType {
	out := FullType{
		Kind:        t.Kind().String(),
		Name:        t.Name(),
		Description: t.Description(),
	}

	switch t := t.(type) {
	case *schema.ObjectType:
		out.Fields = g.fields(t.Fields)
		for _, interfaceName := range t.Interfaces {
			out.Interfaces = append(out.Interfaces, g.namedRef(interfaceName))
		}
	case *schema.InterfaceType:
		out.Fields = g.fields(t.Fields)
		out.PossibleTypes = g.possibleTypes(t)
	case *schema.UnionType:
		out.PossibleTypes = g.possibleTypes(t)
	case *schema.EnumType:
		for _, value := range t.Values {
			out.EnumValues = append(out.EnumValues, EnumValue{
				Name:              value.Name,
				Description:       value.Describe,
				IsDeprecated:      value.DeprecationReason != "",
				DeprecationReason: value.DeprecationReason,
			})
		}
	case *schema.InputObjectType:
		out.InputFields = g.inputValues(t.Fields)
	}

	return out
}

func (g *generator) fields(definitions []schema.FieldDefinition) []Field {
	out := make([]Field, 0, len(definitions))
	for i := range definitions {
		definition := &definitions[i]
		out = append(out, Field{
			Name:              definition.FieldName,
			Description:       definition.Describe,
			Args:              g.inputValues(definition.Arguments),
			Type:              g.typeRef(definition.FieldType),
			IsDeprecated:      definition.DeprecationReason != "",
			DeprecationReason: definition.DeprecationReason,
		})
	}
	return out
}

func (g *generator) inputValues(definitions []schema.InputValueDefinition) []InputValue {
	out := make([]InputValue, 0, len(definitions))
	for i := range definitions {
		definition := &definitions[i]
		out = append(out, InputValue{
			Name:         definition.Name,
			Description:  definition.Describe,
			Type:         g.typeRef(definition.Type),
			DefaultValue: renderDefault(definition.DefaultValue),
		})
	}
	return out
}

func (g *generator) possibleTypes(t schema.MetaType) []TypeRef {
	var out []TypeRef
	for _, possible := range g.definitions.PossibleTypes(t) {
		out = append(out, g.namedRef(possible.Name()))
	}
	return out
}

func (g *generator) typeRef(t ast.Type) TypeRef {
	if t.NonNull {
		inner := t
		inner.NonNull = false
		return TypeRef{Kind: "NON_NULL", OfType: ref(g.typeRef(inner))}
	}
	if t.Kind == ast.TypeKindList {
		return TypeRef{Kind: "LIST", OfType: ref(g.typeRef(*t.ItemType))}
	}
	return g.namedRef(t.Name)
}

func (g *generator) namedRef(name string) TypeRef {
	t, ok := g.definitions.TypeByName(name)
	if !ok {
		// the registry rejects unresolved names at construction
		panic("introspection: type " + name + " not registered")
	}
	return TypeRef{Kind: t.Kind().String(), Name: name}
}

func (g *generator) directive(definition schema.DirectiveDefinition) Directive {
	locations := make([]string, 0, len(definition.Locations))
	for _, location := range definition.Locations {
		locations = append(locations, location.String())
	}
	return Directive{
		Name:        definition.Name,
		Description: definition.Describe,
		Locations:   locations,
		Args:        g.inputValues(definition.Arguments),
	}
}

func renderDefault(v *ast.Value) *string {
	if v == nil {
		return nil
	}
	rendered := v.String()
	return &rendered
}

func ref(t TypeRef) *TypeRef {
	return &t
}
