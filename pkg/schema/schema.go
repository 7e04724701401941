package schema

import (
	"fmt"
	"sort"

	"github.com/spectql/spectql/pkg/ast"
)

// Config describes a schema to build. QueryTypeName is mandatory, the other
// root types are optional.
type Config struct {
	QueryTypeName        string
	MutationTypeName     string
	SubscriptionTypeName string
	Types                []MetaType
	Directives           []DirectiveDefinition
}

// Schema is the read only type registry consulted during parsing and
// execution.
type Schema struct {
	types                map[string]MetaType
	directives           map[string]*DirectiveDefinition
	queryTypeName        string
	mutationTypeName     string
	subscriptionTypeName string
}

// NewSchema builds the registry and resolves every by-name reference.
// A reference to a type that was never registered is a construction error,
// not a runtime one.
func NewSchema(config Config) (*Schema, error) {
	s := &Schema{
		types:                make(map[string]MetaType, len(config.Types)+len(builtinScalars)),
		directives:           make(map[string]*DirectiveDefinition, len(config.Directives)+len(builtinDirectives)),
		queryTypeName:        config.QueryTypeName,
		mutationTypeName:     config.MutationTypeName,
		subscriptionTypeName: config.SubscriptionTypeName,
	}

	for _, builtin := range builtinScalars {
		s.types[builtin.TypeName] = builtin
	}
	for i := range builtinDirectives {
		s.directives[builtinDirectives[i].Name] = &builtinDirectives[i]
	}

	for _, t := range config.Types {
		if t.Name() == "" {
			return nil, fmt.Errorf("schema: type with empty name")
		}
		if _, exists := s.types[t.Name()]; exists {
			return nil, fmt.Errorf("schema: duplicate type %q", t.Name())
		}
		s.types[t.Name()] = t
	}
	for i := range config.Directives {
		directive := config.Directives[i]
		if _, exists := s.directives[directive.Name]; exists {
			return nil, fmt.Errorf("schema: duplicate directive %q", directive.Name)
		}
		s.directives[directive.Name] = &directive
	}

	if err := s.resolveReferences(); err != nil {
		return nil, err
	}

	return s, nil
}

// MustNewSchema is NewSchema for schemas known to be valid, typically in
// tests and fixtures.
func MustNewSchema(config Config) *Schema {
	s, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return s
}

// resolveReferences verifies that no referenced type name stays a
// placeholder.
func (s *Schema) resolveReferences() error {
	if s.queryTypeName == "" {
		return fmt.Errorf("schema: query root type is mandatory")
	}
	if err := s.requireObject(s.queryTypeName); err != nil {
		return err
	}
	if s.mutationTypeName != "" {
		if err := s.requireObject(s.mutationTypeName); err != nil {
			return err
		}
	}
	if s.subscriptionTypeName != "" {
		if err := s.requireObject(s.subscriptionTypeName); err != nil {
			return err
		}
	}

	for _, t := range s.types {
		switch t := t.(type) {
		case *ObjectType:
			if err := s.resolveFields(t.Name(), t.Fields); err != nil {
				return err
			}
			for _, interfaceName := range t.Interfaces {
				if _, ok := s.types[interfaceName].(*InterfaceType); !ok {
					return fmt.Errorf("schema: type %q implements unknown interface %q", t.Name(), interfaceName)
				}
			}
		case *InterfaceType:
			if err := s.resolveFields(t.Name(), t.Fields); err != nil {
				return err
			}
		case *UnionType:
			if len(t.Members) == 0 {
				return fmt.Errorf("schema: union %q has no members", t.Name())
			}
			for _, member := range t.Members {
				if _, ok := s.types[member].(*ObjectType); !ok {
					return fmt.Errorf("schema: union %q references unknown object type %q", t.Name(), member)
				}
			}
		case *InputObjectType:
			for i := range t.Fields {
				if err := s.requireInputType(t.Name(), t.Fields[i].Type); err != nil {
					return err
				}
			}
		}
	}

	for _, directive := range s.directives {
		for i := range directive.Arguments {
			if err := s.requireInputType("@"+directive.Name, directive.Arguments[i].Type); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Schema) resolveFields(owner string, fields []FieldDefinition) error {
	for i := range fields {
		field := &fields[i]
		if _, ok := s.types[field.FieldType.NamedType()]; !ok {
			return fmt.Errorf("schema: field %s.%s references unknown type %q", owner, field.FieldName, field.FieldType.NamedType())
		}
		for j := range field.Arguments {
			if err := s.requireInputType(owner+"."+field.FieldName, field.Arguments[j].Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Schema) requireInputType(owner string, t ast.Type) error {
	named, ok := s.types[t.NamedType()]
	if !ok {
		return fmt.Errorf("schema: %s references unknown type %q", owner, t.NamedType())
	}
	switch named.Kind() {
	case KindScalar, KindEnum, KindInputObject:
		return nil
	default:
		return fmt.Errorf("schema: %s references %s type %q in input position", owner, named.Kind(), named.Name())
	}
}

func (s *Schema) requireObject(name string) error {
	if _, ok := s.types[name].(*ObjectType); !ok {
		return fmt.Errorf("schema: root type %q is not a registered object type", name)
	}
	return nil
}

func (s *Schema) QueryTypeName() string        { return s.queryTypeName }
func (s *Schema) MutationTypeName() string     { return s.mutationTypeName }
func (s *Schema) SubscriptionTypeName() string { return s.subscriptionTypeName }

// QueryType returns the mandatory query root type.
func (s *Schema) QueryType() *ObjectType {
	return s.types[s.queryTypeName].(*ObjectType)
}

// MutationType returns the mutation root type when the schema declares one.
func (s *Schema) MutationType() (*ObjectType, bool) {
	if s.mutationTypeName == "" {
		return nil, false
	}
	t, ok := s.types[s.mutationTypeName].(*ObjectType)
	return t, ok
}

// SubscriptionType returns the subscription root type when the schema
// declares one.
func (s *Schema) SubscriptionType() (*ObjectType, bool) {
	if s.subscriptionTypeName == "" {
		return nil, false
	}
	t, ok := s.types[s.subscriptionTypeName].(*ObjectType)
	return t, ok
}

func (s *Schema) TypeByName(name string) (MetaType, bool) {
	t, ok := s.types[name]
	return t, ok
}

func (s *Schema) DirectiveByName(name string) (*DirectiveDefinition, bool) {
	d, ok := s.directives[name]
	return d, ok
}

// LookupType strips all list/non-null wrapping off the type literal and
// resolves the innermost name.
func (s *Schema) LookupType(t ast.Type) (MetaType, bool) {
	return s.TypeByName(t.NamedType())
}

// FieldsByTypeName returns the field list of an object or interface type,
// used to feed field hints into the parser.
func (s *Schema) FieldsByTypeName(name string) []FieldDefinition {
	switch t := s.types[name].(type) {
	case *ObjectType:
		return t.Fields
	case *InterfaceType:
		return t.Fields
	default:
		return nil
	}
}

// TypeList returns all registered types ordered by kind bucket
// (enum, input object, interface, scalar, object, union) and name.
// Introspection output depends on this exact order.
func (s *Schema) TypeList() []MetaType {
	out := make([]MetaType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind() != out[j].Kind() {
			return out[i].Kind() < out[j].Kind()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// DirectiveList returns all registered directives ordered by name.
func (s *Schema) DirectiveList() []DirectiveDefinition {
	out := make([]DirectiveDefinition, 0, len(s.directives))
	for _, d := range s.directives {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
