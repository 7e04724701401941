// Package schema models the type system the parser and executor consult.
//
// The registry is built once at startup and is read only afterwards. All
// cross references between types are by name, construction fails when any
// referenced name stays unresolved.
package schema

import (
	"github.com/spectql/spectql/pkg/ast"
)

// Kind enumerates the GraphQL type kinds. The numeric order is the kind
// bucket order used to sort TypeList output and must not change.
type Kind int

const (
	KindEnum Kind = iota
	KindInputObject
	KindInterface
	KindScalar
	KindObject
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "ENUM"
	case KindInputObject:
		return "INPUT_OBJECT"
	case KindInterface:
		return "INTERFACE"
	case KindScalar:
		return "SCALAR"
	case KindObject:
		return "OBJECT"
	case KindUnion:
		return "UNION"
	default:
		return "UNDEFINED"
	}
}

// MetaType is a schema level type descriptor, one of the six concrete kinds.
type MetaType interface {
	Name() string
	Kind() Kind
	Description() string
}

type FieldDefinition struct {
	FieldName         string
	FieldType         ast.Type
	Arguments         []InputValueDefinition
	Describe          string
	DeprecationReason string
}

func (f *FieldDefinition) ArgumentByName(name string) (*InputValueDefinition, bool) {
	for i := range f.Arguments {
		if f.Arguments[i].Name == name {
			return &f.Arguments[i], true
		}
	}
	return nil, false
}

type InputValueDefinition struct {
	Name         string
	Type         ast.Type
	DefaultValue *ast.Value
	Describe     string
}

type ObjectType struct {
	TypeName   string
	Describe   string
	Fields     []FieldDefinition
	Interfaces []string
}

func (t *ObjectType) Name() string        { return t.TypeName }
func (t *ObjectType) Kind() Kind          { return KindObject }
func (t *ObjectType) Description() string { return t.Describe }

func (t *ObjectType) FieldByName(name string) (*FieldDefinition, bool) {
	for i := range t.Fields {
		if t.Fields[i].FieldName == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

func (t *ObjectType) Implements(interfaceName string) bool {
	for _, name := range t.Interfaces {
		if name == interfaceName {
			return true
		}
	}
	return false
}

type InterfaceType struct {
	TypeName string
	Describe string
	Fields   []FieldDefinition
}

func (t *InterfaceType) Name() string        { return t.TypeName }
func (t *InterfaceType) Kind() Kind          { return KindInterface }
func (t *InterfaceType) Description() string { return t.Describe }

func (t *InterfaceType) FieldByName(name string) (*FieldDefinition, bool) {
	for i := range t.Fields {
		if t.Fields[i].FieldName == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

type UnionType struct {
	TypeName string
	Describe string
	Members  []string
}

func (t *UnionType) Name() string        { return t.TypeName }
func (t *UnionType) Kind() Kind          { return KindUnion }
func (t *UnionType) Description() string { return t.Describe }

func (t *UnionType) HasMember(name string) bool {
	for _, member := range t.Members {
		if member == name {
			return true
		}
	}
	return false
}

type EnumValue struct {
	Name              string
	Describe          string
	DeprecationReason string
}

type EnumType struct {
	TypeName string
	Describe string
	Values   []EnumValue
}

func (t *EnumType) Name() string        { return t.TypeName }
func (t *EnumType) Kind() Kind          { return KindEnum }
func (t *EnumType) Description() string { return t.Describe }

func (t *EnumType) HasValue(name string) bool {
	for i := range t.Values {
		if t.Values[i].Name == name {
			return true
		}
	}
	return false
}

// ScalarTokenKind tells a scalar ParseLiteral func which token class the
// literal was lexed as.
type ScalarTokenKind int

const (
	ScalarTokenInt ScalarTokenKind = iota
	ScalarTokenFloat
	ScalarTokenString
	ScalarTokenBlockString
)

// ScalarToken is a scalar literal handed to a scalar type for coercion.
// Literal is the raw text for numbers and the decoded content for strings.
type ScalarToken struct {
	Kind    ScalarTokenKind
	Literal string
}

// ParseLiteralFunc coerces a lexed scalar literal into an input value.
type ParseLiteralFunc func(tok ScalarToken) (ast.Value, error)

type ScalarType struct {
	TypeName     string
	Describe     string
	ParseLiteral ParseLiteralFunc
}

func (t *ScalarType) Name() string        { return t.TypeName }
func (t *ScalarType) Kind() Kind          { return KindScalar }
func (t *ScalarType) Description() string { return t.Describe }

type InputObjectType struct {
	TypeName string
	Describe string
	Fields   []InputValueDefinition
}

func (t *InputObjectType) Name() string        { return t.TypeName }
func (t *InputObjectType) Kind() Kind          { return KindInputObject }
func (t *InputObjectType) Description() string { return t.Describe }

func (t *InputObjectType) FieldByName(name string) (*InputValueDefinition, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

type DirectiveLocation int

const (
	DirectiveLocationQuery DirectiveLocation = iota
	DirectiveLocationMutation
	DirectiveLocationSubscription
	DirectiveLocationField
	DirectiveLocationFragmentDefinition
	DirectiveLocationFragmentSpread
	DirectiveLocationInlineFragment
)

func (l DirectiveLocation) String() string {
	switch l {
	case DirectiveLocationQuery:
		return "QUERY"
	case DirectiveLocationMutation:
		return "MUTATION"
	case DirectiveLocationSubscription:
		return "SUBSCRIPTION"
	case DirectiveLocationField:
		return "FIELD"
	case DirectiveLocationFragmentDefinition:
		return "FRAGMENT_DEFINITION"
	case DirectiveLocationFragmentSpread:
		return "FRAGMENT_SPREAD"
	case DirectiveLocationInlineFragment:
		return "INLINE_FRAGMENT"
	default:
		return "UNDEFINED"
	}
}

type DirectiveDefinition struct {
	Name      string
	Describe  string
	Arguments []InputValueDefinition
	Locations []DirectiveLocation
}

func (d *DirectiveDefinition) ArgumentByName(name string) (*InputValueDefinition, bool) {
	for i := range d.Arguments {
		if d.Arguments[i].Name == name {
			return &d.Arguments[i], true
		}
	}
	return nil, false
}
