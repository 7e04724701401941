// Package ast holds the document tree produced by the parser.
//
// Every node carries the exact source span it was parsed from. Node payloads
// are slices of the original input string, the document therefore stays valid
// only as long as that string lives.
package ast

import (
	"github.com/spectql/spectql/pkg/lexer/position"
)

type OperationType int

const (
	OperationTypeQuery OperationType = iota
	OperationTypeMutation
	OperationTypeSubscription
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeQuery:
		return "query"
	case OperationTypeMutation:
		return "mutation"
	case OperationTypeSubscription:
		return "subscription"
	default:
		return "undefined"
	}
}

// Document is a parsed executable GraphQL document.
type Document struct {
	Definitions []Definition
}

// Definition is either an *OperationDefinition or a *FragmentDefinition.
type Definition interface {
	definitionNode()
}

// FragmentDefinitions collects the named fragments of the document,
// in definition order.
func (d *Document) FragmentDefinitions() []*FragmentDefinition {
	var out []*FragmentDefinition
	for _, definition := range d.Definitions {
		if fragment, ok := definition.(*FragmentDefinition); ok {
			out = append(out, fragment)
		}
	}
	return out
}

// OperationDefinitions collects the operations of the document,
// in definition order.
func (d *Document) OperationDefinitions() []*OperationDefinition {
	var out []*OperationDefinition
	for _, definition := range d.Definitions {
		if operation, ok := definition.(*OperationDefinition); ok {
			out = append(out, operation)
		}
	}
	return out
}

// OperationByName returns the operation to execute. An empty name selects the
// only operation of the document and fails when the document holds more than
// one.
func (d *Document) OperationByName(name string) (*OperationDefinition, bool) {
	operations := d.OperationDefinitions()
	if name == "" {
		if len(operations) != 1 {
			return nil, false
		}
		return operations[0], true
	}
	for _, operation := range operations {
		if operation.Name == name {
			return operation, true
		}
	}
	return nil, false
}

type OperationDefinition struct {
	OperationType       OperationType
	Name                string // empty for anonymous operations
	NameSpan            position.Span
	VariableDefinitions []VariableDefinition
	Directives          []Directive
	SelectionSet        SelectionSet
	Span                position.Span
}

func (*OperationDefinition) definitionNode() {}

type FragmentDefinition struct {
	Name              string
	NameSpan          position.Span
	TypeCondition     string
	TypeConditionSpan position.Span
	Directives        []Directive
	SelectionSet      SelectionSet
	Span              position.Span
}

func (*FragmentDefinition) definitionNode() {}

type VariableDefinition struct {
	Name         string
	NameSpan     position.Span
	Type         Type
	DefaultValue *Value
	Span         position.Span
}

// SelectionSet is the non-empty { ... } block of selections on a type.
type SelectionSet struct {
	Selections []Selection
	Span       position.Span
}

// Selection is a *Field, *FragmentSpread or *InlineFragment.
type Selection interface {
	selectionNode()
	Directives() []Directive
}

type Field struct {
	Alias         string // empty when the response key is the field name
	AliasSpan     position.Span
	Name          string
	NameSpan      position.Span
	Arguments     []Argument
	DirectiveList []Directive
	SelectionSet  *SelectionSet // nil for leaf fields
	Span          position.Span
}

func (*Field) selectionNode() {}

func (f *Field) Directives() []Directive {
	return f.DirectiveList
}

// ResponseKey is the key the field resolves into in the response object.
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

type FragmentSpread struct {
	Name          string
	NameSpan      position.Span
	DirectiveList []Directive
	Span          position.Span
}

func (*FragmentSpread) selectionNode() {}

func (s *FragmentSpread) Directives() []Directive {
	return s.DirectiveList
}

type InlineFragment struct {
	TypeCondition     string // empty for untyped inline fragments
	TypeConditionSpan position.Span
	DirectiveList     []Directive
	SelectionSet      SelectionSet
	Span              position.Span
}

func (*InlineFragment) selectionNode() {}

func (f *InlineFragment) Directives() []Directive {
	return f.DirectiveList
}

type Argument struct {
	Name     string
	NameSpan position.Span
	Value    Value
	Span     position.Span
}

type Directive struct {
	Name      string
	NameSpan  position.Span
	Arguments []Argument
	Span      position.Span
}

// ArgumentByName returns the directive argument with the given name.
func (d *Directive) ArgumentByName(name string) (*Argument, bool) {
	for i := range d.Arguments {
		if d.Arguments[i].Name == name {
			return &d.Arguments[i], true
		}
	}
	return nil, false
}
