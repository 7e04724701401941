package ast

import (
	"github.com/spectql/spectql/pkg/lexer/position"
)

type TypeKind int

const (
	TypeKindNamed TypeKind = iota
	TypeKindList
)

// Type is a type literal from the document: a name wrapped in any nesting of
// list and non-null markers.
type Type struct {
	Kind     TypeKind
	Name     string // set for TypeKindNamed
	ItemType *Type  // set for TypeKindList
	NonNull  bool
	Span     position.Span
}

// NamedType strips all list and non-null wrapping down to the innermost name.
func (t *Type) NamedType() string {
	for t.Kind == TypeKindList {
		t = t.ItemType
	}
	return t.Name
}

// String renders the type literal, round tripping the original syntax.
func (t Type) String() string {
	out := ""
	switch t.Kind {
	case TypeKindNamed:
		out = t.Name
	case TypeKindList:
		out = "[" + t.ItemType.String() + "]"
	}
	if t.NonNull {
		out += "!"
	}
	return out
}
