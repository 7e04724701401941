package schema

import (
	"fmt"

	"github.com/spectql/spectql/pkg/ast"
)

type WrappedTypeKind int

const (
	WrappedTypeConcrete WrappedTypeKind = iota
	WrappedTypeNonNull
	WrappedTypeList
)

// WrappedType mirrors a type literal's list/non-null nesting around a
// resolved concrete meta type, without mutating the registry.
type WrappedType struct {
	Kind     WrappedTypeKind
	OfType   *WrappedType // set for NonNull and List
	MetaType MetaType     // set for Concrete
}

func (t *WrappedType) String() string {
	switch t.Kind {
	case WrappedTypeNonNull:
		return t.OfType.String() + "!"
	case WrappedTypeList:
		return "[" + t.OfType.String() + "]"
	default:
		return t.MetaType.Name()
	}
}

// InnermostConcrete unwraps down to the concrete meta type.
func (t *WrappedType) InnermostConcrete() MetaType {
	for t.Kind != WrappedTypeConcrete {
		t = t.OfType
	}
	return t.MetaType
}

// IsNonNull reports whether the outermost wrapper rejects null.
func (t *WrappedType) IsNonNull() bool {
	return t.Kind == WrappedTypeNonNull
}

// ListItemType returns the item type when t is a list, looking through an
// outer non-null wrapper.
func (t *WrappedType) ListItemType() (*WrappedType, bool) {
	if t.Kind == WrappedTypeNonNull {
		t = t.OfType
	}
	if t.Kind == WrappedTypeList {
		return t.OfType, true
	}
	return nil, false
}

// MakeType wraps the resolved concrete type back into the literal's exact
// list/non-null nesting, the inverse of LookupType.
func (s *Schema) MakeType(t ast.Type) (*WrappedType, error) {
	var inner *WrappedType

	switch t.Kind {
	case ast.TypeKindNamed:
		concrete, ok := s.TypeByName(t.Name)
		if !ok {
			return nil, fmt.Errorf("schema: type %q not found", t.Name)
		}
		inner = &WrappedType{Kind: WrappedTypeConcrete, MetaType: concrete}
	case ast.TypeKindList:
		item, err := s.MakeType(*t.ItemType)
		if err != nil {
			return nil, err
		}
		inner = &WrappedType{Kind: WrappedTypeList, OfType: item}
	}

	if t.NonNull {
		return &WrappedType{Kind: WrappedTypeNonNull, OfType: inner}, nil
	}
	return inner, nil
}

// MakeWrappedTypeByName is MakeType for a bare named type.
func (s *Schema) MakeWrappedTypeByName(name string) (*WrappedType, error) {
	return s.MakeType(ast.Type{Kind: ast.TypeKindNamed, Name: name})
}

// PossibleTypes returns the concrete object types an abstract type can
// resolve into. For a union these are its declared members. For an interface
// it is every registered object type implementing it, found by a linear scan,
// the registry is small and this does not run per field.
func (s *Schema) PossibleTypes(t MetaType) []*ObjectType {
	switch t := t.(type) {
	case *ObjectType:
		return []*ObjectType{t}
	case *UnionType:
		out := make([]*ObjectType, 0, len(t.Members))
		for _, member := range t.Members {
			if object, ok := s.types[member].(*ObjectType); ok {
				out = append(out, object)
			}
		}
		return out
	case *InterfaceType:
		var out []*ObjectType
		for _, candidate := range s.TypeList() {
			if object, ok := candidate.(*ObjectType); ok && object.Implements(t.Name()) {
				out = append(out, object)
			}
		}
		return out
	default:
		return nil
	}
}

// IsPossibleType reports whether the concrete object type can occur where the
// abstract type is expected.
func (s *Schema) IsPossibleType(abstract MetaType, concrete *ObjectType) bool {
	for _, possible := range s.PossibleTypes(abstract) {
		if possible.Name() == concrete.Name() {
			return true
		}
	}
	return false
}

// TypeOverlap reports whether two types can both apply to at least one
// concrete object type. Used for fragment type condition checks.
func (s *Schema) TypeOverlap(left, right MetaType) bool {
	if left.Name() == right.Name() {
		return true
	}
	for _, l := range s.PossibleTypes(left) {
		for _, r := range s.PossibleTypes(right) {
			if l.Name() == r.Name() {
				return true
			}
		}
	}
	return false
}

// IsSubtype reports whether a value of type sub is acceptable where super is
// expected, following GraphQL's wrapper variance: non-null is a subtype of
// nullable and lists are covariant in their item type.
func (s *Schema) IsSubtype(sub, super ast.Type) bool {
	if sub.NonNull && !super.NonNull {
		stripped := sub
		stripped.NonNull = false
		return s.IsSubtype(stripped, super)
	}
	if sub.NonNull != super.NonNull {
		return false
	}

	switch {
	case sub.Kind == ast.TypeKindList && super.Kind == ast.TypeKindList:
		return s.IsSubtype(*sub.ItemType, *super.ItemType)
	case sub.Kind == ast.TypeKindNamed && super.Kind == ast.TypeKindNamed:
		return s.IsNamedSubtype(sub.Name, super.Name)
	default:
		return false
	}
}

// IsNamedSubtype reports whether the named type sub satisfies super, either
// by identity or because sub is a possible type of the abstract super.
func (s *Schema) IsNamedSubtype(sub, super string) bool {
	if sub == super {
		return true
	}
	subType, ok := s.types[sub].(*ObjectType)
	if !ok {
		return false
	}
	superType, ok := s.types[super]
	if !ok {
		return false
	}
	return s.IsPossibleType(superType, subType)
}
