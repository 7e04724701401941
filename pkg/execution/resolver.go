package execution

import (
	"context"
)

// Resolver resolves the fields of one concrete object type. TypeName reports
// the concrete schema type the resolver stands for, it feeds __typename and
// fragment type condition checks.
//
// ResolveField may return:
//
//	nil                   resolved to null
//	Value                 a leaf value
//	bool, string, int,
//	int64, float64        leaf convenience forms
//	Resolver              a nested object, completed against the sub selection
//	[]any                 a list, each item completed recursively
//	<-chan any            a stream, valid only on subscription root fields
//
// A returned error does not abort execution, the field resolves to null and
// the error joins the response errors array.
type Resolver interface {
	TypeName() string
	ResolveField(ctx context.Context, fieldName string, args Arguments) (any, error)
}

// AbstractResolver is implemented by resolvers standing for interface or
// union typed values. ResolveType narrows the value to the concrete type a
// fragment type condition names, returning false when the value is not of
// that type.
type AbstractResolver interface {
	Resolver
	ResolveType(typeName string) (Resolver, bool)
}
