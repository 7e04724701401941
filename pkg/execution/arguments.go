package execution

import (
	"strconv"

	"github.com/spectql/spectql/pkg/ast"
)

// Arguments are the coerced argument values handed to a resolver, keyed by
// argument name. Declared arguments the query never provided are absent
// unless the schema declares a default for them.
type Arguments map[string]Value

func (a Arguments) Value(name string) (Value, bool) {
	v, ok := a[name]
	return v, ok
}

func (a Arguments) IsNull(name string) bool {
	v, ok := a[name]
	return ok && v.IsNull()
}

func (a Arguments) String(name string) (string, bool) {
	v, ok := a[name]
	if !ok || v.Kind != ValueKindString {
		return "", false
	}
	return v.Str, true
}

func (a Arguments) Int(name string) (int64, bool) {
	v, ok := a[name]
	if !ok || v.Kind != ValueKindInt {
		return 0, false
	}
	return v.Int, true
}

func (a Arguments) Float(name string) (float64, bool) {
	v, ok := a[name]
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case ValueKindFloat:
		return v.Float, true
	case ValueKindInt:
		return float64(v.Int), true
	default:
		return 0, false
	}
}

func (a Arguments) Boolean(name string) (bool, bool) {
	v, ok := a[name]
	if !ok || v.Kind != ValueKindBoolean {
		return false, false
	}
	return v.Bool, true
}

// Variables are the operation variable values, already decoded from the
// request JSON.
type Variables map[string]Value

// ValueFromAST turns a parsed input literal into an execution value,
// substituting variables. A referenced variable without a value resolves to
// null.
func ValueFromAST(v *ast.Value, variables Variables) Value {
	return valueFromAST(v, variables)
}

func valueFromAST(v *ast.Value, variables Variables) Value {
	switch v.Kind {
	case ast.ValueKindNull:
		return Null()
	case ast.ValueKindBoolean:
		return BooleanValue(v.BoolValue)
	case ast.ValueKindInteger:
		if parsed, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return IntValue(parsed)
		}
		parsed, _ := strconv.ParseFloat(v.Raw, 64)
		return FloatValue(parsed)
	case ast.ValueKindFloat:
		parsed, _ := strconv.ParseFloat(v.Raw, 64)
		return FloatValue(parsed)
	case ast.ValueKindString, ast.ValueKindEnum:
		return StringValue(v.Raw)
	case ast.ValueKindVariable:
		value, ok := variables[v.Raw]
		if !ok {
			return Null()
		}
		return value
	case ast.ValueKindList:
		items := make([]Value, len(v.ListItems))
		for i := range v.ListItems {
			items[i] = valueFromAST(&v.ListItems[i], variables)
		}
		return Value{Kind: ValueKindList, Items: items}
	case ast.ValueKindObject:
		out := ObjectValue()
		for i := range v.ObjectFields {
			out.SetField(v.ObjectFields[i].Name, valueFromAST(&v.ObjectFields[i].Value, variables))
		}
		return out
	default:
		return Null()
	}
}
