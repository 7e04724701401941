package ast

import (
	"strconv"
	"strings"

	"github.com/spectql/spectql/pkg/lexer/position"
)

type ValueKind int

const (
	ValueKindUnknown ValueKind = iota
	ValueKindNull
	ValueKindInteger
	ValueKindFloat
	ValueKindString
	ValueKindBoolean
	ValueKindEnum
	ValueKindVariable
	ValueKindList
	ValueKindObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindNull:
		return "null"
	case ValueKindInteger:
		return "int"
	case ValueKindFloat:
		return "float"
	case ValueKindString:
		return "string"
	case ValueKindBoolean:
		return "boolean"
	case ValueKindEnum:
		return "enum"
	case ValueKindVariable:
		return "variable"
	case ValueKindList:
		return "list"
	case ValueKindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a parsed input literal. Raw holds the literal text for
// int/float/enum, the variable name for variables and the decoded content for
// strings. Object fields keep declaration order, duplicate keys are kept as
// parsed, uniqueness is a validation concern.
type Value struct {
	Kind         ValueKind
	Raw          string
	BoolValue    bool
	ListItems    []Value
	ObjectFields []ObjectField
	Span         position.Span
}

type ObjectField struct {
	Name     string
	NameSpan position.Span
	Value    Value
	Span     position.Span
}

// FieldByName returns the first object field with the given name.
func (v *Value) FieldByName(name string) (*ObjectField, bool) {
	for i := range v.ObjectFields {
		if v.ObjectFields[i].Name == name {
			return &v.ObjectFields[i], true
		}
	}
	return nil, false
}

func (v *Value) IsNull() bool {
	return v.Kind == ValueKindNull
}

func (v *Value) IntValue() (int64, bool) {
	if v.Kind != ValueKindInteger {
		return 0, false
	}
	out, err := strconv.ParseInt(v.Raw, 10, 64)
	return out, err == nil
}

func (v *Value) FloatValue() (float64, bool) {
	if v.Kind != ValueKindInteger && v.Kind != ValueKindFloat {
		return 0, false
	}
	out, err := strconv.ParseFloat(v.Raw, 64)
	return out, err == nil
}

// String renders the value back into GraphQL literal syntax.
func (v Value) String() string {
	switch v.Kind {
	case ValueKindNull:
		return "null"
	case ValueKindBoolean:
		if v.BoolValue {
			return "true"
		}
		return "false"
	case ValueKindString:
		return strconv.Quote(v.Raw)
	case ValueKindVariable:
		return "$" + v.Raw
	case ValueKindList:
		items := make([]string, len(v.ListItems))
		for i := range v.ListItems {
			items[i] = v.ListItems[i].String()
		}
		return "[" + strings.Join(items, ",") + "]"
	case ValueKindObject:
		fields := make([]string, len(v.ObjectFields))
		for i := range v.ObjectFields {
			fields[i] = v.ObjectFields[i].Name + ":" + v.ObjectFields[i].Value.String()
		}
		return "{" + strings.Join(fields, ",") + "}"
	default:
		return v.Raw
	}
}
