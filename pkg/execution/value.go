package execution

import (
	"bytes"
	"strconv"

	"github.com/spectql/spectql/pkg/lexer/literal"
)

type ValueKind int

const (
	ValueKindNull ValueKind = iota
	ValueKindBoolean
	ValueKindInt
	ValueKindFloat
	ValueKindString
	ValueKindList
	ValueKindObject
)

// Value is one node of the response data tree. Object fields keep insertion
// order, the response must list fields in the order the query selected them.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Int    int64
	Float  float64
	Str    string
	Items  []Value
	Fields []ObjectField
}

type ObjectField struct {
	Name  string
	Value Value
}

func Null() Value {
	return Value{Kind: ValueKindNull}
}

func BooleanValue(b bool) Value {
	return Value{Kind: ValueKindBoolean, Bool: b}
}

func IntValue(i int64) Value {
	return Value{Kind: ValueKindInt, Int: i}
}

func FloatValue(f float64) Value {
	return Value{Kind: ValueKindFloat, Float: f}
}

func StringValue(s string) Value {
	return Value{Kind: ValueKindString, Str: s}
}

func ListValue(items ...Value) Value {
	return Value{Kind: ValueKindList, Items: items}
}

func ObjectValue() Value {
	return Value{Kind: ValueKindObject}
}

func (v *Value) IsNull() bool {
	return v.Kind == ValueKindNull
}

// FieldByName returns the object field stored under name.
func (v *Value) FieldByName(name string) (*Value, bool) {
	for i := range v.Fields {
		if v.Fields[i].Name == name {
			return &v.Fields[i].Value, true
		}
	}
	return nil, false
}

// SetField stores value under name, keeping first-written position when the
// name exists. Two object values under the same name merge field by field,
// anything else overwrites.
func (v *Value) SetField(name string, value Value) {
	for i := range v.Fields {
		if v.Fields[i].Name != name {
			continue
		}
		if v.Fields[i].Value.Kind == ValueKindObject && value.Kind == ValueKindObject {
			v.Fields[i].Value.mergeObject(value)
			return
		}
		v.Fields[i].Value = value
		return
	}
	v.Fields = append(v.Fields, ObjectField{Name: name, Value: value})
}

func (v *Value) mergeObject(other Value) {
	for _, field := range other.Fields {
		v.SetField(field.Name, field.Value)
	}
}

// WriteJSON renders the value into buf. Objects render their fields in
// insertion order, which a generic map based marshaller cannot guarantee.
func (v Value) WriteJSON(buf *bytes.Buffer) {
	switch v.Kind {
	case ValueKindNull:
		buf.Write(literal.NULL)
	case ValueKindBoolean:
		if v.Bool {
			buf.Write(literal.TRUE)
		} else {
			buf.Write(literal.FALSE)
		}
	case ValueKindInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case ValueKindFloat:
		writeJSONFloat(buf, v.Float)
	case ValueKindString:
		writeJSONString(buf, v.Str)
	case ValueKindList:
		buf.Write(literal.LBRACK)
		for i := range v.Items {
			if i != 0 {
				buf.Write(literal.COMMA)
			}
			v.Items[i].WriteJSON(buf)
		}
		buf.Write(literal.RBRACK)
	case ValueKindObject:
		buf.Write(literal.LBRACE)
		for i := range v.Fields {
			if i != 0 {
				buf.Write(literal.COMMA)
			}
			writeJSONString(buf, v.Fields[i].Name)
			buf.Write(literal.COLON)
			v.Fields[i].Value.WriteJSON(buf)
		}
		buf.Write(literal.RBRACE)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	v.WriteJSON(&buf)
	return buf.Bytes(), nil
}

func writeJSONFloat(buf *bytes.Buffer, f float64) {
	out := strconv.FormatFloat(f, 'g', -1, 64)
	buf.WriteString(out)
	// a float must stay a float through a JSON round trip
	if !bytes.ContainsAny([]byte(out), ".eE") {
		buf.WriteString(".0")
	}
}

const hexDigits = "0123456789abcdef"

func writeJSONString(buf *bytes.Buffer, s string) {
	buf.Write(literal.QUOTE)
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '"':
			buf.WriteString(`\"`)
		case b == '\\':
			buf.WriteString(`\\`)
		case b == '\n':
			buf.WriteString(`\n`)
		case b == '\r':
			buf.WriteString(`\r`)
		case b == '\t':
			buf.WriteString(`\t`)
		case b == '\b':
			buf.WriteString(`\b`)
		case b == '\f':
			buf.WriteString(`\f`)
		case b < 0x20:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[b>>4])
			buf.WriteByte(hexDigits[b&0xf])
		default:
			buf.WriteByte(b)
		}
	}
	buf.Write(literal.QUOTE)
}
