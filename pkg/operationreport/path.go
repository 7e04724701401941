package operationreport

import (
	"bytes"
	"strconv"
)

type PathItemKind int

const (
	ArrayIndex PathItemKind = iota
	FieldName
)

// PathItem is one segment of a response path, either a field response key or
// a list index.
type PathItem struct {
	Kind       PathItemKind
	ArrayIndex int
	FieldName  string
}

func FieldPathItem(name string) PathItem {
	return PathItem{Kind: FieldName, FieldName: name}
}

func IndexPathItem(i int) PathItem {
	return PathItem{Kind: ArrayIndex, ArrayIndex: i}
}

type Path []PathItem

func (p Path) String() string {
	out := ""
	for i := range p {
		if i != 0 {
			out += "."
		}
		switch p[i].Kind {
		case ArrayIndex:
			out += strconv.Itoa(p[i].ArrayIndex)
		case FieldName:
			out += p[i].FieldName
		}
	}
	return out
}

func (p Path) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('[')
	for i := range p {
		if i != 0 {
			buf.WriteByte(',')
		}
		switch p[i].Kind {
		case ArrayIndex:
			buf.WriteString(strconv.Itoa(p[i].ArrayIndex))
		case FieldName:
			buf.WriteString(strconv.Quote(p[i].FieldName))
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Compare orders paths segment by segment. A shorter path that is a prefix of
// a longer one sorts first. At equal positions an index sorts before a field
// name, two indexes compare numerically and two names lexicographically.
func (p Path) Compare(other Path) int {
	for i := 0; i < len(p) && i < len(other); i++ {
		if c := p[i].compare(other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	default:
		return 0
	}
}

func (item PathItem) compare(other PathItem) int {
	if item.Kind != other.Kind {
		if item.Kind == ArrayIndex {
			return -1
		}
		return 1
	}
	if item.Kind == ArrayIndex {
		switch {
		case item.ArrayIndex < other.ArrayIndex:
			return -1
		case item.ArrayIndex > other.ArrayIndex:
			return 1
		default:
			return 0
		}
	}
	switch {
	case item.FieldName < other.FieldName:
		return -1
	case item.FieldName > other.FieldName:
		return 1
	default:
		return 0
	}
}
