package operationreport

import (
	"fmt"

	"github.com/spectql/spectql/pkg/lexer/position"
)

// Location is the response form of a source position, 1-based for both line
// and column. Everything before the response boundary is 0-based.
type Location struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// LocationFromPosition translates an internal 0-based position.
func LocationFromPosition(p position.Position) Location {
	return Location{
		Line:   uint32(p.Line) + 1,
		Column: uint32(p.Char) + 1,
	}
}

// LocationsFromSpan renders a span as the single location of its start.
func LocationsFromSpan(s position.Span) []Location {
	return []Location{LocationFromPosition(s.Start)}
}

type ExternalError struct {
	Message   string     `json:"message"`
	Path      Path       `json:"path"`
	Locations []Location `json:"locations"`
}

func ErrDocumentDoesntContainExecutableOperation() (err ExternalError) {
	err.Message = "document doesn't contain executable operation"
	return err
}

func ErrOperationWithProvidedOperationNameNotFound(operationName string) (err ExternalError) {
	err.Message = fmt.Sprintf("operation with name %q not found", operationName)
	return err
}

func ErrRequiredOperationNameIsMissing() (err ExternalError) {
	err.Message = "operation name is required when multiple operations are defined"
	return err
}

func ErrFragmentUndefined(fragmentName string, at position.Span) (err ExternalError) {
	err.Message = fmt.Sprintf("fragment %q undefined", fragmentName)
	err.Locations = LocationsFromSpan(at)
	return err
}

func ErrFieldUndefinedOnType(fieldName, typeName string, at position.Span) (err ExternalError) {
	err.Message = fmt.Sprintf("field %q undefined on type %q", fieldName, typeName)
	err.Locations = LocationsFromSpan(at)
	return err
}

func ErrVariableUndefined(variableName string, at position.Span) (err ExternalError) {
	err.Message = fmt.Sprintf("variable %q undefined", variableName)
	err.Locations = LocationsFromSpan(at)
	return err
}
