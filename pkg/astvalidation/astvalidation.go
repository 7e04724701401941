// Package astvalidation checks the preconditions the executor relies on.
//
// This is deliberately not a full rule set. The executor panics on unknown
// fragments and fields, so those must be ruled out before execution, together
// with references to undefined variables. The validator is interface shaped
// so a complete implementation can replace it without touching callers.
package astvalidation

import (
	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/operationreport"
	"github.com/spectql/spectql/pkg/schema"
)

// Validator validates an executable document against a schema.
type Validator interface {
	Validate(document *ast.Document, definitions *schema.Schema, report *operationreport.Report)
}

// OperationValidator runs the execution precondition rules: fragment spreads
// resolve, selected fields exist on their parent type and every used
// variable is defined.
type OperationValidator struct{}

func DefaultOperationValidator() *OperationValidator {
	return &OperationValidator{}
}

func (v *OperationValidator) Validate(document *ast.Document, definitions *schema.Schema, report *operationreport.Report) {
	walk := &walker{
		definitions: definitions,
		report:      report,
		fragments:   map[string]*ast.FragmentDefinition{},
	}
	for _, fragment := range document.FragmentDefinitions() {
		walk.fragments[fragment.Name] = fragment
	}

	for _, operation := range document.OperationDefinitions() {
		walk.variables = map[string]struct{}{}
		for _, definition := range operation.VariableDefinitions {
			walk.variables[definition.Name] = struct{}{}
		}
		walk.visited = map[string]struct{}{}
		walk.walkSelectionSet(operation.SelectionSet, rootTypeName(definitions, operation.OperationType))
	}
}

func rootTypeName(definitions *schema.Schema, operationType ast.OperationType) string {
	switch operationType {
	case ast.OperationTypeMutation:
		return definitions.MutationTypeName()
	case ast.OperationTypeSubscription:
		return definitions.SubscriptionTypeName()
	default:
		return definitions.QueryTypeName()
	}
}

type walker struct {
	definitions *schema.Schema
	report      *operationreport.Report
	fragments   map[string]*ast.FragmentDefinition
	variables   map[string]struct{}
	visited     map[string]struct{}
}

func (w *walker) walkSelectionSet(set ast.SelectionSet, typeName string) {
	for _, selection := range set.Selections {
		w.walkDirectives(selection.Directives())
		switch s := selection.(type) {
		case *ast.Field:
			w.walkField(s, typeName)
		case *ast.FragmentSpread:
			fragment, ok := w.fragments[s.Name]
			if !ok {
				w.report.AddExternalError(operationreport.ErrFragmentUndefined(s.Name, s.NameSpan))
				continue
			}
			if _, seen := w.visited[s.Name]; seen {
				continue
			}
			w.visited[s.Name] = struct{}{}
			w.walkSelectionSet(fragment.SelectionSet, fragment.TypeCondition)
		case *ast.InlineFragment:
			condition := s.TypeCondition
			if condition == "" {
				condition = typeName
			}
			w.walkSelectionSet(s.SelectionSet, condition)
		}
	}
}

func (w *walker) walkField(field *ast.Field, typeName string) {
	w.walkArguments(field.Arguments)

	if field.Name == "__typename" {
		return
	}

	definition, ok := w.fieldDefinition(typeName, field.Name)
	if !ok {
		w.report.AddExternalError(operationreport.ErrFieldUndefinedOnType(field.Name, typeName, field.NameSpan))
		return
	}

	if field.SelectionSet != nil {
		w.walkSelectionSet(*field.SelectionSet, definition.FieldType.NamedType())
	}
}

func (w *walker) fieldDefinition(typeName, fieldName string) (*schema.FieldDefinition, bool) {
	fields := w.definitions.FieldsByTypeName(typeName)
	for i := range fields {
		if fields[i].FieldName == fieldName {
			return &fields[i], true
		}
	}
	return nil, false
}

func (w *walker) walkDirectives(directives []ast.Directive) {
	for i := range directives {
		w.walkArguments(directives[i].Arguments)
	}
}

func (w *walker) walkArguments(arguments []ast.Argument) {
	for i := range arguments {
		w.walkValue(&arguments[i].Value)
	}
}

func (w *walker) walkValue(value *ast.Value) {
	switch value.Kind {
	case ast.ValueKindVariable:
		if _, defined := w.variables[value.Raw]; !defined {
			w.report.AddExternalError(operationreport.ErrVariableUndefined(value.Raw, value.Span))
		}
	case ast.ValueKindList:
		for i := range value.ListItems {
			w.walkValue(&value.ListItems[i])
		}
	case ast.ValueKindObject:
		for i := range value.ObjectFields {
			w.walkValue(&value.ObjectFields[i].Value)
		}
	}
}
