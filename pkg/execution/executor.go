// Package execution resolves parsed operations against user supplied
// resolvers and produces the response data tree.
//
// Execution assumes a validated document: an unknown fragment name or a field
// the schema does not define on its parent type is a programming error and
// panics. Resolver errors are data errors, they null the field, join the
// errors array and never abort the rest of the execution.
package execution

import (
	"context"
	"errors"
	"fmt"

	"github.com/jensneuse/abstractlogger"

	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/lexer/literal"
	"github.com/spectql/spectql/pkg/operationreport"
	"github.com/spectql/spectql/pkg/schema"
)

var (
	typeNameMetaField = string(literal.TYPENAME)
	skipDirective     = string(literal.SKIP)
	includeDirective  = string(literal.INCLUDE)
	ifArgument        = string(literal.IF)
)

var (
	ErrOperationNotFound     = errors.New("operation with provided name not found")
	ErrOperationNameRequired = errors.New("operation name is required when the document defines multiple operations")
	ErrSubscriptionOperation = errors.New("subscription operations must be executed via ResolveStream")
	ErrNotSubscription       = errors.New("ResolveStream requires a subscription operation")
)

type Executor struct {
	definitions *schema.Schema
	log         abstractlogger.Logger
	concurrent  bool
}

type Option func(*Executor)

// WithLogger attaches a logger, the default swallows everything.
func WithLogger(log abstractlogger.Logger) Option {
	return func(e *Executor) {
		e.log = log
	}
}

// WithConcurrentFieldResolution resolves sibling fields concurrently. Results
// and errors stay in deterministic order regardless.
func WithConcurrentFieldResolution() Option {
	return func(e *Executor) {
		e.concurrent = true
	}
}

func NewExecutor(definitions *schema.Schema, options ...Option) *Executor {
	e := &Executor{
		definitions: definitions,
		log:         abstractlogger.NoopLogger,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Execute runs a query or mutation operation and returns the data tree plus
// the collected field errors in deterministic order.
func (e *Executor) Execute(ctx context.Context, document *ast.Document, operationName string, variables Variables, root Resolver) (Value, []ExecutionError, error) {
	operation, err := e.selectOperation(document, operationName)
	if err != nil {
		return Null(), nil, err
	}
	if operation.OperationType == ast.OperationTypeSubscription {
		return Null(), nil, ErrSubscriptionOperation
	}

	e.log.Debug("execution.Executor.Execute",
		abstractlogger.String("operation", operationName),
	)

	r := e.newRun(document, variables)
	data := r.executeSelectionSet(ctx, operation.SelectionSet, root, root.TypeName(), nil)
	return data, r.sink.sorted(), nil
}

func (e *Executor) selectOperation(document *ast.Document, operationName string) (*ast.OperationDefinition, error) {
	operation, ok := document.OperationByName(operationName)
	if ok {
		return operation, nil
	}
	if operationName == "" {
		return nil, ErrOperationNameRequired
	}
	return nil, ErrOperationNotFound
}

func (e *Executor) newRun(document *ast.Document, variables Variables) *run {
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, fragment := range document.FragmentDefinitions() {
		fragments[fragment.Name] = fragment
	}
	return &run{
		executor:  e,
		variables: variables,
		fragments: fragments,
		sink:      &errorSink{},
	}
}

// run is the per-execution state shared by all branches.
type run struct {
	executor  *Executor
	variables Variables
	fragments map[string]*ast.FragmentDefinition
	sink      *errorSink
}

// pathNode is one backward link of the field path. Paths are only
// materialized when an error actually needs one.
type pathNode struct {
	parent  *pathNode
	segment operationreport.PathItem
}

func (n *pathNode) toPath() operationreport.Path {
	length := 0
	for node := n; node != nil; node = node.parent {
		length++
	}
	out := make(operationreport.Path, length)
	for node := n; node != nil; node = node.parent {
		length--
		out[length] = node.segment
	}
	return out
}

// fieldEntry is one field to resolve after fragment flattening: the field
// itself plus the resolver and concrete type it was narrowed onto.
type fieldEntry struct {
	field    *ast.Field
	resolver Resolver
	typeName string
}

func (r *run) executeSelectionSet(ctx context.Context, set ast.SelectionSet, resolver Resolver, typeName string, path *pathNode) Value {
	entries := r.collectFields(set, resolver, typeName, nil)
	result := ObjectValue()

	if r.executor.concurrent && len(entries) > 1 {
		for _, resolved := range r.resolveEntriesConcurrently(ctx, entries, path) {
			result.SetField(resolved.key, resolved.value)
		}
		return result
	}

	for _, entry := range entries {
		key, value := r.executeField(ctx, entry, path)
		result.SetField(key, value)
	}
	return result
}

// collectFields flattens the selection set into the fields to resolve, in
// source order. Fragments contribute their fields at the point they are
// spread.
func (r *run) collectFields(set ast.SelectionSet, resolver Resolver, typeName string, out []fieldEntry) []fieldEntry {
	for _, selection := range set.Selections {
		if !r.includeSelection(selection) {
			continue
		}
		switch s := selection.(type) {
		case *ast.Field:
			out = append(out, fieldEntry{field: s, resolver: resolver, typeName: typeName})
		case *ast.FragmentSpread:
			fragment, ok := r.fragments[s.Name]
			if !ok {
				panic(fmt.Sprintf("execution: fragment %q not defined, document not validated", s.Name))
			}
			if narrowed, narrowedType, matches := r.narrow(resolver, typeName, fragment.TypeCondition); matches {
				out = r.collectFields(fragment.SelectionSet, narrowed, narrowedType, out)
			}
		case *ast.InlineFragment:
			if s.TypeCondition == "" {
				out = r.collectFields(s.SelectionSet, resolver, typeName, out)
				continue
			}
			if narrowed, narrowedType, matches := r.narrow(resolver, typeName, s.TypeCondition); matches {
				out = r.collectFields(s.SelectionSet, narrowed, narrowedType, out)
			}
		}
	}
	return out
}

// narrow checks a fragment type condition against the current value. An
// abstract resolver decides itself which type names it can narrow to, a
// concrete one matches through the schema's subtype rules.
func (r *run) narrow(resolver Resolver, typeName, condition string) (Resolver, string, bool) {
	if abstract, ok := resolver.(AbstractResolver); ok {
		narrowed, ok := abstract.ResolveType(condition)
		if !ok {
			return nil, "", false
		}
		return narrowed, narrowed.TypeName(), true
	}
	if r.executor.definitions.IsNamedSubtype(typeName, condition) {
		return resolver, typeName, true
	}
	return nil, "", false
}

// includeSelection applies @skip and @include. The first of the two present
// on the selection decides alone, later ones are not consulted.
func (r *run) includeSelection(selection ast.Selection) bool {
	directives := selection.Directives()
	for i := range directives {
		directive := &directives[i]
		switch directive.Name {
		case skipDirective:
			return !r.directiveIf(directive)
		case includeDirective:
			return r.directiveIf(directive)
		}
	}
	return true
}

func (r *run) directiveIf(directive *ast.Directive) bool {
	argument, ok := directive.ArgumentByName(ifArgument)
	if !ok {
		return false
	}
	value := valueFromAST(&argument.Value, r.variables)
	return value.Kind == ValueKindBoolean && value.Bool
}

func (r *run) executeField(ctx context.Context, entry fieldEntry, path *pathNode) (key string, out Value) {
	key = entry.field.ResponseKey()
	fieldPath := &pathNode{parent: path, segment: operationreport.FieldPathItem(key)}

	if entry.field.Name == typeNameMetaField {
		return key, StringValue(entry.resolver.TypeName())
	}

	resolved, err := entry.resolver.ResolveField(ctx, entry.field.Name, r.argumentValues(entry))
	if err != nil {
		r.appendError(err.Error(), entry, fieldPath)
		return key, Null()
	}

	return key, r.completeValue(ctx, entry, resolved, fieldPath)
}

func (r *run) appendError(message string, entry fieldEntry, path *pathNode) {
	r.sink.append(ExecutionError{
		Message:  message,
		Position: entry.field.NameSpan.Start,
		Path:     path.toPath(),
	})
}

// argumentValues coerces the field's arguments: explicit values with
// variables substituted, then schema defaults for every argument that is
// absent or null. A default beats an explicit null.
func (r *run) argumentValues(entry fieldEntry) Arguments {
	args := Arguments{}
	for i := range entry.field.Arguments {
		argument := &entry.field.Arguments[i]
		args[argument.Name] = valueFromAST(&argument.Value, r.variables)
	}

	definition := r.fieldDefinition(entry)
	for i := range definition.Arguments {
		input := &definition.Arguments[i]
		if input.DefaultValue == nil {
			continue
		}
		if existing, ok := args[input.Name]; !ok || existing.IsNull() {
			args[input.Name] = valueFromAST(input.DefaultValue, nil)
		}
	}
	return args
}

func (r *run) fieldDefinition(entry fieldEntry) *schema.FieldDefinition {
	typeName := entry.resolver.TypeName()
	fields := r.executor.definitions.FieldsByTypeName(typeName)
	for i := range fields {
		if fields[i].FieldName == entry.field.Name {
			return &fields[i]
		}
	}
	panic(fmt.Sprintf("execution: field %q not defined on type %q, document not validated", entry.field.Name, typeName))
}

func (r *run) completeValue(ctx context.Context, entry fieldEntry, resolved any, path *pathNode) Value {
	switch v := resolved.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return BooleanValue(v)
	case string:
		return StringValue(v)
	case int:
		return IntValue(int64(v))
	case int64:
		return IntValue(v)
	case float64:
		return FloatValue(v)
	case Resolver:
		if entry.field.SelectionSet == nil {
			r.appendError(fmt.Sprintf("field %q of type %q must have a sub selection", entry.field.Name, v.TypeName()), entry, path)
			return Null()
		}
		return r.executeSelectionSet(ctx, *entry.field.SelectionSet, v, v.TypeName(), path)
	case []any:
		items := make([]Value, len(v))
		for i := range v {
			items[i] = r.completeValue(ctx, entry, v[i], &pathNode{parent: path, segment: operationreport.IndexPathItem(i)})
		}
		return Value{Kind: ValueKindList, Items: items}
	case []Resolver:
		items := make([]Value, len(v))
		for i := range v {
			items[i] = r.completeValue(ctx, entry, v[i], &pathNode{parent: path, segment: operationreport.IndexPathItem(i)})
		}
		return Value{Kind: ValueKindList, Items: items}
	case <-chan any:
		r.appendError(fmt.Sprintf("field %q resolved to a stream outside a subscription", entry.field.Name), entry, path)
		return Null()
	default:
		r.appendError(fmt.Sprintf("field %q resolved to unsupported type %T", entry.field.Name, resolved), entry, path)
		return Null()
	}
}
