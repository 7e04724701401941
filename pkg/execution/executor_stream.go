package execution

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/atomic"

	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/operationreport"
)

var ErrSubscriptionRootField = errors.New("subscription operations must select exactly one root field")

// ExecutionResult is one item of a subscription stream: the completed event
// plus the field errors of that event, already sorted.
type ExecutionResult struct {
	Data   Value
	Errors []ExecutionError
}

// Stream delivers the results of a subscription. The stream closes when the
// source channel closes or the context is canceled.
type Stream struct {
	results chan ExecutionResult
	closed  *atomic.Bool
}

func (s *Stream) Results() <-chan ExecutionResult {
	return s.results
}

// Closed reports whether the stream has stopped delivering results. It may
// return true before the results channel is drained.
func (s *Stream) Closed() bool {
	return s.closed.Load()
}

// ResolveStream starts a subscription operation. The root field must resolve
// to a receive-only channel, every event on it is completed through the same
// algorithm as a query result.
func (e *Executor) ResolveStream(ctx context.Context, document *ast.Document, operationName string, variables Variables, root Resolver) (*Stream, error) {
	operation, err := e.selectOperation(document, operationName)
	if err != nil {
		return nil, err
	}
	if operation.OperationType != ast.OperationTypeSubscription {
		return nil, ErrNotSubscription
	}

	r := e.newRun(document, variables)
	entries := r.collectFields(operation.SelectionSet, root, root.TypeName(), nil)
	if len(entries) != 1 {
		return nil, ErrSubscriptionRootField
	}

	entry := entries[0]
	resolved, err := entry.resolver.ResolveField(ctx, entry.field.Name, r.argumentValues(entry))
	if err != nil {
		return nil, err
	}
	source, ok := resolved.(<-chan any)
	if !ok {
		return nil, fmt.Errorf("subscription field %q must resolve to a stream, got %T", entry.field.Name, resolved)
	}

	stream := &Stream{
		results: make(chan ExecutionResult),
		closed:  atomic.NewBool(false),
	}

	go e.pumpStream(ctx, document, variables, entry, source, stream)
	return stream, nil
}

func (e *Executor) pumpStream(ctx context.Context, document *ast.Document, variables Variables, entry fieldEntry, source <-chan any, stream *Stream) {
	defer func() {
		stream.closed.Store(true)
		close(stream.results)
	}()

	key := entry.field.ResponseKey()
	fieldPath := &pathNode{segment: operationreport.FieldPathItem(key)}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-source:
			if !ok {
				return
			}

			// a fresh run per event keeps each result's errors isolated
			eventRun := e.newRun(document, variables)
			value := eventRun.completeValue(ctx, entry, event, fieldPath)
			data := ObjectValue()
			data.SetField(key, value)

			select {
			case stream.results <- ExecutionResult{Data: data, Errors: eventRun.sink.sorted()}:
			case <-ctx.Done():
				return
			}
		}
	}
}
