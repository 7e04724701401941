package execution

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spectql/spectql/pkg/lexer/position"
	"github.com/spectql/spectql/pkg/operationreport"
)

// ExecutionError is one entry of the response errors array. Position stays
// 0-based here, the response boundary renders it 1-based.
type ExecutionError struct {
	Message  string
	Position position.Position
	Path     operationreport.Path
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("%s at %s, path: %s", e.Message, e.Position, e.Path)
}

// ExternalError renders the error in its response boundary form.
func (e ExecutionError) ExternalError() operationreport.ExternalError {
	return operationreport.ExternalError{
		Message:   e.Message,
		Locations: []operationreport.Location{operationreport.LocationFromPosition(e.Position)},
		Path:      e.Path,
	}
}

// errorSink is the single append-only error list shared by every branch of an
// execution, concurrent branches included.
type errorSink struct {
	mu     sync.Mutex
	errors []ExecutionError
}

func (s *errorSink) append(err ExecutionError) {
	s.mu.Lock()
	s.errors = append(s.errors, err)
	s.mu.Unlock()
}

// sorted returns the collected errors in deterministic order: position first,
// then path, then message. Concurrent resolution must not change what the
// client sees.
func (s *errorSink) sorted() []ExecutionError {
	s.mu.Lock()
	out := make([]ExecutionError, len(s.errors))
	copy(out, s.errors)
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		left, right := out[i], out[j]
		if left.Position.Line != right.Position.Line {
			return left.Position.Line < right.Position.Line
		}
		if left.Position.Char != right.Position.Char {
			return left.Position.Char < right.Position.Char
		}
		if left.Position.Index != right.Position.Index {
			return left.Position.Index < right.Position.Index
		}
		if c := left.Path.Compare(right.Path); c != 0 {
			return c < 0
		}
		return left.Message < right.Message
	})
	return out
}
