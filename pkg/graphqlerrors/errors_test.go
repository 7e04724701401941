package graphqlerrors

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectql/spectql/pkg/lexer"
	"github.com/spectql/spectql/pkg/lexer/position"
	"github.com/spectql/spectql/pkg/operationreport"
)

func TestRequestErrorsFromLexerError(t *testing.T) {
	lexErr := &lexer.Error{
		Kind:     lexer.InvalidNumber,
		Literal:  "00",
		Position: position.Position{Index: 15, Line: 0, Char: 15},
	}

	requestErrors := RequestErrorsFromError(lexErr)
	require.Equal(t, 1, requestErrors.Count())
	assert.Equal(t, []operationreport.Location{{Line: 1, Column: 16}}, requestErrors[0].Locations)
}

func TestRequestErrorsFromOperationReport(t *testing.T) {
	t.Run("external errors pass through", func(t *testing.T) {
		var report operationreport.Report
		report.AddExternalError(operationreport.ExternalError{
			Message:   "something user visible",
			Locations: []operationreport.Location{{Line: 3, Column: 7}},
		})

		requestErrors := RequestErrorsFromOperationReport(report)
		require.Len(t, requestErrors, 1)
		assert.Equal(t, "something user visible", requestErrors[0].Message)
	})

	t.Run("internal errors stay internal", func(t *testing.T) {
		var report operationreport.Report
		report.AddInternalError(errors.New("sensitive detail"))

		requestErrors := RequestErrorsFromOperationReport(report)
		require.Len(t, requestErrors, 1)
		assert.Equal(t, "Internal Error", requestErrors[0].Message)
	})

	t.Run("empty report yields nil", func(t *testing.T) {
		assert.Nil(t, RequestErrorsFromOperationReport(operationreport.Report{}))
	})
}

func TestRequestErrorMarshalJSON(t *testing.T) {
	withPath := RequestError{
		Message:   "boom",
		Locations: []operationreport.Location{{Line: 1, Column: 2}},
		Path:      operationreport.Path{operationreport.FieldPathItem("hero")},
	}
	out, err := json.Marshal(withPath)
	require.NoError(t, err)
	assert.Equal(t, `{"message":"boom","locations":[{"line":1,"column":2}],"path":["hero"]}`, string(out))

	withoutPath := RequestError{Message: "boom"}
	out, err = json.Marshal(withoutPath)
	require.NoError(t, err)
	assert.Equal(t, `{"message":"boom"}`, string(out))
}

func TestWriteResponse(t *testing.T) {
	requestErrors := RequestErrors{{Message: "boom"}}
	buf := bytes.Buffer{}
	_, err := requestErrors.WriteResponse(&buf)
	require.NoError(t, err)
	assert.Equal(t, `{"errors":[{"message":"boom"}]}`, buf.String())
}
