package graphql

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

var ErrEmptyRequest = errors.New("the provided request is empty")

// Request is one GraphQL request as sent over the wire.
type Request struct {
	OperationName string          `json:"operationName"`
	Variables     json.RawMessage `json:"variables"`
	Query         string          `json:"query"`
}

// UnmarshalRequest decodes a request body into the request.
func UnmarshalRequest(reader io.Reader, request *Request) error {
	requestBytes, err := io.ReadAll(reader)
	if err != nil {
		return errors.Wrap(err, "graphql: read request body")
	}

	if len(requestBytes) == 0 {
		return ErrEmptyRequest
	}

	return json.Unmarshal(requestBytes, request)
}
