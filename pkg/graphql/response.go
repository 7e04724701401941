package graphql

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/spectql/spectql/pkg/execution"
	"github.com/spectql/spectql/pkg/graphqlerrors"
)

// Response is a complete GraphQL response body. A request that fails before
// execution carries errors only, the data member is then omitted entirely.
// Once execution started, data is always present, together with whatever
// field errors were collected along the way.
type Response struct {
	Data     execution.Value
	Errors   graphqlerrors.RequestErrors
	executed bool
}

// HasData reports whether execution produced a result. False means the
// request failed before execution started.
func (r *Response) HasData() bool {
	return r.executed
}

func (r *Response) Marshal() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')

	if len(r.Errors) > 0 {
		errorsBytes, err := json.Marshal(r.Errors)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`"errors":`)
		buf.Write(errorsBytes)
	}

	if r.executed {
		if len(r.Errors) > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"data":`)
		r.Data.WriteJSON(&buf)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Response) WriteResponse(writer io.Writer) (n int, err error) {
	responseBytes, err := r.Marshal()
	if err != nil {
		return 0, err
	}
	return writer.Write(responseBytes)
}
