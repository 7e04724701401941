// Package graphqlerrors renders errors into the GraphQL response envelope.
// The 0-based to 1-based location translation happens at this boundary and
// nowhere else.
package graphqlerrors

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spectql/spectql/pkg/lexer"
	"github.com/spectql/spectql/pkg/operationreport"
)

type Errors interface {
	error
	WriteResponse(writer io.Writer) (n int, err error)
	Count() int
	ErrorByIndex(i int) error
}

type RequestErrors []RequestError

func RequestErrorsFromError(err error) RequestErrors {
	if errors, ok := err.(RequestErrors); ok {
		return errors
	}
	if lexErr, ok := err.(*lexer.Error); ok {
		return RequestErrors{
			{
				Message:   lexErr.Error(),
				Locations: []operationreport.Location{operationreport.LocationFromPosition(lexErr.Position)},
			},
		}
	}
	if report, ok := err.(operationreport.Report); ok {
		return RequestErrorsFromOperationReport(report)
	}
	return RequestErrors{
		{
			Message: err.Error(),
		},
	}
}

func RequestErrorsFromOperationReport(report operationreport.Report) (errors RequestErrors) {
	if len(report.ExternalErrors) == 0 {
		if len(report.InternalErrors) > 0 {
			return RequestErrors{
				{
					Message: "Internal Error",
				},
			}
		}
		return nil
	}

	for _, externalError := range report.ExternalErrors {
		errors = append(errors, RequestError{
			Message:   externalError.Message,
			Locations: externalError.Locations,
			Path:      externalError.Path,
		})
	}

	return errors
}

func (o RequestErrors) Error() string {
	if len(o) > 0 {
		return o.ErrorByIndex(0).Error()
	}
	return "no error"
}

// WriteResponse writes the errors as a full response body. It should only be
// used for errors that happen before execution, e.g. parse errors.
func (o RequestErrors) WriteResponse(writer io.Writer) (n int, err error) {
	response := Response{
		Errors: o,
	}

	responseBytes, err := response.Marshal()
	if err != nil {
		return 0, err
	}

	return writer.Write(responseBytes)
}

func (o RequestErrors) Count() int {
	return len(o)
}

func (o RequestErrors) ErrorByIndex(i int) error {
	if i >= o.Count() {
		return nil
	}

	return o[i]
}

type RequestError struct {
	Message   string                     `json:"message"`
	Locations []operationreport.Location `json:"locations,omitempty"`
	Path      operationreport.Path       `json:"path"`
}

func (o RequestError) MarshalJSON() ([]byte, error) {
	if len(o.Path) == 0 {
		return json.Marshal(struct {
			Message   string                     `json:"message"`
			Locations []operationreport.Location `json:"locations,omitempty"`
		}{
			Message:   o.Message,
			Locations: o.Locations,
		})
	}
	path, err := o.Path.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Message   string                     `json:"message"`
		Locations []operationreport.Location `json:"locations,omitempty"`
		Path      json.RawMessage            `json:"path"`
	}{
		Message:   o.Message,
		Locations: o.Locations,
		Path:      path,
	})
}

func (o RequestError) Error() string {
	return fmt.Sprintf("%s, locations: %+v, path: %s", o.Message, o.Locations, o.Path.String())
}
