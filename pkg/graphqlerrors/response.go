package graphqlerrors

import (
	"encoding/json"
)

// Response is the GraphQL response envelope for requests that fail before
// execution. Data is omitted entirely in that case, request errors carry no
// data member.
type Response struct {
	Errors Errors `json:"errors,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func (r Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
