package api

import "github.com/samcharles93/riff/internal/inspect"

// ResponseError is the body of every error response.
type ResponseError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Param     string `json:"param,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type errorEnvelope struct {
	Error ResponseError `json:"error"`
}

// InspectResponse is returned by POST /v1/inspect.
type InspectResponse struct {
	ID     string        `json:"id"`
	Object string        `json:"object"`
	Bytes  int           `json:"bytes"`
	Tree   *inspect.Node `json:"tree"`
}
