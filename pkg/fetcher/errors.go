package fetcher

import (
	"errors"
	"fmt"
)

// ErrUnknownResource is returned when a resource path is not one of the
// upstream resources this application knows how to call.
var ErrUnknownResource = errors.New("unknown upstream resource")

// TransportError means the call through the gateway could not complete
// (connection refused, DNS failure, context cancelled).
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport error"
	}
	return fmt.Sprintf("transport error calling %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UpstreamError means the gateway or the upstream answered with a non-2xx
// status, or with a body that is not the expected JSON.
type UpstreamError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "upstream error"
	}
	if e.Message == "" {
		return fmt.Sprintf("upstream %s: HTTP %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("upstream %s: HTTP %d: %s", e.Endpoint, e.Status, e.Message)
}
