package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("backend unreachable")

// ErrMalformedResponse marks a 2xx response whose body could not be decoded.
var ErrMalformedResponse = errors.New("malformed backend response")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Endpoint string
	Status   int
	// Detail is the server-reported message, empty when the body had none.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
}

// NoFileProvided reports the failure a server emits when it could not decode
// the document out of the request body. The match is case-sensitive.
func (e *APIError) NoFileProvided() bool {
	return strings.Contains(e.Detail, "file") && strings.Contains(e.Detail, "provided")
}

// DetailOr returns the server detail for err, or fallback when err carries none.
func DetailOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// parseDetail extracts {"detail": "..."} from an error body. Non-string
// details (validation arrays) are ignored.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil || strings.TrimSpace(detail) == "" {
		return ""
	}
	return detail
}
