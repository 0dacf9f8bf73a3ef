package interfaces

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means the platform answered 2xx but the body did not
// carry the field the caller needed, typically the created object's id.
var ErrMalformedResponse = errors.New("malformed graph api response")

// GraphError is a non-2xx answer from the Graph API. When the body carried
// the standard error envelope, Message, Type, Code and Subcode are filled in;
// otherwise only HTTPStatus and the raw Body are available.
type GraphError struct {
	Message    string
	Type       string
	Code       int
	Subcode    int
	TraceID    string
	HTTPStatus int
	Body       string
}

func (e *GraphError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("graph api error: %s (code=%d, subcode=%d, type=%s)", e.Message, e.Code, e.Subcode, e.Type)
	}
	return fmt.Sprintf("graph api error: status=%d body=%s", e.HTTPStatus, e.Body)
}

// Platform reports whether the platform itself rejected the call, as opposed
// to a reply that never parsed as a Graph error envelope.
func (e *GraphError) Platform() bool {
	return e.Message != ""
}
