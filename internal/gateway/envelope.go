package gateway

const (
	// CodeSuccess is the envelope code the backend uses for successful responses.
	CodeSuccess = "200"

	// CodeNotFound is the envelope code the backend uses when the requested entity does not exist.
	CodeNotFound = "404"
)

// Envelope is the uniform response wrapper used by every gateway backend endpoint.
type Envelope[T any] struct {
	// Code is the business status code, CodeSuccess on success.
	Code string `json:"code"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Data is the payload, only meaningful when the code is CodeSuccess.
	Data T `json:"data"`

	// Timestamp is the server time of the response in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`

	// TraceID correlates the response with backend logs, when provided.
	TraceID string `json:"traceId,omitempty"` //nolint:tagliatelle
}

// OK reports whether the envelope carries a successful response.
func (e Envelope[T]) OK() bool {
	return e.Code == CodeSuccess
}

// Failure returns the failure described by an unsuccessful envelope, or nil when the envelope is OK.
func (e Envelope[T]) Failure() *Failure {
	if e.OK() {
		return nil
	}

	kind := KindBusiness
	if e.Code == CodeNotFound {
		kind = KindNotFound
	}

	msg := e.Message
	if msg == "" {
		msg = "Business Error"
	}

	return &Failure{
		Kind:    kind,
		Code:    e.Code,
		Message: msg,
		TraceID: e.TraceID,
	}
}
