// Package apierrors provides shared error types for the Metigan client.
package apierrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// KindValidation is a local, pre-network input error the caller can fix.
	KindValidation Kind = "ValidationError"
	// KindTimeout means an attempt exceeded the configured timeout.
	KindTimeout Kind = "Timeout"
	// KindNetwork is a connection-level failure.
	KindNetwork Kind = "NetworkError"
	// KindAPI means the service returned a non-success response.
	KindAPI Kind = "ApiError"
	// KindExhaustedRetries means every allowed attempt failed transiently.
	KindExhaustedRetries Kind = "ExhaustedRetries"
	// KindMalformedResponse means a success response could not be decoded.
	KindMalformedResponse Kind = "MalformedResponse"
	// KindConfiguration means the client was constructed with bad settings.
	KindConfiguration Kind = "ConfigurationError"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrValidation matches every KindValidation error.
	ErrValidation = errors.New("validation error")
	// ErrTimeout matches every KindTimeout error.
	ErrTimeout = errors.New("request timed out")
	// ErrNetwork matches every KindNetwork error.
	ErrNetwork = errors.New("network error")
	// ErrAPI matches every KindAPI error.
	ErrAPI = errors.New("API error")
	// ErrExhaustedRetries matches every KindExhaustedRetries error.
	ErrExhaustedRetries = errors.New("retries exhausted")
	// ErrMalformedResponse matches every KindMalformedResponse error.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrConfiguration matches every KindConfiguration error.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")
	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")
	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrContactNotFound is returned when a contact is not found.
	ErrContactNotFound = errors.New("contact not found")
	// ErrAudienceNotFound is returned when an audience is not found.
	ErrAudienceNotFound = errors.New("audience not found")
	// ErrTemplateNotFound is returned when a template is not found.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrFormNotFound is returned when a form is not found.
	ErrFormNotFound = errors.New("form not found")
)

var kindSentinels = map[Kind]error{
	KindValidation:        ErrValidation,
	KindTimeout:           ErrTimeout,
	KindNetwork:           ErrNetwork,
	KindAPI:               ErrAPI,
	KindExhaustedRetries:  ErrExhaustedRetries,
	KindMalformedResponse: ErrMalformedResponse,
	KindConfiguration:     ErrConfiguration,
}

// ResourceType indicates which type of resource an error relates to.
type ResourceType string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceType = ""
	// ResourceEmail indicates the error relates to an email send.
	ResourceEmail ResourceType = "email"
	// ResourceContact indicates the error relates to a contact.
	ResourceContact ResourceType = "contact"
	// ResourceAudience indicates the error relates to an audience.
	ResourceAudience ResourceType = "audience"
	// ResourceTemplate indicates the error relates to a template.
	ResourceTemplate ResourceType = "template"
	// ResourceForm indicates the error relates to a form.
	ResourceForm ResourceType = "form"
)

var notFoundSentinels = map[ResourceType]error{
	ResourceContact:  ErrContactNotFound,
	ResourceAudience: ErrAudienceNotFound,
	ResourceTemplate: ErrTemplateNotFound,
	ResourceForm:     ErrFormNotFound,
}

// Error is the single failure type returned by the client.
type Error struct {
	Kind         Kind
	Message      string
	StatusCode   int    // 0 when no response was received
	RawBody      []byte // nil when no response body was read
	RequestID    string
	ResourceType ResourceType
	Attempts     int
	Err          error // underlying cause, if any
}

func (e *Error) Error() string {
	var s string
	switch {
	case e.StatusCode != 0 && e.Message != "":
		s = fmt.Sprintf("%s %d: %s", e.Kind, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		s = fmt.Sprintf("%s %d", e.Kind, e.StatusCode)
	case e.Message != "":
		s = fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		s = string(e.Kind)
	}
	if e.RequestID != "" {
		s += fmt.Sprintf(" (request_id: %s)", e.RequestID)
	}
	return s
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	if target == kindSentinels[e.Kind] {
		return true
	}
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 404:
		if sentinel, ok := notFoundSentinels[e.ResourceType]; ok {
			return target == sentinel
		}
		return target == ErrContactNotFound || target == ErrAudienceNotFound ||
			target == ErrTemplateNotFound || target == ErrFormNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// Validation returns a KindValidation error for a caller-fixable input problem.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Configuration returns a KindConfiguration error wrapping cause.
func Configuration(cause error) *Error {
	return &Error{Kind: KindConfiguration, Message: cause.Error(), Err: cause}
}

// WithResourceType returns a copy of the error with the resource type set.
// If the error is not an *Error, it is returned unchanged.
func WithResourceType(err error, rt ResourceType) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		cp := *apiErr
		cp.ResourceType = rt
		return &cp
	}
	return err
}
