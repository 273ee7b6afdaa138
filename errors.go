package metigan

import "github.com/metigan/metigan-go/internal/apierrors"

// Error is the single failure type returned by every operation.
// Use errors.As to inspect Kind, StatusCode, Message and RawBody.
type Error = apierrors.Error

// ErrorKind classifies an Error.
type ErrorKind = apierrors.Kind

// Error kinds.
const (
	KindValidation        = apierrors.KindValidation
	KindTimeout           = apierrors.KindTimeout
	KindNetwork           = apierrors.KindNetwork
	KindAPI               = apierrors.KindAPI
	KindExhaustedRetries  = apierrors.KindExhaustedRetries
	KindMalformedResponse = apierrors.KindMalformedResponse
	KindConfiguration     = apierrors.KindConfiguration
)

// Sentinel errors for errors.Is() checks
var (
	// ErrValidation matches input rejected before any request was sent.
	ErrValidation = apierrors.ErrValidation
	// ErrTimeout matches calls that exceeded the configured timeout.
	ErrTimeout = apierrors.ErrTimeout
	// ErrNetwork matches connection-level failures.
	ErrNetwork = apierrors.ErrNetwork
	// ErrAPI matches non-success responses from the service.
	ErrAPI = apierrors.ErrAPI
	// ErrExhaustedRetries matches calls where every attempt failed.
	ErrExhaustedRetries = apierrors.ErrExhaustedRetries
	// ErrMalformedResponse matches success responses that could not be decoded.
	ErrMalformedResponse = apierrors.ErrMalformedResponse
	// ErrConfiguration matches invalid client settings.
	ErrConfiguration = apierrors.ErrConfiguration

	// ErrMissingAPIKey is returned by New when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey
	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = apierrors.ErrUnauthorized
	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = apierrors.ErrRateLimited

	ErrContactNotFound  = apierrors.ErrContactNotFound
	ErrAudienceNotFound = apierrors.ErrAudienceNotFound
	ErrTemplateNotFound = apierrors.ErrTemplateNotFound
	ErrFormNotFound     = apierrors.ErrFormNotFound
)

func validationError(format string, args ...any) error {
	return apierrors.Validation(format, args...)
}
