// Package errors provides standardized error handling patterns for the frame
// pipeline.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// Decode-time conditions (ErrMalformedPayload, ErrInvalidFrame,
// ErrTruncatedStream) are deliberately unforgiving: a single bad frame aborts
// the whole read pass. The stream reader propagates them as a terminal state
// rather than skipping the offending frame, because a corrupt frame means the
// byte stream itself can no longer be trusted.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Client", "PastWeather", "request")  // retryable
//	errors.WrapInvalid(err, "SensorData", "Decode", "timestamp")   // bad input
//	errors.WrapFatal(err, "Reader", "Next", "short record")        // stop the pass
//
// The generic Wrap() function adds context without setting a class.
//
// # Integration with errors.As/Is
//
// All error types support standard library error inspection:
//
//	if errors.Is(err, errors.ErrInvalidFrame) {
//	    // checksum mismatch: corruption or tampering
//	}
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    log.Printf("component: %s, class: %s", ce.Component, ce.Class)
//	}
//
// Classification is preserved through error chains.
package errors
