// Package receipt contains receipt extraction use cases.
package receipt

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Error code constants for receipt extraction errors.
const (
	ErrCodeExtractorUnavailable = "EXTRACTOR_UNAVAILABLE"
	ErrCodeExtractorRateLimited = "EXTRACTOR_RATE_LIMITED"
	ErrCodeExtractorAuthError   = "EXTRACTOR_AUTH_ERROR"
	ErrCodeExtractorTimeout     = "EXTRACTOR_TIMEOUT"
	ErrCodeExtractorParseError  = "EXTRACTOR_PARSE_ERROR"
	ErrCodeExtractorUnknown     = "EXTRACTOR_UNKNOWN_ERROR"
)

// errorMessages maps error codes to user-facing messages.
var errorMessages = map[string]string{
	ErrCodeExtractorUnavailable: "The receipt extraction service is temporarily unavailable. Please try again later.",
	ErrCodeExtractorRateLimited: "Request limit reached. Wait a few minutes and try again.",
	ErrCodeExtractorAuthError:   "Receipt extraction service configuration error. Please contact support.",
	ErrCodeExtractorTimeout:     "Extraction took longer than expected. Try again with a shorter receipt.",
	ErrCodeExtractorParseError:  "Could not read a transaction from this receipt. Try again or enter it manually.",
	ErrCodeExtractorUnknown:     "An unexpected error occurred during extraction. Please try again.",
}

// ExtractionError represents an error that occurred during receipt extraction.
type ExtractionError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return e.Message
}

// classifyError converts a Go error to an ExtractionError with the
// appropriate code and retryable flag.
func classifyError(err error) *ExtractionError {
	now := time.Now()
	errStr := strings.ToLower(err.Error())

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ExtractionError{
			Code:      ErrCodeExtractorTimeout,
			Message:   errorMessages[ErrCodeExtractorTimeout],
			Retryable: true,
			Timestamp: now,
		}
	}

	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return &ExtractionError{
			Code:      ErrCodeExtractorRateLimited,
			Message:   errorMessages[ErrCodeExtractorRateLimited],
			Retryable: true,
			Timestamp: now,
		}
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") {
		return &ExtractionError{
			Code:      ErrCodeExtractorAuthError,
			Message:   errorMessages[ErrCodeExtractorAuthError],
			Retryable: false,
			Timestamp: now,
		}
	}

	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return &ExtractionError{
			Code:      ErrCodeExtractorUnavailable,
			Message:   errorMessages[ErrCodeExtractorUnavailable],
			Retryable: true,
			Timestamp: now,
		}
	}

	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "invalid json") {
		return &ExtractionError{
			Code:      ErrCodeExtractorParseError,
			Message:   errorMessages[ErrCodeExtractorParseError],
			Retryable: true,
			Timestamp: now,
		}
	}

	return &ExtractionError{
		Code:      ErrCodeExtractorUnknown,
		Message:   errorMessages[ErrCodeExtractorUnknown],
		Retryable: true,
		Timestamp: now,
	}
}
