// Package receipt contains receipt extraction use cases.
package receipt

import (
	"context"
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode string
		expectRetry  bool
	}{
		// Timeout/cancellation errors
		{
			name:         "context deadline exceeded",
			err:          context.DeadlineExceeded,
			expectedCode: ErrCodeExtractorTimeout,
			expectRetry:  true,
		},
		{
			name:         "context canceled",
			err:          context.Canceled,
			expectedCode: ErrCodeExtractorTimeout,
			expectRetry:  true,
		},
		// Rate limiting errors
		{
			name:         "rate limit error",
			err:          errors.New("rate limit exceeded"),
			expectedCode: ErrCodeExtractorRateLimited,
			expectRetry:  true,
		},
		{
			name:         "quota error",
			err:          errors.New("quota exceeded for gemini-1.5-flash"),
			expectedCode: ErrCodeExtractorRateLimited,
			expectRetry:  true,
		},
		{
			name:         "429 status code error",
			err:          errors.New("HTTP 429: too many requests"),
			expectedCode: ErrCodeExtractorRateLimited,
			expectRetry:  true,
		},
		{
			name:         "resource exhausted error",
			err:          errors.New("resource exhausted"),
			expectedCode: ErrCodeExtractorRateLimited,
			expectRetry:  true,
		},
		// Authentication errors
		{
			name:         "401 unauthorized",
			err:          errors.New("401 unauthorized"),
			expectedCode: ErrCodeExtractorAuthError,
			expectRetry:  false,
		},
		{
			name:         "403 forbidden",
			err:          errors.New("403 forbidden"),
			expectedCode: ErrCodeExtractorAuthError,
			expectRetry:  false,
		},
		{
			name:         "invalid api key",
			err:          errors.New("invalid API key provided"),
			expectedCode: ErrCodeExtractorAuthError,
			expectRetry:  false,
		},
		// Availability errors
		{
			name:         "connection refused",
			err:          errors.New("dial tcp: connection refused"),
			expectedCode: ErrCodeExtractorUnavailable,
			expectRetry:  true,
		},
		{
			name:         "503 service unavailable",
			err:          errors.New("HTTP 503: service unavailable"),
			expectedCode: ErrCodeExtractorUnavailable,
			expectRetry:  true,
		},
		// Parse errors
		{
			name:         "json unmarshal failure",
			err:          errors.New("failed to unmarshal model response"),
			expectedCode: ErrCodeExtractorParseError,
			expectRetry:  true,
		},
		{
			name:         "parse failure",
			err:          errors.New("could not parse extraction result"),
			expectedCode: ErrCodeExtractorParseError,
			expectRetry:  true,
		},
		// Fallback
		{
			name:         "unknown error",
			err:          errors.New("something unexpected happened"),
			expectedCode: ErrCodeExtractorUnknown,
			expectRetry:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError(tt.err)

			if result.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, result.Code)
			}
			if result.Retryable != tt.expectRetry {
				t.Errorf("expected retryable %v, got %v", tt.expectRetry, result.Retryable)
			}
			if result.Message == "" {
				t.Error("expected non-empty message")
			}
			if result.Timestamp.IsZero() {
				t.Error("expected timestamp to be set")
			}
		})
	}
}
