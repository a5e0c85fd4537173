// Package dto defines data transfer objects for API requests and responses.
package dto

// Envelope is the top-level shape of every successful API response. Data
// holds the resource keyed by its name, e.g. {"account": {...}}.
type Envelope struct {
	Status string                 `json:"status"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// Success wraps a resource in the response envelope under the given key.
func Success(resource string, payload interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   map[string]interface{}{resource: payload},
	}
}

// SuccessEmpty returns a success envelope without a data payload.
func SuccessEmpty() Envelope {
	return Envelope{Status: "success"}
}

// ErrorResponse is the top-level shape of every failed API response.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Fail builds a failure response with an optional stable error code.
func Fail(message, code string) ErrorResponse {
	return ErrorResponse{
		Status:  "fail",
		Message: message,
		Code:    code,
	}
}
