// internal/app/system/apiclient/envelope.go
package apiclient

import "encoding/json"

// Envelope is the wrapper every attendance API response uses.
type Envelope[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the error member of a failed envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// rawEnvelope defers decoding of Data until success is known.
type rawEnvelope = Envelope[json.RawMessage]
