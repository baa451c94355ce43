package model

// Response is the common JSON envelope for error payloads. Success
// payloads carry their data under a named key next to the success flag.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewErrorResponse builds a failure envelope. detail is optional and
// carries the underlying error text when it is safe to expose.
func NewErrorResponse(message, detail string) Response {
	return Response{Success: false, Message: message, Error: detail}
}
