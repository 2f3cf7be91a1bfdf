package dto

// Envelope is the uniform response shape every endpoint returns, success or
// failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Body    any    `json:"body,omitempty"`
}
