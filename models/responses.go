package models

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	ID string `json:"id"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the JSON body of every failed API call.
// Fields is set only for validation failures and maps a field name to
// the constraint it broke.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
