package gatesdk

import "fmt"

// APIError is returned when the server answers with a non-2xx status.
// Message holds the server's error envelope message when one was
// decodable, otherwise the raw status text.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gatesdk: %d %s", e.StatusCode, e.Message)
}
