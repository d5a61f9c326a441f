package api

import "fmt"

// Error is a typed failure from the Raworc API: the HTTP status the backend
// answered with and a sanitized message. Transport-level failures (DNS,
// connect, timeout) are reported with Status 0.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}

// Unauthorized reports whether the error is an authentication failure.
func (e *Error) Unauthorized() bool {
	return e.Status == 401
}

// apiErrorBody is the error envelope the backend uses for non-2xx responses.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
