package classifier

import "fmt"

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError reports whether err is an authentication failure, which
// usually means the API key is wrong rather than the run being unlucky.
func IsAuthError(err error) bool {
	_, ok := err.(*authError)
	return ok
}

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.statusCode, e.body)
}
