package telegram

import "fmt"

// Error is a failed Bot API call.
type Error struct {
	Code        int    // error_code from the response, or the HTTP status
	Description string // description from the response
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("telegram: error %d", e.Code)
	}
	return fmt.Sprintf("telegram: error %d: %s", e.Code, e.Description)
}
