package gutendex

import (
	"errors"
	"fmt"
	"strings"
)

// GenericFailureMessage is shown for HTTP failures and unusable responses.
const GenericFailureMessage = "Could not fetch books. Try again later."

// ErrMalformedResponse marks a body that is not a valid listing.
var ErrMalformedResponse = errors.New("malformed catalog response")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s returned status %d", e.URL, e.Code)
}

// NetworkError reports a request that could not complete.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("execute request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage maps a fetch error to the text shown in the error panel.
// Network failures surface the underlying failure; everything else collapses
// to GenericFailureMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) && netErr.Err != nil {
		if msg := strings.TrimSpace(netErr.Err.Error()); msg != "" {
			return msg
		}
	}
	return GenericFailureMessage
}
