// Copyright (c) 2024 edgegram

package telegram

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// APIError is the typed failure a not-ok Bot API response surfaces as.
type APIError struct {
	Method          string
	Code            int
	Description     string
	RetryAfter      int
	MigrateToChatID int64
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s: [%d] %s", e.Method, e.Code, e.Description)
}

// AsAPIError unwraps err to an *APIError when the failure originated from a
// not-ok API response.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsFlood reports whether err is a rate-limit rejection (HTTP 429). The
// RetryAfter field of the unwrapped APIError carries the cooldown seconds.
func IsFlood(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == http.StatusTooManyRequests
}

// IsRetryable reports whether the call may be retried as-is: floods and
// server-side failures qualify, client errors do not.
func IsRetryable(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
}

// HasDescription matches the error description prefix, the closest stable
// discriminator the Bot API offers ("Bad Request: message is not modified").
func HasDescription(err error, prefix string) bool {
	apiErr, ok := AsAPIError(err)
	return ok && strings.HasPrefix(apiErr.Description, prefix)
}

var (
	errEditTargetGone = errors.New("callback has no editable message")
	errNoSubject      = errors.New("membership update has no subject user")
)
