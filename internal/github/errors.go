package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the GitHub REST API.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("github: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// Unavailable reports whether err means the endpoint is not served at all:
// 404, or 410 for retired preview APIs.
func Unavailable(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusNotFound || apiError.StatusCode == http.StatusGone)
}

// IsRateLimited reports whether err is a primary or secondary rate limit.
func IsRateLimited(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	if apiError.StatusCode == http.StatusTooManyRequests {
		return true
	}
	lower := strings.ToLower(apiError.Message)
	return apiError.StatusCode == http.StatusForbidden &&
		(strings.Contains(lower, "rate limit") || strings.Contains(lower, "abuse detection"))
}

func parseAPIError(resp *http.Response) error {
	apiError := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiError.Message = payload.Message
		apiError.DocumentationURL = payload.DocumentationURL
	} else {
		apiError.Message = strings.TrimSpace(string(body))
	}
	return apiError
}
