package esign

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Error codes the remote API reports with HTTP 400 when the hourly request
// quota or the short-window burst limit is exceeded.
const (
	errCodeHourlyLimit = "HOURLY_APIINVOCATION_LIMIT_EXCEEDED"
	errCodeBurstLimit  = "BURST_APIINVOCATION_LIMIT_EXCEEDED"
)

// rateLimitResetHeader carries the Unix timestamp (seconds) at which the
// current rate-limit window resets.
const rateLimitResetHeader = "X-Ratelimit-Reset"

// APIError is a non-2xx response from the remote API, decoded from its JSON
// error body together with the metadata needed for rate-limit handling.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	ErrorCode  string
	Message    string

	// RateLimitReset is the parsed X-RateLimit-Reset header; zero when the
	// response did not carry one.
	RateLimitReset time.Time
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// HTTPStatus exposes the status code for error classification.
func (e *APIError) HTTPStatus() int { return e.StatusCode }

func (e *APIError) rateLimitExhausted() bool {
	return e.StatusCode == http.StatusBadRequest && e.ErrorCode == errCodeHourlyLimit
}

func (e *APIError) rateLimitBurst() bool {
	return e.StatusCode == http.StatusBadRequest && e.ErrorCode == errCodeBurstLimit
}

// decodeAPIError builds an APIError from a non-2xx response. The body is
// expected to be the remote API's {"errorCode": …, "message": …} shape, but
// any payload is tolerated.
func decodeAPIError(method, path string, resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	var payload struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.ErrorCode != "" {
			apiErr.ErrorCode = payload.ErrorCode
		}
		if payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}

	if v := resp.Header.Get(rateLimitResetHeader); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			apiErr.RateLimitReset = time.Unix(unix, 0)
		}
	}

	return apiErr
}
