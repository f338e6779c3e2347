package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes the auth service reports that the UI treats specially.
const (
	CodeOverEmailSendRateLimit = "over_email_send_rate_limit"
	CodeOverRequestRateLimit   = "over_request_rate_limit"
)

// APIError is a non-2xx response from the hosted service.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

// NewAPIError builds an APIError, mainly for the mock service.
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// RateLimited reports whether the service refused the request for sending
// too many requests or emails.
func (e *APIError) RateLimited() bool {
	if e.Status == http.StatusTooManyRequests {
		return true
	}
	switch e.Code {
	case CodeOverEmailSendRateLimit, CodeOverRequestRateLimit:
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "rate limit")
}

// errorBody covers the error shapes of both the auth and row APIs.
type errorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	Code             any    `json:"code"`
}

func decodeAPIError(status int, body []byte, requestID string) *APIError {
	apiErr := &APIError{Status: status, RequestID: requestID}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	for _, m := range []string{eb.Msg, eb.Message, eb.ErrorDescription, eb.Error} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}

	apiErr.Code = eb.ErrorCode
	// The auth API puts the numeric HTTP status in "code"; only string codes matter.
	if c, ok := eb.Code.(string); ok && apiErr.Code == "" {
		apiErr.Code = c
	}
	if apiErr.Code == "" && eb.Error != "" && eb.Error != apiErr.Message {
		apiErr.Code = eb.Error
	}
	return apiErr
}

// AsAPIError unwraps err to an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// UserMessage returns the service's own description of err when it has
// one, otherwise err's text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Error()
	}
	return err.Error()
}
