package wise

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-openapi/runtime"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is returned when Wise answers with a non-2xx status.
type APIError struct {
	Operation  string
	StatusCode int
	Status     string
	Errors     []ErrorDetail
	// Body holds the raw response body when it could not be decoded.
	Body string
}

// ErrorDetail is one entry of a Wise error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// errorResponse covers the error envelopes used across Wise API versions.
type errorResponse struct {
	Errors           []ErrorDetail `json:"errors"`
	Error            string        `json:"error"`
	ErrorDescription string        `json:"error_description"`
	Message          string        `json:"message"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "wise API error (%s): status %d", e.Operation, e.StatusCode)
	if len(e.Errors) > 0 {
		msgs := make([]string, 0, len(e.Errors))
		for _, d := range e.Errors {
			if d.Code != "" {
				msgs = append(msgs, d.Code+": "+d.Message)
			} else {
				msgs = append(msgs, d.Message)
			}
		}
		sb.WriteString(": ")
		sb.WriteString(strings.Join(msgs, "; "))
	} else if e.Body != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Body)
	}
	return sb.String()
}

func readAPIError(opID string, resp runtime.ClientResponse) *APIError {
	apiErr := &APIError{
		Operation:  opID,
		StatusCode: resp.Code(),
		Status:     resp.Message(),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Body = strings.TrimSpace(string(body))
		return apiErr
	}

	switch {
	case len(envelope.Errors) > 0:
		apiErr.Errors = envelope.Errors
	case envelope.Error != "":
		msg := envelope.ErrorDescription
		if msg == "" {
			msg = envelope.Message
		}
		apiErr.Errors = []ErrorDetail{{Code: envelope.Error, Message: msg}}
	case envelope.Message != "":
		apiErr.Errors = []ErrorDetail{{Message: envelope.Message}}
	default:
		apiErr.Body = strings.TrimSpace(string(body))
	}

	return apiErr
}
