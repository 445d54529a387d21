package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Response is a parsed backend envelope.
type Response struct {
	HTTPStatus int
	Status     domain.Status
	Message    string
	Code       string
	Body       []byte
}

// parseResponse reads the envelope fields without decoding the payload.
// A missing status is derived from the HTTP status code.
func parseResponse(httpStatus int, body []byte) (*Response, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON response (HTTP %d)", httpStatus)
	}

	fields := gjson.GetManyBytes(body, "status", "message", "code")
	resp := &Response{
		HTTPStatus: httpStatus,
		Status:     domain.Status(fields[0].String()),
		Message:    fields[1].String(),
		Code:       fields[2].String(),
		Body:       body,
	}

	if !fields[0].Exists() {
		if httpStatus >= http.StatusBadRequest {
			resp.Status = domain.StatusError
		} else {
			resp.Status = domain.StatusSuccess
		}
	}
	if resp.Status == domain.StatusError && resp.Message == "" {
		resp.Message = http.StatusText(httpStatus)
	}

	return resp, nil
}

// IsError reports whether the backend signalled a business error.
func (r *Response) IsError() bool { return r.Status == domain.StatusError }

// IsPending reports whether the backend is still settling the operation.
func (r *Response) IsPending() bool { return r.Status.IsPending() }

// APIError converts an error envelope into a domain error. Returns nil for
// non-error responses.
func (r *Response) APIError() *domain.APIError {
	if !r.IsError() {
		return nil
	}
	return &domain.APIError{Message: r.Message, Code: r.Code, HTTPStatus: r.HTTPStatus}
}

// Decode unmarshals the value at the gjson path into v. An empty path decodes
// the whole body. A missing path leaves v untouched.
func (r *Response) Decode(path string, v any) error {
	raw := r.Body
	if path != "" {
		res := gjson.GetBytes(r.Body, path)
		if !res.Exists() {
			return nil
		}
		raw = []byte(res.Raw)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}
	return nil
}

// Has reports whether the body contains a value at the gjson path.
func (r *Response) Has(path string) bool {
	return gjson.GetBytes(r.Body, path).Exists()
}

// Int returns the integer at the gjson path, or 0.
func (r *Response) Int(path string) int {
	return int(gjson.GetBytes(r.Body, path).Int())
}

// String returns the string at the gjson path, or "".
func (r *Response) String(path string) string {
	return gjson.GetBytes(r.Body, path).String()
}
