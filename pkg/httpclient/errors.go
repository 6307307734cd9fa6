package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
)

// maxErrorBody caps how much of an error body is read.
const maxErrorBody = 1 << 20

// ParseResponseError reads the body of a non-2xx response and translates it
// into an AppError. A message is taken from `error.message` or `message` when
// the body is JSON; otherwise the trimmed raw body is used.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apperrors.Upstream(serviceName,
			fmt.Sprintf("status %d (failed to read body)", resp.StatusCode), err)
	}

	message := errorMessage(body)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "UPSTREAM_NOT_FOUND",
			Message: fmt.Sprintf("%s: %s", serviceName, message),
			Status:  http.StatusBadGateway,
			Err:     fmt.Errorf("%w: %w", apperrors.ErrUpstream, apperrors.ErrNotFound),
		}
	case resp.StatusCode == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: fmt.Sprintf("%s: %s", serviceName, message),
			Status:  http.StatusServiceUnavailable,
			Err:     fmt.Errorf("%w: %w", apperrors.ErrUpstream, apperrors.ErrServiceUnavail),
		}
	default:
		return apperrors.Upstream(serviceName, fmt.Sprintf("status %d: %s", resp.StatusCode, message), nil)
	}
}

func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error.message", "message", "error"} {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.Str != "" {
				return v.Str
			}
		}
	}
	return strings.TrimSpace(string(body))
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
