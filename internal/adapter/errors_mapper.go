package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-2xx response into a sentinel error. A 401 also
// matches [service.ErrInvalidToken] so that remote and local introspection
// fail the same way.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w: %s", service.ErrInvalidToken, ErrUnauthorized, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode(), body)
	}
}
