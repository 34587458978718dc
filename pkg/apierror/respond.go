package apierror

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

const timestampLayout = "2006-01-02 15:04:05"

// ErrorBody is the single response shape used for all error translations.
type ErrorBody struct {
	Status    string                 `json:"status"`
	Error     string                 `json:"error"`
	Message   string                 `json:"message"`
	Path      string                 `json:"path"`
	Timestamp string                 `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

func reasonFor(code Code) string {
	switch code {
	case CodeValidationFailed:
		return "Validation Failed"
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenExpired, CodeTokenInvalid:
		return "Unauthorized"
	case CodeForbidden:
		return "Access Denied"
	case CodeNotFound:
		return "Resource Not Found"
	case CodeAlreadyExists:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}

func statusName(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// Respond translates err into the error response shape. Unstructured errors
// are logged and surfaced as an opaque 500 so internals do not leak.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	var e *Error
	if !errors.As(err, &e) {
		slog.Error("unstructured error", "path", r.URL.Path, "err", err)
		e = Internal(err)
	}

	status := e.HTTPStatusCode()
	message := e.Message
	if status == http.StatusInternalServerError {
		if e.Err != nil {
			slog.Error("internal error", "path", r.URL.Path, "err", e.Err)
		}
		message = "internal server error"
	}

	body := ErrorBody{
		Status:    statusName(status),
		Error:     reasonFor(e.Code),
		Message:   message,
		Path:      r.URL.Path,
		Timestamp: time.Now().Format(timestampLayout),
		Details:   e.Details,
	}

	render.Status(r, status)
	render.JSON(w, r, body)
}
