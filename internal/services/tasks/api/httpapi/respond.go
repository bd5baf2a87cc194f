package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"github.com/louisbranch/weathertask/internal/platform/requestctx"
)

// maxBodyBytes caps request bodies for JSON endpoints.
const maxBodyBytes = 1 << 20

var errMalformedBody = apperrors.New(apperrors.CodeValidation, "malformed request body")

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// writeError maps a domain error onto an HTTP status and JSON body.
// Errors without a domain code are logged and answered generically.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Code == apperrors.CodeUnknown {
		log.Printf("request %s %s failed: request_id=%s err=%v", r.Method, r.URL.Path, requestctx.RequestIDFromContext(r.Context()), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   string(apperrors.CodeUnknown),
			Message: "internal error",
		})
		return
	}
	writeJSON(w, appErr.Code.HTTPStatus(), errorResponse{
		Error:   string(appErr.Code),
		Message: appErr.Message,
	})
}

// decodeJSON reads a single JSON document into target.
func decodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return errMalformedBody
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return errMalformedBody
		}
		return apperrors.Wrap(errMalformedBody.Code, errMalformedBody.Message, err)
	}
	return nil
}
