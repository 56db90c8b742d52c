package web

// errors.go turns service errors into JSON responses.
//
// Every error is logged with its technical detail and the request id, then
// mapped through core.MapError so the client only sees the user message,
// its suggested action and a support code.

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/lister/internal/core"
	"github.com/JonMunkholm/lister/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// unavailableCodes are storage failures that mean the database could not be
// reached rather than that it rejected the request.
var unavailableCodes = map[string]bool{
	"DB004": true,
	"DB005": true,
	"DB008": true,
}

// statusFor picks the HTTP status for err.
func statusFor(err error, code string) int {
	switch core.KindOf(err) {
	case core.KindNotFound:
		return http.StatusNotFound
	case core.KindConflict:
		return http.StatusConflict
	case core.KindValidation:
		return http.StatusBadRequest
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if unavailableCodes[code] {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes the mapped user message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	status := statusFor(err, msg.Code)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)

	writeJSON(w, status, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// badRequest reports a request that could not be decoded.
func badRequest(w http.ResponseWriter, r *http.Request, op, msg string, cause error) {
	respondError(w, r, &core.Error{Kind: core.KindValidation, Op: op, Msg: msg, Err: cause})
}
