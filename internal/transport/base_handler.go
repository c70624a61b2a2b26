package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/pkg/logger"
)

// maxBodyBytes bounds request bodies accepted by DecodeJSON.
const maxBodyBytes = 1 << 20

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *BaseHandler) WriteAppError(w http.ResponseWriter, r *http.Request, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	h.requestLogger(r).Warn("request rejected",
		"status", status,
		"code", appErr.Code,
		"message", appErr.GetDetailedMessage())
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps a service error to its HTTP response. Unknown
// errors and internal AppErrors are logged with their cause and answered
// with a generic 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	appErr, ok := internal.IsAppError(err)
	if !ok || appErr.StatusCode >= http.StatusInternalServerError || appErr.StatusCode == 0 {
		h.requestLogger(r).Error(op+": unexpected error", "error", err)
		generic := internal.NewInternalError("Internal server error", nil)
		h.WriteJSON(w, http.StatusInternalServerError, internal.Response{Error: generic})
		return
	}
	h.WriteAppError(w, r, appErr)
}

// DecodeJSON decodes the request body into dst. Empty and malformed bodies
// are validation errors.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) *internal.AppError {
	if r.Body == nil {
		return internal.NewValidationFieldError("body", "request body is required", internal.ErrCodeInvalidBody)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return internal.NewValidationFieldError("body", "request body is required", internal.ErrCodeInvalidBody)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return internal.NewValidationFieldError(typeErr.Field,
				fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String()),
				internal.ErrCodeInvalidBody)
		}
		return internal.NewValidationFieldError("body", "invalid JSON body: "+err.Error(), internal.ErrCodeInvalidBody)
	}
	return nil
}

// PathID parses a positive integer URL parameter.
func (h *BaseHandler) PathID(r *http.Request, name string) (int64, *internal.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, internal.NewValidationFieldError(name, fmt.Sprintf("%s must be an integer", name), internal.ErrCodeInvalidParameter)
	}
	return id, nil
}

// QueryInt returns nil when the parameter is absent or blank.
func (h *BaseHandler) QueryInt(r *http.Request, name string) (*int, *internal.AppError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, internal.NewValidationFieldError(name, fmt.Sprintf("%s must be an integer", name), internal.ErrCodeInvalidParameter)
	}
	return &v, nil
}

// QueryString returns nil when the parameter is absent or blank.
func (h *BaseHandler) QueryString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func (h *BaseHandler) requestLogger(r *http.Request) *slog.Logger {
	if r == nil {
		return h.Logger
	}
	if id := internal.RequestIDFromContext(r.Context()); id != "" {
		return h.Logger.With("request_id", id)
	}
	return h.Logger
}
