package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/techcorp/internal-tools/internal"
)

// maxLoggedBody caps how much of a request or response body reaches the log.
const maxLoggedBody = 4096

// sensitiveFields are field names that should be filtered from logs
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"cookie",
	"secret",
	"api_key",
	"credential",
}

// LoggingMiddleware logs one line per request and response. Bodies are only
// captured when the logger has debug enabled.
func LoggingMiddleware(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lg := requestLogger(r.Context(), base)
			withBodies := lg.Enabled(r.Context(), slog.LevelDebug)

			logRequest(lg, r, withBodies)

			ww := newResponseRecorder(w, withBodies)
			next.ServeHTTP(ww, r)

			logResponse(r.Context(), lg, ww, time.Since(start))
		})
	}
}

func requestLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id := internal.RequestIDFromContext(ctx); id != "" {
		return base.With("request_id", id)
	}
	return base
}

// responseRecorder wraps http.ResponseWriter to capture status, size and,
// optionally, the body.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
	body       *bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter, captureBody bool) *responseRecorder {
	rec := &responseRecorder{ResponseWriter: w}
	if captureBody {
		rec.body = &bytes.Buffer{}
	}
	return rec
}

func (rw *responseRecorder) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	if rw.body != nil && rw.body.Len() < maxLoggedBody {
		rw.body.Write(b)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func (rw *responseRecorder) Status() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

func logRequest(lg *slog.Logger, r *http.Request, withBody bool) {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	}

	if withBody {
		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}
		attrs = append(attrs,
			"headers", filterSensitiveHeaders(r.Header),
			"body", filterSensitiveBody(bodyBytes))
		lg.Debug("incoming request", attrs...)
		return
	}

	lg.Info("incoming request", attrs...)
}

func logResponse(ctx context.Context, lg *slog.Logger, rw *responseRecorder, duration time.Duration) {
	statusCode := rw.Status()

	logLevel := slog.LevelInfo
	if statusCode >= 400 && statusCode < 500 {
		logLevel = slog.LevelWarn
	} else if statusCode >= 500 {
		logLevel = slog.LevelError
	}

	attrs := []any{
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"response_size", rw.size,
	}
	if rw.body != nil {
		attrs = append(attrs, "body", filterSensitiveBody(rw.body.Bytes()))
	}

	lg.Log(ctx, logLevel, "response", attrs...)
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, sensitiveField := range sensitiveFields {
		if strings.Contains(lower, sensitiveField) {
			return true
		}
	}
	return false
}

// filterSensitiveHeaders removes or masks sensitive headers
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			filtered[name] = "[FILTERED]"
		} else {
			filtered[name] = strings.Join(values, ", ")
		}
	}
	return filtered
}

// filterSensitiveBody masks sensitive fields of a JSON body and truncates
// anything else.
func filterSensitiveBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var jsonData interface{}
	if err := json.Unmarshal(body, &jsonData); err != nil {
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		return string(body)
	}

	filteredBytes, err := json.Marshal(filterSensitiveJSON(jsonData))
	if err != nil {
		return "[ERROR - Failed to marshal filtered JSON]"
	}
	return string(filteredBytes)
}

// filterSensitiveJSON recursively filters sensitive fields from JSON data
func filterSensitiveJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		filtered := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				filtered[key] = "[FILTERED]"
			} else {
				filtered[key] = filterSensitiveJSON(value)
			}
		}
		return filtered
	case []interface{}:
		filtered := make([]interface{}, len(v))
		for i, item := range v {
			filtered[i] = filterSensitiveJSON(item)
		}
		return filtered
	default:
		return v
	}
}
