package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/transport/middleware"
)

var _ = Describe("RequestID", func() {
	var seen string

	handler := func() http.Handler {
		return middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = internal.RequestIDFromContext(r.Context())
		}))
	}

	BeforeEach(func() { seen = "" })

	It("should mint an id when the header is missing", func() {
		w := httptest.NewRecorder()
		handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(seen).To(HaveLen(36))
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal(seen))
	})

	It("should reuse the caller's id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		handler().ServeHTTP(w, req)

		Expect(seen).To(Equal("abc-123"))
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("abc-123"))
	})

	It("should replace an oversized id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, strings.Repeat("x", 200))
		handler().ServeHTTP(httptest.NewRecorder(), req)

		Expect(seen).To(HaveLen(36))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("should turn a panic into a JSON 500", func() {
		var logs bytes.Buffer
		lg := slog.New(slog.NewJSONHandler(&logs, nil))
		h := middleware.RecoveryMiddleware(lg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tools", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["error"]["message"]).To(Equal("Internal server error"))
		Expect(logs.String()).To(ContainSubstring("panic recovered"))
		Expect(logs.String()).To(ContainSubstring("boom"))
	})

	It("should re-panic on http.ErrAbortHandler", func() {
		h := middleware.RecoveryMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }))

		Expect(func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		}).To(PanicWith(http.ErrAbortHandler))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	It("should log status and mask sensitive body fields at debug level", func() {
		var logs bytes.Buffer
		lg := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/tools", strings.NewReader(`{"name":"Slack","api_key":"s3cr3t"}`))
		req.Header.Set("Authorization", "Bearer s3cr3t")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(logs.String()).To(ContainSubstring(`"status_code":201`))
		Expect(logs.String()).To(ContainSubstring("[FILTERED]"))
		Expect(logs.String()).NotTo(ContainSubstring("s3cr3t"))
	})

	It("should not capture bodies above debug level", func() {
		var logs bytes.Buffer
		lg := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "missing", http.StatusNotFound)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/tools", strings.NewReader(`{"name":"Slack"}`)))

		Expect(logs.String()).To(ContainSubstring(`"level":"WARN"`))
		Expect(logs.String()).NotTo(ContainSubstring("Slack"))
	})
})

var _ = Describe("Metrics", func() {
	It("should label requests by route pattern", func() {
		reg := prometheus.NewRegistry()
		m := middleware.NewMetrics(reg)

		router := chi.NewRouter()
		router.Use(m.Middleware)
		router.Get("/api/tools/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		for _, path := range []string{"/api/tools/1", "/api/tools/2"} {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		}

		families, err := reg.Gather()
		Expect(err).NotTo(HaveOccurred())

		var found bool
		for _, mf := range families {
			if mf.GetName() != "internal_tools_http_requests_total" {
				continue
			}
			Expect(mf.GetMetric()).To(HaveLen(1))
			metric := mf.GetMetric()[0]
			Expect(metric.GetCounter().GetValue()).To(Equal(2.0))

			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			Expect(labels).To(HaveKeyWithValue("route", "/api/tools/{id}"))
			Expect(labels).To(HaveKeyWithValue("status", "204"))
			found = true
		}
		Expect(found).To(BeTrue())
	})
})

var _ = Describe("CORS", func() {
	It("should answer preflight requests for allowed origins", func() {
		h := middleware.CORS([]string{"http://localhost:3000"}, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodOptions, "/api/tools", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		Expect(w.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
	})

	It("should ignore unknown origins", func() {
		h := middleware.CORS([]string{"http://localhost:3000"}, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})
