package tool_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/techcorp/internal-tools/internal"
	categoryDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/category"
	toolDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/tool"
	"github.com/techcorp/internal-tools/internal/core/enum"
	"github.com/techcorp/internal-tools/internal/tool"
	toolPostgres "github.com/techcorp/internal-tools/internal/tool/postgres"
	"github.com/techcorp/internal-tools/internal/transport"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Tool Handler Integration", func() {
	var (
		db         *gorm.DB
		router     chi.Router
		categoryID int64
	)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		switch b := body.(type) {
		case nil:
			reader = bytes.NewReader(nil)
		case string:
			reader = bytes.NewReader([]byte(b))
		default:
			raw, err := json.Marshal(b)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeTool := func(w *httptest.ResponseRecorder) tool.Tool {
		var t tool.Tool
		ExpectWithOffset(1, json.NewDecoder(w.Body).Decode(&t)).To(Succeed())
		return t
	}

	decodeError := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]map[string]interface{}
		ExpectWithOffset(1, json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body["error"]
	}

	createBody := func() map[string]interface{} {
		return map[string]interface{}{
			"name":             "GitHub Enterprise",
			"description":      "Source hosting",
			"vendor":           "GitHub",
			"website_url":      "https://github.com",
			"category_id":      categoryID,
			"monthly_cost":     21.00,
			"owner_department": "Engineering",
		}
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(&categoryDatamodel.Category{}, &toolDatamodel.Tool{})).To(Succeed())

		devTools := &categoryDatamodel.Category{Name: "Dev Tools", ColorHex: categoryDatamodel.DefaultColorHex}
		Expect(db.Create(devTools).Error).NotTo(HaveOccurred())
		categoryID = devTools.ID

		service := tool.NewService(toolPostgres.NewToolRepository(db), slogger)
		handler := tool.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Route("/api/tools", func(r chi.Router) {
			r.Get("/", handler.ListTools)
			r.Post("/", handler.CreateTool)
			r.Get("/{id}", handler.GetTool)
			r.Put("/{id}", handler.UpdateTool)
			r.Delete("/{id}", handler.DeleteTool)
		})
	})

	It("should run the full tool lifecycle", func() {
		w := do(http.MethodPost, "/api/tools", createBody())
		Expect(w.Code).To(Equal(http.StatusCreated))
		created := decodeTool(w)
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.Status).To(Equal(enum.ToolStatusActive))
		Expect(created.MonthlyCost.String()).To(Equal("21.00"))
		Expect(created.Category).NotTo(BeNil())
		Expect(*created.Category).To(Equal("Dev Tools"))
		path := fmt.Sprintf("/api/tools/%d", created.ID)

		w = do(http.MethodGet, "/api/tools?vendor=github", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var listed []tool.Tool
		Expect(json.NewDecoder(w.Body).Decode(&listed)).To(Succeed())
		Expect(listed).To(HaveLen(1))
		Expect(*listed[0].Category).To(Equal("Dev Tools"))

		w = do(http.MethodPut, path, map[string]interface{}{"monthly_cost": 25.00})
		Expect(w.Code).To(Equal(http.StatusOK))
		updated := decodeTool(w)
		Expect(updated.MonthlyCost.String()).To(Equal("25.00"))
		Expect(updated.Name).To(Equal("GitHub Enterprise"))
		Expect(updated.UpdatedAt).NotTo(BeTemporally("<", created.UpdatedAt))

		w = do(http.MethodGet, path, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decodeTool(w).MonthlyCost.String()).To(Equal("25.00"))

		w = do(http.MethodDelete, path, nil)
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Body.Len()).To(Equal(0))

		w = do(http.MethodGet, path, nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(decodeError(w)["code"]).To(Equal(string(internal.ErrCodeToolNotFound)))

		w = do(http.MethodDelete, path, nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	Describe("list filters", func() {
		BeforeEach(func() {
			for _, body := range []map[string]interface{}{
				{"name": "Slack", "vendor": "Slack Technologies", "status": "active", "description": "Team chat"},
				{"name": "Zoom", "vendor": "Zoom Video", "status": "trial"},
				{"name": "Sketch", "vendor": "Sketch B.V.", "status": "deprecated", "description": "Vector design"},
			} {
				payload := createBody()
				for k, v := range body {
					payload[k] = v
				}
				Expect(do(http.MethodPost, "/api/tools", payload).Code).To(Equal(http.StatusCreated))
			}
		})

		names := func(path string) []string {
			w := do(http.MethodGet, path, nil)
			ExpectWithOffset(1, w.Code).To(Equal(http.StatusOK))
			var listed []tool.Tool
			ExpectWithOffset(1, json.NewDecoder(w.Body).Decode(&listed)).To(Succeed())
			out := make([]string, 0, len(listed))
			for _, t := range listed {
				out = append(out, t.Name)
			}
			return out
		}

		It("should return all tools in id order", func() {
			Expect(names("/api/tools")).To(Equal([]string{"Slack", "Zoom", "Sketch"}))
		})

		It("should filter by status case-insensitively", func() {
			Expect(names("/api/tools?status=TRIAL")).To(Equal([]string{"Zoom"}))
		})

		It("should search name and description", func() {
			Expect(names("/api/tools?search=design")).To(Equal([]string{"Sketch"}))
			Expect(names("/api/tools?search=SLA")).To(Equal([]string{"Slack"}))
		})

		It("should filter by category", func() {
			Expect(names(fmt.Sprintf("/api/tools?category_id=%d", categoryID))).To(HaveLen(3))
			Expect(names(fmt.Sprintf("/api/tools?category_id=%d", categoryID+1))).To(BeEmpty())
		})

		It("should page with skip and limit", func() {
			Expect(names("/api/tools?skip=1&limit=1")).To(Equal([]string{"Zoom"}))
		})

		It("should reject an unknown status", func() {
			w := do(http.MethodGet, "/api/tools?status=retired", nil)
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should reject a non-numeric limit", func() {
			w := do(http.MethodGet, "/api/tools?limit=ten", nil)
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("validation", func() {
		It("should return 422 with field details for a bad payload", func() {
			payload := createBody()
			payload["monthly_cost"] = -5
			payload["owner_department"] = "Legal"
			w := do(http.MethodPost, "/api/tools", payload)
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))

			errBody := decodeError(w)
			Expect(errBody["type"]).To(Equal(string(internal.ErrorTypeValidation)))
			details := errBody["details"].(map[string]interface{})
			Expect(details["errors"]).To(HaveLen(2))
		})

		It("should return 404 for an unknown category", func() {
			payload := createBody()
			payload["category_id"] = categoryID + 50
			w := do(http.MethodPost, "/api/tools", payload)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeError(w)["code"]).To(Equal(string(internal.ErrCodeCategoryNotFound)))
		})

		It("should return 422 for malformed JSON", func() {
			w := do(http.MethodPost, "/api/tools", `{"name": `)
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 422 for a non-numeric id", func() {
			Expect(do(http.MethodGet, "/api/tools/abc", nil).Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(do(http.MethodPut, "/api/tools/abc", map[string]interface{}{}).Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(do(http.MethodDelete, "/api/tools/abc", nil).Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 404 when updating a missing tool", func() {
			w := do(http.MethodPut, "/api/tools/12345", map[string]interface{}{"name": "Renamed"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
