package tool_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/techcorp/internal-tools/internal"
	toolDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/tool"
	"github.com/techcorp/internal-tools/internal/core/enum"
	"github.com/techcorp/internal-tools/internal/core/money"
	"github.com/techcorp/internal-tools/internal/tool"
)

// MockRepository implements tool.RepositoryAPI in memory
type MockRepository struct {
	tools        map[int64]*toolDatamodel.Tool
	categories   map[int64]string
	nextID       int64
	lastFilter   tool.ListFilter
	lastChanges  map[string]interface{}
	transactions int
	shouldFail   bool
	failError    error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		tools:      make(map[int64]*toolDatamodel.Tool),
		categories: map[int64]string{1: "Development"},
		nextID:     1,
	}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) withCategory(t *toolDatamodel.Tool) *toolDatamodel.ToolWithCategory {
	row := &toolDatamodel.ToolWithCategory{Tool: *t}
	if name, ok := m.categories[t.CategoryID]; ok {
		row.CategoryName = &name
	}
	return row
}

func (m *MockRepository) List(ctx context.Context, filter tool.ListFilter) ([]*toolDatamodel.ToolWithCategory, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	m.lastFilter = filter
	var rows []*toolDatamodel.ToolWithCategory
	for id := int64(1); id < m.nextID; id++ {
		if t, ok := m.tools[id]; ok {
			rows = append(rows, m.withCategory(t))
		}
	}
	return rows, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*toolDatamodel.ToolWithCategory, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	t, ok := m.tools[id]
	if !ok {
		return nil, nil
	}
	return m.withCategory(t), nil
}

func (m *MockRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	_, ok := m.tools[id]
	return ok, nil
}

func (m *MockRepository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	_, ok := m.categories[categoryID]
	return ok, nil
}

func (m *MockRepository) Create(ctx context.Context, t *toolDatamodel.Tool) error {
	if m.shouldFail {
		return m.failError
	}
	t.ID = m.nextID
	m.nextID++
	copied := *t
	m.tools[t.ID] = &copied
	return nil
}

func (m *MockRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) error {
	if m.shouldFail {
		return m.failError
	}
	m.lastChanges = changes
	t := m.tools[id]
	for column, value := range changes {
		switch column {
		case "name":
			t.Name = value.(string)
		case "monthly_cost":
			t.MonthlyCost = value.(money.Money)
		case "status":
			t.Status = value.(enum.ToolStatus)
		case "category_id":
			t.CategoryID = value.(int64)
		}
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	if _, ok := m.tools[id]; !ok {
		return false, nil
	}
	delete(m.tools, id)
	return true, nil
}

func (m *MockRepository) Transaction(ctx context.Context, fn func(repo tool.RepositoryAPI) error) error {
	m.transactions++
	return fn(m)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }

func moneyPtr(s string) *money.Money {
	m := money.MustParse(s)
	return &m
}

func validCreateDTO() tool.CreateToolDTO {
	return tool.CreateToolDTO{
		Name:            "GitHub Enterprise",
		Vendor:          "GitHub",
		WebsiteURL:      strPtr("https://github.com"),
		CategoryID:      int64Ptr(1),
		MonthlyCost:     moneyPtr("21.00"),
		OwnerDepartment: "Engineering",
	}
}

func expectAppError(err error, status int) *internal.AppError {
	appErr, ok := internal.IsAppError(err)
	ExpectWithOffset(1, ok).To(BeTrue(), "expected *internal.AppError, got %v", err)
	ExpectWithOffset(1, appErr.StatusCode).To(Equal(status))
	return appErr
}

func fieldErrors(appErr *internal.AppError) []string {
	details, ok := appErr.Details.(internal.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(details.Errors))
	for _, e := range details.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

var _ = Describe("Tool Service", func() {
	var (
		ctx      context.Context
		mockRepo *MockRepository
		service  *tool.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = tool.NewService(mockRepo, logger)
	})

	Describe("CreateTool", func() {
		It("should create a tool with defaults", func() {
			created, err := service.CreateTool(ctx, validCreateDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(1)))
			Expect(created.Status).To(Equal(enum.ToolStatusActive))
			Expect(created.ActiveUsersCount).To(Equal(0))
			Expect(*created.Category).To(Equal("Development"))
			Expect(created.MonthlyCost.String()).To(Equal("21.00"))
			Expect(created.CreatedAt).NotTo(BeZero())
			Expect(mockRepo.transactions).To(Equal(1))
		})

		It("should keep an explicit status", func() {
			dto := validCreateDTO()
			dto.Status = strPtr("trial")
			created, err := service.CreateTool(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal(enum.ToolStatusTrial))
		})

		It("should reject an unknown category with 404", func() {
			dto := validCreateDTO()
			dto.CategoryID = int64Ptr(42)
			_, err := service.CreateTool(ctx, dto)
			appErr := expectAppError(err, http.StatusNotFound)
			Expect(appErr.Code).To(Equal(internal.ErrCodeCategoryNotFound))
			Expect(mockRepo.tools).To(BeEmpty())
		})

		DescribeTable("validation failures",
			func(mutate func(*tool.CreateToolDTO), field string) {
				dto := validCreateDTO()
				mutate(&dto)
				_, err := service.CreateTool(ctx, dto)
				appErr := expectAppError(err, http.StatusUnprocessableEntity)
				Expect(fieldErrors(appErr)).To(ContainElement(field))
				Expect(mockRepo.transactions).To(Equal(0))
			},
			Entry("missing name", func(d *tool.CreateToolDTO) { d.Name = "" }, "name"),
			Entry("short name", func(d *tool.CreateToolDTO) { d.Name = "G" }, "name"),
			Entry("short name after trimming", func(d *tool.CreateToolDTO) { d.Name = "  a  " }, "name"),
			Entry("long name after trimming", func(d *tool.CreateToolDTO) { d.Name = " " + strings.Repeat("n", tool.NameMaxLength+1) + " " }, "name"),
			Entry("missing vendor", func(d *tool.CreateToolDTO) { d.Vendor = " " }, "vendor"),
			Entry("bad url", func(d *tool.CreateToolDTO) { d.WebsiteURL = strPtr("ftp://github.com") }, "website_url"),
			Entry("missing category", func(d *tool.CreateToolDTO) { d.CategoryID = nil }, "category_id"),
			Entry("missing cost", func(d *tool.CreateToolDTO) { d.MonthlyCost = nil }, "monthly_cost"),
			Entry("negative cost", func(d *tool.CreateToolDTO) { d.MonthlyCost = moneyPtr("-1.00") }, "monthly_cost"),
			Entry("three decimals", func(d *tool.CreateToolDTO) { d.MonthlyCost = moneyPtr("1.005") }, "monthly_cost"),
			Entry("unknown department", func(d *tool.CreateToolDTO) { d.OwnerDepartment = "Legal" }, "owner_department"),
			Entry("unknown status", func(d *tool.CreateToolDTO) { d.Status = strPtr("retired") }, "status"),
			Entry("negative users", func(d *tool.CreateToolDTO) { d.ActiveUsersCount = intPtr(-1) }, "active_users_count"),
		)

		It("should measure name and vendor after trimming", func() {
			dto := validCreateDTO()
			dto.Name = "  Go  "
			dto.Vendor = "  " + strings.Repeat("v", tool.VendorMaxLength) + "  "
			created, err := service.CreateTool(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Name).To(Equal("Go"))
			Expect(created.Vendor).To(HaveLen(tool.VendorMaxLength))
		})

		It("should report every invalid field at once", func() {
			_, err := service.CreateTool(ctx, tool.CreateToolDTO{})
			appErr := expectAppError(err, http.StatusUnprocessableEntity)
			Expect(fieldErrors(appErr)).To(ContainElements("name", "vendor", "category_id", "monthly_cost", "owner_department"))
		})

		It("should wrap repository failures as internal errors", func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))
			_, err := service.CreateTool(ctx, validCreateDTO())
			expectAppError(err, http.StatusInternalServerError)
		})
	})

	Describe("UpdateTool", func() {
		var created *tool.Tool

		BeforeEach(func() {
			var err error
			created, err = service.CreateTool(ctx, validCreateDTO())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should change only the supplied fields", func() {
			updated, err := service.UpdateTool(ctx, created.ID, tool.UpdateToolDTO{MonthlyCost: moneyPtr("25.00")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.MonthlyCost.String()).To(Equal("25.00"))
			Expect(updated.Name).To(Equal("GitHub Enterprise"))
			Expect(mockRepo.lastChanges).To(HaveKey("monthly_cost"))
			Expect(mockRepo.lastChanges).To(HaveKey("updated_at"))
			Expect(mockRepo.lastChanges).NotTo(HaveKey("name"))
		})

		It("should refresh updated_at on an empty body", func() {
			_, err := service.UpdateTool(ctx, created.ID, tool.UpdateToolDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastChanges).To(HaveLen(1))
			Expect(mockRepo.lastChanges).To(HaveKey("updated_at"))
		})

		It("should return 404 for an unknown tool", func() {
			_, err := service.UpdateTool(ctx, 999, tool.UpdateToolDTO{Name: strPtr("Renamed")})
			appErr := expectAppError(err, http.StatusNotFound)
			Expect(appErr.Code).To(Equal(internal.ErrCodeToolNotFound))
		})

		It("should return 404 when moving to an unknown category", func() {
			_, err := service.UpdateTool(ctx, created.ID, tool.UpdateToolDTO{CategoryID: int64Ptr(9)})
			appErr := expectAppError(err, http.StatusNotFound)
			Expect(appErr.Code).To(Equal(internal.ErrCodeCategoryNotFound))
		})

		It("should reject a name that is too short once trimmed", func() {
			_, err := service.UpdateTool(ctx, created.ID, tool.UpdateToolDTO{Name: strPtr("  a  ")})
			appErr := expectAppError(err, http.StatusUnprocessableEntity)
			Expect(fieldErrors(appErr)).To(ContainElement("name"))
			Expect(mockRepo.lastChanges).To(BeNil())
		})

		It("should validate before touching the repository", func() {
			_, err := service.UpdateTool(ctx, created.ID, tool.UpdateToolDTO{Status: strPtr("gone")})
			expectAppError(err, http.StatusUnprocessableEntity)
			Expect(mockRepo.transactions).To(Equal(1))
		})
	})

	Describe("GetTool and DeleteTool", func() {
		It("should get then delete a tool", func() {
			created, err := service.CreateTool(ctx, validCreateDTO())
			Expect(err).NotTo(HaveOccurred())

			got, err := service.GetTool(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("GitHub Enterprise"))

			Expect(service.DeleteTool(ctx, created.ID)).To(Succeed())

			_, err = service.GetTool(ctx, created.ID)
			expectAppError(err, http.StatusNotFound)

			err = service.DeleteTool(ctx, created.ID)
			expectAppError(err, http.StatusNotFound)
		})
	})

	Describe("ListTools", func() {
		It("should apply default paging and parse the status", func() {
			_, err := service.ListTools(ctx, tool.ListToolsQuery{Status: strPtr("ACTIVE"), Vendor: strPtr("git")})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastFilter.Limit).To(Equal(tool.DefaultListLimit))
			Expect(mockRepo.lastFilter.Skip).To(Equal(0))
			Expect(*mockRepo.lastFilter.Status).To(Equal(enum.ToolStatusActive))
			Expect(mockRepo.lastFilter.Vendor).To(Equal("git"))
		})

		It("should return an empty list rather than nil", func() {
			tools, err := service.ListTools(ctx, tool.ListToolsQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(tools).NotTo(BeNil())
			Expect(tools).To(BeEmpty())
		})

		DescribeTable("rejects invalid parameters",
			func(query tool.ListToolsQuery, field string) {
				_, err := service.ListTools(ctx, query)
				appErr := expectAppError(err, http.StatusUnprocessableEntity)
				Expect(fieldErrors(appErr)).To(ContainElement(field))
			},
			Entry("unknown status", tool.ListToolsQuery{Status: strPtr("retired")}, "status"),
			Entry("negative skip", tool.ListToolsQuery{Skip: intPtr(-1)}, "skip"),
			Entry("zero limit", tool.ListToolsQuery{Limit: intPtr(0)}, "limit"),
			Entry("limit too large", tool.ListToolsQuery{Limit: intPtr(tool.MaxListLimit + 1)}, "limit"),
		)
	})
})
