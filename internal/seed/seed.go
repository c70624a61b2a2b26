// Package seed loads a small, deterministic sample dataset for development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	categoryDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/category"
	toolDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/tool"
	usageDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/usage"
	userDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/user"
	"github.com/techcorp/internal-tools/internal/core/enum"
	"github.com/techcorp/internal-tools/internal/core/money"
	"gorm.io/gorm"
)

type Options struct {
	// Clear deletes every row before seeding.
	Clear bool
	// Now anchors the generated dates; usage logs cover the month before it.
	Now time.Time
}

type Result struct {
	Categories     int
	Tools          int
	Users          int
	Grants         int
	AccessRequests int
	UsageLogs      int
	CostSnapshots  int
	Skipped        bool
}

// tables in delete order, children first.
var tables = []string{
	"cost_tracking",
	"usage_logs",
	"access_requests",
	"user_tool_access",
	"tools",
	"users",
	"categories",
}

// Run seeds the database in one transaction. Without Clear it does nothing
// when categories already exist.
func Run(ctx context.Context, db *gorm.DB, opts Options, lg *slog.Logger) (Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	var result Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Clear {
			for _, table := range tables {
				if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
					return fmt.Errorf("clear %s: %w", table, err)
				}
			}
			lg.Info("cleared existing data", "tables", len(tables))
		} else {
			var count int64
			if err := tx.Model(&categoryDatamodel.Category{}).Count(&count).Error; err != nil {
				return fmt.Errorf("count categories: %w", err)
			}
			if count > 0 {
				result.Skipped = true
				return nil
			}
		}

		var err error
		result, err = insertAll(tx, opts.Now)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if result.Skipped {
		lg.Info("database already seeded; use --clear to reseed")
	} else {
		lg.Info("seeded sample data",
			"categories", result.Categories,
			"tools", result.Tools,
			"users", result.Users,
			"grants", result.Grants,
			"access_requests", result.AccessRequests,
			"usage_logs", result.UsageLogs,
			"cost_snapshots", result.CostSnapshots)
	}
	return result, nil
}

func strPtr(s string) *string { return &s }

func insertAll(tx *gorm.DB, now time.Time) (Result, error) {
	var res Result

	categories := []*categoryDatamodel.Category{
		{Name: "Development", Description: strPtr("Source control, CI and developer tooling"), ColorHex: "#3b82f6"},
		{Name: "Communication", Description: strPtr("Chat, video and email"), ColorHex: "#10b981"},
		{Name: "Design", Description: strPtr("Design and prototyping"), ColorHex: "#f59e0b"},
		{Name: "Productivity", Description: strPtr("Docs, planning and knowledge bases"), ColorHex: "#8b5cf6"},
		{Name: "Analytics", Description: strPtr("BI and product analytics"), ColorHex: "#ef4444"},
		{Name: "Security", Description: strPtr("Identity and secrets management"), ColorHex: categoryDatamodel.DefaultColorHex},
	}
	if err := tx.Create(&categories).Error; err != nil {
		return res, fmt.Errorf("insert categories: %w", err)
	}
	res.Categories = len(categories)
	byName := make(map[string]int64, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	type toolSeed struct {
		name, vendor, url, category, cost string
		users                               int
		dept                                enum.Department
		status                              enum.ToolStatus
	}
	toolSeeds := []toolSeed{
		{"GitHub Enterprise", "GitHub", "https://github.com", "Development", "21.00", 50, enum.DepartmentEngineering, enum.ToolStatusActive},
		{"Jira Software", "Atlassian", "https://www.atlassian.com/software/jira", "Productivity", "8.15", 65, enum.DepartmentEngineering, enum.ToolStatusActive},
		{"Confluence", "Atlassian", "https://www.atlassian.com/software/confluence", "Productivity", "6.05", 80, enum.DepartmentOperations, enum.ToolStatusActive},
		{"Slack", "Slack Technologies", "https://slack.com", "Communication", "8.75", 120, enum.DepartmentOperations, enum.ToolStatusActive},
		{"Zoom", "Zoom Video", "https://zoom.us", "Communication", "14.99", 95, enum.DepartmentHR, enum.ToolStatusActive},
		{"Figma", "Figma", "https://www.figma.com", "Design", "45.00", 12, enum.DepartmentDesign, enum.ToolStatusActive},
		{"Sketch", "Sketch B.V.", "https://www.sketch.com", "Design", "12.00", 2, enum.DepartmentDesign, enum.ToolStatusDeprecated},
		{"Salesforce", "Salesforce", "https://www.salesforce.com", "Analytics", "150.00", 25, enum.DepartmentSales, enum.ToolStatusActive},
		{"HubSpot", "HubSpot", "https://www.hubspot.com", "Analytics", "90.00", 8, enum.DepartmentMarketing, enum.ToolStatusActive},
		{"Tableau", "Salesforce", "https://www.tableau.com", "Analytics", "70.00", 6, enum.DepartmentFinance, enum.ToolStatusTrial},
		{"1Password", "AgileBits", "https://1password.com", "Security", "7.99", 110, enum.DepartmentEngineering, enum.ToolStatusActive},
	}

	tools := make([]*toolDatamodel.Tool, 0, len(toolSeeds))
	for _, s := range toolSeeds {
		tools = append(tools, &toolDatamodel.Tool{
			Name:             s.name,
			Description:      strPtr(s.name + " for " + string(s.dept)),
			Vendor:           s.vendor,
			WebsiteURL:       strPtr(s.url),
			CategoryID:       byName[s.category],
			MonthlyCost:      money.MustParse(s.cost),
			ActiveUsersCount: s.users,
			OwnerDepartment:  s.dept,
			Status:           s.status,
		})
	}
	if err := tx.Create(&tools).Error; err != nil {
		return res, fmt.Errorf("insert tools: %w", err)
	}
	res.Tools = len(tools)

	hire := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)
	users := []*userDatamodel.User{
		{Name: "Alice Martin", Email: "alice.martin@techcorp.example", Department: enum.DepartmentEngineering, Role: enum.UserRoleAdmin, Status: enum.UserStatusActive, HireDate: &hire},
		{Name: "Bruno Costa", Email: "bruno.costa@techcorp.example", Department: enum.DepartmentEngineering, Role: enum.UserRoleManager, Status: enum.UserStatusActive, HireDate: &hire},
		{Name: "Chloe Durand", Email: "chloe.durand@techcorp.example", Department: enum.DepartmentDesign, Role: enum.UserRoleEmployee, Status: enum.UserStatusActive, HireDate: &hire},
		{Name: "Diego Alvarez", Email: "diego.alvarez@techcorp.example", Department: enum.DepartmentSales, Role: enum.UserRoleEmployee, Status: enum.UserStatusActive, HireDate: &hire},
		{Name: "Emma Weber", Email: "emma.weber@techcorp.example", Department: enum.DepartmentMarketing, Role: enum.UserRoleManager, Status: enum.UserStatusActive, HireDate: &hire},
		{Name: "Farid Haddad", Email: "farid.haddad@techcorp.example", Department: enum.DepartmentFinance, Role: enum.UserRoleEmployee, Status: enum.UserStatusInactive, HireDate: &hire},
	}
	if err := tx.Create(&users).Error; err != nil {
		return res, fmt.Errorf("insert users: %w", err)
	}
	res.Users = len(users)

	admin := users[0]
	grantedAt := now.AddDate(0, -3, 0)
	var grants []*userDatamodel.UserToolAccess
	for i, u := range users[1:] {
		for j, t := range tools {
			if (i+j)%3 != 0 {
				continue
			}
			grant := &userDatamodel.UserToolAccess{
				UserID:    u.ID,
				ToolID:    t.ID,
				GrantedAt: grantedAt,
				GrantedBy: admin.ID,
				Status:    enum.AccessStatusActive,
			}
			if u.Status == enum.UserStatusInactive {
				grant.Revoke(admin.ID, now.AddDate(0, -1, 0))
			}
			grants = append(grants, grant)
		}
	}
	if err := tx.Create(&grants).Error; err != nil {
		return res, fmt.Errorf("insert grants: %w", err)
	}
	res.Grants = len(grants)

	requestedAt := now.AddDate(0, 0, -10)
	requests := []*userDatamodel.AccessRequest{
		{UserID: users[2].ID, ToolID: tools[0].ID, BusinessJustification: "Review design-system pull requests", Status: enum.RequestStatusPending, RequestedAt: requestedAt},
		{UserID: users[3].ID, ToolID: tools[9].ID, BusinessJustification: "Quarterly pipeline dashboards", Status: enum.RequestStatusPending, RequestedAt: requestedAt},
		{UserID: users[4].ID, ToolID: tools[5].ID, BusinessJustification: "Campaign mock-ups", Status: enum.RequestStatusPending, RequestedAt: requestedAt},
	}
	requests[1].Process(enum.RequestStatusApproved, users[1].ID, requestedAt.Add(48*time.Hour), "Approved for Q3")
	requests[2].Process(enum.RequestStatusRejected, users[1].ID, requestedAt.Add(24*time.Hour), "Use the shared Design seat")
	if err := tx.Create(&requests).Error; err != nil {
		return res, fmt.Errorf("insert access requests: %w", err)
	}
	res.AccessRequests = len(requests)

	// Usage in the previous calendar month. Tools from index 5 onwards get
	// little or no usage so the low-usage report has something to show.
	month := usageDatamodel.MonthStart(now).AddDate(0, -1, 0)
	var logs []*usageDatamodel.UsageLog
	for ti, t := range tools {
		sessions := 12 - 2*ti
		if sessions < 0 {
			sessions = 0
		}
		for d := 0; d < sessions; d++ {
			u := users[d%len(users)]
			logs = append(logs, &usageDatamodel.UsageLog{
				UserID:       u.ID,
				ToolID:       t.ID,
				SessionDate:  month.AddDate(0, 0, d),
				UsageMinutes: 30 + 5*d,
				ActionsCount: 10 + d,
			})
		}
	}
	if len(logs) > 0 {
		if err := tx.Create(&logs).Error; err != nil {
			return res, fmt.Errorf("insert usage logs: %w", err)
		}
	}
	res.UsageLogs = len(logs)

	var snapshots []*usageDatamodel.CostTracking
	for _, t := range tools {
		for back := 2; back >= 0; back-- {
			snapshots = append(snapshots, &usageDatamodel.CostTracking{
				ToolID:           t.ID,
				MonthYear:        usageDatamodel.MonthStart(now).AddDate(0, -back, 0),
				TotalMonthlyCost: money.New(t.MonthlyCost.Mul(decimal.NewFromInt(int64(t.ActiveUsersCount)))),
				ActiveUsersCount: t.ActiveUsersCount,
			})
		}
	}
	if err := tx.Create(&snapshots).Error; err != nil {
		return res, fmt.Errorf("insert cost snapshots: %w", err)
	}
	res.CostSnapshots = len(snapshots)

	return res, nil
}
