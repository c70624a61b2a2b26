package analytics

import (
	"context"
	"net/http"

	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/transport"
)

type ServiceAPI interface {
	DepartmentCosts(ctx context.Context, period PeriodQuery) ([]DepartmentCost, error)
	ExpensiveTools(ctx context.Context, query ExpensiveToolsQuery) ([]ExpensiveTool, error)
	ToolsByCategory(ctx context.Context) ([]CategorySummary, error)
	LowUsageTools(ctx context.Context, query LowUsageQuery) ([]LowUsageTool, error)
	VendorSummary(ctx context.Context) ([]VendorSummary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetDepartmentCosts(w http.ResponseWriter, r *http.Request) {
	period, appErr := h.parsePeriod(r)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	rows, err := h.Service.DepartmentCosts(r.Context(), period)
	if err != nil {
		h.HandleServiceError(w, r, err, "GetDepartmentCosts")
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetExpensiveTools(w http.ResponseWriter, r *http.Request) {
	limit, appErr := h.QueryInt(r, "limit")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	rows, err := h.Service.ExpensiveTools(r.Context(), ExpensiveToolsQuery{Limit: limit})
	if err != nil {
		h.HandleServiceError(w, r, err, "GetExpensiveTools")
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetToolsByCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ToolsByCategory(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err, "GetToolsByCategory")
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetLowUsageTools(w http.ResponseWriter, r *http.Request) {
	period, appErr := h.parsePeriod(r)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}
	threshold, appErr := h.QueryInt(r, "threshold")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	rows, err := h.Service.LowUsageTools(r.Context(), LowUsageQuery{PeriodQuery: period, Threshold: threshold})
	if err != nil {
		h.HandleServiceError(w, r, err, "GetLowUsageTools")
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetVendorSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.VendorSummary(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err, "GetVendorSummary")
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) parsePeriod(r *http.Request) (PeriodQuery, *internal.AppError) {
	var (
		period PeriodQuery
		appErr *internal.AppError
	)
	if period.Year, appErr = h.QueryInt(r, "year"); appErr != nil {
		return period, appErr
	}
	if period.Month, appErr = h.QueryInt(r, "month"); appErr != nil {
		return period, appErr
	}
	return period, nil
}
