package tool

import (
	"context"
	"net/http"

	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/transport"
)

type ServiceAPI interface {
	ListTools(ctx context.Context, query ListToolsQuery) ([]*Tool, error)
	GetTool(ctx context.Context, id int64) (*Tool, error)
	CreateTool(ctx context.Context, dto CreateToolDTO) (*Tool, error)
	UpdateTool(ctx context.Context, id int64, dto UpdateToolDTO) (*Tool, error)
	DeleteTool(ctx context.Context, id int64) error
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

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	query, appErr := h.parseListQuery(r)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	tools, err := h.Service.ListTools(r.Context(), query)
	if err != nil {
		h.HandleServiceError(w, r, err, "ListTools")
		return
	}

	h.WriteJSON(w, http.StatusOK, tools)
}

func (h *Handler) parseListQuery(r *http.Request) (ListToolsQuery, *internal.AppError) {
	var (
		query  ListToolsQuery
		appErr *internal.AppError
	)
	if query.CategoryID, appErr = h.QueryInt(r, "category_id"); appErr != nil {
		return query, appErr
	}
	if query.Skip, appErr = h.QueryInt(r, "skip"); appErr != nil {
		return query, appErr
	}
	if query.Limit, appErr = h.QueryInt(r, "limit"); appErr != nil {
		return query, appErr
	}
	query.Status = h.QueryString(r, "status")
	query.Vendor = h.QueryString(r, "vendor")
	query.Search = h.QueryString(r, "search")
	return query, nil
}

func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	tool, err := h.Service.GetTool(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err, "GetTool")
		return
	}

	h.WriteJSON(w, http.StatusOK, tool)
}

func (h *Handler) CreateTool(w http.ResponseWriter, r *http.Request) {
	var dto CreateToolDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	tool, err := h.Service.CreateTool(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err, "CreateTool")
		return
	}

	h.WriteJSON(w, http.StatusCreated, tool)
}

func (h *Handler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	var dto UpdateToolDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	tool, err := h.Service.UpdateTool(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err, "UpdateTool")
		return
	}

	h.WriteJSON(w, http.StatusOK, tool)
}

func (h *Handler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	if err := h.Service.DeleteTool(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, err, "DeleteTool")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
