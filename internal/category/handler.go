package category

import (
	"context"
	"net/http"

	"github.com/techcorp/internal-tools/internal/transport"
)

type ServiceAPI interface {
	GetAllCategories(ctx context.Context) ([]CategoryResponse, error)
	GetCategory(ctx context.Context, id int64) (*CategoryResponse, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err, "GetCategories")
		return
	}

	h.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	category, err := h.Service.GetCategory(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err, "GetCategory")
		return
	}

	h.WriteJSON(w, http.StatusOK, category)
}
