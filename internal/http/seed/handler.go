package seed

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
	"github.com/MrJamesThe3rd/spendwise/internal/seed"
)

type Handler struct {
	svc *seed.Service
	now func() time.Time
}

func NewHandler(svc *seed.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.seed)
}

type seedResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Transactions int    `json:"transactions"`
	Budgets      int    `json:"budgets"`
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Seed(r.Context(), h.now())
	if err != nil {
		respond.ServerError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, seedResponse{
		Success:      true,
		Message:      "Default data seeded successfully",
		Transactions: res.Transactions,
		Budgets:      res.Budgets,
	})
}
