package rule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
	"github.com/MrJamesThe3rd/spendwise/internal/rule"
)

type Handler struct {
	svc *rule.Service
}

func NewHandler(svc *rule.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Description string            `json:"description"`
	Category    category.Category `json:"category,omitempty"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Suggest(r.Context(), desc)
	if err != nil {
		respond.ServerError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{Description: desc, Category: c})
}

type learnRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := category.Parse(req.Category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), req.Pattern, c); err != nil {
		if errors.Is(err, rule.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		respond.ServerError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}
