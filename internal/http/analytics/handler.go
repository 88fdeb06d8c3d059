package analytics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
)

type Handler struct {
	svc *analytics.Service
	now func() time.Time
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/categories", h.categories)
	r.Get("/monthly", h.monthly)
	r.Get("/comparison", h.comparison)
	r.Get("/insights", h.insights)
	r.Get("/summary", h.summary)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.load(w, r); ok {
		respond.JSON(w, http.StatusOK, toDashboard(d))
	}
}

// categories returns all-time totals unless a month and year are given.
func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	if q.Get("month") == "" && q.Get("year") == "" {
		respond.JSON(w, http.StatusOK, toTotals(d.AllTimeCategories))
		return
	}

	respond.JSON(w, http.StatusOK, toTotals(d.Categories))
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.load(w, r); ok {
		respond.JSON(w, http.StatusOK, toMonthly(d.Monthly))
	}
}

func (h *Handler) comparison(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.load(w, r); ok {
		respond.JSON(w, http.StatusOK, toComparison(d.Comparison))
	}
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.load(w, r); ok {
		respond.JSON(w, http.StatusOK, toInsights(d.Insights))
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.load(w, r); ok {
		respond.JSON(w, http.StatusOK, toSummary(d.Summary))
	}
}

// load writes the error response itself and reports false on failure.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*analytics.Dashboard, bool) {
	period, err := h.period(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	d, err := h.svc.Dashboard(r.Context(), period)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}

		respond.ServerError(w, r, err)

		return nil, false
	}

	return d, true
}

// period reads month (0-11) and year, each defaulting to the current one.
func (h *Handler) period(r *http.Request) (analytics.Period, error) {
	p := analytics.PeriodOf(h.now())
	q := r.URL.Query()

	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("invalid month %q", s)
		}

		p.Month = m
	}

	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("invalid year %q", s)
		}

		p.Year = y
	}

	return p, p.Validate()
}
