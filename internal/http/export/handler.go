package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendwise/internal/export"
	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
	httptx "github.com/MrJamesThe3rd/spendwise/internal/http/transaction"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download streams a CSV of the transactions matching the same query
// parameters as the transaction list.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := httptx.ParseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Buffered so a failure can still produce an error status.
	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), filter, &buf)
	if err != nil {
		respond.ServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))
	w.Header().Set("X-Export-Count", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
