package handlers

import (
	"net/http"

	"github.com/spf13/cast"

	"productstudio/internal/domain"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

// ListImages handles GET /api/images, newest first.
func (a *App) ListImages(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n <= 0 {
			a.error(w, http.StatusBadRequest, "invalid_input", "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	items, err := a.History.ListRecent(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if items == nil {
		items = []domain.GenerationLog{}
	}
	a.json(w, http.StatusOK, items)
}
