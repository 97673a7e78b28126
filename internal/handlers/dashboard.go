package handlers

import (
	"net/http"

	applog "barboard/internal/log"
	"barboard/internal/views/pages"
)

// Dashboard renders the admin shell listing every management area.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := pages.Dashboard(currentAdminName(r), pages.DashboardSections())
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
