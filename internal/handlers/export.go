package handlers

import (
	"fmt"
	"net/http"
	"time"

	"pizzacost/internal/export"
	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
)

// ExportPrices streams the owner's price sheet as an XLSX workbook.
func ExportPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	ctx := r.Context()
	recipes, err := store.ListRecipes(ctx, database, userID, "")
	if err != nil {
		applog.Error(ctx, "failed to load recipes for export", "error", err)
		http.Error(w, "unable to export prices", statusForError(err))
		return
	}
	catalog, err := store.LoadCatalog(ctx, database, userID)
	if err != nil {
		applog.Error(ctx, "failed to load catalog for export", "error", err)
		http.Error(w, "unable to export prices", statusForError(err))
		return
	}

	filename := fmt.Sprintf("pizzacost-prices-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.Write(w, recipes, catalog, pricing.formatter.Code()); err != nil {
		applog.Error(ctx, "failed to write price sheet", "error", err)
		return
	}
	applog.Info(ctx, "price sheet exported", "owner", userID, "recipes", len(recipes))
}
