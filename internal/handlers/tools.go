package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	applog "pizzacost/internal/log"
	"pizzacost/internal/pricelist"
	"pizzacost/internal/views/pages"
)

// maxPriceListBytes bounds uploaded supplier price lists.
const maxPriceListBytes = 5 << 20

// ImportPrices applies an uploaded supplier price list to the user's ingredients.
func ImportPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	ctx := r.Context()
	fail := func(message string) {
		renderComponent(w, r, pages.ToolsPanel(buildWorkspaceSnapshot(r), "", message, nil))
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPriceListBytes)
	if err := r.ParseMultipartForm(maxPriceListBytes); err != nil {
		applog.Debug(ctx, "price list upload rejected", "error", err)
		fail("Upload a price list of at most 5 MB.")
		return
	}

	file, header, err := r.FormFile("price_list")
	if err != nil {
		fail("Choose a price list to import.")
		return
	}
	defer file.Close()

	format, err := pricelist.DetectFormat(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		fail("Only CSV, XLSX and PDF price lists are supported.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		applog.Error(ctx, "failed to read price list upload", "error", err)
		fail("We couldn't read that file. Please try again.")
		return
	}

	result, err := pricelist.Parse(format, data)
	if err != nil {
		applog.Debug(ctx, "price list parse failed", "format", format, "error", err)
		if errors.Is(err, pricelist.ErrEmpty) {
			fail(fmt.Sprintf("%s has no price rows.", header.Filename))
			return
		}
		fail(fmt.Sprintf("We couldn't read %s as a %s price list.", header.Filename, format))
		return
	}

	summary, err := pricelist.Apply(ctx, database, userID, result)
	if err != nil {
		applog.Error(ctx, "failed to apply price list", "error", err)
		fail("We couldn't update your ingredients. Please try again.")
		return
	}

	message := fmt.Sprintf("Imported %s: %d ingredients priced.", header.Filename, summary.Total())
	renderComponent(w, r, pages.ToolsPanel(buildWorkspaceSnapshot(r), message, "", &summary))
}
