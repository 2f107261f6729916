package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"pizzacost/internal/export"
)

func TestExportPricesStreamsWorkbook(t *testing.T) {
	ownerID := withMockDatabase(t)
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req := authenticateRequest(t, sm, httptest.NewRequest(http.MethodGet, "/app/export/prices.xlsx", nil), ownerID)
	w := httptest.NewRecorder()
	ExportPrices(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected an attachment, got %q", cd)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(export.SheetName)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 1+3*5 {
		t.Fatalf("expected a header and fifteen rows, got %d", len(rows))
	}
	if rows[0][0] != export.Header[0] {
		t.Fatalf("unexpected header %v", rows[0])
	}
}
