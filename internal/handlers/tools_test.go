package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"pizzacost/models"
)

func uploadRequest(t *testing.T, sm *scs.SessionManager, filename, content string, userID uint) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("price_list", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/app/tools/import-prices", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("HX-Request", "true")
	return authenticateRequest(t, sm, req, userID)
}

func TestImportPricesAppliesCSV(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	owner := seedUser(t, db, "owner@example.com")
	existing := models.Ingredient{OwnerID: owner.ID, Name: "Mussarela", PurchasePrice: 40, PurchaseQuantity: 1, PurchaseUnit: "kg"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}

	csv := "produto;preco;quantidade;unidade\n" +
		"mussarela;45,00;1;kg\n" +
		"Farinha de trigo;25,00;5;kg\n" +
		"Fermento;abc;1;un\n"

	w := httptest.NewRecorder()
	ImportPrices(w, uploadRequest(t, sm, "fornecedor.csv", csv, owner.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "1 created, 1 updated, 1 skipped.") {
		t.Fatalf("expected import summary, got %s", body)
	}
	if !strings.Contains(body, "Line 4") {
		t.Fatalf("expected the invalid line to be reported, got %s", body)
	}

	var reloaded models.Ingredient
	if err := db.First(&reloaded, existing.ID).Error; err != nil {
		t.Fatalf("failed to reload ingredient: %v", err)
	}
	if !almostEqual(reloaded.BaseUnitPrice, 0.045) {
		t.Fatalf("expected repriced mozzarella, got %v", reloaded.BaseUnitPrice)
	}
}

func TestImportPricesRejectsUnsupportedFiles(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	owner := seedUser(t, db, "owner@example.com")

	tests := []struct {
		filename string
		content  string
		want     string
	}{
		{"notes.docx", "whatever", "Only CSV, XLSX and PDF"},
		{"empty.csv", "", "has no price rows"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			w := httptest.NewRecorder()
			ImportPrices(w, uploadRequest(t, sm, tt.filename, tt.content, owner.ID))
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Fatalf("expected %q, got %s", tt.want, w.Body.String())
			}
		})
	}
}
