package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/clubops/annonce-backend/internal/controller"
	"github.com/clubops/annonce-backend/internal/model"
	"github.com/clubops/annonce-backend/internal/service"
)

func TestRunImportSynchronous(t *testing.T) {
	dir := t.TempDir()
	content := "banner\nTéléphone;Email\n0612345678;a@example.com\n"
	if err := os.WriteFile(filepath.Join(dir, "export.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewMockContactRepo()
	ctrl := &controller.ImportController{
		ImportService: &service.ImportService{ContactRepo: repo},
	}

	b, _ := json.Marshal(map[string]string{"directory": dir})
	req := httptest.NewRequest("POST", "/imports", bytes.NewReader(b))
	w := httptest.NewRecorder()
	ctrl.RunImport(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res struct {
		Status  string               `json:"status"`
		Reports []model.ImportReport `json:"reports"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Status != "done" {
		t.Errorf("status = %q, want done", res.Status)
	}
	if len(res.Reports) != 1 || res.Reports[0].Created != 1 {
		t.Errorf("unexpected reports: %+v", res.Reports)
	}
	if len(repo.contacts) != 1 {
		t.Errorf("store has %d contacts, want 1", len(repo.contacts))
	}
}

func TestRunImportRequiresDirectory(t *testing.T) {
	t.Setenv("CSV_DOWNLOAD_DIR", "")
	ctrl := &controller.ImportController{
		ImportService: &service.ImportService{ContactRepo: NewMockContactRepo()},
	}

	req := httptest.NewRequest("POST", "/imports", nil)
	w := httptest.NewRecorder()
	ctrl.RunImport(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Result().StatusCode)
	}
}
