package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Simplici0/cabinetry/internal/db"
	"github.com/Simplici0/cabinetry/internal/migrations"
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/pricing"
	"github.com/Simplici0/cabinetry/internal/seed"
	"github.com/Simplici0/cabinetry/internal/store"
)

const sectionBody = `{
	"name": "Island",
	"quantity": "1",
	"cabinets": [{
		"id": 1, "type": "base", "width": 24, "height": 34.5, "depth": 24, "quantity": 1,
		"faces": {"type": "door", "width": 24, "height": 30},
		"boxParts": [{"type": "side", "width": 23, "height": 30, "quantity": 2}],
		"hardware": {"hinges": 2}
	}]
}`

func newTestServer(t *testing.T) (*server, int64) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(database, seed.Config{}); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	st := store.New(database)
	projectID, err := st.CreateProject(context.Background(), "Test kitchen", model.Overrides{})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	reg := prometheus.NewRegistry()
	srv := &server{
		log:      zap.NewNop(),
		store:    st,
		engine:   pricing.New(),
		settings: model.DefaultSettings(),
		metrics:  newMetrics(reg),
		gatherer: reg,
	}
	return srv, projectID
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv.routes(), http.MethodGet, "/health", "")

	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("expected 200 OK, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestProjectCalculateDoesNotPersist(t *testing.T) {
	srv, projectID := newTestServer(t)
	h := srv.routes()

	rr := do(t, h, http.MethodPost, fmt.Sprintf("/projects/%d/calculate", projectID), sectionBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var res pricing.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Totals.UnitPrice <= 0 {
		t.Fatalf("expected a positive unit price, got %v", res.Totals.UnitPrice)
	}
	if res.Category(model.CatHinges).Count != 2 {
		t.Fatalf("expected 2 hinges, got %+v", res.Category(model.CatHinges))
	}
	if res.Totals.UnitPrice != pricing.CeilTo(res.Totals.Amount, 5) {
		t.Fatalf("unit price %v is not the amount %v rounded up to $5", res.Totals.UnitPrice, res.Totals.Amount)
	}

	rr = do(t, h, http.MethodGet, "/sections/1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected no stored section, got %d", rr.Code)
	}

	rr = do(t, h, http.MethodGet, "/metrics", "")
	if !strings.Contains(rr.Body.String(), `cabinetry_calculations_total{outcome="ok"} 1`) {
		t.Fatalf("expected calculation counter in metrics, got: %s", rr.Body.String())
	}
}

func TestProjectCalculateErrors(t *testing.T) {
	srv, projectID := newTestServer(t)
	h := srv.routes()

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown project", "/projects/999/calculate", sectionBody, http.StatusNotFound},
		{"bad id", "/projects/abc/calculate", sectionBody, http.StatusBadRequest},
		{"bad json", fmt.Sprintf("/projects/%d/calculate", projectID), `{"cabinets": [`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.path, tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Fatalf("expected JSON error body, got %q", rr.Body.String())
			}
		})
	}
}

func TestSectionLifecycle(t *testing.T) {
	srv, projectID := newTestServer(t)
	h := srv.routes()

	rr := do(t, h, http.MethodPost, fmt.Sprintf("/projects/%d/sections", projectID), sectionBody)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created model.Section
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode section: %v", err)
	}
	path := fmt.Sprintf("/sections/%d", created.ID)

	rr = do(t, h, http.MethodGet, path+"/result", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any calculation, got %d", rr.Code)
	}

	update := strings.Replace(sectionBody, `"quantity": "1"`, `"quantity": 2, "partsIncluded": {"boxTotal": false}`, 1)
	rr = do(t, h, http.MethodPut, path, update)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 on update, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodGet, path, "")
	var stored model.Section
	if err := json.Unmarshal(rr.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode stored section: %v", err)
	}
	if stored.ProjectID != projectID || stored.Quantity != 2 || stored.PartsIncluded.Included(model.CatBox) {
		t.Fatalf("unexpected stored section: %+v", stored)
	}

	rr = do(t, h, http.MethodPost, path+"/calculate", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 on calculate, got %d: %s", rr.Code, rr.Body.String())
	}
	var snap store.Snapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Result.Totals.TotalPrice != 2*snap.Result.Totals.UnitPrice {
		t.Fatalf("unexpected totals: %+v", snap.Result.Totals)
	}

	rr = do(t, h, http.MethodGet, path+"/result", "")
	var latest store.Snapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &latest); err != nil {
		t.Fatalf("decode latest snapshot: %v", err)
	}
	if latest.ID != snap.ID {
		t.Fatalf("expected latest snapshot %s, got %s", snap.ID, latest.ID)
	}

	rr = do(t, h, http.MethodGet, path+"/result.xlsx", "")
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != xlsxType {
		t.Fatalf("expected xlsx download, got %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetName(0); got != "Summary" {
		t.Fatalf("expected Summary sheet first, got %q", got)
	}
}

func TestHandleSectionPutUnknownSection(t *testing.T) {
	srv, projectID := newTestServer(t)

	body := fmt.Sprintf(`{"projectId": %d, "name": "ghost"}`, projectID)
	req := httptest.NewRequest(http.MethodPut, "/sections/42", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	srv.handleSectionPut(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestMetricsHiddenWhenDisabled(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.gatherer = nil

	rr := do(t, srv.routes(), http.MethodGet, "/metrics", "")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /metrics, got %d", rr.Code)
	}
}
