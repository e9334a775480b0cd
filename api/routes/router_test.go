package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jiaotianpharma/warehouse-backend/internal/auditlog"
	inventorysvc "github.com/jiaotianpharma/warehouse-backend/internal/inventory"
	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/metrics"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dbCfg := config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	client, err := db.New(context.Background(), dbCfg, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	if err := client.DB().AutoMigrate(&models.InventoryItem{}, &models.SecurityLog{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	auditSvc, err := auditlog.NewService(auditlog.NewRepository(client.DB()), config.AuditConfig{})
	if err != nil {
		t.Fatalf("audit service: %v", err)
	}

	reg := prometheus.NewRegistry()
	inventorySvc, err := inventorysvc.NewService(inventorysvc.NewRepository(client.DB()), client, auditSvc, metrics.NewStoreMetrics(reg), config.AuditConfig{})
	if err != nil {
		t.Fatalf("inventory service: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"

	return NewRouter(cfg, nil, client, inventorySvc, auditSvc, metrics.NewHTTPMetrics(reg), reg)
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, rec.Code)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRouterInventoryRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	payload := []byte(`{
		"drug_name": "Demo Granules",
		"category": "TraditionalMedicine",
		"batch_number": "B20260815",
		"manufacturer": "Demo Pharma",
		"specification": "10g*20",
		"quantity": 500,
		"unit": "box",
		"price": 28.5,
		"expiry_date": "2027-12-31",
		"inbound_date": "2026-08-15",
		"location": "B-02-03"
	}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/inventory", bytes.NewReader(payload))
	req.Header.Set("X-Operator-Name", "wang.fang")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data inventorysvc.ItemDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Data.ID == "" {
		t.Fatalf("expected assigned item id")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/inventory?query=granules", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", rec.Code)
	}
	var listed struct {
		Data  []inventorysvc.ItemDTO `json:"data"`
		Count int                    `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if listed.Count != 1 {
		t.Fatalf("expected 1 matching item got %d", listed.Count)
	}

	adjust := []byte(`{"quantity":350,"direction":"out"}`)
	req = httptest.NewRequest(http.MethodPost, "/v1/inventory/"+created.Data.ID+"/stock", bytes.NewReader(adjust))
	req.Header.Set("X-Operator-Name", "wang.fang")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("adjust: expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	var adjusted struct {
		Data inventorysvc.ItemDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&adjusted); err != nil {
		t.Fatalf("decode adjust response: %v", err)
	}
	if adjusted.Data.Quantity != 150 || adjusted.Data.Status != "LowStock" {
		t.Fatalf("unexpected adjusted item %+v", adjusted.Data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/inventory/trace/B20260815", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("trace: expected 200 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/security-logs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("logs: expected 200 got %d", rec.Code)
	}
	var logs struct {
		Data  []auditlog.EntryDTO `json:"data"`
		Count int                 `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&logs); err != nil {
		t.Fatalf("decode logs response: %v", err)
	}
	if logs.Count != 2 {
		t.Fatalf("expected insert and update audit entries got %d", logs.Count)
	}
	if logs.Data[0].Action != "DATA_UPDATE" || logs.Data[0].Actor != "wang.fang" {
		t.Fatalf("expected newest entry first, got %+v", logs.Data[0])
	}
}

func TestRouterTraceUnknownBatchReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/inventory/trace/NOPE", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
