package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jiaotianpharma/warehouse-backend/internal/auditlog"
	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
)

func openTestClient(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	if err := client.DB().AutoMigrate(&models.InventoryItem{}, &models.SecurityLog{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return client
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	client := openTestClient(t)
	auditRepo := auditlog.NewRepository(client.DB())
	auditSvc, err := auditlog.NewService(auditRepo, config.AuditConfig{})
	if err != nil {
		t.Fatalf("audit service: %v", err)
	}
	svc, err := NewService(NewRepository(client.DB()), client, auditSvc, nil, config.AuditConfig{})
	if err != nil {
		t.Fatalf("inventory service: %v", err)
	}
	return svc, client
}

func mustCreateTestItem(t *testing.T, client *db.Client, quantity int, mutate func(*models.InventoryItem)) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		ID:            uuid.NewString(),
		DrugName:      fmt.Sprintf("Test Drug %s", uuid.NewString()[:8]),
		Category:      enums.DrugCategoryChemicalDrug,
		BatchNumber:   fmt.Sprintf("B-%s", uuid.NewString()[:8]),
		Manufacturer:  "Test Pharma",
		Specification: "10mg*20",
		Quantity:      quantity,
		Unit:          "box",
		Price:         decimal.RequireFromString("9.90"),
		ExpiryDate:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		InboundDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:        DeriveStatus(quantity),
		Location:      "T-01-01",
	}
	if mutate != nil {
		mutate(item)
	}
	if err := client.DB().Create(item).Error; err != nil {
		t.Fatalf("create test item: %v", err)
	}
	return item
}

func countLogs(t *testing.T, client *db.Client) int64 {
	t.Helper()
	var count int64
	if err := client.DB().Model(&models.SecurityLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return count
}
