package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jiaotianpharma/warehouse-backend/internal/auditlog"
	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
	pkgerrors "github.com/jiaotianpharma/warehouse-backend/pkg/errors"
)

func TestServiceInitSeedsEmptyStoreOnce(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Init(ctx))

	items, err := svc.Query(ctx, Filters{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.EqualValues(t, 1, countLogs(t, client))

	var bootstrap models.SecurityLog
	require.NoError(t, client.DB().First(&bootstrap).Error)
	require.Equal(t, "DB_INIT", bootstrap.Action)

	// second init is a no-op
	require.NoError(t, svc.Init(ctx))
	items, err = svc.Query(ctx, Filters{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.EqualValues(t, 1, countLogs(t, client))
}

func TestServiceInsertAssignsIDAndAppendsAuditEntry(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	before := countLogs(t, client)

	dto, err := svc.Insert(ctx, "zhang.wei", CreateItemInput{
		DrugName:      "Ibuprofen Tablets",
		Category:      enums.DrugCategoryChemicalDrug,
		BatchNumber:   "20251101-C014",
		Manufacturer:  "Test Pharma",
		Specification: "0.2g*24",
		Quantity:      150,
		Unit:          "box",
		Price:         decimal.RequireFromString("12.80"),
		ExpiryDate:    time.Date(2027, 11, 1, 0, 0, 0, 0, time.UTC),
		InboundDate:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		Location:      "B-03-01",
	})
	require.NoError(t, err)
	require.NotEmpty(t, dto.ID)
	require.Equal(t, string(enums.StockStatusLowStock), dto.Status)

	require.EqualValues(t, before+1, countLogs(t, client))

	var entry models.SecurityLog
	require.NoError(t, client.DB().Order("created_at DESC").First(&entry).Error)
	require.Equal(t, "DATA_INSERT", entry.Action)
	require.Equal(t, ModuleName, entry.Module)
	require.Equal(t, "zhang.wei", entry.Actor)
	require.Contains(t, entry.Description, "Ibuprofen Tablets")
	require.Contains(t, entry.TechnicalDetails, dto.ID)
}

func TestServiceInsertStampsConfiguredModuleName(t *testing.T) {
	client := openTestClient(t)
	auditSvc, err := auditlog.NewService(auditlog.NewRepository(client.DB()), config.AuditConfig{})
	require.NoError(t, err)
	svc, err := NewService(NewRepository(client.DB()), client, auditSvc, nil, config.AuditConfig{ModuleName: "Warehouse Ops"})
	require.NoError(t, err)

	_, err = svc.Insert(context.Background(), "zhang.wei", CreateItemInput{
		DrugName:    "Ibuprofen Tablets",
		Category:    enums.DrugCategoryChemicalDrug,
		BatchNumber: "20251101-C015",
		Quantity:    150,
	})
	require.NoError(t, err)

	var entry models.SecurityLog
	require.NoError(t, client.DB().Order("created_at DESC").First(&entry).Error)
	require.Equal(t, "Warehouse Ops", entry.Module)
}

func TestServiceInsertRejectsBadInput(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	cases := []CreateItemInput{
		{Category: enums.DrugCategoryChemicalDrug, Quantity: 1},                              // missing name
		{DrugName: "X", Category: "Cosmetics", Quantity: 1},                                  // bad category
		{DrugName: "X", Category: enums.DrugCategoryRawMaterial, Quantity: -1},               // negative quantity
		{DrugName: "X", Category: enums.DrugCategoryRawMaterial, Price: decimal.New(-1, 0)},  // negative price
	}
	for _, input := range cases {
		_, err := svc.Insert(ctx, "tester", input)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}

	// rejected input must not touch either collection
	require.EqualValues(t, 0, countLogs(t, client))
	var itemCount int64
	require.NoError(t, client.DB().Model(&models.InventoryItem{}).Count(&itemCount).Error)
	require.EqualValues(t, 0, itemCount)
}

func TestServiceAdjustStockInbound(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	item := mustCreateTestItem(t, client, 100, nil)

	dto, err := svc.AdjustStock(ctx, "li.na", AdjustStockInput{
		ItemID:    item.ID,
		Delta:     150,
		Direction: enums.StockDirectionIn,
	})
	require.NoError(t, err)
	require.Equal(t, 250, dto.Quantity)
	require.Equal(t, string(enums.StockStatusNormal), dto.Status)
}

func TestServiceAdjustStockOutboundBelowThreshold(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	item := mustCreateTestItem(t, client, 250, nil)
	before := countLogs(t, client)

	dto, err := svc.AdjustStock(ctx, "li.na", AdjustStockInput{
		ItemID:    item.ID,
		Delta:     100,
		Direction: enums.StockDirectionOut,
	})
	require.NoError(t, err)
	require.Equal(t, 150, dto.Quantity)
	require.Equal(t, string(enums.StockStatusLowStock), dto.Status)

	require.EqualValues(t, before+1, countLogs(t, client))
	var entry models.SecurityLog
	require.NoError(t, client.DB().Order("created_at DESC").First(&entry).Error)
	require.Equal(t, "DATA_UPDATE", entry.Action)
	require.Contains(t, entry.Description, "outbound")
	require.Contains(t, entry.Description, "100")
	require.Contains(t, entry.TechnicalDetails, `"old":250`)
	require.Contains(t, entry.TechnicalDetails, `"new":150`)
}

func TestServiceAdjustStockOutboundClampsToZero(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	item := mustCreateTestItem(t, client, 50, nil)

	dto, err := svc.AdjustStock(ctx, "li.na", AdjustStockInput{
		ItemID:    item.ID,
		Delta:     200,
		Direction: enums.StockDirectionOut,
	})
	require.NoError(t, err)
	require.Equal(t, 0, dto.Quantity)
	require.Equal(t, string(enums.StockStatusExpired), dto.Status)

	reloaded, err := NewRepository(client.DB()).FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 0, reloaded.Quantity)
}

func TestServiceAdjustStockUnknownIDLeavesStoreUntouched(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	mustCreateTestItem(t, client, 100, nil)
	before := countLogs(t, client)

	_, err := svc.AdjustStock(ctx, "li.na", AdjustStockInput{
		ItemID:    "nonexistent-id",
		Delta:     10,
		Direction: enums.StockDirectionIn,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.EqualValues(t, before, countLogs(t, client), "failed adjustment must not append a log entry")
}

func TestServiceAdjustStockValidation(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	item := mustCreateTestItem(t, client, 100, nil)

	_, err := svc.AdjustStock(ctx, "li.na", AdjustStockInput{ItemID: item.ID, Delta: -5, Direction: enums.StockDirectionIn})
	require.Error(t, err)

	_, err = svc.AdjustStock(ctx, "li.na", AdjustStockInput{ItemID: item.ID, Delta: 5, Direction: "sideways"})
	require.Error(t, err)
}

func TestServiceTrace(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	item := mustCreateTestItem(t, client, 400, func(m *models.InventoryItem) {
		m.BatchNumber = "20250915-B022"
	})

	dto, err := svc.Trace(ctx, "20250915-B022")
	require.NoError(t, err)
	require.NotNil(t, dto)
	require.Equal(t, item.ID, dto.ID)

	missing, err := svc.Trace(ctx, "UNKNOWN-BATCH")
	require.NoError(t, err, "absence is not an error")
	require.Nil(t, missing)
}

func TestServiceQueryOrdersNewestFirst(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	older := mustCreateTestItem(t, client, 300, func(m *models.InventoryItem) {
		m.CreatedAt = time.Now().UTC().Add(-time.Hour)
	})
	newer := mustCreateTestItem(t, client, 300, func(m *models.InventoryItem) {
		m.CreatedAt = time.Now().UTC()
	})

	items, err := svc.Query(ctx, Filters{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, newer.ID, items[0].ID)
	require.Equal(t, older.ID, items[1].ID)
}
