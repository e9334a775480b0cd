package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jiaotianpharma/warehouse-backend/internal/auditlog"
	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	pkgerrors "github.com/jiaotianpharma/warehouse-backend/pkg/errors"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
	"github.com/jiaotianpharma/warehouse-backend/pkg/metrics"
)

// ModuleName is the subsystem label stamped on inventory audit entries when
// no override is configured.
const ModuleName = "Inventory Management"

const (
	actionInit   = "DB_INIT"
	actionInsert = "DATA_INSERT"
	actionUpdate = "DATA_UPDATE"
)

// Service exposes the warehouse inventory operations. Every mutating
// operation appends exactly one security log entry inside the same
// transaction as the data change.
type Service interface {
	Init(ctx context.Context) error
	Query(ctx context.Context, filters Filters) ([]ItemDTO, error)
	Insert(ctx context.Context, actor string, input CreateItemInput) (*ItemDTO, error)
	AdjustStock(ctx context.Context, actor string, input AdjustStockInput) (*ItemDTO, error)
	Trace(ctx context.Context, batchNumber string) (*ItemDTO, error)
}

// CreateItemInput holds the validated payload to create an inventory item.
// Field-level validation happens at the HTTP boundary; the service only
// enforces the invariants the schema cannot express.
type CreateItemInput struct {
	DrugName      string
	Category      enums.DrugCategory
	BatchNumber   string
	Manufacturer  string
	Specification string
	Quantity      int
	Unit          string
	Price         decimal.Decimal
	ExpiryDate    time.Time
	InboundDate   time.Time
	Location      string
}

// AdjustStockInput describes one inbound or outbound stock movement.
type AdjustStockInput struct {
	ItemID    string
	Delta     int
	Direction enums.StockDirection
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	audit      auditlog.Service
	metrics    *metrics.StoreMetrics
	moduleName string
}

// NewService constructs an inventory service instance. The config supplies
// the module label stamped on inventory audit entries.
func NewService(repo *Repository, dbClient *db.Client, audit auditlog.Service, storeMetrics *metrics.StoreMetrics, cfg config.AuditConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit log service required")
	}
	moduleName := strings.TrimSpace(cfg.ModuleName)
	if moduleName == "" {
		moduleName = ModuleName
	}
	return &service{
		repo:       repo,
		dbClient:   dbClient,
		audit:      audit,
		metrics:    storeMetrics,
		moduleName: moduleName,
	}, nil
}

// Init seeds the demonstration dataset into an empty datastore and records
// the bootstrap audit entry. Re-running against a populated store is a no-op.
func (s *service) Init(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("init", time.Since(start), err) }()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, item := range demoItems() {
			if err := repo.Create(ctx, &item); err != nil {
				return err
			}
		}
		_, err := s.audit.WithTx(tx).Record(ctx, auditlog.RecordEntryInput{
			Action:      actionInit,
			Module:      "System Core",
			Description: "database initialized",
			Details:     map[string]string{"status": "initialized"},
		})
		return err
	})
}

// Query lists inventory items newest first, narrowed by the active filters.
func (s *service) Query(ctx context.Context, filters Filters) (dtos []ItemDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("query_inventory", time.Since(start), err) }()

	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return NewItemDTOs(items), nil
}

// Insert persists a new item with a fresh id and appends the DATA_INSERT
// audit entry in the same transaction.
func (s *service) Insert(ctx context.Context, actor string, input CreateItemInput) (dto *ItemDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("insert_inventory", time.Since(start), err) }()

	if strings.TrimSpace(input.DrugName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drug_name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", input.Category))
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	item := &models.InventoryItem{
		ID:            uuid.NewString(),
		DrugName:      input.DrugName,
		Category:      input.Category,
		BatchNumber:   input.BatchNumber,
		Manufacturer:  input.Manufacturer,
		Specification: input.Specification,
		Quantity:      input.Quantity,
		Unit:          input.Unit,
		Price:         input.Price,
		ExpiryDate:    input.ExpiryDate,
		InboundDate:   input.InboundDate,
		Status:        DeriveStatus(input.Quantity),
		Location:      input.Location,
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, item); err != nil {
			return err
		}
		_, err := s.audit.WithTx(tx).Record(ctx, auditlog.RecordEntryInput{
			Actor:       actor,
			Action:      actionInsert,
			Module:      s.moduleName,
			Description: fmt.Sprintf("new inventory entry: %s", item.DrugName),
			Details:     NewItemDTO(item),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewItemDTO(item), nil
}

// AdjustStock applies one stock movement to the item, re-derives its status,
// and appends the DATA_UPDATE audit entry in the same transaction.
//
// Outbound deltas larger than the current quantity clamp to zero rather than
// erroring; over-withdrawal is permitted warehouse policy.
func (s *service) AdjustStock(ctx context.Context, actor string, input AdjustStockInput) (dto *ItemDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("update_stock", time.Since(start), err) }()

	if input.Delta < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be negative")
	}
	if !input.Direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid direction %q", input.Direction))
	}

	var updated *models.InventoryItem
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindByID(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return err
		}

		oldQuantity := item.Quantity
		newQuantity := oldQuantity + input.Delta
		if input.Direction == enums.StockDirectionOut {
			newQuantity = oldQuantity - input.Delta
			if newQuantity < 0 {
				newQuantity = 0
			}
		}

		status := DeriveStatus(newQuantity)
		if err := repo.UpdateQuantityStatus(ctx, item.ID, newQuantity, status); err != nil {
			return err
		}

		item.Quantity = newQuantity
		item.Status = status
		updated = item

		_, err = s.audit.WithTx(tx).Record(ctx, auditlog.RecordEntryInput{
			Actor:       actor,
			Action:      actionUpdate,
			Module:      s.moduleName,
			Description: fmt.Sprintf("%s operation: %s, change: %d", directionLabel(input.Direction), item.DrugName, input.Delta),
			Details:     map[string]int{"old": oldQuantity, "new": newQuantity},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewItemDTO(updated), nil
}

// Trace returns the first item matching the batch number, or nil when no
// batch matches. Absence is not an error at this layer.
func (s *service) Trace(ctx context.Context, batchNumber string) (dto *ItemDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("get_trace", time.Since(start), err) }()

	item, err := s.repo.FindFirstByBatchNumber(ctx, batchNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return NewItemDTO(item), nil
}

func directionLabel(direction enums.StockDirection) string {
	if direction == enums.StockDirectionIn {
		return "inbound"
	}
	return "outbound"
}
