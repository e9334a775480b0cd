package inventory

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
)

// Filters narrows inventory listings. Zero values (or the All sentinel for
// the enum filters) disable the corresponding predicate; active predicates
// compose with AND.
type Filters struct {
	Category string
	Status   string
	Query    string
}

func (f Filters) categoryActive() bool {
	return f.Category != "" && f.Category != enums.DrugCategoryAll
}

func (f Filters) statusActive() bool {
	return f.Status != "" && f.Status != enums.StockStatusAll
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so the text filter matches them
// literally.
func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}

// Repository wires together inventory persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create persists a new inventory item.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID loads one item by its identity.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindFirstByBatchNumber returns the first item whose batch number matches
// exactly. Batch numbers are not unique; insertion order decides which row
// wins, matching the traceability contract.
func (r *Repository) FindFirstByBatchNumber(ctx context.Context, batchNumber string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("batch_number = ?", batchNumber).
		Order("created_at DESC, id DESC").
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns items newest first, narrowed by the active filters.
func (r *Repository) List(ctx context.Context, filters Filters) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryItem{})

	if filters.categoryActive() {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.statusActive() {
		query = query.Where("status = ?", filters.Status)
	}
	if text := strings.TrimSpace(filters.Query); text != "" {
		needle := "%" + escapeLike(strings.ToLower(text)) + "%"
		query = query.Where(`LOWER(drug_name) LIKE ? ESCAPE '\' OR LOWER(batch_number) LIKE ? ESCAPE '\'`, needle, needle)
	}

	var items []models.InventoryItem
	if err := query.
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantityStatus replaces the quantity and derived status of one item,
// leaving every other column untouched.
func (r *Repository) UpdateQuantityStatus(ctx context.Context, id string, quantity int, status enums.StockStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity": quantity,
			"status":   status,
		}).Error
}

// Count reports the number of persisted items.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
