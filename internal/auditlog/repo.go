package auditlog

import (
	"context"

	"gorm.io/gorm"

	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/pagination"
)

// Repository manages persistence for security log entries. The trail is
// append-only: entries are created and read, never updated or deleted.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.SecurityLog) error
	List(ctx context.Context, params pagination.Params) ([]models.SecurityLog, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a security log repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.SecurityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns entries in reverse creation order, most recent first.
func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.SecurityLog, error) {
	params = pagination.Normalize(params)

	var entries []models.SecurityLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SecurityLog{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
