package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
)

// InventoryItem is one stock-keeping unit batch in the warehouse.
//
// Status is derived from Quantity and must never be written independently of
// a quantity change; the inventory service owns that transition.
type InventoryItem struct {
	ID            string             `gorm:"column:id;primaryKey"`
	DrugName      string             `gorm:"column:drug_name;not null"`
	Category      enums.DrugCategory `gorm:"column:category;not null"`
	BatchNumber   string             `gorm:"column:batch_number;not null;index"`
	Manufacturer  string             `gorm:"column:manufacturer;not null"`
	Specification string             `gorm:"column:specification;not null"`
	Quantity      int                `gorm:"column:quantity;not null;default:0"`
	Unit          string             `gorm:"column:unit;not null"`
	Price         decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	ExpiryDate    time.Time          `gorm:"column:expiry_date;not null"`
	InboundDate   time.Time          `gorm:"column:inbound_date;not null"`
	Status        enums.StockStatus  `gorm:"column:status;not null"`
	Location      string             `gorm:"column:location;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
