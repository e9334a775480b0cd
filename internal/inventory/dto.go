package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
)

// ItemDTO represents the inventory item payload returned to clients.
type ItemDTO struct {
	ID            string          `json:"id"`
	DrugName      string          `json:"drug_name"`
	Category      string          `json:"category"`
	BatchNumber   string          `json:"batch_number"`
	Manufacturer  string          `json:"manufacturer"`
	Specification string          `json:"specification"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	ExpiryDate    string          `json:"expiry_date"`
	InboundDate   string          `json:"inbound_date"`
	Status        string          `json:"status"`
	Location      string          `json:"location"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

const dateLayout = "2006-01-02"

// NewItemDTO builds a DTO from the persisted model.
func NewItemDTO(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:            item.ID,
		DrugName:      item.DrugName,
		Category:      string(item.Category),
		BatchNumber:   item.BatchNumber,
		Manufacturer:  item.Manufacturer,
		Specification: item.Specification,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		Price:         item.Price,
		ExpiryDate:    item.ExpiryDate.Format(dateLayout),
		InboundDate:   item.InboundDate.Format(dateLayout),
		Status:        string(item.Status),
		Location:      item.Location,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// NewItemDTOs maps a slice of models preserving order.
func NewItemDTOs(items []models.InventoryItem) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *NewItemDTO(&items[i]))
	}
	return dtos
}
