package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
)

// demoItems is the fixed demonstration dataset installed on first boot of an
// empty datastore. Quantities straddle the low-stock threshold so the UI has
// both states to render out of the box.
func demoItems() []models.InventoryItem {
	return []models.InventoryItem{
		{
			ID:            uuid.NewString(),
			DrugName:      "复方金银花颗粒",
			Category:      enums.DrugCategoryTraditionalMedicine,
			BatchNumber:   "20251012-A001",
			Manufacturer:  "姣恬制药",
			Specification: "10g*10袋",
			Quantity:      2450,
			Unit:          "盒",
			Price:         decimal.RequireFromString("28.50"),
			ExpiryDate:    time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
			InboundDate:   time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC),
			Status:        DeriveStatus(2450),
			Location:      "A-01-02",
		},
		{
			ID:            uuid.NewString(),
			DrugName:      "感冒灵胶囊",
			Category:      enums.DrugCategoryTraditionalMedicine,
			BatchNumber:   "20250915-B022",
			Manufacturer:  "姣恬制药",
			Specification: "0.5g*24粒",
			Quantity:      120,
			Unit:          "盒",
			Price:         decimal.RequireFromString("15.00"),
			ExpiryDate:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			InboundDate:   time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
			Status:        DeriveStatus(120),
			Location:      "A-02-05",
		},
	}
}
