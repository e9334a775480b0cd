package enums

import "fmt"

// StockStatus describes the derived stock-health classification of an
// inventory item. It is recomputed from the quantity on every stock change
// and is never settable by callers.
//
// Expired doubles as "depleted": a zero quantity parks the item in Expired
// regardless of its expiry date. The naming is inherited from the legacy
// warehouse system and kept for data compatibility.
type StockStatus string

const (
	StockStatusNormal   StockStatus = "Normal"
	StockStatusLowStock StockStatus = "LowStock"
	StockStatusExpired  StockStatus = "Expired"
)

// StockStatusAll is the sentinel filter value that disables status filtering.
const StockStatusAll = "All"

// LowStockThreshold is the quantity below which an item is flagged LowStock.
const LowStockThreshold = 200

var validStockStatuses = []StockStatus{
	StockStatusNormal,
	StockStatusLowStock,
	StockStatusExpired,
}

// IsValid reports whether the value matches the canonical stock status enum.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// String returns the raw enum value.
func (s StockStatus) String() string {
	return string(s)
}

// ParseStockStatus converts the raw string to StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
