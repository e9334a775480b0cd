package enums

import "fmt"

// StockDirection describes whether a stock adjustment moves quantity into or
// out of the warehouse.
type StockDirection string

const (
	StockDirectionIn  StockDirection = "in"
	StockDirectionOut StockDirection = "out"
)

var validStockDirections = []StockDirection{
	StockDirectionIn,
	StockDirectionOut,
}

// IsValid reports whether the value matches the canonical stock direction enum.
func (d StockDirection) IsValid() bool {
	for _, candidate := range validStockDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// String returns the raw enum value.
func (d StockDirection) String() string {
	return string(d)
}

// ParseStockDirection converts the raw string to StockDirection.
func ParseStockDirection(value string) (StockDirection, error) {
	for _, candidate := range validStockDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock direction %q", value)
}
