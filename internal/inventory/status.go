package inventory

import "github.com/jiaotianpharma/warehouse-backend/pkg/enums"

// DeriveStatus classifies stock health from the quantity alone. It is the
// single place the thresholds live; every quantity change must route its new
// value through here before persisting.
//
//	quantity <= 0             -> Expired (depleted)
//	quantity <  LowStockThreshold -> LowStock
//	otherwise                 -> Normal
func DeriveStatus(quantity int) enums.StockStatus {
	switch {
	case quantity <= 0:
		return enums.StockStatusExpired
	case quantity < enums.LowStockThreshold:
		return enums.StockStatusLowStock
	default:
		return enums.StockStatusNormal
	}
}
