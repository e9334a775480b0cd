package inventory

import (
	"testing"

	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		quantity int
		want     enums.StockStatus
	}{
		{quantity: -10, want: enums.StockStatusExpired},
		{quantity: 0, want: enums.StockStatusExpired},
		{quantity: 1, want: enums.StockStatusLowStock},
		{quantity: 199, want: enums.StockStatusLowStock},
		{quantity: 200, want: enums.StockStatusNormal},
		{quantity: 2450, want: enums.StockStatusNormal},
	}

	for _, tc := range cases {
		if got := DeriveStatus(tc.quantity); got != tc.want {
			t.Fatalf("DeriveStatus(%d) = %s, want %s", tc.quantity, got, tc.want)
		}
	}
}
