package models

import "github.com/shopspring/decimal"

// Base is an air base that operations depart from and arrive at
type Base struct {
	ID        string          // BASE-n
	Name      string          // Display name
	Latitude  decimal.Decimal // Fixed precision, as listed in the catalog
	Longitude decimal.Decimal // Fixed precision, as listed in the catalog
}

// BaseID returns the identifier of the n-th base (1-based)
func BaseID(n int) string {
	return formatID("BASE", n)
}
