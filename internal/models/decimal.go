package models

import "github.com/shopspring/decimal"

func init() {
	// Money fields serialize as JSON numbers, matching the admin frontend.
	decimal.MarshalJSONWithoutQuotes = true
}
