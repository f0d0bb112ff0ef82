// internal/domain/raw.go
package domain

// RawSalesRow mirrors the sales table as loaded: the order date is still a
// free-form string at this point. The normalizer owns turning it into a
// SalesRecord.
type RawSalesRow struct {
	OrderDate   string  `json:"order_date" db:"order_date"`
	ProductName string  `json:"product_name" db:"product_name"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	Sales       float64 `json:"sales" db:"sales"`
}
