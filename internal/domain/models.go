// internal/domain/models.go
package domain

import "time"

// SalesRecord is a single order line after date normalization. OrderDate is
// nil when the raw date string could not be parsed; the record itself is
// kept so quantity/revenue totals still see it.
type SalesRecord struct {
	OrderDate   *time.Time `json:"order_date"`
	ProductName string     `json:"product_name"`
	Quantity    float64    `json:"quantity"`
	Sales       float64    `json:"sales"`
}

// DemandPoint is one (date, total quantity) observation.
type DemandPoint struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// DailyDemandSeries is a chronologically ordered demand series with unique
// dates. Product is empty for the all-products aggregate.
type DailyDemandSeries struct {
	Product string        `json:"product,omitempty"`
	Points  []DemandPoint `json:"points"`
}

// ForecastPoint is one predicted (date, quantity) pair.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
}

// ForecastResult spans the fitted historical range plus the future horizon.
type ForecastResult struct {
	Product      string          `json:"product"`
	Points       []ForecastPoint `json:"points"`
	HorizonDays  int             `json:"horizon_days"`
	Observations int             `json:"observations"`
}

// Decision is the binary reorder outcome for a product.
type Decision string

const (
	DecisionReorder  Decision = "REORDER"
	DecisionNoAction Decision = "NO ACTION"
)

// ProductInventoryProfile is one row of the reorder decision table.
type ProductInventoryProfile struct {
	ProductName        string   `json:"product_name"`
	AverageDailyDemand float64  `json:"average_daily_demand"`
	ReorderPoint       float64  `json:"reorder_point"`
	AnnualDemand       float64  `json:"annual_demand"`
	EOQ                float64  `json:"eoq"`
	CurrentStock       int      `json:"current_stock"`
	Decision           Decision `json:"decision"`
}

// DecisionTable is the full reorder evaluation output, ordered by product
// name, plus the count of products flagged for reorder.
type DecisionTable struct {
	Profiles     []ProductInventoryProfile `json:"profiles"`
	ReorderCount int                       `json:"reorder_count"`
}

// BusinessSummary holds the headline KPI cards.
type BusinessSummary struct {
	TotalOrders     int     `json:"total_orders"`
	TotalQuantity   float64 `json:"total_quantity"`
	TotalRevenue    float64 `json:"total_revenue"`
	UniqueProducts  int     `json:"unique_products"`
	ReorderProducts int     `json:"reorder_products"`
}
