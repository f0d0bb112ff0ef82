// internal/inventory/calculator.go
package inventory

import (
	"math"
	"sort"

	"github.com/rakapradana/supplychain-opt/internal/config"
	"github.com/rakapradana/supplychain-opt/internal/domain"
)

// Calculator turns per-product mean daily demand into reorder policy rows:
// reorder point, annual demand, economic order quantity and the binary
// reorder decision against current stock.
type Calculator struct {
	leadTimeDays float64
	orderingCost float64
	holdingCost  float64
	stock        StockProvider
}

func NewCalculator(cfg config.InventoryConfig, stock StockProvider) *Calculator {
	if stock == nil {
		stock = NewSimulatedStockProvider(cfg.StockSeed, cfg.StockMin, cfg.StockMax)
	}
	return &Calculator{
		leadTimeDays: cfg.LeadTimeDays,
		orderingCost: cfg.OrderingCost,
		holdingCost:  cfg.HoldingCost,
		stock:        stock,
	}
}

// Profile computes the policy metrics for a single product given its mean
// daily demand and current stock. Every formula here is the classical
// single-item model:
//
//	reorder point = avg daily demand x lead time
//	annual demand = avg daily demand x 365
//	EOQ           = sqrt(2 x annual demand x ordering cost / holding cost)
//
// EOQ(0) = 0: a product with no demand orders nothing.
func (c *Calculator) Profile(product string, avgDailyDemand float64, currentStock int) domain.ProductInventoryProfile {
	reorderPoint := avgDailyDemand * c.leadTimeDays
	annualDemand := avgDailyDemand * 365
	eoq := math.Sqrt((2 * annualDemand * c.orderingCost) / c.holdingCost)

	decision := domain.DecisionNoAction
	if float64(currentStock) <= reorderPoint {
		decision = domain.DecisionReorder
	}

	return domain.ProductInventoryProfile{
		ProductName:        product,
		AverageDailyDemand: avgDailyDemand,
		ReorderPoint:       reorderPoint,
		AnnualDemand:       annualDemand,
		EOQ:                eoq,
		CurrentStock:       currentStock,
		Decision:           decision,
	}
}

// Evaluate runs the policy over every product. Products are walked in
// ascending name order and the stock provider is reset first, so repeated
// runs over the same demand data produce identical tables.
func (c *Calculator) Evaluate(meanDailyDemand map[string]float64) *domain.DecisionTable {
	products := make([]string, 0, len(meanDailyDemand))
	for product := range meanDailyDemand {
		products = append(products, product)
	}
	sort.Strings(products)

	c.stock.Reset()

	table := &domain.DecisionTable{
		Profiles: make([]domain.ProductInventoryProfile, 0, len(products)),
	}
	for _, product := range products {
		profile := c.Profile(product, meanDailyDemand[product], c.stock.CurrentStock(product))
		if profile.Decision == domain.DecisionReorder {
			table.ReorderCount++
		}
		table.Profiles = append(table.Profiles, profile)
	}

	return table
}
