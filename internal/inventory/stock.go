// internal/inventory/stock.go
package inventory

import "math/rand"

// StockProvider answers "how many units of this product are on hand right
// now". A live deployment plugs a warehouse feed in here; the simulated
// provider below stands in for demos and tests.
type StockProvider interface {
	// Reset is called at the start of every evaluation run. Products are
	// then queried exactly once each, in ascending name order.
	Reset()
	CurrentStock(product string) int
}

// SimulatedStockProvider draws stock levels from a seeded PRNG, one draw per
// product in evaluation order. Same seed, same product set, same numbers —
// that reproducibility is what makes the decision table testable.
type SimulatedStockProvider struct {
	seed int64
	min  int
	max  int
	rng  *rand.Rand
}

func NewSimulatedStockProvider(seed int64, min, max int) *SimulatedStockProvider {
	p := &SimulatedStockProvider{seed: seed, min: min, max: max}
	p.Reset()
	return p
}

// Reset rewinds the PRNG so a fresh evaluation run replays the same draws
// instead of continuing the previous run's stream.
func (p *SimulatedStockProvider) Reset() {
	p.rng = rand.New(rand.NewSource(p.seed))
}

// CurrentStock returns a draw in [min, max). The product name is unused; the
// draw order is what ties a product to its value, which is why Evaluate
// walks products in a stable order.
func (p *SimulatedStockProvider) CurrentStock(string) int {
	return p.min + p.rng.Intn(p.max-p.min)
}
