package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Inventory: InventoryConfig{
			LeadTimeDays: 7,
			OrderingCost: 50,
			HoldingCost:  2,
			StockSeed:    42,
			StockMin:     10,
			StockMax:     150,
		},
		Forecast: ForecastConfig{
			HorizonDays:     30,
			MinObservations: 10,
		},
	}
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero holding cost", func(c *Config) { c.Inventory.HoldingCost = 0 }},
		{"negative holding cost", func(c *Config) { c.Inventory.HoldingCost = -1 }},
		{"zero lead time", func(c *Config) { c.Inventory.LeadTimeDays = 0 }},
		{"negative ordering cost", func(c *Config) { c.Inventory.OrderingCost = -5 }},
		{"inverted stock bounds", func(c *Config) { c.Inventory.StockMin = 150; c.Inventory.StockMax = 10 }},
		{"zero horizon", func(c *Config) { c.Forecast.HorizonDays = 0 }},
		{"negative min observations", func(c *Config) { c.Forecast.MinObservations = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
