// internal/config/config.go
package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	App       AppConfig
	Cache     CacheConfig
	Inventory InventoryConfig
	Forecast  ForecastConfig
}

// AppConfig selects the sales data source. When SalesCSVPath is set the
// server reads that file instead of Postgres, which keeps local demo runs
// database-free.
type AppConfig struct {
	SalesCSVPath string
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

// InventoryConfig holds the reorder policy constants. Defaults mirror the
// business policy used by the planning team: 7-day lead time, 50 per order
// placed, 2 per unit-year held.
type InventoryConfig struct {
	LeadTimeDays float64
	OrderingCost float64
	HoldingCost  float64

	// Simulated stock draw bounds [StockMin, StockMax) and the seed used to
	// make the draw reproducible across runs.
	StockSeed int64
	StockMin  int
	StockMax  int
}

// ForecastConfig bounds the demand forecasting engine.
type ForecastConfig struct {
	HorizonDays      int
	MinObservations  int
	MaxFitIterations int
	FitTimeoutMillis int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "supplychain")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("APP_SALES_CSV_PATH", "")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
		viper.SetDefault("INVENTORY_LEAD_TIME_DAYS", 7.0)
		viper.SetDefault("INVENTORY_ORDERING_COST", 50.0)
		viper.SetDefault("INVENTORY_HOLDING_COST", 2.0)
		viper.SetDefault("INVENTORY_STOCK_SEED", 42)
		viper.SetDefault("INVENTORY_STOCK_MIN", 10)
		viper.SetDefault("INVENTORY_STOCK_MAX", 150)
		viper.SetDefault("FORECAST_HORIZON_DAYS", 30)
		viper.SetDefault("FORECAST_MIN_OBSERVATIONS", 10)
		viper.SetDefault("FORECAST_MAX_FIT_ITERATIONS", 25)
		viper.SetDefault("FORECAST_FIT_TIMEOUT_MILLIS", 2000)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			App: AppConfig{
				SalesCSVPath: viper.GetString("APP_SALES_CSV_PATH"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				DashboardTTLSeconds: viper.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
			},
			Inventory: InventoryConfig{
				LeadTimeDays: viper.GetFloat64("INVENTORY_LEAD_TIME_DAYS"),
				OrderingCost: viper.GetFloat64("INVENTORY_ORDERING_COST"),
				HoldingCost:  viper.GetFloat64("INVENTORY_HOLDING_COST"),
				StockSeed:    viper.GetInt64("INVENTORY_STOCK_SEED"),
				StockMin:     viper.GetInt("INVENTORY_STOCK_MIN"),
				StockMax:     viper.GetInt("INVENTORY_STOCK_MAX"),
			},
			Forecast: ForecastConfig{
				HorizonDays:      viper.GetInt("FORECAST_HORIZON_DAYS"),
				MinObservations:  viper.GetInt("FORECAST_MIN_OBSERVATIONS"),
				MaxFitIterations: viper.GetInt("FORECAST_MAX_FIT_ITERATIONS"),
				FitTimeoutMillis: viper.GetInt("FORECAST_FIT_TIMEOUT_MILLIS"),
			},
		}
	})

	return instance
}

// Validate checks the policy constants that would make the reorder math
// undefined. Called once at startup; a violation here is a deployment bug,
// not a data problem.
func (c *Config) Validate() error {
	if c.Inventory.HoldingCost <= 0 {
		return fmt.Errorf("INVENTORY_HOLDING_COST must be > 0, got %v", c.Inventory.HoldingCost)
	}
	if c.Inventory.LeadTimeDays <= 0 {
		return fmt.Errorf("INVENTORY_LEAD_TIME_DAYS must be > 0, got %v", c.Inventory.LeadTimeDays)
	}
	if c.Inventory.OrderingCost < 0 {
		return fmt.Errorf("INVENTORY_ORDERING_COST must be >= 0, got %v", c.Inventory.OrderingCost)
	}
	if c.Inventory.StockMax <= c.Inventory.StockMin {
		return fmt.Errorf("INVENTORY_STOCK_MAX (%d) must be greater than INVENTORY_STOCK_MIN (%d)",
			c.Inventory.StockMax, c.Inventory.StockMin)
	}
	if c.Forecast.HorizonDays <= 0 {
		return fmt.Errorf("FORECAST_HORIZON_DAYS must be > 0, got %d", c.Forecast.HorizonDays)
	}
	if c.Forecast.MinObservations < 0 {
		return fmt.Errorf("FORECAST_MIN_OBSERVATIONS must be >= 0, got %d", c.Forecast.MinObservations)
	}
	return nil
}
