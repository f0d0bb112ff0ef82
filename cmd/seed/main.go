package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rakapradana/supplychain-opt/internal/cache"
	"github.com/rakapradana/supplychain-opt/internal/config"
	"github.com/rakapradana/supplychain-opt/internal/repository/csvfile"
	"github.com/rakapradana/supplychain-opt/internal/repository/postgres"
	"github.com/rakapradana/supplychain-opt/internal/storage"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Load sales datasets into the database",
		Commands: []*cli.Command{
			{
				Name:  "sales",
				Usage: "Seed the sales table from a CSV export",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Path to the sales CSV file",
						Value:   "./data/seeds/sales.csv",
						EnvVars: []string{"SALES_CSV_PATH"},
					},
					&cli.BoolFlag{
						Name:  "truncate",
						Usage: "Truncate the sales table before loading",
						Value: false,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runSalesSeeder,
			},
			{
				Name:   "download",
				Usage:  "Download sales CSV exports from object storage",
				Flags:  downloadFlags(),
				Action: runDownloader,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSalesSeeder(c *cli.Context) error {
	db, ok := c.Context.Value(dbKey).(*postgres.DB)
	if !ok || db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	path := c.String("file")
	rows, err := csvfile.NewSalesRepository(path).FetchSales(c.Context)
	if err != nil {
		return fmt.Errorf("failed to read sales file: %w", err)
	}

	if err := postgres.NewSalesRepository(db).SaveSales(c.Context, rows, c.Bool("truncate")); err != nil {
		return fmt.Errorf("failed to seed sales: %w", err)
	}

	log.Printf("Seeded %d sales records from %s", len(rows), path)

	// Cached decision tables computed before this load are stale now.
	invalidateDashboardCache(c.Context)
	return nil
}

func invalidateDashboardCache(ctx context.Context) {
	dashboardCache, err := cache.NewDashboardCache(config.Load().Cache)
	if err != nil {
		log.Printf("warning: cache unavailable, skipping invalidation: %v", err)
		return
	}

	if err := dashboardCache.InvalidateAll(ctx); err != nil {
		log.Printf("warning: failed to invalidate dashboard cache: %v", err)
		return
	}

	log.Printf("Invalidated dashboard cache")
}

func downloadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "endpoint", Usage: "S3-compatible endpoint", Required: true, EnvVars: []string{"STORAGE_ENDPOINT"}},
		&cli.StringFlag{Name: "access-key", Usage: "Access key", Required: true, EnvVars: []string{"STORAGE_ACCESS_KEY"}},
		&cli.StringFlag{Name: "secret-key", Usage: "Secret key", Required: true, EnvVars: []string{"STORAGE_SECRET_KEY"}},
		&cli.StringFlag{Name: "bucket", Usage: "Bucket holding sales exports", Required: true, EnvVars: []string{"STORAGE_BUCKET"}},
		&cli.BoolFlag{Name: "use-ssl", Usage: "Use TLS for the storage connection", Value: true},
		&cli.StringFlag{Name: "prefix", Usage: "Object key prefix to download", Value: "sales/"},
		&cli.StringFlag{Name: "dest", Usage: "Destination directory", Value: "./data/seeds"},
	}
}

func runDownloader(c *cli.Context) error {
	client, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  c.String("endpoint"),
		AccessKey: c.String("access-key"),
		SecretKey: c.String("secret-key"),
		Bucket:    c.String("bucket"),
		UseSSL:    c.Bool("use-ssl"),
	})
	if err != nil {
		return err
	}

	destDir := c.String("dest")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure download dir %s: %w", destDir, err)
	}

	objects, err := client.ListObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}

	for _, obj := range objects {
		dest := filepath.Join(destDir, filepath.Base(obj.Key))
		if err := client.DownloadObject(c.Context, obj.Key, dest); err != nil {
			return err
		}
		log.Printf("Downloaded %s (%d bytes) to %s", obj.Key, obj.Size, dest)
	}

	log.Printf("Downloaded %d objects", len(objects))
	return nil
}
