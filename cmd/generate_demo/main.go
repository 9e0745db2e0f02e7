// Command generate_demo creates a TechShop database filled with a sample catalog.
// Usage: go run ./cmd/generate_demo [--db path/to/techShop.db3] [--driver mattn|modernc] [--keep]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/techshop/internal/config"
	"github.com/mrlokans/techshop/internal/database"
	"github.com/mrlokans/techshop/internal/entities"
	"github.com/mrlokans/techshop/internal/logging"
	"github.com/mrlokans/techshop/internal/shop"
)

type options struct {
	dbPath string
	driver string
	keep   bool
}

func main() {
	if err := newRootCommand(config.NewConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "generate_demo",
		Short: "Create a demo TechShop database",
		Long:  "Creates the TechShop database file and seeds it with a sample product catalog and a demo account.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.dbPath, "db", cfg.Database.FilePath(), "path to the database file")
	cmd.Flags().StringVar(&opts.driver, "driver", cfg.Database.Driver, "sqlite engine (mattn|modernc)")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "keep existing data instead of starting fresh")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("Generating demo database", zap.String("path", opts.dbPath), zap.String("driver", opts.driver))

	if !opts.keep {
		if err := os.Remove(opts.dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	dbCfg := cfg.Database
	dbCfg.Path = opts.dbPath
	dbCfg.Driver = opts.driver
	store := database.New(database.FromConfig(dbCfg, logging.NewGormLogger(log, logging.ParseGormLevel(dbCfg.LogLevel))))
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	catalog := shop.NewCatalog(store)
	saved := 0
	for _, p := range demoProducts() {
		if err := catalog.Save(ctx, &p); err != nil {
			log.Error("Failed to save product", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		saved++
		log.Debug("Saved product", zap.Uint("id", p.ID), zap.String("name", p.Name))
	}

	accounts := shop.NewAccounts(store)
	if _, found, err := accounts.ByEmail(ctx, demoEmail); err != nil {
		return err
	} else if !found {
		if _, err := accounts.Register(ctx, demoEmail, "Demo Shopper"); err != nil {
			return fmt.Errorf("failed to create demo account: %w", err)
		}
	}

	log.Info("Demo database generated", zap.Int("products", saved))
	return nil
}

const demoEmail = "demo@techshop.example"

func demoProducts() []entities.Product {
	return []entities.Product{
		{
			Name:        "UltraBook Pro 14",
			Description: "14-inch laptop with 16 GB RAM and 1 TB SSD.",
			Category:    entities.CategoryLaptops,
			PriceCents:  149900,
			InStock:     true,
			Rating:      4.7,
		},
		{
			Name:        "WorkStation 16",
			Description: "16-inch performance laptop for creative work.",
			Category:    entities.CategoryLaptops,
			PriceCents:  219900,
			InStock:     false,
			Rating:      4.5,
		},
		{
			Name:        "Pixel Phone 8",
			Description: "6.2-inch Android phone with a 50 MP camera.",
			Category:    entities.CategoryPhones,
			PriceCents:  69900,
			InStock:     true,
			Rating:      4.4,
		},
		{
			Name:        "Galaxy Fold",
			Description: "Foldable phone with a 7.6-inch inner display.",
			Category:    entities.CategoryPhones,
			PriceCents:  179900,
			InStock:     true,
			Rating:      4.1,
		},
		{
			Name:        "Studio Headphones",
			Description: "Over-ear noise cancelling headphones.",
			Category:    entities.CategoryAudio,
			PriceCents:  34900,
			InStock:     true,
			Rating:      4.8,
		},
		{
			Name:        "Pocket Speaker",
			Description: "Waterproof Bluetooth speaker.",
			Category:    entities.CategoryAudio,
			PriceCents:  7900,
			InStock:     true,
			Rating:      4.2,
		},
		{
			Name:        "USB-C Charger 65W",
			Description: "GaN charger for laptops and phones.",
			Category:    entities.CategoryAccessories,
			PriceCents:  4900,
			InStock:     true,
			Rating:      4.6,
		},
		{
			Name:        "Laptop Sleeve",
			Description: "Padded sleeve for 13 to 14 inch laptops.",
			Category:    entities.CategoryAccessories,
			PriceCents:  2900,
			InStock:     false,
			Rating:      4.0,
		},
	}
}
