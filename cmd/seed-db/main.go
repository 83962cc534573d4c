// Command seed-db loads a product catalog JSON file and an API key into
// the database. It is idempotent and safe to re-run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplane/orders-api/internal/domain/auth"
	"github.com/shoplane/orders-api/internal/domain/product"
	"github.com/shoplane/orders-api/internal/handler"
	"github.com/shoplane/orders-api/internal/storage/postgres"
)

type productJSON struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
		apiKey       string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.StringVar(&apiKey, "api-key", "", "API key to seed (or ORDERS_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or ORDERS_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKey == "" {
		apiKey = os.Getenv("ORDERS_SEED_API_KEY")
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("ORDERS_API_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, apiKey, pepper string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, postgres.NewProductRepository(pool), productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if apiKey != "" {
		if err := seedAPIKey(ctx, postgres.NewAPIKeyRepository(pool), apiKey, pepper); err != nil {
			return errors.Wrap(err, "seed api key")
		}
	}

	return nil
}

func seedProducts(ctx context.Context, repo *postgres.ProductRepository, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	var products []productJSON
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products file")
	}

	seeded := 0
	for _, p := range products {
		err := repo.Create(ctx, &product.Product{
			ID:        uuid.New().String(),
			Name:      p.Name,
			SKU:       p.SKU,
			Price:     p.Price,
			Category:  p.Category,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			// Existing SKUs are left untouched on re-runs.
			if errors.Is(err, product.ErrDuplicateSKU) {
				continue
			}
			return errors.Wrapf(err, "insert product %q", p.SKU)
		}
		seeded++
	}

	slog.Info("products seeded", slog.Int("count", seeded), slog.Int("total", len(products)))
	return nil
}

func seedAPIKey(ctx context.Context, repo *postgres.APIKeyRepository, key, pepper string) error {
	err := repo.Insert(ctx, &auth.APIKey{
		ID:      uuid.New().String(),
		KeyHash: handler.HashKey([]byte(pepper), key),
		Name:    "seed",
	})
	if err != nil {
		return err
	}

	slog.Info("api key seeded")
	return nil
}
