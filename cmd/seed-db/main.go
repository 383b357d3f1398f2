package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/ebarkhatov/shopkeep/internal/domain/category"
	"github.com/ebarkhatov/shopkeep/internal/domain/product"
	"github.com/ebarkhatov/shopkeep/internal/domain/user"
	"github.com/ebarkhatov/shopkeep/internal/storage/postgres"
)

type catalogJSON struct {
	Users []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"users"`
	Categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
	Products []struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		CategoryID  string          `json:"categoryId"`
	} `json:"products"`
}

func main() {
	var (
		databaseURL string
		catalogFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogFile, "catalog-file", "db/seed/catalog.json", "path to catalog JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, catalogFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, catalogFile string) error {
	slog.Info("reading catalog file", slog.String("path", catalogFile))

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog file")
	}

	var catalog catalogJSON
	if err := json.Unmarshal(data, &catalog); err != nil {
		return errors.Wrap(err, "parse catalog JSON")
	}

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

	if err := seedUsers(ctx, postgres.NewUserRepository(pool), catalog); err != nil {
		return errors.Wrap(err, "seed users")
	}
	if err := seedCategories(ctx, postgres.NewCategoryRepository(pool), catalog); err != nil {
		return errors.Wrap(err, "seed categories")
	}
	if err := seedProducts(ctx, postgres.NewProductRepository(pool), catalog); err != nil {
		return errors.Wrap(err, "seed products")
	}

	return nil
}

func seedUsers(ctx context.Context, repo *postgres.UserRepository, catalog catalogJSON) error {
	slog.Info("seeding users", slog.Int("count", len(catalog.Users)))

	for _, u := range catalog.Users {
		err := repo.Upsert(ctx, &user.User{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
		})
		if err != nil {
			return errors.Wrapf(err, "upsert user %s", u.ID)
		}

		slog.Info("upserted user", slog.String("id", u.ID), slog.String("name", u.Name))
	}

	return nil
}

func seedCategories(ctx context.Context, repo *postgres.CategoryRepository, catalog catalogJSON) error {
	slog.Info("seeding categories", slog.Int("count", len(catalog.Categories)))

	for _, c := range catalog.Categories {
		if err := repo.Upsert(ctx, &category.Category{ID: c.ID, Name: c.Name}); err != nil {
			return errors.Wrapf(err, "upsert category %s", c.ID)
		}

		slog.Info("upserted category", slog.String("id", c.ID), slog.String("name", c.Name))
	}

	return nil
}

func seedProducts(ctx context.Context, repo *postgres.ProductRepository, catalog catalogJSON) error {
	slog.Info("seeding products", slog.Int("count", len(catalog.Products)))

	for _, p := range catalog.Products {
		err := repo.Upsert(ctx, &product.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			CategoryID:  p.CategoryID,
		})
		if err != nil {
			return errors.Wrapf(err, "upsert product %s", p.ID)
		}

		slog.Info("upserted product", slog.String("id", p.ID), slog.String("name", p.Name))
	}

	return nil
}
