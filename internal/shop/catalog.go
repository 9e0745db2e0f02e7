package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/techshop/internal/database"
	"github.com/mrlokans/techshop/internal/entities"
)

// Catalog serves product listings.
type Catalog struct {
	products *database.Table[entities.Product]
}

// NewCatalog creates a catalog over the store's products table.
func NewCatalog(store *database.Store) *Catalog {
	return &Catalog{products: database.For[entities.Product](store)}
}

// Products returns the full catalog.
func (c *Catalog) Products(ctx context.Context) ([]entities.Product, error) {
	return c.products.GetAll(ctx)
}

// ByCategory returns the products of one category.
func (c *Catalog) ByCategory(ctx context.Context, category entities.ProductCategory) ([]entities.Product, error) {
	return c.products.GetWhere(ctx, database.Eq("category", category))
}

// InStock returns the products that can currently be ordered.
func (c *Catalog) InStock(ctx context.Context) ([]entities.Product, error) {
	return c.products.GetFiltered(ctx, database.Match(func(p entities.Product) bool {
		return p.InStock
	}))
}

// Search returns products whose name or description contains query,
// ignoring case.
func (c *Catalog) Search(ctx context.Context, query string) ([]entities.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Products(ctx)
	}
	return c.products.GetFiltered(ctx, database.Match(func(p entities.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}))
}

// Product looks up a single product.
func (c *Catalog) Product(ctx context.Context, id uint) (entities.Product, bool) {
	return c.products.GetByKey(ctx, id)
}

// Save inserts a new product or overwrites an existing one. A product
// carrying an ID that is not stored yet is inserted with that ID.
func (c *Catalog) Save(ctx context.Context, p *entities.Product) error {
	if p.ID != 0 {
		updated, err := c.products.Update(ctx, p)
		if err != nil {
			return err
		}
		if updated {
			return nil
		}
	}

	added, err := c.products.Add(ctx, p)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("save product %q: no row inserted", p.Name)
	}
	return nil
}

// Remove deletes a product by ID and reports whether it existed.
func (c *Catalog) Remove(ctx context.Context, id uint) (bool, error) {
	return c.products.DeleteByKey(ctx, id)
}
