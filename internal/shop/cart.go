package shop

import (
	"context"
	"fmt"

	"github.com/mrlokans/techshop/internal/database"
	"github.com/mrlokans/techshop/internal/entities"
)

// Cart is the persistent shopping cart. There is one line per product.
type Cart struct {
	items   *database.Table[entities.CartItem]
	catalog *Catalog
}

// NewCart creates a cart that prices lines from catalog.
func NewCart(store *database.Store, catalog *Catalog) *Cart {
	return &Cart{
		items:   database.For[entities.CartItem](store),
		catalog: catalog,
	}
}

// AddProduct puts qty units of a product in the cart, merging with an
// existing line for the same product.
func (c *Cart) AddProduct(ctx context.Context, productID uint, qty int) (*entities.CartItem, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, ok := c.catalog.Product(ctx, productID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	if !product.InStock {
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
	}

	existing, err := c.items.GetWhere(ctx, database.Eq("product_id", productID))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		item := existing[0]
		item.Quantity += qty
		updated, err := c.items.Update(ctx, &item)
		if err != nil {
			return nil, err
		}
		if updated {
			return &item, nil
		}
		// the line was removed since it was read; start a new one
	}

	item := &entities.CartItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       qty,
		UnitPriceCents: product.PriceCents,
	}
	if _, err := c.items.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity changes the quantity of a line. A quantity of zero or less
// removes the line.
func (c *Cart) SetQuantity(ctx context.Context, itemID string, qty int) (bool, error) {
	if qty <= 0 {
		return c.Remove(ctx, itemID)
	}

	item, ok := c.items.GetByKey(ctx, itemID)
	if !ok {
		return false, nil
	}
	item.Quantity = qty
	return c.items.Update(ctx, &item)
}

// Items returns the cart lines.
func (c *Cart) Items(ctx context.Context) ([]entities.CartItem, error) {
	return c.items.GetAll(ctx)
}

// Remove deletes one line.
func (c *Cart) Remove(ctx context.Context, itemID string) (bool, error) {
	return c.items.DeleteByKey(ctx, itemID)
}

// Clear empties the cart and reports whether it held anything.
func (c *Cart) Clear(ctx context.Context) (bool, error) {
	return c.items.DeleteAll(ctx)
}

// Total returns the cart value in cents.
func (c *Cart) Total(ctx context.Context) (int64, error) {
	var total int64
	for item, err := range c.items.Each(ctx) {
		if err != nil {
			return 0, err
		}
		total += item.SubtotalCents()
	}
	return total, nil
}
