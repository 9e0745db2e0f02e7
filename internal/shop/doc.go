// Package shop holds the TechShop application services that sit on top of
// the record store: the product catalog, the shopping cart and customer
// accounts. Each service owns typed tables obtained from one shared
// *database.Store.
//
// # Usage
//
//	store := database.New(database.FromConfig(cfg.Database, gormLogger))
//	defer store.Close()
//
//	catalog := shop.NewCatalog(store)
//	cart := shop.NewCart(store, catalog)
//	item, err := cart.AddProduct(ctx, productID, 1)
package shop

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidEmail    = errors.New("invalid email address")
)
