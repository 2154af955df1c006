package catalog

import (
	"errors"
	"sync"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/vending-machine/internal/ledger"
	"github.com/sheikh-saqib/vending-machine/internal/models"
)

// Catalog holds the machine's products keyed by code.
// Display order is the order the products were given to New.
type Catalog struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*models.Product
}

// Default returns the seed the machine ships with.
func Default() []models.Product {
	return []models.Product{
		{Code: "A1", Name: "Chips crunchy", Price: decimal.RequireFromString("1.50"), Stock: 3},
		{Code: "B2", Name: "Soda pop", Price: decimal.RequireFromString("2.00"), Stock: 3},
		{Code: "C3", Name: "Candy crush", Price: decimal.RequireFromString("1.50"), Stock: 3},
	}
}

// New validates the seed and builds a catalog from it. Codes must be unique.
func New(products ...models.Product) (*Catalog, error) {
	validate := validator.New()

	c := &Catalog{
		order:    make([]string, 0, len(products)),
		products: make(map[string]*models.Product, len(products)),
	}

	for _, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, models.NewInvalidProductError(p.Code, err)
		}
		if p.Price.IsNegative() {
			return nil, models.NewInvalidProductError(p.Code, errors.New("price cannot be negative"))
		}
		if !ledger.IsWholeCents(p.Price) {
			return nil, models.NewInvalidProductError(p.Code, errors.New("price must be whole cents"))
		}
		if _, exists := c.products[p.Code]; exists {
			return nil, models.NewInvalidProductError(p.Code, errors.New("duplicate product code"))
		}

		product := p
		c.order = append(c.order, p.Code)
		c.products[p.Code] = &product
	}

	return c, nil
}

// AllProducts returns a snapshot of every product in display order.
func (c *Catalog) AllProducts() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]models.Product, 0, len(c.order))
	for _, code := range c.order {
		products = append(products, *c.products[code])
	}
	return products
}

// FindProduct returns the product as it is at call time.
func (c *Catalog) FindProduct(code string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[code]
	if !ok {
		return models.Product{}, false
	}
	return *p, true
}

// DecrementStock removes one unit of code. It is the only way a product is sold.
func (c *Catalog) DecrementStock(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[code]
	if !ok {
		return models.NewInvalidProductCodeError(code)
	}
	if p.Stock <= 0 {
		return models.NewOutOfStockError(code)
	}

	p.Stock--
	return nil
}

// RestoreStock puts back one unit taken by DecrementStock when a later purchase step failed.
func (c *Catalog) RestoreStock(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[code]
	if !ok {
		return models.NewInvalidProductCodeError(code)
	}

	p.Stock++
	return nil
}
