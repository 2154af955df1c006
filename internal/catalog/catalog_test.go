package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/vending-machine/internal/catalog"
	"github.com/sheikh-saqib/vending-machine/internal/models"
)

func newDefaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Default()...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		c, err := catalog.New(
			models.Product{Code: "Z1", Name: "Last letter", Price: decimal.NewFromInt(1), Stock: 1},
			models.Product{Code: "A1", Name: "First letter", Price: decimal.NewFromInt(1), Stock: 1},
			models.Product{Code: "M5", Name: "Middle", Price: decimal.NewFromInt(1), Stock: 1},
		)
		require.NoError(t, err)

		products := c.AllProducts()
		require.Len(t, products, 3)
		assert.Equal(t, "Z1", products[0].Code)
		assert.Equal(t, "A1", products[1].Code)
		assert.Equal(t, "M5", products[2].Code)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		_, err := catalog.New(
			models.Product{Code: "A1", Name: "One", Price: decimal.NewFromInt(1), Stock: 1},
			models.Product{Code: "A1", Name: "Two", Price: decimal.NewFromInt(1), Stock: 1},
		)
		require.Error(t, err)
		assert.True(t, models.IsErrorCode(err, models.ErrCodeInvalidProduct))
		assert.Contains(t, err.Error(), "duplicate product code")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := catalog.New(models.Product{Code: "A1", Name: "One", Price: decimal.NewFromInt(-1), Stock: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price cannot be negative")
	})

	t.Run("rejects price with fractions of a cent", func(t *testing.T) {
		_, err := catalog.New(models.Product{Code: "A1", Name: "One", Price: decimal.RequireFromString("1.505"), Stock: 1})
		require.Error(t, err)
		assert.True(t, models.IsErrorCode(err, models.ErrCodeInvalidProduct))
		assert.Contains(t, err.Error(), "price must be whole cents")
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := catalog.New(models.Product{Code: "A1", Name: "One", Price: decimal.NewFromInt(1), Stock: -1})
		assert.True(t, models.IsErrorCode(err, models.ErrCodeInvalidProduct))
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := catalog.New(models.Product{Code: "A1", Price: decimal.NewFromInt(1), Stock: 1})
		assert.True(t, models.IsErrorCode(err, models.ErrCodeInvalidProduct))
	})
}

func TestFindProduct(t *testing.T) {
	c := newDefaultCatalog(t)

	p, ok := c.FindProduct("A1")
	require.True(t, ok)
	assert.Equal(t, "Chips crunchy", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 3, p.Stock)

	_, ok = c.FindProduct("Z9")
	assert.False(t, ok)
}

func TestFindProduct_ReflectsLiveStock(t *testing.T) {
	c := newDefaultCatalog(t)

	require.NoError(t, c.DecrementStock("B2"))

	p, ok := c.FindProduct("B2")
	require.True(t, ok)
	assert.Equal(t, 2, p.Stock)
}

func TestDecrementStock(t *testing.T) {
	c := newDefaultCatalog(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.DecrementStock("C3"))
	}

	err := c.DecrementStock("C3")
	require.Error(t, err)
	assert.True(t, models.IsErrorCode(err, models.ErrCodeOutOfStock))

	p, _ := c.FindProduct("C3")
	assert.Equal(t, 0, p.Stock)

	err = c.DecrementStock("Z9")
	assert.True(t, models.IsErrorCode(err, models.ErrCodeInvalidProductCode))
}

func TestRestoreStock(t *testing.T) {
	c := newDefaultCatalog(t)

	require.NoError(t, c.DecrementStock("A1"))
	require.NoError(t, c.RestoreStock("A1"))

	p, _ := c.FindProduct("A1")
	assert.Equal(t, 3, p.Stock)

	assert.True(t, models.IsErrorCode(c.RestoreStock("Z9"), models.ErrCodeInvalidProductCode))
}

func TestAllProducts_ReturnsSnapshot(t *testing.T) {
	c := newDefaultCatalog(t)

	products := c.AllProducts()
	products[0].Stock = 99

	p, _ := c.FindProduct("A1")
	assert.Equal(t, 3, p.Stock)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads products in file order", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.yaml")
		content := `products:
  - code: D4
    name: Gum
    price: "0.75"
    stock: 10
  - code: A1
    name: Chips crunchy
    price: 1.5
    stock: 3
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		products, err := catalog.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "D4", products[0].Code)
		assert.Equal(t, "Gum", products[0].Name)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("0.75")))
		assert.Equal(t, 10, products[0].Stock)
		assert.True(t, products[1].Price.Equal(decimal.RequireFromString("1.5")))

		c, err := catalog.New(products...)
		require.NoError(t, err)
		assert.Len(t, c.AllProducts(), 2)
	})

	t.Run("rejects malformed price", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		content := `products:
  - code: A1
    name: Chips crunchy
    price: cheap
    stock: 3
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := catalog.LoadFile(path)
		require.Error(t, err)
		assert.True(t, models.IsErrorCode(err, models.ErrCodeInvalidProduct))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.LoadFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
