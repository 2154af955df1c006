package catalog

import (
	"fmt"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/vending-machine/internal/models"
)

type productSeed struct {
	Code  string `koanf:"code"`
	Name  string `koanf:"name"`
	Price string `koanf:"price"`
	Stock int    `koanf:"stock"`
}

type seedFile struct {
	Products []productSeed `koanf:"products"`
}

// LoadFile reads a YAML seed of the form
//
//	products:
//	  - code: A1
//	    name: Chips crunchy
//	    price: "1.50"
//	    stock: 3
func LoadFile(path string) ([]models.Product, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load catalog file %s: %w", path, err)
	}

	var seed seedFile
	if err := k.Unmarshal("", &seed); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}

	products := make([]models.Product, 0, len(seed.Products))
	for _, s := range seed.Products {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, models.NewInvalidProductError(s.Code, err)
		}
		products = append(products, models.Product{
			Code:  s.Code,
			Name:  s.Name,
			Price: price,
			Stock: s.Stock,
		})
	}

	return products, nil
}
