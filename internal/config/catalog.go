package config

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/pkg/normalize"
)

// catalogEntryFile é o formato de cada produto no arquivo de catálogo.
// Os preços vêm como strings decimais de duas casas.
type catalogEntryFile struct {
	Sale string `mapstructure:"sale"`
	Cost string `mapstructure:"cost"`
}

// LoadCatalog lê o catálogo de produtos de um arquivo YAML. As chaves
// são normalizadas na carga, então o arquivo pode trazer os nomes com
// acentos e caixa livre. Produtos com preço ilegível são descartados
// com aviso; um catálogo vazio é fatal.
func LoadCatalog(path string) (domain.Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(domain.ErrConfigInvalid, "não foi possível ler o catálogo '%s': %v", path, err)
	}

	var entries map[string]catalogEntryFile
	if err := v.UnmarshalKey("products", &entries); err != nil {
		return nil, errors.Wrapf(domain.ErrConfigInvalid, "catálogo '%s' com formato inválido: %v", path, err)
	}

	catalog := make(domain.Catalog, len(entries))
	for name, entry := range entries {
		salePrice, err := decimal.NewFromString(entry.Sale)
		if err != nil {
			logrus.Warnf("Preço de venda inválido para o produto '%s': %v", name, err)
			continue
		}

		costPrice, err := decimal.NewFromString(entry.Cost)
		if err != nil {
			logrus.Warnf("Preço de custo inválido para o produto '%s': %v", name, err)
			continue
		}

		catalog[normalize.ProductName(name)] = domain.CatalogEntry{
			SalePrice: salePrice,
			CostPrice: costPrice,
		}
	}

	if len(catalog) == 0 {
		return nil, errors.Wrapf(domain.ErrConfigInvalid, "o catálogo '%s' não tem nenhum produto válido", path)
	}

	return catalog, nil
}
