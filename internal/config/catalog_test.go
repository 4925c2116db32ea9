package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalogFile(t, `
products:
  Croissant:
    sale: "2.00"
    cost: "0.80"
  "Café":
    sale: "1.50"
    cost: "0.50"
`)

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	// As chaves são normalizadas na carga
	require.Contains(t, catalog, "croissant")
	require.Contains(t, catalog, "cafe")

	assert.True(t, catalog["cafe"].SalePrice.Equal(decimal.RequireFromString("1.50")))
	assert.True(t, catalog["cafe"].CostPrice.Equal(decimal.RequireFromString("0.50")))
}

func TestLoadCatalog_PrecoIlegivelDescartaOProduto(t *testing.T) {
	path := writeCatalogFile(t, `
products:
  Croissant:
    sale: "2.00"
    cost: "0.80"
  Quebrado:
    sale: "dois reais"
    cost: "0.80"
`)

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	require.Len(t, catalog, 1)
	assert.Contains(t, catalog, "croissant")
}

func TestLoadCatalog_ArquivoInexistente(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nao-existe.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)
}

func TestLoadCatalog_CatalogoVazioEhFatal(t *testing.T) {
	path := writeCatalogFile(t, `
products:
  Quebrado:
    sale: "abc"
    cost: "def"
`)

	_, err := LoadCatalog(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)
}
