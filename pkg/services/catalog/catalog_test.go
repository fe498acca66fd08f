package catalog

import (
	"testing"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("products", func(t *testing.T) {
		ds, err := Lookup(domain.DatasetProducts)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"CategoryName", "ProductName", "QuantityPerUnit", "UnitPrice", "UnitsInStock", "UnitsOnOrder",
		}, ds.FieldNames())

		price, ok := ds.Field("UnitPrice")
		require.True(t, ok)
		assert.Equal(t, domain.FieldTypeCurrency, price.Type)
		assert.Equal(t, 11, price.Width)
	})

	t.Run("customers", func(t *testing.T) {
		ds, err := Lookup(domain.DatasetCustomers)
		require.NoError(t, err)
		assert.Len(t, ds.Fields, 5)
		for _, f := range ds.Fields {
			assert.Equal(t, domain.FieldTypeText, f.Type, f.Name)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Lookup("Orders")
		assert.Error(t, err)
	})

	t.Run("returned descriptor is a copy", func(t *testing.T) {
		ds, err := Lookup(domain.DatasetProducts)
		require.NoError(t, err)
		ds.Fields[0].Width = 99

		again, err := Lookup(domain.DatasetProducts)
		require.NoError(t, err)
		assert.Equal(t, 15, again.Fields[0].Width)
	})
}

func TestDatasetDependentValues(t *testing.T) {
	tests := []struct {
		dataset       domain.DatasetName
		groupExpr     string
		title         string
		filterValues  []string
		needsCategory bool
	}{
		{
			dataset:   domain.DatasetProducts,
			groupExpr: "=Fields!CategoryName.Value",
			title:     "Product List",
			filterValues: []string{
				"Beverages", "Condiments", "Confections", "Dairy Products",
				"Grains/Cereals", "Meat/Poultry", "Produce", "Seafood",
			},
			needsCategory: true,
		},
		{
			dataset:      domain.DatasetCustomers,
			groupExpr:    "=Fields!Country.Value",
			title:        "Customer List",
			filterValues: []string{"USA", "UK", "Germany", "France", "Canada"},
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.dataset), func(t *testing.T) {
			assert.Equal(t, tc.groupExpr, GroupExpression(tc.dataset))
			assert.Equal(t, tc.title, Title(tc.dataset))
			assert.Equal(t, tc.filterValues, FilterValues(tc.dataset))
			assert.Equal(t, tc.needsCategory, NeedsCategoryNames(tc.dataset))
		})
	}
}

func TestCategoryName(t *testing.T) {
	name, ok := CategoryName(8)
	assert.True(t, ok)
	assert.Equal(t, "Seafood", name)

	_, ok = CategoryName(42)
	assert.False(t, ok)
}

func TestDefaultSourceURLs(t *testing.T) {
	urls := DefaultSourceURLs()
	assert.Len(t, urls, len(Datasets()))
	for _, name := range Datasets() {
		assert.NotEmpty(t, urls[name], name)
	}
}
