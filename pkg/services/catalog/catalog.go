// Package catalog holds the static dataset metadata the report form and the
// document builder share.
package catalog

import (
	"fmt"
	"slices"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/rdl"
)

const (
	// CategoryKeyField joins product records to the category lookup.
	CategoryKeyField = "CategoryId"
	// CategoryNameField is derived on product records before embedding.
	CategoryNameField = "CategoryName"
)

var categories = []domain.Category{
	{ID: 1, Name: "Beverages"},
	{ID: 2, Name: "Condiments"},
	{ID: 3, Name: "Confections"},
	{ID: 4, Name: "Dairy Products"},
	{ID: 5, Name: "Grains/Cereals"},
	{ID: 6, Name: "Meat/Poultry"},
	{ID: 7, Name: "Produce"},
	{ID: 8, Name: "Seafood"},
}

var datasets = []domain.DatasetDescriptor{
	{
		Name: domain.DatasetProducts,
		Fields: []domain.FieldDescriptor{
			{Name: "CategoryName", Type: domain.FieldTypeText, Width: 15},
			{Name: "ProductName", Type: domain.FieldTypeText, Width: 21},
			{Name: "QuantityPerUnit", Type: domain.FieldTypeNumber, Width: 25},
			{Name: "UnitPrice", Type: domain.FieldTypeCurrency, Width: 11},
			{Name: "UnitsInStock", Type: domain.FieldTypeNumber, Width: 14},
			{Name: "UnitsOnOrder", Type: domain.FieldTypeNumber, Width: 14},
		},
	},
	{
		Name: domain.DatasetCustomers,
		Fields: []domain.FieldDescriptor{
			{Name: "CompanyName", Type: domain.FieldTypeText, Width: 30},
			{Name: "ContactName", Type: domain.FieldTypeText, Width: 20},
			{Name: "Address", Type: domain.FieldTypeText, Width: 20},
			{Name: "City", Type: domain.FieldTypeText, Width: 15},
			{Name: "Country", Type: domain.FieldTypeText, Width: 15},
		},
	},
}

var customerCountries = []string{"USA", "UK", "Germany", "France", "Canada"}

var defaultSourceURLs = map[domain.DatasetName]string{
	domain.DatasetCustomers: "https://demodata.grapecity.com/northwind/odata/v1/Customers",
	domain.DatasetProducts:  "https://demodata.grapecity.com/northwind/odata/v1/Products",
}

// Datasets returns the names of all known datasets in display order.
func Datasets() []domain.DatasetName {
	names := make([]domain.DatasetName, 0, len(datasets))
	for _, d := range datasets {
		names = append(names, d.Name)
	}
	return names
}

func Lookup(name domain.DatasetName) (domain.DatasetDescriptor, error) {
	for _, d := range datasets {
		if d.Name == name {
			return domain.DatasetDescriptor{Name: d.Name, Fields: slices.Clone(d.Fields)}, nil
		}
	}
	return domain.DatasetDescriptor{}, fmt.Errorf("unknown dataset: %q", name)
}

// FilterValues returns the values a user may filter the grouping field by.
func FilterValues(name domain.DatasetName) []string {
	switch name {
	case domain.DatasetProducts:
		values := make([]string, 0, len(categories))
		for _, c := range categories {
			values = append(values, c.Name)
		}
		return values
	case domain.DatasetCustomers:
		return slices.Clone(customerCountries)
	default:
		return nil
	}
}

// GroupField is the field rows are grouped and filtered by.
func GroupField(name domain.DatasetName) string {
	if name == domain.DatasetCustomers {
		return "Country"
	}
	return CategoryNameField
}

func GroupExpression(name domain.DatasetName) string {
	return rdl.FieldValue(GroupField(name))
}

func Title(name domain.DatasetName) string {
	if name == domain.DatasetCustomers {
		return "Customer List"
	}
	return "Product List"
}

// NeedsCategoryNames reports whether records of the dataset are enriched with
// category names before embedding.
func NeedsCategoryNames(name domain.DatasetName) bool {
	return name == domain.DatasetProducts
}

func CategoryName(id int64) (string, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

// DefaultSourceURLs returns the built-in remote endpoint per dataset.
func DefaultSourceURLs() map[domain.DatasetName]string {
	urls := make(map[domain.DatasetName]string, len(defaultSourceURLs))
	for k, v := range defaultSourceURLs {
		urls[k] = v
	}
	return urls
}
