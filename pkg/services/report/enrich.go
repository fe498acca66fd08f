package report

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/services/catalog"
)

// deriveFields returns the records to embed for a dataset. Products gain a
// CategoryName looked up by CategoryId; a key without a match fails the whole
// batch. The input slice and its records are left untouched.
func deriveFields(dataset domain.DatasetName, records []domain.Record) ([]domain.Record, error) {
	if !catalog.NeedsCategoryNames(dataset) {
		return records, nil
	}

	out := make([]domain.Record, 0, len(records))
	for _, record := range records {
		raw, ok := record[catalog.CategoryKeyField]
		if !ok {
			return nil, &domain.LookupError{Dataset: dataset, Field: catalog.CategoryKeyField, Key: "<missing>"}
		}

		id, err := numericKey(raw)
		if err != nil {
			return nil, &domain.LookupError{Dataset: dataset, Field: catalog.CategoryKeyField, Key: fmt.Sprint(raw)}
		}

		name, ok := catalog.CategoryName(id)
		if !ok {
			return nil, &domain.LookupError{Dataset: dataset, Field: catalog.CategoryKeyField, Key: strconv.FormatInt(id, 10)}
		}

		enriched := maps.Clone(record)
		enriched[catalog.CategoryNameField] = name
		out = append(out, enriched)
	}
	return out, nil
}

func numericKey(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("non-integral key %v", n)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported key type %T", v)
	}
}
