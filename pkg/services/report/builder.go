// Package report turns a frozen form selection into a self-contained report
// definition with the dataset's records embedded as an inline JSON source.
package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/rdl"
	"github.com/de-tools/report-designer/pkg/services/catalog"
	"github.com/de-tools/report-designer/pkg/store/remote"
	"github.com/rs/zerolog"
)

type Builder struct {
	source remote.Source
}

func NewBuilder(source remote.Source) *Builder {
	return &Builder{source: source}
}

// Build fetches the dataset's records and assembles the document. The request
// is assumed to have been validated; any failure aborts the build and no
// partial document is returned.
func (b *Builder) Build(ctx context.Context, req domain.ReportRequest) (*rdl.Report, error) {
	ds, err := catalog.Lookup(req.Dataset)
	if err != nil {
		return nil, err
	}

	source, err := b.dataSource(ctx, req.Dataset)
	if err != nil {
		return nil, err
	}

	report := &rdl.Report{
		DataSources: []rdl.DataSource{source},
		DataSets:    []rdl.DataSet{dataSet(ds)},
		Page:        rdl.UniformPage(pageWidth, pageHeight, pageMargin),
		Body: rdl.Body{
			ReportItems: []rdl.ReportItem{table(ds, req)},
		},
		PageHeader: pageHeader(req.Dataset),
		Width:      rdl.Inches(contentWidth),
	}

	zerolog.Ctx(ctx).Debug().
		Str("dataset", string(req.Dataset)).
		Int("fields", len(req.Fields)).
		Bool("grouping", req.Grouping).
		Msg("report document built")

	return report, nil
}

func (b *Builder) dataSource(ctx context.Context, dataset domain.DatasetName) (rdl.DataSource, error) {
	records, err := b.source.FetchAll(ctx, dataset)
	if err != nil {
		return rdl.DataSource{}, err
	}

	records, err = deriveFields(dataset, records)
	if err != nil {
		return rdl.DataSource{}, err
	}

	// a nil slice would serialize as null rather than an empty array
	if records == nil {
		records = []domain.Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return rdl.DataSource{}, fmt.Errorf("serialize %s records: %w", dataset, err)
	}

	return rdl.NewEmbeddedJSONSource(dataSourceName, payload), nil
}
