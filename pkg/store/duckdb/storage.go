package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportDocumentsSequence = `
	CREATE SEQUENCE IF NOT EXISTS report_documents_seq START 1;
`

// seq orders documents saved within the same created_at instant.
const ReportDocumentsSchema = `
	CREATE TABLE IF NOT EXISTS report_documents (
		id VARCHAR NOT NULL PRIMARY KEY,
		seq BIGINT NOT NULL DEFAULT nextval('report_documents_seq'),
		session VARCHAR NOT NULL,
		dataset VARCHAR NOT NULL,
		request VARCHAR NOT NULL,
		document VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const ReportDocumentsSessionIndex = `
	CREATE INDEX IF NOT EXISTS report_documents_session_idx ON report_documents (session, created_at, seq);
`

var bootQueries = []string{
	ReportDocumentsSequence,
	ReportDocumentsSchema,
	ReportDocumentsSessionIndex,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
