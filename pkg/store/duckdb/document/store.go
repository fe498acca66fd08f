package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/report-designer/pkg/models/store"
	"github.com/de-tools/report-designer/pkg/store/duckdb"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("report document not found")

// Store keeps built report documents so the viewer can resolve them by id
// after the asynchronous build has finished.
type Store interface {
	Save(ctx context.Context, doc *store.Document) error
	Get(ctx context.Context, id string) (*store.Document, error)
	Latest(ctx context.Context, session string) (*store.Document, error)
}

type Settings struct {
	// KeepPerSession bounds how many documents a session retains; older ones
	// are removed on save. Zero keeps everything.
	KeepPerSession int
}

type documentStore struct {
	db       *sql.DB
	settings Settings
	now      func() time.Time
}

func NewStore(db *sql.DB, settings Settings) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &documentStore{
		db:       db,
		settings: settings,
		now:      time.Now,
	}, nil
}

// Save assigns an id and creation time when they are unset.
func (s *documentStore) Save(ctx context.Context, doc *store.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}

	query := `
		INSERT INTO report_documents (id, session, dataset, request, document, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	args := []interface{}{
		doc.ID,
		doc.Session,
		doc.Dataset,
		string(doc.Request),
		string(doc.Body),
		doc.CreatedAt,
	}

	if s.settings.KeepPerSession <= 0 {
		if _, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		return nil
	}

	return duckdb.RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		conn := duckdb.Conn(ctx, s.db)
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		return s.prune(ctx, conn, doc.Session)
	})
}

func (s *documentStore) prune(ctx context.Context, conn duckdb.Executor, session string) error {
	query := `
		DELETE FROM report_documents
		WHERE session = ?
		  AND id NOT IN (
			SELECT id FROM report_documents
			WHERE session = ?
			ORDER BY created_at DESC, seq DESC
			LIMIT ?
		  )`
	if _, err := conn.ExecContext(ctx, query, session, session, s.settings.KeepPerSession); err != nil {
		return fmt.Errorf("prune documents of session %s: %w", session, err)
	}
	return nil
}

func (s *documentStore) Get(ctx context.Context, id string) (*store.Document, error) {
	query := `
		SELECT id, session, dataset, request, document, created_at
		FROM report_documents
		WHERE id = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// Latest returns the most recently saved document of a session.
func (s *documentStore) Latest(ctx context.Context, session string) (*store.Document, error) {
	query := `
		SELECT id, session, dataset, request, document, created_at
		FROM report_documents
		WHERE session = ?
		ORDER BY created_at DESC, seq DESC
		LIMIT 1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, session))
}

func (s *documentStore) scanOne(row *sql.Row) (*store.Document, error) {
	var (
		doc           store.Document
		request, body string
	)
	err := row.Scan(&doc.ID, &doc.Session, &doc.Dataset, &request, &body, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	doc.Request = []byte(request)
	doc.Body = []byte(body)
	return &doc, nil
}
