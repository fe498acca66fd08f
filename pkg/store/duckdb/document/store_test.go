package document

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/report-designer/pkg/models/store"
	"github.com/de-tools/report-designer/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db, Settings{})
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil, Settings{})
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_SaveAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	doc := &store.Document{
		Session: "session-1",
		Dataset: "Products",
		Request: []byte(`{"dataSetName":"Products"}`),
		Body:    []byte(`{"Width":"7.5in"}`),
	}

	require.NoError(t, f.store.Save(ctx, doc))
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := f.store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "session-1", got.Session)
	assert.Equal(t, "Products", got.Dataset)
	assert.JSONEq(t, string(doc.Request), string(got.Request))
	assert.JSONEq(t, string(doc.Body), string(got.Body))

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nil document", func(t *testing.T) {
		assert.Error(t, f.store.Save(ctx, nil))
	})
}

func TestStore_Latest(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		session := "session-a"
		if id == "third" {
			session = "session-b"
		}
		require.NoError(t, f.store.Save(ctx, &store.Document{
			ID:        id,
			Session:   session,
			Dataset:   "Customers",
			Request:   []byte(`{}`),
			Body:      []byte(`{}`),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := f.store.Latest(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "second", got.ID)

	_, err = f.store.Latest(ctx, "session-c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LatestWithEqualTimestamps(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)

	for _, id := range []string{"b", "a"} {
		require.NoError(t, f.store.Save(ctx, &store.Document{
			ID:        id,
			Session:   "session-a",
			Dataset:   "Customers",
			Request:   []byte(`{}`),
			Body:      []byte(`{}`),
			CreatedAt: at,
		}))
	}

	got, err := f.store.Latest(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
}

func TestStore_SaveWithinTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx, err := f.db.BeginTx(ctx, nil)
	require.NoError(t, err)

	doc := &store.Document{ID: "tx-doc", Session: "s", Dataset: "Products", Request: []byte(`{}`), Body: []byte(`{}`)}
	require.NoError(t, f.store.Save(duckdb.WithTransaction(ctx, tx), doc))
	require.NoError(t, tx.Rollback())

	_, err = f.store.Get(ctx, "tx-doc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DatabaseErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db, Settings{})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("insert failure is wrapped", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO report_documents").
			WillReturnError(errors.New("disk full"))

		err := s.Save(ctx, &store.Document{ID: "x", Session: "s", Dataset: "Products"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert document")
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("query failure is not reported as missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, session, dataset, request, document, created_at").
			WithArgs("x").
			WillReturnError(errors.New("connection lost"))

		_, err := s.Get(ctx, "x")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, session, dataset, request, document, created_at").
			WithArgs("y").
			WillReturnRows(sqlmock.NewRows([]string{"id", "session", "dataset", "request", "document", "created_at"}))

		_, err := s.Get(ctx, "y")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Retention(t *testing.T) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db, Settings{KeepPerSession: 2})
	require.NoError(t, err)
	ctx := context.Background()
	base := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"one", "two", "three"} {
		require.NoError(t, s.Save(ctx, &store.Document{
			ID:        id,
			Session:   "session-a",
			Dataset:   "Products",
			Request:   []byte(`{}`),
			Body:      []byte(`{}`),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.Save(ctx, &store.Document{
		ID: "other", Session: "session-b", Dataset: "Products", Request: []byte(`{}`), Body: []byte(`{}`),
		CreatedAt: base,
	}))

	_, err = s.Get(ctx, "one")
	assert.ErrorIs(t, err, ErrNotFound)
	for _, id := range []string{"two", "three", "other"} {
		_, err := s.Get(ctx, id)
		assert.NoError(t, err, id)
	}
}

func TestStore_RetentionWithEqualTimestamps(t *testing.T) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db, Settings{KeepPerSession: 2})
	require.NoError(t, err)
	ctx := context.Background()
	at := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)

	for _, id := range []string{"c", "b", "a"} {
		require.NoError(t, s.Save(ctx, &store.Document{
			ID:        id,
			Session:   "session-a",
			Dataset:   "Products",
			Request:   []byte(`{}`),
			Body:      []byte(`{}`),
			CreatedAt: at,
		}))
	}

	_, err = s.Get(ctx, "c")
	assert.ErrorIs(t, err, ErrNotFound)
	for _, id := range []string{"b", "a"} {
		_, err := s.Get(ctx, id)
		assert.NoError(t, err, id)
	}
}

func TestStore_RetentionRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db, Settings{KeepPerSession: 1})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO report_documents").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM report_documents").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err = s.Save(context.Background(), &store.Document{ID: "x", Session: "s", Dataset: "Products"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prune documents of session s")
	assert.NoError(t, mock.ExpectationsWereMet())
}
