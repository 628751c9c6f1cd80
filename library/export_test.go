package library

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportSQLite(t *testing.T) {
	m := newTestManager(t)
	seedCatalog(t, m)
	require.NoError(t, m.AddStudent(&Student{USN: "U1", Name: "Alice"}))
	_, err := m.IssueBook("U1", "111")
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "library.db")
	require.NoError(t, m.ExportSQLite(dbPath))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n))
	require.Equal(t, 3, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&n))
	require.Equal(t, 1, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM issues`).Scan(&n))
	require.Equal(t, 1, n)

	// The export reflects the post-issue quantity, not the creation one.
	var qty int
	require.NoError(t, db.QueryRow(`SELECT quantity FROM books WHERE isbn='111'`).Scan(&qty))
	require.Equal(t, 1, qty)

	var title, returnDate string
	require.NoError(t, db.QueryRow(`SELECT book_title, return_date FROM issues WHERE usn='U1'`).Scan(&title, &returnDate))
	require.Equal(t, "Dune", title)
	require.Equal(t, "2026-09-07", returnDate)
}

func TestExportSQLiteReplacesPreviousExport(t *testing.T) {
	m := newTestManager(t)
	addDune(t, m, 2)

	dbPath := filepath.Join(t.TempDir(), "library.db")
	require.NoError(t, m.ExportSQLite(dbPath))
	require.NoError(t, m.ExportSQLite(dbPath))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestExportSQLiteEmptyStores(t *testing.T) {
	m := newTestManager(t)

	dbPath := filepath.Join(t.TempDir(), "library.db")
	require.NoError(t, m.ExportSQLite(dbPath))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n))
	require.Equal(t, 0, n)
}
