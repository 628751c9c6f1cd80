package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ExportSQLite copies every row of the three flat-file stores into a
// SQLite database at dbPath, replacing tables left by a previous export.
// The flat files stay the source of truth; the database exists for
// ad-hoc querying once linear scans stop being fun.
func (m *Manager) ExportSQLite(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	stmts := []string{
		`DROP TABLE IF EXISTS books;`,
		`DROP TABLE IF EXISTS students;`,
		`DROP TABLE IF EXISTS issues;`,
		`CREATE TABLE books (
            isbn TEXT NOT NULL,
            title TEXT NOT NULL,
            category TEXT,
            quantity INTEGER NOT NULL,
            author TEXT,
            email TEXT
        );`,
		`CREATE TABLE students (
            usn TEXT PRIMARY KEY,
            name TEXT NOT NULL
        );`,
		`CREATE TABLE issues (
            usn TEXT NOT NULL,
            name TEXT NOT NULL,
            isbn TEXT NOT NULL,
            book_title TEXT NOT NULL,
            issue_date TEXT NOT NULL,
            return_date TEXT NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	books, err := m.ListBooks()
	if err != nil {
		return err
	}
	students, err := m.ListStudents()
	if err != nil {
		return err
	}
	issues, err := m.allIssues()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, b := range books {
		if _, err := tx.Exec(`INSERT INTO books(isbn,title,category,quantity,author,email) VALUES(?,?,?,?,?,?)`,
			b.ISBN, b.Title, b.Category, b.Quantity, b.Author, b.Email); err != nil {
			return fmt.Errorf("insert book %s: %w", b.ISBN, err)
		}
	}
	for _, st := range students {
		if _, err := tx.Exec(`INSERT INTO students(usn,name) VALUES(?,?)`, st.USN, st.Name); err != nil {
			return fmt.Errorf("insert student %s: %w", st.USN, err)
		}
	}
	for _, iss := range issues {
		if _, err := tx.Exec(`INSERT INTO issues(usn,name,isbn,book_title,issue_date,return_date) VALUES(?,?,?,?,?,?)`,
			iss.USN, iss.StudentName, iss.ISBN, iss.BookTitle, iss.IssueDate, iss.ReturnDate); err != nil {
			return fmt.Errorf("insert issue for %s: %w", iss.USN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	m.log.Info().
		Int("books", len(books)).
		Int("students", len(students)).
		Int("issues", len(issues)).
		Str("db", dbPath).
		Msg("stores exported")
	return nil
}

func (m *Manager) allIssues() ([]*Issue, error) {
	rows, err := m.issues.ReadAll()
	if err != nil {
		return nil, err
	}
	var issues []*Issue
	for _, row := range rows {
		if len(row) < len(issueHeader) {
			continue
		}
		iss, err := issueFromRow(row)
		if err != nil {
			return nil, err
		}
		issues = append(issues, iss)
	}
	return issues, nil
}
