package library

import (
	"fmt"
	"strings"
)

// SearchMode selects which column(s) a book search matches against.
type SearchMode string

const (
	// SearchTitle matches a case-insensitive substring of the title.
	SearchTitle SearchMode = "title"
	// SearchCategory matches a case-insensitive substring of the category.
	SearchCategory SearchMode = "category"
	// SearchAuthor matches a case-insensitive substring of the author
	// name or the author email.
	SearchAuthor SearchMode = "author"
	// SearchAll returns every row regardless of query.
	SearchAll SearchMode = "all"
)

// SearchBooks scans the books file and returns the matching rows in file
// order, uncapped. An empty query matches everything in every mode. The
// scan is read-only; calling it twice with no intervening writes returns
// identical results.
func (m *Manager) SearchBooks(mode SearchMode, query string) ([]*Book, error) {
	rows, err := m.books.ReadAll()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []*Book
	for _, row := range rows {
		if len(row) < len(bookHeader) {
			continue
		}
		var hit bool
		switch mode {
		case SearchTitle:
			hit = strings.Contains(strings.ToLower(row[bookColTitle]), q)
		case SearchCategory:
			hit = strings.Contains(strings.ToLower(row[bookColCategory]), q)
		case SearchAuthor:
			hit = strings.Contains(strings.ToLower(row[bookColAuthor]), q) ||
				strings.Contains(strings.ToLower(row[bookColEmail]), q)
		case SearchAll:
			hit = true
		default:
			return nil, fmt.Errorf("unknown search mode %q", mode)
		}
		if !hit {
			continue
		}
		book, err := bookFromRow(row)
		if err != nil {
			return nil, err
		}
		results = append(results, book)
	}
	return results, nil
}

// ListBooks returns every catalog row in file order.
func (m *Manager) ListBooks() ([]*Book, error) {
	return m.SearchBooks(SearchAll, "")
}

// ListStudents returns every student row in file order.
func (m *Manager) ListStudents() ([]*Student, error) {
	rows, err := m.students.ReadAll()
	if err != nil {
		return nil, err
	}
	var students []*Student
	for _, row := range rows {
		if len(row) < len(studentHeader) {
			continue
		}
		st, err := studentFromRow(row)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, nil
}

// BooksIssuedTo returns every issue row for the given USN in file order.
// The USN comparison is exact but case-insensitive, matching how the
// issues listing has always behaved.
func (m *Manager) BooksIssuedTo(usn string) ([]*Issue, error) {
	rows, err := m.issues.ReadAll()
	if err != nil {
		return nil, err
	}
	want := strings.TrimSpace(usn)
	var issues []*Issue
	for _, row := range rows {
		if len(row) < len(issueHeader) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(row[issueColUSN]), want) {
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
