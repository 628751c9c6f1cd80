package library

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// On-disk column layouts for the three backing files. Order matters: it
// is the field order of every row.
var (
	bookHeader    = []string{"isbn", "title", "category", "quantity", "author", "email"}
	studentHeader = []string{"usn", "name"}
	issueHeader   = []string{"usn", "name", "isbn", "bookTitle", "issueDate", "returnDate"}
)

// Books file column indexes used by lookups and the quantity rewrite.
const (
	bookColISBN     = 0
	bookColTitle    = 1
	bookColCategory = 2
	bookColQuantity = 3
	bookColAuthor   = 4
	bookColEmail    = 5
)

const (
	studentColUSN  = 0
	studentColName = 1
)

const issueColUSN = 0

// loanDays is how long a book stays out before it is due back.
const loanDays = 7

const dateLayout = "2006-01-02"

// Book represents one catalog row. Author name and email are
// denormalized onto the same row; there is no separate author table.
type Book struct {
	ISBN     string `json:"isbn"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Author   string `json:"author"`
	Email    string `json:"email"`
}

// Student represents a registered student.
type Student struct {
	USN  string `json:"usn"`
	Name string `json:"name"`
}

// Issue records a book lent to a student. It copies the student and book
// fields as they were at issue time rather than referencing them by key,
// so later edits to the other stores never change an issue row.
type Issue struct {
	USN         string `json:"usn"`
	StudentName string `json:"student_name"`
	ISBN        string `json:"isbn"`
	BookTitle   string `json:"book_title"`
	IssueDate   string `json:"issue_date"`
	ReturnDate  string `json:"return_date"`
}

func (b *Book) row() []string {
	return []string{b.ISBN, b.Title, b.Category, strconv.Itoa(b.Quantity), b.Author, b.Email}
}

func (s *Student) row() []string {
	return []string{s.USN, s.Name}
}

func (i *Issue) row() []string {
	return []string{i.USN, i.StudentName, i.ISBN, i.BookTitle, i.IssueDate, i.ReturnDate}
}

func bookFromRow(row []string) (*Book, error) {
	if len(row) < len(bookHeader) {
		return nil, fmt.Errorf("%w: book row has %d fields", ErrDataCorruption, len(row))
	}
	qty, err := strconv.Atoi(strings.TrimSpace(row[bookColQuantity]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad quantity %q", ErrDataCorruption, row[bookColQuantity])
	}
	return &Book{
		ISBN:     row[bookColISBN],
		Title:    row[bookColTitle],
		Category: row[bookColCategory],
		Quantity: qty,
		Author:   row[bookColAuthor],
		Email:    row[bookColEmail],
	}, nil
}

func studentFromRow(row []string) (*Student, error) {
	if len(row) < len(studentHeader) {
		return nil, fmt.Errorf("%w: student row has %d fields", ErrDataCorruption, len(row))
	}
	return &Student{USN: row[studentColUSN], Name: row[studentColName]}, nil
}

func issueFromRow(row []string) (*Issue, error) {
	if len(row) < len(issueHeader) {
		return nil, fmt.Errorf("%w: issue row has %d fields", ErrDataCorruption, len(row))
	}
	return &Issue{
		USN:         row[0],
		StudentName: row[1],
		ISBN:        row[2],
		BookTitle:   row[3],
		IssueDate:   row[4],
		ReturnDate:  row[5],
	}, nil
}

// newIssue builds the denormalized issue record. The return date is
// computed once here and never re-derived.
func newIssue(st *Student, b *Book, now time.Time) *Issue {
	return &Issue{
		USN:         st.USN,
		StudentName: st.Name,
		ISBN:        b.ISBN,
		BookTitle:   b.Title,
		IssueDate:   now.Format(dateLayout),
		ReturnDate:  now.AddDate(0, 0, loanDays).Format(dateLayout),
	}
}
