package library

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
)

// Manager is a thin façade over the three record stores, keeping CLI
// code simple. All operations return their outcome as a value; nothing
// prompts, prints, or retries.
type Manager struct {
	books    *recordStore
	students *recordStore
	issues   *recordStore
	log      zerolog.Logger

	now func() time.Time
}

// NewManager wires a Manager to the store files named in cfg. The files
// are created lazily on first write.
func NewManager(cfg Config, log zerolog.Logger) *Manager {
	return &Manager{
		books:    newRecordStore(cfg.BooksFile, bookHeader),
		students: newRecordStore(cfg.StudentsFile, studentHeader),
		issues:   newRecordStore(cfg.IssuesFile, issueHeader),
		log:      log,
		now:      time.Now,
	}
}

// ------------------ Book helpers ------------------

// AddBook validates and appends one catalog row. There is no uniqueness
// check on ISBN: adding the same ISBN twice yields two rows, and later
// quantity rewrites only ever touch the first.
func (m *Manager) AddBook(b *Book) error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.ISBN, validation.Required),
		validation.Field(&b.Title, validation.Required),
		validation.Field(&b.Quantity, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := m.books.Append(b.row()); err != nil {
		return err
	}
	m.log.Debug().Str("isbn", b.ISBN).Str("title", b.Title).Int("quantity", b.Quantity).Msg("book added")
	return nil
}

// SetQuantity overwrites the stored quantity of the first book row
// matching isbn. It does not check the new value: computing a sane
// quantity is the caller's job.
func (m *Manager) SetQuantity(isbn string, quantity int) (bool, error) {
	return m.books.RewriteField(bookColISBN, isbn, bookColQuantity, strconv.Itoa(quantity))
}

// ------------------ Student helpers ------------------

// AddStudent validates and appends one student row. USN is unique: a
// duplicate reports ErrStudentExists and writes nothing.
func (m *Manager) AddStudent(st *Student) error {
	err := validation.ValidateStruct(st,
		validation.Field(&st.USN, validation.Required),
		validation.Field(&st.Name, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	exists, err := m.students.ExistsBy(studentColUSN, st.USN)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: usn %s", ErrStudentExists, st.USN)
	}
	if err := m.students.Append(st.row()); err != nil {
		return err
	}
	m.log.Debug().Str("usn", st.USN).Msg("student added")
	return nil
}

// ------------------ Issue workflow ------------------

// IssueBook lends the book with the given ISBN to the student with the
// given USN. Stages run in order and short-circuit on the first failure:
//
//  1. the USN must exist in the students file
//  2. the full student row is loaded (a miss here means the stores
//     changed between steps and is reported as corruption)
//  3. the books file is scanned for the ISBN; on the matching row the
//     stored quantity is decremented immediately
//  4. the denormalized issue row is appended
//
// The decrement from step 3 is NOT rolled back if step 4 fails; the
// stores are left inconsistent and the error says so.
func (m *Manager) IssueBook(usn, isbn string) (*Issue, error) {
	exists, err := m.students.ExistsBy(studentColUSN, usn)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: usn %s", ErrStudentNotFound, usn)
	}

	student, err := m.findStudent(usn)
	if err != nil {
		return nil, err
	}

	book, err := m.takeCopy(isbn)
	if err != nil {
		return nil, err
	}

	iss := newIssue(student, book, m.now())
	if err := m.issues.Append(iss.row()); err != nil {
		return nil, fmt.Errorf("record issue (quantity already decremented): %w", err)
	}

	m.log.Info().Str("usn", usn).Str("isbn", isbn).Str("return_date", iss.ReturnDate).Msg("book issued")
	return iss, nil
}

// findStudent re-scans the students file for the full row. ExistsBy
// already passed, so a miss means the file changed underneath us.
func (m *Manager) findStudent(usn string) (*Student, error) {
	rows, err := m.students.ReadAll()
	if err != nil {
		return nil, err
	}
	want := strings.TrimSpace(usn)
	for _, row := range rows {
		if len(row) >= len(studentHeader) && strings.TrimSpace(row[studentColUSN]) == want {
			return studentFromRow(row)
		}
	}
	return nil, fmt.Errorf("%w: student %s vanished between existence check and load", ErrDataCorruption, usn)
}

// takeCopy scans the books file for the first row matching isbn and
// decrements its stored quantity on the spot. The returned Book carries
// the pre-decrement quantity.
func (m *Manager) takeCopy(isbn string) (*Book, error) {
	rows, err := m.books.ReadAll()
	if err != nil {
		return nil, err
	}
	want := strings.TrimSpace(isbn)
	for _, row := range rows {
		if len(row) < len(bookHeader) || strings.TrimSpace(row[bookColISBN]) != want {
			continue
		}
		book, err := bookFromRow(row)
		if err != nil {
			return nil, err
		}
		if book.Quantity <= 0 {
			return nil, fmt.Errorf("%w: isbn %s", ErrNoCopies, isbn)
		}
		if _, err := m.SetQuantity(isbn, book.Quantity-1); err != nil {
			return nil, err
		}
		return book, nil
	}
	return nil, fmt.Errorf("%w: isbn %s", ErrBookNotFound, isbn)
}
