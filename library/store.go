package library

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kjk/common/atomicfile"
)

// recordStore persists one entity type as a comma-delimited flat file
// with a single header line. Rows are joined with commas verbatim: field
// values are NOT quoted or escaped, so a value containing a comma
// corrupts its row. That is a limitation of the file format itself, kept
// on purpose.
//
// The mutex makes individual operations atomic within this process.
// Nothing protects against a second process touching the same files.
type recordStore struct {
	mu     sync.Mutex
	path   string
	header []string
}

func newRecordStore(path string, header []string) *recordStore {
	return &recordStore{path: path, header: header}
}

// Append writes one row to the end of the file. The header line is
// written first if the file is missing or empty.
func (s *recordStore) Append(row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	needHeader := true
	if fi, err := os.Stat(s.path); err == nil && fi.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}

	var sb strings.Builder
	if needHeader {
		sb.WriteString(strings.Join(s.header, ","))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Join(row, ","))
	sb.WriteByte('\n')

	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

// ReadAll returns every row in file order, header skipped, each row
// split on commas. A missing file reads as an empty store.
func (s *recordStore) ReadAll() ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *recordStore) readLocked() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	var rows [][]string
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ","))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return rows, nil
}

// ExistsBy reports whether any row's column equals value after trimming
// both sides. The comparison is case-sensitive. A missing file is simply
// false, not an error.
func (s *recordStore) ExistsBy(col int, value string) (bool, error) {
	rows, err := s.ReadAll()
	if err != nil {
		return false, err
	}
	want := strings.TrimSpace(value)
	for _, row := range rows {
		if col < len(row) && strings.TrimSpace(row[col]) == want {
			return true, nil
		}
	}
	return false, nil
}

// RewriteField replaces targetCol on the first row whose matchCol equals
// matchVal (exact, trimmed) and writes the header plus every row back
// through an atomic temp-file swap, so a failed rewrite never truncates
// the store. Reports whether a row changed. Later rows sharing the match
// value are left alone.
func (s *recordStore) RewriteField(matchCol int, matchVal string, targetCol int, newVal string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readLocked()
	if err != nil {
		return false, err
	}

	want := strings.TrimSpace(matchVal)
	updated := false
	for _, row := range rows {
		if matchCol < len(row) && targetCol < len(row) && strings.TrimSpace(row[matchCol]) == want {
			row[targetCol] = newVal
			updated = true
			break
		}
	}
	if !updated {
		return false, nil
	}

	f, err := atomicfile.New(s.path)
	if err != nil {
		return false, fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	defer f.RemoveIfNotClosed()

	if _, err := f.WriteString(strings.Join(s.header, ",") + "\n"); err != nil {
		return false, fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	for _, row := range rows {
		if _, err := f.WriteString(strings.Join(row, ",") + "\n"); err != nil {
			return false, fmt.Errorf("rewrite %s: %w", s.path, err)
		}
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	return true, nil
}
