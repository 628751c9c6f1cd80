package library

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the backing file path of each store. Paths are explicit
// rather than process-wide constants so tests and side tools can point a
// Manager at any directory.
type Config struct {
	BooksFile    string `yaml:"books_file"`
	StudentsFile string `yaml:"students_file"`
	IssuesFile   string `yaml:"issues_file"`
}

// DefaultConfig places the three store files under dir with their
// canonical names.
func DefaultConfig(dir string) Config {
	return Config{
		BooksFile:    filepath.Join(dir, "books.csv"),
		StudentsFile: filepath.Join(dir, "students.csv"),
		IssuesFile:   filepath.Join(dir, "issues.csv"),
	}
}

// LoadConfig reads a YAML config file. Fields left unset fall back to
// the default names relative to the config file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig(filepath.Dir(path))
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
