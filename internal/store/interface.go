package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

// JournalStore keeps an audit trail of create and close attempts.
type JournalStore interface {
	Close() error
	ApplyMigrations(dir string) error

	Record(entry *models.JournalEntry) error
	List(limit int) ([]models.JournalEntry, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory in name order,
// translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		names = append(names, file.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *BaseStore) Record(entry *models.JournalEntry) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO journal (id, action, serial_number, order_number, success, error, created_at)
		VALUES (:id, :action, :serial_number, :order_number, :success, :error, :created_at)
	`, entry)
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

func (s *BaseStore) List(limit int) ([]models.JournalEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	entries := []models.JournalEntry{}
	query := s.Converter(`
		SELECT id, action, serial_number, order_number, success, error, created_at
		FROM journal
		ORDER BY created_at DESC, id
		LIMIT ?
	`)

	if err := s.DB.Select(&entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	return entries, nil
}
