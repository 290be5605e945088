package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/rs/zerolog"
)

// FileStore keeps the history in a flat text file, one record per line.
// Nothing is cached: every walk re-reads the whole file.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore logs through logger, normally logging.Component("history").
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("path", path).Logger(),
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) EnsureExists() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	return file.Close()
}

func (s *FileStore) Append(rec models.HistoryRecord) error {
	if len(rec.Items) == 0 {
		return models.ErrEmptyOrder
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}

	// one write per record so a line is never split across calls
	_, err = file.Write([]byte(rec.String() + "\n"))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}

	s.logger.Info().
		Str("customer", rec.Customer).
		Int("items", len(rec.Items)).
		Str("calories", rec.TotalCalories).
		Msg("order appended")
	return nil
}

func (s *FileStore) Walk(customer string, fn func(models.HistoryRecord) error) error {
	return s.walk(func(rec models.HistoryRecord) error {
		if rec.Customer != customer {
			return nil
		}
		return fn(rec)
	})
}

func (s *FileStore) Scan(customer string) ([]models.HistoryRecord, error) {
	var records []models.HistoryRecord
	err := s.Walk(customer, func(rec models.HistoryRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *FileStore) All(fn func(models.HistoryRecord) error) error {
	return s.walk(fn)
}

func (s *FileStore) walk(fn func(models.HistoryRecord) error) error {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	lineNo, skipped := 0, 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("failed to read history file: %w", readErr)
		}
		if line != "" {
			lineNo++
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

			rec, err := models.ParseHistoryRecord(line)
			if err != nil {
				skipped++
				s.logger.Debug().Int("line", lineNo).Err(err).Msg("skipping history line")
			} else if err := fn(rec); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	if skipped > 0 {
		s.logger.Debug().Int("skipped", skipped).Int("lines", lineNo).Msg("history scan finished")
	}
	return nil
}
