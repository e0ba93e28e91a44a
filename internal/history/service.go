package history

import (
	"log"
	"time"

	historyrepo "github.com/mrlokans/ibooks-highlights/internal/database/history"
	"github.com/mrlokans/ibooks-highlights/internal/entities"
	"github.com/mrlokans/ibooks-highlights/internal/exporters"
)

const maxErrorLen = 500

// Service records finished exports in the local history database.
type Service struct {
	repo *historyrepo.Repository
}

// NewService creates a new history service.
func NewService(repo *historyrepo.Repository) *Service {
	return &Service{repo: repo}
}

// RecordExport stores the outcome of one export. A nil exportErr marks it
// successful, otherwise the error text is kept and the paths are left empty.
func (s *Service) RecordExport(book entities.Book, highlightsCount int, result exporters.ExportResult, exportErr error) error {
	record := &entities.ExportRecord{
		BookID:          book.ID,
		BookTitle:       book.Title,
		Author:          book.Author,
		HighlightsCount: highlightsCount,
		Status:          entities.ExportStatusSuccess,
	}

	if exportErr != nil {
		record.Status = entities.ExportStatusFailed
		record.ErrorMsg = truncate(exportErr.Error(), maxErrorLen)
	} else {
		record.TextPath = result.TextPath
		record.JSONPath = result.JSONPath
	}

	if err := s.repo.LogExport(record); err != nil {
		log.Printf("Failed to record export of %s: %v", book.ID, err)
		return err
	}
	return nil
}

// Recent returns the latest export records, newest first.
func (s *Service) Recent(limit int) ([]entities.ExportRecord, error) {
	return s.repo.GetRecent(limit)
}

// ForBook returns every export of one book, newest first.
func (s *Service) ForBook(bookID string) ([]entities.ExportRecord, error) {
	return s.repo.GetByBook(bookID)
}

// TimesExported returns how many successful exports a book has.
func (s *Service) TimesExported(bookID string) (int64, error) {
	return s.repo.CountByBook(bookID)
}

// Prune removes records older than the retention period.
func (s *Service) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOlderThan(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
