package journal

import (
	"time"

	"osintkit/internal/store"
	"osintkit/models"

	"github.com/pterm/pterm"
)

const (
	logKey     = "activity_log"
	maxEntries = 100
)

// JournalService maintains the single global activity log. Writes are
// best-effort: a journal that cannot be persisted must never fail or block
// the operation it records. That contract applies to this service only.
type JournalService struct {
	store  *store.Store
	logger *pterm.Logger
}

func NewJournalService(s *store.Store, logger *pterm.Logger) *JournalService {
	return &JournalService{store: s, logger: logger}
}

// Record appends one entry, trimming to the newest maxEntries. Errors are
// swallowed deliberately.
func (s *JournalService) Record(category models.JournalCategory, data map[string]string) {
	entries, err := store.LoadList[models.JournalEntry](s.store, "", logKey)
	if err != nil {
		s.logger.Debug("Skipping journal write", s.logger.Args("error", err))
		return
	}

	entries = store.AppendWithCap(entries, models.JournalEntry{
		Timestamp: time.Now().UTC(),
		Type:      category,
		Data:      data,
	}, maxEntries)

	if err := store.SaveList(s.store, "", logKey, entries); err != nil {
		s.logger.Debug("Skipping journal write", s.logger.Args("error", err))
	}
}

// All returns the newest entries first, at most limit of them. limit <= 0
// returns everything. An absent journal yields an empty slice.
func (s *JournalService) All(limit int) ([]models.JournalEntry, error) {
	entries, err := store.LoadList[models.JournalEntry](s.store, "", logKey)
	if err != nil {
		return nil, err
	}

	// Stored oldest first; reverse for display.
	reversed := make([]models.JournalEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed, nil
}

// Clear removes the journal file entirely.
func (s *JournalService) Clear() error {
	return s.store.Remove("", logKey)
}
