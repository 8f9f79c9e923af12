package history

import (
	"time"

	"osintkit/internal/journal"
	"osintkit/internal/store"
	"osintkit/models"
)

const maxEntries = 50

// HistoryService persists successful lookups into per-category bounded
// history files, partitioned by UTC year-month. Every write also journals
// an abbreviated entry (best-effort).
type HistoryService struct {
	store   *store.Store
	journal *journal.JournalService
}

func NewHistoryService(s *store.Store, j *journal.JournalService) *HistoryService {
	return &HistoryService{store: s, journal: j}
}

func monthKey(prefix string, now time.Time) string {
	return prefix + "_" + now.UTC().Format("200601")
}

// AddGeo appends a geolocation record to the current month's IP history.
func (s *HistoryService) AddGeo(record *models.GeoRecord) error {
	key := monthKey("ip_history", time.Now())
	records, err := store.LoadList[models.GeoRecord](s.store, "", key)
	if err != nil {
		return err
	}
	records = store.AppendWithCap(records, *record, maxEntries)
	if err := store.SaveList(s.store, "", key, records); err != nil {
		return err
	}

	s.journal.Record(models.JournalIPLookup, map[string]string{"ip": record.IP})
	return nil
}

// AddPhone appends a phone record to the current month's phone history.
func (s *HistoryService) AddPhone(record *models.PhoneRecord) error {
	key := monthKey("phone_history", time.Now())
	records, err := store.LoadList[models.PhoneRecord](s.store, "", key)
	if err != nil {
		return err
	}
	records = store.AppendWithCap(records, *record, maxEntries)
	if err := store.SaveList(s.store, "", key, records); err != nil {
		return err
	}

	s.journal.Record(models.JournalPhoneLookup, map[string]string{"number": record.E164})
	return nil
}

// RecentGeo returns the current month's IP history, newest first.
func (s *HistoryService) RecentGeo(limit int) ([]models.GeoRecord, error) {
	records, err := store.LoadList[models.GeoRecord](s.store, "", monthKey("ip_history", time.Now()))
	if err != nil {
		return nil, err
	}
	return newestFirst(records, limit), nil
}

// RecentPhone returns the current month's phone history, newest first.
func (s *HistoryService) RecentPhone(limit int) ([]models.PhoneRecord, error) {
	records, err := store.LoadList[models.PhoneRecord](s.store, "", monthKey("phone_history", time.Now()))
	if err != nil {
		return nil, err
	}
	return newestFirst(records, limit), nil
}

func newestFirst[T any](records []T, limit int) []T {
	reversed := make([]T, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed
}
