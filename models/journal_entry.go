package models

import (
	"time"
)

type JournalCategory string

const (
	JournalIPLookup      JournalCategory = "ip_lookup"
	JournalPhoneLookup   JournalCategory = "phone_lookup"
	JournalDeviceCheckin JournalCategory = "device_checkin"
)

// JournalEntry represents one entry in the global activity journal
type JournalEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      JournalCategory   `json:"type"`
	Data      map[string]string `json:"data"`
}
