package device

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"osintkit/internal/geoip"
	"osintkit/internal/journal"
	"osintkit/internal/store"
	"osintkit/models"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

const (
	devicesKey         = "my_devices"
	deviceExportKey    = "device_list_export"
	historyCategory    = "device_history"
	defaultHistorySize = 10
)

var ErrDeviceNotFound = errors.New("device not found")

// DeviceService owns the set of user-declared devices and their append-only
// check-in sequences. All mutations re-persist the full device list.
type DeviceService struct {
	store   *store.Store
	geoIP   *geoip.GeoIPService
	journal *journal.JournalService
	logger  *pterm.Logger
}

func NewDeviceService(s *store.Store, geoIP *geoip.GeoIPService, j *journal.JournalService, logger *pterm.Logger) *DeviceService {
	return &DeviceService{
		store:   s,
		geoIP:   geoIP,
		journal: j,
		logger:  logger,
	}
}

// RegisterInput carries the user-declared device fields.
type RegisterInput struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	IMEI         string `json:"imei"`
	Serial       string `json:"serial"`
	PurchaseDate string `json:"purchase_date"`
}

// Register creates a new device and appends it to the persisted list.
// An IMEI that does not reduce to 14 or 15 digits is stored verbatim with
// a warning; registration never rejects on IMEI format. Duplicate names
// and IMEIs are allowed.
func (s *DeviceService) Register(input RegisterInput) (*models.Device, error) {
	device := models.Device{
		DeviceID:     newDeviceID(),
		Name:         input.Name,
		Type:         input.Type,
		Brand:        input.Brand,
		Model:        input.Model,
		IMEI:         normalizeIMEI(input.IMEI, s.logger),
		Serial:       input.Serial,
		PurchaseDate: input.PurchaseDate,
		RegisteredAt: time.Now().UTC(),
		Checkins:     []models.Checkin{},
	}

	devices, err := store.LoadList[models.Device](s.store, "", devicesKey)
	if err != nil {
		return nil, err
	}
	devices = append(devices, device)
	if err := store.SaveList(s.store, "", devicesKey, devices); err != nil {
		return nil, err
	}

	return &device, nil
}

// newDeviceID returns a short token for a freshly registered device. Eight
// hex characters of a v4 UUID is collision-resistant enough for the handful
// of devices one registry holds.
func newDeviceID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// normalizeIMEI reduces the input to digits when it forms a valid 14 or 15
// digit IMEI; anything else is preserved unmodified and flagged.
func normalizeIMEI(imei string, logger *pterm.Logger) string {
	var digits strings.Builder
	for _, r := range imei {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 14 || digits.Len() == 15 {
		return digits.String()
	}
	if imei != "" {
		logger.Warn("IMEI format unusual, expected 14-15 digits; storing as entered",
			logger.Args("imei", imei))
	}
	return imei
}

// FindAll returns every registered device in registration order and writes
// the convenience export file alongside.
func (s *DeviceService) FindAll() ([]models.Device, error) {
	devices, err := store.LoadList[models.Device](s.store, "", devicesKey)
	if err != nil {
		return nil, err
	}
	if len(devices) > 0 {
		if err := store.SaveList(s.store, "", deviceExportKey, devices); err != nil {
			return nil, err
		}
	}
	return devices, nil
}

// CheckIn records the current IP-based location against the device at the
// given index. A failed lookup leaves the registry untouched.
func (s *DeviceService) CheckIn(index int) (*models.Checkin, error) {
	devices, err := store.LoadList[models.Device](s.store, "", devicesKey)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(devices) {
		return nil, fmt.Errorf("%w: index %d", ErrDeviceNotFound, index)
	}

	location, err := s.geoIP.Lookup("")
	if err != nil {
		return nil, fmt.Errorf("could not get location for check-in: %w", err)
	}

	checkin := models.Checkin{
		Timestamp: time.Now().UTC(),
		IP:        location.IP,
		City:      location.City,
		Region:    location.Region,
		Country:   location.Country,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Method:    models.CheckinMethodIPGeolocation,
	}

	// Check-in lists are never trimmed; the full history is retained.
	devices[index].Checkins = append(devices[index].Checkins, checkin)
	if err := store.SaveList(s.store, "", devicesKey, devices); err != nil {
		return nil, err
	}

	s.journal.Record(models.JournalDeviceCheckin, map[string]string{
		"device":   devices[index].Name,
		"location": location.City,
	})
	return &checkin, nil
}

// History returns the device's most recent check-ins, newest first, capped
// at limit (default 10 when limit <= 0). It also refreshes the device's
// denormalized full-history export file; the export is not authoritative.
func (s *DeviceService) History(index, limit int) ([]models.Checkin, error) {
	devices, err := store.LoadList[models.Device](s.store, "", devicesKey)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(devices) {
		return nil, fmt.Errorf("%w: index %d", ErrDeviceNotFound, index)
	}
	device := devices[index]

	if limit <= 0 {
		limit = defaultHistorySize
	}

	checkins := device.Checkins
	recent := make([]models.Checkin, 0, limit)
	for i := len(checkins) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, checkins[i])
	}

	if len(checkins) > 0 {
		exportKey := fmt.Sprintf("device_%s_history", device.DeviceID)
		if err := store.SaveList(s.store, historyCategory, exportKey, checkins); err != nil {
			return nil, err
		}
	}

	return recent, nil
}
