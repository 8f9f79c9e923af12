package device

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"osintkit/internal/geoip"
	"osintkit/internal/journal"
	"osintkit/internal/store"
	"osintkit/internal/testutil"
	"osintkit/models"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, primaryURL string) (*DeviceService, *store.Store, *journal.JournalService) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	logger := pterm.DefaultLogger.WithLevel(pterm.LogLevelError)

	cfg := testutil.ProviderConfig(s.Root(), primaryURL, primaryURL)
	geoIP := geoip.NewGeoIPService(cfg, logger)
	j := journal.NewJournalService(s, logger)
	return NewDeviceService(s, geoIP, j, logger), s, j
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:         "My Phone",
		Type:         "phone",
		Brand:        "Samsung",
		Model:        "Galaxy S21",
		IMEI:         "123456789012345",
		Serial:       "SN-001",
		PurchaseDate: "2024-03-01",
	}
}

func TestRegister_ValidIMEIStoredAsDigits(t *testing.T) {
	service, s, _ := newTestService(t, "http://unused")

	device, err := service.Register(registerInput())
	require.NoError(t, err)

	assert.Len(t, device.DeviceID, 8)
	assert.Equal(t, "123456789012345", device.IMEI)
	assert.False(t, device.RegisteredAt.IsZero())
	assert.NotNil(t, device.Checkins)

	stored, err := store.LoadList[models.Device](s, "", "my_devices")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, device.DeviceID, stored[0].DeviceID)
}

func TestRegister_IMEIWithSeparatorsIsNormalized(t *testing.T) {
	service, _, _ := newTestService(t, "http://unused")

	input := registerInput()
	input.IMEI = "12-345678-901234-5"
	device, err := service.Register(input)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345", device.IMEI)
}

func TestRegister_UnusualIMEIStoredVerbatim(t *testing.T) {
	service, _, _ := newTestService(t, "http://unused")

	input := registerInput()
	input.IMEI = "12-34"
	device, err := service.Register(input)
	require.NoError(t, err)
	assert.Equal(t, "12-34", device.IMEI)
}

func TestRegister_DuplicatesAreAllowed(t *testing.T) {
	service, _, _ := newTestService(t, "http://unused")

	first, err := service.Register(registerInput())
	require.NoError(t, err)
	second, err := service.Register(registerInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.DeviceID, second.DeviceID)

	devices, err := service.FindAll()
	require.NoError(t, err)
	assert.Len(t, devices, 2)
}

func TestCheckIn_EmptyRegistryWritesNothing(t *testing.T) {
	service, s, j := newTestService(t, "http://unused")

	_, err := service.CheckIn(0)
	require.ErrorIs(t, err, ErrDeviceNotFound)

	_, statErr := os.Stat(s.Path("", "my_devices"))
	assert.True(t, os.IsNotExist(statErr))

	entries, err := j.All(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckIn_AppendsLocationAndJournals(t *testing.T) {
	primary := testutil.StubProvider(t, http.StatusOK, testutil.IPAPISuccessBody)
	service, s, j := newTestService(t, primary.URL)

	_, err := service.Register(registerInput())
	require.NoError(t, err)

	checkin, err := service.CheckIn(0)
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.1", checkin.IP)
	assert.Equal(t, "Manila", checkin.City)
	assert.Equal(t, models.CheckinMethodIPGeolocation, checkin.Method)
	assert.InDelta(t, 14.5995, checkin.Latitude, 0.0001)

	stored, err := store.LoadList[models.Device](s, "", "my_devices")
	require.NoError(t, err)
	require.Len(t, stored[0].Checkins, 1)
	assert.Equal(t, checkin.IP, stored[0].Checkins[0].IP)

	entries, err := j.All(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.JournalDeviceCheckin, entries[0].Type)
	assert.Equal(t, "My Phone", entries[0].Data["device"])
	assert.Equal(t, "Manila", entries[0].Data["location"])
}

func TestCheckIn_LookupFailureLeavesRegistryUntouched(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()
	service, s, _ := newTestService(t, dead.URL)

	_, err := service.Register(registerInput())
	require.NoError(t, err)

	_, err = service.CheckIn(0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDeviceNotFound)

	stored, err := store.LoadList[models.Device](s, "", "my_devices")
	require.NoError(t, err)
	assert.Empty(t, stored[0].Checkins)
}

func TestHistory_MostRecentFirstWithDefaultLimit(t *testing.T) {
	primary := testutil.StubProvider(t, http.StatusOK, testutil.IPAPISuccessBody)
	service, s, _ := newTestService(t, primary.URL)

	registered, err := service.Register(registerInput())
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, err := service.CheckIn(0)
		require.NoError(t, err)
	}

	recent, err := service.History(0, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 10)

	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].Timestamp.After(recent[i-1].Timestamp))
	}

	// The export keeps the full, untrimmed check-in list.
	exportKey := fmt.Sprintf("device_%s_history", registered.DeviceID)
	exported, err := store.LoadList[models.Checkin](s, "device_history", exportKey)
	require.NoError(t, err)
	assert.Len(t, exported, 12)
}

func TestHistory_UnknownIndex(t *testing.T) {
	service, _, _ := newTestService(t, "http://unused")

	_, err := service.History(3, 0)
	require.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestFindAll_EmptyRegistry(t *testing.T) {
	service, s, _ := newTestService(t, "http://unused")

	devices, err := service.FindAll()
	require.NoError(t, err)
	assert.Empty(t, devices)

	// No export is written for an empty registry.
	_, statErr := os.Stat(s.Path("", "device_list_export"))
	assert.True(t, os.IsNotExist(statErr))
}
