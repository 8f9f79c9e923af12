package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"osintkit/internal/device"
	"osintkit/internal/geoip"
	"osintkit/internal/history"
	"osintkit/internal/journal"
	"osintkit/internal/phone"
	"osintkit/internal/store"
	"osintkit/internal/testutil"
	"osintkit/models"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, providerURL string) http.Handler {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	logger := pterm.DefaultLogger.WithLevel(pterm.LogLevelError)

	cfg := testutil.ProviderConfig(s.Root(), providerURL, providerURL)
	geoIPService := geoip.NewGeoIPService(cfg, logger)
	phoneService := phone.NewPhoneService(logger)
	journalService := journal.NewJournalService(s, logger)
	historyService := history.NewHistoryService(s, journalService)
	deviceService := device.NewDeviceService(s, geoIPService, journalService, logger)

	return SetupRoutes(Handlers{
		GeoIP:   geoip.NewGeoIPHandlers(geoIPService, historyService),
		Phone:   phone.NewPhoneHandlers(phoneService, historyService),
		Device:  device.NewDeviceHandlers(deviceService),
		Journal: journal.NewJournalHandlers(journalService),
	})
}

func TestTrackIPEndpoint(t *testing.T) {
	provider := testutil.StubProvider(t, http.StatusOK, testutil.IPAPISuccessBody)
	router := newTestRouter(t, provider.URL)

	req := httptest.NewRequest("GET", "/api/track-ip?ip=203.0.113.1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var record models.GeoRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "203.0.113.1", record.IP)
	assert.Equal(t, models.GeoSourcePrimary, record.Source)
}

func TestPhoneLookupEndpoint(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	body, _ := json.Marshal(map[string]string{"number": "+447911123456"})
	req := httptest.NewRequest("POST", "/api/phone/lookup", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var record models.PhoneRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.True(t, record.Valid)
	assert.Equal(t, "+447911123456", record.E164)
}

func TestPhoneLookupEndpoint_MalformedNumber(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	body, _ := json.Marshal(map[string]string{"number": "not a number"})
	req := httptest.NewRequest("POST", "/api/phone/lookup", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeviceRegisterAndCheckinEndpoints(t *testing.T) {
	provider := testutil.StubProvider(t, http.StatusOK, testutil.IPAPISuccessBody)
	router := newTestRouter(t, provider.URL)

	body, _ := json.Marshal(device.RegisterInput{Name: "My Phone", IMEI: "123456789012345"})
	req := httptest.NewRequest("POST", "/api/devices", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest("POST", "/api/devices/0/checkin", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var checkin models.Checkin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkin))
	assert.Equal(t, models.CheckinMethodIPGeolocation, checkin.Method)
}

func TestDeviceCheckinEndpoint_UnknownDevice(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	req := httptest.NewRequest("POST", "/api/devices/5/checkin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJournalEndpoints(t *testing.T) {
	provider := testutil.StubProvider(t, http.StatusOK, testutil.IPAPISuccessBody)
	router := newTestRouter(t, provider.URL)

	// A tracked IP produces one journal entry.
	req := httptest.NewRequest("GET", "/api/track-ip", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/api/journal", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []models.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.JournalIPLookup, entries[0].Type)

	req = httptest.NewRequest("DELETE", "/api/journal", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
