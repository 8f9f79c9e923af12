package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"osintkit/internal/config"
	"osintkit/models"
)

func CreateTestGeoRecord() *models.GeoRecord {
	return &models.GeoRecord{
		IP:          "203.0.113.1",
		Country:     "Philippines",
		CountryCode: "PH",
		Region:      "Metro Manila",
		City:        "Manila",
		Postal:      "1000",
		Latitude:    14.5995,
		Longitude:   120.9842,
		Timezone:    "Asia/Manila",
		ISP:         "Test ISP",
		Org:         "Test Org",
		ASN:         "AS9299",
		Source:      models.GeoSourcePrimary,
		Timestamp:   time.Now().UTC(),
	}
}

func CreateTestGeoRecordWithIP(ip string) *models.GeoRecord {
	record := CreateTestGeoRecord()
	record.IP = ip
	return record
}

func CreateTestPhoneRecord() *models.PhoneRecord {
	return &models.PhoneRecord{
		Input:          "+639171234567",
		E164:           "+639171234567",
		International:  "+63 917 123 4567",
		National:       "0917 123 4567",
		Valid:          true,
		Possible:       true,
		CountryCode:    63,
		NationalNumber: 9171234567,
		Location:       "Philippines",
		Carrier:        "Globe",
		LineType:       models.LineTypeMobile,
		Timezones:      "Asia/Manila",
		Timestamp:      time.Now().UTC(),
	}
}

// IPAPISuccessBody is a canned primary provider payload for stub servers.
const IPAPISuccessBody = `{
  "status": "success",
  "query": "203.0.113.1",
  "country": "Philippines",
  "countryCode": "PH",
  "regionName": "Metro Manila",
  "city": "Manila",
  "zip": "1000",
  "lat": 14.5995,
  "lon": 120.9842,
  "timezone": "Asia/Manila",
  "isp": "Test ISP",
  "org": "Test Org",
  "as": "AS9299 Test"
}`

// IPInfoBody is a canned secondary provider payload with the combined loc
// field.
const IPInfoBody = `{
  "ip": "203.0.113.1",
  "country": "PH",
  "region": "Metro Manila",
  "city": "Manila",
  "loc": "14.5995,120.9842",
  "postal": "1000",
  "timezone": "Asia/Manila",
  "org": "Test Org"
}`

// StubProvider starts an httptest server answering every request with the
// given status and body. It is closed automatically when the test ends.
func StubProvider(t *testing.T, status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// ProviderConfig builds a config pointing every provider at the given
// URLs, with a short timeout suitable for tests.
func ProviderConfig(dataDir, primary, secondary string) *config.Config {
	return &config.Config{
		DataDir:       dataDir,
		IPAPIURL:      primary,
		IPInfoURL:     secondary,
		IPifyURL:      primary,
		HTTPBinURL:    secondary,
		LookupTimeout: 2 * time.Second,
	}
}
