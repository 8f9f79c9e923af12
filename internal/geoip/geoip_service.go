package geoip

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"osintkit/internal/config"
	"osintkit/models"

	"github.com/pterm/pterm"
)

// GeoIPService resolves an IP address (or the caller's own public address)
// to a canonical GeoRecord, querying the primary provider first and falling
// back exactly once to the secondary on failure.
type GeoIPService struct {
	client       *http.Client
	primaryURL   string
	secondaryURL string
	ipifyURL     string
	httpbinURL   string
	logger       *pterm.Logger
}

func NewGeoIPService(cfg *config.Config, logger *pterm.Logger) *GeoIPService {
	client := &http.Client{
		Timeout: cfg.LookupTimeout,
	}

	return &GeoIPService{
		client:       client,
		primaryURL:   strings.TrimRight(cfg.IPAPIURL, "/"),
		secondaryURL: strings.TrimRight(cfg.IPInfoURL, "/"),
		ipifyURL:     cfg.IPifyURL,
		httpbinURL:   cfg.HTTPBinURL,
		logger:       logger,
	}
}

// ipAPIResponse is the primary provider's flat payload. Status carries the
// provider's own success indicator.
type ipAPIResponse struct {
	Status      string  `json:"status"`
	Query       string  `json:"query"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	RegionName  string  `json:"regionName"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
	Org         string  `json:"org"`
	AS          string  `json:"as"`
}

// ipInfoResponse is the secondary provider's payload. Loc is a combined
// "lat,lon" string.
type ipInfoResponse struct {
	IP       string `json:"ip"`
	Country  string `json:"country"`
	Region   string `json:"region"`
	City     string `json:"city"`
	Loc      string `json:"loc"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
	Org      string `json:"org"`
}

// Lookup resolves the given IP, or the caller's own public address when ip
// is empty. The primary provider is tried first; a transport failure or a
// payload without the success status triggers a single fallback hop to the
// secondary provider. There is no retry within a provider.
func (s *GeoIPService) Lookup(ip string) (*models.GeoRecord, error) {
	record, primaryErr := s.lookupPrimary(ip)
	if primaryErr == nil {
		return record, nil
	}
	s.logger.Warn("Primary geolocation provider failed, falling back",
		s.logger.Args("provider", s.primaryURL, "error", primaryErr))

	record, secondaryErr := s.lookupSecondary(ip)
	if secondaryErr != nil {
		return nil, fmt.Errorf("all geolocation providers failed: primary: %v; secondary: %w",
			primaryErr, secondaryErr)
	}
	return record, nil
}

func (s *GeoIPService) lookupPrimary(ip string) (*models.GeoRecord, error) {
	url := s.primaryURL
	if ip != "" {
		url = url + "/" + ip
	}

	var payload ipAPIResponse
	if err := s.getJSON(url, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("provider returned status %q", payload.Status)
	}
	return fromIPAPI(&payload), nil
}

func (s *GeoIPService) lookupSecondary(ip string) (*models.GeoRecord, error) {
	url := s.secondaryURL + "/json"
	if ip != "" {
		url = s.secondaryURL + "/" + ip + "/json"
	}

	var payload ipInfoResponse
	if err := s.getJSON(url, &payload); err != nil {
		return nil, err
	}
	return fromIPInfo(&payload), nil
}

// fromIPAPI maps the primary provider's payload into the canonical record.
// Adding a provider means adding one more mapping function like this one.
func fromIPAPI(payload *ipAPIResponse) *models.GeoRecord {
	return &models.GeoRecord{
		IP:          orUnknown(payload.Query),
		Country:     orUnknown(payload.Country),
		CountryCode: orUnknown(payload.CountryCode),
		Region:      orUnknown(payload.RegionName),
		City:        orUnknown(payload.City),
		Postal:      orUnknown(payload.Zip),
		Latitude:    payload.Lat,
		Longitude:   payload.Lon,
		Timezone:    orUnknown(payload.Timezone),
		ISP:         orUnknown(payload.ISP),
		Org:         orUnknown(payload.Org),
		ASN:         orUnknown(payload.AS),
		Source:      models.GeoSourcePrimary,
		Timestamp:   time.Now().UTC(),
	}
}

func fromIPInfo(payload *ipInfoResponse) *models.GeoRecord {
	lat, lon := splitLoc(payload.Loc)
	return &models.GeoRecord{
		IP:          orUnknown(payload.IP),
		Country:     orUnknown(payload.Country),
		CountryCode: orUnknown(payload.Country),
		Region:      orUnknown(payload.Region),
		City:        orUnknown(payload.City),
		Postal:      orUnknown(payload.Postal),
		Latitude:    lat,
		Longitude:   lon,
		Timezone:    orUnknown(payload.Timezone),
		ISP:         orUnknown(payload.Org),
		Org:         orUnknown(payload.Org),
		ASN:         models.UnknownField,
		Source:      models.GeoSourceSecondary,
		Timestamp:   time.Now().UTC(),
	}
}

// splitLoc parses a combined "lat,lon" field. Anything that does not split
// into two floats defaults both coordinates to 0.
func splitLoc(loc string) (float64, float64) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lonErr != nil {
		return 0, 0
	}
	return lat, lon
}

// PublicIP returns the caller's raw public IP string with no geolocation,
// using its own minimal two-provider fallback. The result is display-only
// and never persisted.
func (s *GeoIPService) PublicIP() (string, error) {
	var ipify struct {
		IP string `json:"ip"`
	}
	if err := s.getJSON(s.ipifyURL+"?format=json", &ipify); err == nil && ipify.IP != "" {
		return ipify.IP, nil
	}

	var httpbin struct {
		Origin string `json:"origin"`
	}
	if err := s.getJSON(s.httpbinURL, &httpbin); err != nil {
		return "", fmt.Errorf("could not determine public IP: %w", err)
	}
	if httpbin.Origin == "" {
		return "", fmt.Errorf("could not determine public IP: empty response")
	}
	return httpbin.Origin, nil
}

func (s *GeoIPService) getJSON(url string, v any) error {
	resp, err := s.client.Get(url)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request to %s failed: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

func orUnknown(value string) string {
	if value == "" {
		return models.UnknownField
	}
	return value
}
