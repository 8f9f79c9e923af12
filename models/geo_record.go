package models

import (
	"time"
)

type GeoSource string

// Constants for the provider a record was normalized from
const (
	GeoSourcePrimary   GeoSource = "primary"
	GeoSourceSecondary GeoSource = "secondary"
)

// UnknownField is the sentinel for provider fields that were absent
const UnknownField = "Unknown"

// GeoRecord is the canonical geolocation result all providers map into
type GeoRecord struct {
	IP          string    `json:"ip"`
	Country     string    `json:"country"`
	CountryCode string    `json:"country_code"`
	Region      string    `json:"region"`
	City        string    `json:"city"`
	Postal      string    `json:"postal"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Timezone    string    `json:"timezone"`
	ISP         string    `json:"isp"`
	Org         string    `json:"organization"`
	ASN         string    `json:"as_number"`
	Source      GeoSource `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}
