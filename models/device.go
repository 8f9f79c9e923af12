package models

import (
	"time"
)

// CheckinMethodIPGeolocation is the only check-in method today
const CheckinMethodIPGeolocation = "ip_geolocation"

// Device represents a user-declared device entity
type Device struct {
	DeviceID     string    `json:"device_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	IMEI         string    `json:"imei"`
	Serial       string    `json:"serial"`
	PurchaseDate string    `json:"purchase_date"`
	RegisteredAt time.Time `json:"registered"`
	Checkins     []Checkin `json:"locations"`
}

// Checkin is one self-reported location sample; appended only, never
// mutated or removed individually.
type Checkin struct {
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Method    string    `json:"method"`
}
