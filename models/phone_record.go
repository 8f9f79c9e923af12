package models

import (
	"time"
)

type PhoneLineType string

// Constants for the line type reported by the number metadata library
const (
	LineTypeFixedLine         PhoneLineType = "FIXED_LINE"
	LineTypeMobile            PhoneLineType = "MOBILE"
	LineTypeFixedLineOrMobile PhoneLineType = "FIXED_LINE_OR_MOBILE"
	LineTypeTollFree          PhoneLineType = "TOLL_FREE"
	LineTypePremiumRate       PhoneLineType = "PREMIUM_RATE"
	LineTypeSharedCost        PhoneLineType = "SHARED_COST"
	LineTypeVoIP              PhoneLineType = "VOIP"
	LineTypePersonalNumber    PhoneLineType = "PERSONAL_NUMBER"
	LineTypePager             PhoneLineType = "PAGER"
	LineTypeUAN               PhoneLineType = "UAN"
	LineTypeVoicemail         PhoneLineType = "VOICEMAIL"
	LineTypeUnknown           PhoneLineType = "Unknown"
)

// PhoneRecord is one normalized phone number lookup
type PhoneRecord struct {
	Input          string        `json:"input"`
	E164           string        `json:"e164"`
	International  string        `json:"international"`
	National       string        `json:"national"`
	Valid          bool          `json:"valid"`
	Possible       bool          `json:"possible"`
	CountryCode    int           `json:"country_code"`
	NationalNumber uint64        `json:"national_number"`
	Location       string        `json:"location"`
	Carrier        string        `json:"carrier"`
	LineType       PhoneLineType `json:"number_type"`
	Timezones      string        `json:"timezones"`
	OnlineInfo     *OnlineInfo   `json:"online_info,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// OnlineInfo is the inert online-lookup extension point; only local
// metadata is consulted today.
type OnlineInfo struct {
	Source string `json:"source"`
	Note   string `json:"note"`
}
