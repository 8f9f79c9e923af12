package phone

import (
	"fmt"
	"strings"
	"time"

	"osintkit/models"

	"github.com/nyaruka/phonenumbers"
	"github.com/pterm/pterm"
)

// PhoneService derives public information about a phone number from the
// local number metadata library. No network call is made.
type PhoneService struct {
	logger *pterm.Logger
}

func NewPhoneService(logger *pterm.Logger) *PhoneService {
	return &PhoneService{logger: logger}
}

// Validation holds the parse outcome and the three canonical formats.
type Validation struct {
	Valid         bool   `json:"valid"`
	Possible      bool   `json:"possible"`
	E164          string `json:"e164"`
	International string `json:"international"`
	National      string `json:"national"`
}

// Validate parses and formats a raw number. Numbers are parsed with no
// assumed default region, so the region must be inferable from a leading
// +countrycode. Valid and Possible are independent flags; a number can be
// possible but invalid.
func (s *PhoneService) Validate(raw string) (*Validation, error) {
	parsed, err := s.parse(raw)
	if err != nil {
		return nil, err
	}

	return &Validation{
		Valid:         phonenumbers.IsValidNumber(parsed),
		Possible:      phonenumbers.IsPossibleNumber(parsed),
		E164:          phonenumbers.Format(parsed, phonenumbers.E164),
		International: phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
		National:      phonenumbers.Format(parsed, phonenumbers.NATIONAL),
	}, nil
}

// Lookup builds a full PhoneRecord: validation flags, canonical formats and
// descriptive metadata (region, carrier, timezones, line type). A number
// that parses but fails validity still yields a record with Valid=false;
// only malformed input fails the operation.
func (s *PhoneService) Lookup(raw string) (*models.PhoneRecord, error) {
	parsed, err := s.parse(raw)
	if err != nil {
		return nil, err
	}

	validation, err := s.Validate(raw)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		s.logger.Warn("Number parsed but may be invalid or not exist",
			s.logger.Args("number", raw))
	}

	location, err := phonenumbers.GetGeocodingForNumber(parsed, "en")
	if err != nil || location == "" {
		location = models.UnknownField
	}
	carrier, err := phonenumbers.GetCarrierForNumber(parsed, "en")
	if err != nil || carrier == "" {
		carrier = models.UnknownField
	}
	timezones := models.UnknownField
	if zones, err := phonenumbers.GetTimezonesForNumber(parsed); err == nil && len(zones) > 0 {
		timezones = strings.Join(zones, ", ")
	}

	return &models.PhoneRecord{
		Input:          raw,
		E164:           validation.E164,
		International:  validation.International,
		National:       validation.National,
		Valid:          validation.Valid,
		Possible:       validation.Possible,
		CountryCode:    int(parsed.GetCountryCode()),
		NationalNumber: parsed.GetNationalNumber(),
		Location:       location,
		Carrier:        carrier,
		LineType:       lineTypeName(phonenumbers.GetNumberType(parsed)),
		Timezones:      timezones,
		OnlineInfo:     s.onlineLookup(validation.E164),
		Timestamp:      time.Now().UTC(),
	}, nil
}

func (s *PhoneService) parse(raw string) (*phonenumbers.PhoneNumber, error) {
	sanitized := sanitize(raw)
	if sanitized == "" {
		return nil, fmt.Errorf("invalid phone number format: %q contains no digits", raw)
	}

	parsed, err := phonenumbers.Parse(sanitized, "")
	if err != nil {
		return nil, fmt.Errorf("invalid phone number format %q: %w", raw, err)
	}
	return parsed, nil
}

// sanitize strips everything except digits and a leading "+".
func sanitize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// onlineLookup is the extension point for augmenting a record from public
// online databases. It is deliberately inert.
func (s *PhoneService) onlineLookup(e164 string) *models.OnlineInfo {
	return &models.OnlineInfo{
		Source: "local_database_only",
		Note:   "Online lookup disabled for privacy",
	}
}

func lineTypeName(numberType phonenumbers.PhoneNumberType) models.PhoneLineType {
	switch numberType {
	case phonenumbers.FIXED_LINE:
		return models.LineTypeFixedLine
	case phonenumbers.MOBILE:
		return models.LineTypeMobile
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return models.LineTypeFixedLineOrMobile
	case phonenumbers.TOLL_FREE:
		return models.LineTypeTollFree
	case phonenumbers.PREMIUM_RATE:
		return models.LineTypePremiumRate
	case phonenumbers.SHARED_COST:
		return models.LineTypeSharedCost
	case phonenumbers.VOIP:
		return models.LineTypeVoIP
	case phonenumbers.PERSONAL_NUMBER:
		return models.LineTypePersonalNumber
	case phonenumbers.PAGER:
		return models.LineTypePager
	case phonenumbers.UAN:
		return models.LineTypeUAN
	case phonenumbers.VOICEMAIL:
		return models.LineTypeVoicemail
	default:
		return models.LineTypeUnknown
	}
}
