package phone

import (
	"testing"

	"osintkit/models"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *PhoneService {
	return NewPhoneService(pterm.DefaultLogger.WithLevel(pterm.LogLevelError))
}

func TestValidate_FormatsAreConsistent(t *testing.T) {
	service := newTestService()

	validation, err := service.Validate("+44 7911 123456")
	require.NoError(t, err)

	assert.True(t, validation.Valid)
	assert.True(t, validation.Possible)
	assert.Equal(t, "+447911123456", validation.E164)
	assert.Equal(t, "+44 7911 123456", validation.International)
	assert.Equal(t, "07911 123456", validation.National)
}

func TestLookup_ValidMobileNumber(t *testing.T) {
	service := newTestService()

	record, err := service.Lookup("+447911123456")
	require.NoError(t, err)

	assert.True(t, record.Valid)
	assert.Equal(t, "+447911123456", record.Input)
	assert.Equal(t, "+447911123456", record.E164)
	assert.Equal(t, 44, record.CountryCode)
	assert.Equal(t, uint64(7911123456), record.NationalNumber)
	assert.Equal(t, models.LineTypeMobile, record.LineType)
	assert.Contains(t, record.Timezones, "Europe/London")
	assert.NotEmpty(t, record.Location)
	assert.NotEmpty(t, record.Carrier)
	assert.False(t, record.Timestamp.IsZero())
}

func TestLookup_InvalidButParseableStillSucceeds(t *testing.T) {
	service := newTestService()

	// Too short for a UK mobile: parses, fails validity.
	record, err := service.Lookup("+44791112345")
	require.NoError(t, err)
	assert.False(t, record.Valid)
	assert.Equal(t, 44, record.CountryCode)
}

func TestLookup_MalformedInputFails(t *testing.T) {
	service := newTestService()

	_, err := service.Lookup("hello world")
	assert.Error(t, err)

	// No leading country code and no default region: ambiguous, rejected.
	_, err = service.Lookup("0917 123 4567")
	assert.Error(t, err)
}

func TestLookup_OnlineLookupIsInert(t *testing.T) {
	service := newTestService()

	record, err := service.Lookup("+447911123456")
	require.NoError(t, err)
	require.NotNil(t, record.OnlineInfo)
	assert.Equal(t, "local_database_only", record.OnlineInfo.Source)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "+639171234567", sanitize(" +63 (917) 123-4567 "))
	assert.Equal(t, "+441234", sanitize("+44-12.34"))
	assert.Equal(t, "12345", sanitize("1-2 3a4b5"))
	assert.Equal(t, "", sanitize("abc"))
}

func TestLineTypeName_UnknownCode(t *testing.T) {
	assert.Equal(t, models.LineTypeUnknown, lineTypeName(99))
}
