package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"osintkit/internal/device"
	"osintkit/internal/geoip"
	"osintkit/internal/history"
	"osintkit/internal/journal"
	"osintkit/internal/phone"
	"osintkit/models"

	"github.com/pterm/pterm"
)

// Shell is the interactive menu front-end. It is a thin I/O wrapper over
// the services and holds no logic of its own.
type Shell struct {
	geoIP   *geoip.GeoIPService
	phone   *phone.PhoneService
	devices *device.DeviceService
	history *history.HistoryService
	journal *journal.JournalService
	in      *bufio.Reader
}

func New(
	geoIP *geoip.GeoIPService,
	phoneService *phone.PhoneService,
	devices *device.DeviceService,
	hist *history.HistoryService,
	jrnl *journal.JournalService,
	in io.Reader,
) *Shell {
	return &Shell{
		geoIP:   geoIP,
		phone:   phoneService,
		devices: devices,
		history: hist,
		journal: jrnl,
		in:      bufio.NewReader(in),
	}
}

// Run loops on the main menu until the user exits or input ends.
func (s *Shell) Run() {
	for {
		pterm.DefaultSection.Println("Main menu")
		pterm.Println("1. IP geolocation lookup")
		pterm.Println("2. Phone number lookup")
		pterm.Println("3. Register your device")
		pterm.Println("4. Check in device")
		pterm.Println("5. Device history")
		pterm.Println("6. List devices")
		pterm.Println("7. View activity journal")
		pterm.Println("8. Clear activity journal")
		pterm.Println("0. Exit")

		choice, ok := s.prompt("Select option")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.ipMenu()
		case "2":
			s.phoneMenu()
		case "3":
			s.registerDevice()
		case "4":
			s.checkInDevice()
		case "5":
			s.deviceHistory()
		case "6":
			s.listDevices()
		case "7":
			s.viewJournal()
		case "8":
			if err := s.journal.Clear(); err != nil {
				pterm.Error.Println(err)
			} else {
				pterm.Success.Println("Journal cleared")
			}
		case "0":
			return
		default:
			pterm.Warning.Println("Invalid option")
		}
	}
}

func (s *Shell) ipMenu() {
	pterm.Println("1. Track your own IP")
	pterm.Println("2. Track a specific IP")
	pterm.Println("3. Show public IP only")
	choice, ok := s.prompt("Select option")
	if !ok {
		return
	}

	switch choice {
	case "1", "2":
		ip := ""
		if choice == "2" {
			ip, ok = s.prompt("IP address")
			if !ok {
				return
			}
		}
		record, err := s.geoIP.Lookup(ip)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		printGeoRecord(record)
		if s.confirm("Save this lookup to history?") {
			if err := s.history.AddGeo(record); err != nil {
				pterm.Error.Println(err)
			}
		}
	case "3":
		ip, err := s.geoIP.PublicIP()
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		pterm.Success.Printfln("Your public IP: %s", ip)
	}
}

func (s *Shell) phoneMenu() {
	pterm.Println("1. Look up phone number")
	pterm.Println("2. Validate phone number")
	pterm.Info.Println("Include the country code, e.g. +639171234567")
	choice, ok := s.prompt("Select option")
	if !ok {
		return
	}

	number, ok := s.prompt("Phone number")
	if !ok {
		return
	}

	switch choice {
	case "1":
		record, err := s.phone.Lookup(number)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		printPhoneRecord(record)
		if s.confirm("Save this lookup to history?") {
			if err := s.history.AddPhone(record); err != nil {
				pterm.Error.Println(err)
			}
		}
	case "2":
		validation, err := s.phone.Validate(number)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		pterm.Printfln("Valid: %t | Possible: %t", validation.Valid, validation.Possible)
		pterm.Printfln("International: %s", validation.International)
	}
}

func (s *Shell) registerDevice() {
	var input device.RegisterInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Device nickname", &input.Name},
		{"Device type (phone/tablet/laptop)", &input.Type},
		{"Brand", &input.Brand},
		{"Model", &input.Model},
		{"IMEI (from *#06# or box)", &input.IMEI},
		{"Serial number", &input.Serial},
		{"Purchase date (YYYY-MM-DD)", &input.PurchaseDate},
	}
	for _, f := range fields {
		value, ok := s.prompt(f.label)
		if !ok {
			return
		}
		*f.dst = value
	}

	registered, err := s.devices.Register(input)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	pterm.Success.Printfln("Device registered with ID %s", registered.DeviceID)
}

func (s *Shell) checkInDevice() {
	index, ok := s.selectDevice()
	if !ok {
		return
	}
	checkin, err := s.devices.CheckIn(index)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	pterm.Success.Printfln("Location recorded: %s, %s at %s",
		checkin.City, checkin.Country, checkin.Timestamp.Format("2006-01-02 15:04:05"))
}

func (s *Shell) deviceHistory() {
	index, ok := s.selectDevice()
	if !ok {
		return
	}
	checkins, err := s.devices.History(index, 0)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	if len(checkins) == 0 {
		pterm.Warning.Println("No location history for this device yet")
		return
	}
	for i, c := range checkins {
		pterm.Printfln("%d. %s  %s, %s, %s  (%.4f, %.4f)  IP %s",
			i+1, c.Timestamp.Format("2006-01-02 15:04:05"),
			c.City, c.Region, c.Country, c.Latitude, c.Longitude, c.IP)
	}
}

func (s *Shell) listDevices() {
	devices, err := s.devices.FindAll()
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	if len(devices) == 0 {
		pterm.Warning.Println("No registered devices")
		return
	}
	for i, d := range devices {
		pterm.Printfln("%d. %s (%s %s)  IMEI %s  registered %s  %d locations",
			i+1, d.Name, d.Brand, d.Model, d.IMEI,
			d.RegisteredAt.Format("2006-01-02"), len(d.Checkins))
	}
}

func (s *Shell) viewJournal() {
	entries, err := s.journal.All(20)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	if len(entries) == 0 {
		pterm.Warning.Println("No activity recorded")
		return
	}
	for _, e := range entries {
		pterm.Printfln("[%s] %s %s",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, journalDetail(e))
	}
}

func journalDetail(e models.JournalEntry) string {
	switch e.Type {
	case models.JournalIPLookup:
		return e.Data["ip"]
	case models.JournalPhoneLookup:
		return e.Data["number"]
	case models.JournalDeviceCheckin:
		return fmt.Sprintf("%s at %s", e.Data["device"], e.Data["location"])
	default:
		return ""
	}
}

// selectDevice lists devices and prompts for a 1-based choice, returning
// the 0-based service index.
func (s *Shell) selectDevice() (int, bool) {
	devices, err := s.devices.FindAll()
	if err != nil {
		pterm.Error.Println(err)
		return 0, false
	}
	if len(devices) == 0 {
		pterm.Warning.Println("No registered devices. Register one first.")
		return 0, false
	}
	for i, d := range devices {
		pterm.Printfln("%d. %s (%s %s)", i+1, d.Name, d.Brand, d.Model)
	}

	raw, ok := s.prompt("Select device number")
	if !ok {
		return 0, false
	}
	choice, err := strconv.Atoi(raw)
	if err != nil || choice < 1 || choice > len(devices) {
		pterm.Error.Println("Invalid selection")
		return 0, false
	}
	return choice - 1, true
}

func (s *Shell) prompt(label string) (string, bool) {
	pterm.Printf("%s: ", label)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false
	}
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (s *Shell) confirm(label string) bool {
	answer, ok := s.prompt(label + " (y/n)")
	return ok && strings.EqualFold(answer, "y")
}

func printGeoRecord(r *models.GeoRecord) {
	pterm.DefaultSection.Println("IP geolocation result")
	pterm.Printfln("IP address:  %s", r.IP)
	pterm.Printfln("Location:    %s, %s, %s", r.City, r.Region, r.Country)
	pterm.Printfln("Postal code: %s", r.Postal)
	pterm.Printfln("Coordinates: %.4f, %.4f", r.Latitude, r.Longitude)
	pterm.Printfln("Timezone:    %s", r.Timezone)
	pterm.Printfln("ISP:         %s", r.ISP)
	pterm.Printfln("Source:      %s", r.Source)
	pterm.Info.Println("IP geolocation is city-level ISP data, not device tracking")
}

func printPhoneRecord(r *models.PhoneRecord) {
	pterm.DefaultSection.Println("Phone number information")
	pterm.Printfln("Number:        %s", r.Input)
	pterm.Printfln("E.164:         %s", r.E164)
	pterm.Printfln("International: %s", r.International)
	pterm.Printfln("National:      %s", r.National)
	pterm.Printfln("Valid: %t | Possible: %t", r.Valid, r.Possible)
	pterm.Printfln("Country code:  +%d", r.CountryCode)
	pterm.Printfln("Location:      %s", r.Location)
	pterm.Printfln("Carrier:       %s", r.Carrier)
	pterm.Printfln("Number type:   %s", r.LineType)
	pterm.Printfln("Timezones:     %s", r.Timezones)
}
