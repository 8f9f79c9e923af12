package web

import (
	"net/http"

	"osintkit/internal/device"
	"osintkit/internal/geoip"
	"osintkit/internal/journal"
	"osintkit/internal/phone"

	"github.com/gorilla/mux"
)

// Handlers bundles the per-package HTTP handlers the router wires up.
type Handlers struct {
	GeoIP   *geoip.GeoIPHandlers
	Phone   *phone.PhoneHandlers
	Device  *device.DeviceHandlers
	Journal *journal.JournalHandlers
}

// SetupRoutes exposes the caller-facing operations under /api for the
// local headless mode.
func SetupRoutes(h Handlers) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/track-ip", h.GeoIP.TrackIP).Methods("GET")
	api.HandleFunc("/public-ip", h.GeoIP.GetPublicIP).Methods("GET")
	api.HandleFunc("/ip-history", h.GeoIP.GetHistory).Methods("GET")
	api.HandleFunc("/phone/lookup", h.Phone.LookupPhone).Methods("POST")
	api.HandleFunc("/phone/validate", h.Phone.ValidatePhone).Methods("POST")
	api.HandleFunc("/devices", h.Device.GetAllDevices).Methods("GET")
	api.HandleFunc("/devices", h.Device.RegisterDevice).Methods("POST")
	api.HandleFunc("/devices/{index:[0-9]+}/checkin", h.Device.CheckInDevice).Methods("POST")
	api.HandleFunc("/devices/{index:[0-9]+}/history", h.Device.GetDeviceHistory).Methods("GET")
	api.HandleFunc("/journal", h.Journal.FindLatest).Methods("GET")
	api.HandleFunc("/journal", h.Journal.Clear).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(notFound)

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "not found", http.StatusNotFound)
}
