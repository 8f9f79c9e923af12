package geoip

import (
	"encoding/json"
	"net/http"

	"osintkit/internal/history"
)

type GeoIPHandlers struct {
	Service *GeoIPService
	History *history.HistoryService
}

func NewGeoIPHandlers(service *GeoIPService, hist *history.HistoryService) *GeoIPHandlers {
	return &GeoIPHandlers{Service: service, History: hist}
}

// TrackIP looks up the "ip" query parameter, or the caller's own public
// address when absent, and records the result in history.
func (h *GeoIPHandlers) TrackIP(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.Lookup(r.URL.Query().Get("ip"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if err := h.History.AddGeo(record); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (h *GeoIPHandlers) GetPublicIP(w http.ResponseWriter, r *http.Request) {
	ip, err := h.Service.PublicIP()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"ip": ip})
}

func (h *GeoIPHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.History.RecentGeo(0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
