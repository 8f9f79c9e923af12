package device

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type DeviceHandlers struct {
	Service *DeviceService
}

func NewDeviceHandlers(service *DeviceService) *DeviceHandlers {
	return &DeviceHandlers{Service: service}
}

func (h *DeviceHandlers) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	device, err := h.Service.Register(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(device)
}

func (h *DeviceHandlers) GetAllDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.Service.FindAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(devices)
}

func (h *DeviceHandlers) CheckInDevice(w http.ResponseWriter, r *http.Request) {
	index, err := deviceIndex(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	checkin, err := h.Service.CheckIn(index)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(checkin)
}

func (h *DeviceHandlers) GetDeviceHistory(w http.ResponseWriter, r *http.Request) {
	index, err := deviceIndex(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	checkins, err := h.Service.History(index, limit)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(checkins)
}

func deviceIndex(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["index"])
}
