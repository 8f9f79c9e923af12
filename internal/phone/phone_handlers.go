package phone

import (
	"encoding/json"
	"net/http"

	"osintkit/internal/history"
)

type PhoneHandlers struct {
	Service *PhoneService
	History *history.HistoryService
}

func NewPhoneHandlers(service *PhoneService, hist *history.HistoryService) *PhoneHandlers {
	return &PhoneHandlers{Service: service, History: hist}
}

type lookupRequest struct {
	Number string `json:"number"`
}

func (h *PhoneHandlers) LookupPhone(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.Service.Lookup(req.Number)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.History.AddPhone(record); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (h *PhoneHandlers) ValidatePhone(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	validation, err := h.Service.Validate(req.Number)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(validation)
}
