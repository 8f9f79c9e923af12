package journal

import (
	"encoding/json"
	"net/http"
)

type JournalHandlers struct {
	Service *JournalService
}

func NewJournalHandlers(service *JournalService) *JournalHandlers {
	return &JournalHandlers{Service: service}
}

func (h *JournalHandlers) FindLatest(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.All(20)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (h *JournalHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Clear(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
