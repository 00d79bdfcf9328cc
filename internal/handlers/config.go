package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/app"
	"github.com/shrimpsizemoose/examdesk/internal/store"
)

type ConfigHandler struct {
	service *app.Service
}

func NewConfigHandler(service *app.Service) *ConfigHandler {
	return &ConfigHandler{service: service}
}

func (h *ConfigHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Access.ConfigurationStatus(r.Context()))
}

func (h *ConfigHandler) HandleSetURL(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WebAppURL string `json:"webAppUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Access.SetPrimaryURL(r.Context(), body.WebAppURL); err != nil {
		logger.Error.Printf("Failed to set web app url: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Access.ConfigurationStatus(r.Context()))
}

func (h *ConfigHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Access.ResetPrimaryURL(r.Context()); err != nil {
		logger.Error.Printf("Failed to reset web app url: %v", err)
		http.Error(w, "Failed to reset web app url", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Access.ConfigurationStatus(r.Context()))
}

func (h *ConfigHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	res := h.service.Access.TestConnection(r.Context())
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, res)
}

func (h *ConfigHandler) HandleJournal(w http.ResponseWriter, r *http.Request) {
	if h.service.Journal == nil {
		http.Error(w, "Journal is disabled", http.StatusNotFound)
		return
	}

	limit := store.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.service.Journal.List(limit)
	if err != nil {
		logger.Error.Printf("ERROR: %v", err)
		http.Error(w, "Failed to fetch journal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": entries,
	})
}
