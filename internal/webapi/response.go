package webapi

import (
	"encoding/json"
	"net/http"

	"github.com/Spok95/university-assistant-bot/internal/apperr"
)

// Envelope: общий ответ API. Доменные ошибки отдаются с кодом 200 и success=false.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func writeFail(w http.ResponseWriter, err error) {
	e := apperr.FromError(err)
	writeJSON(w, http.StatusOK, Envelope{Success: false, Error: e.Message, Code: e.Code})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Error: msg, Code: apperr.ErrInvalidInput.Code})
}
