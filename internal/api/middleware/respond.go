package middleware

import (
	"customer-service/internal/api/handler/dto"
	"encoding/json"
	"net/http"
)

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.Envelope{Status: status, Message: message})
}
