package web

import (
	"encoding/json"
	"net/http"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
)

func RespondWithJSON(w http.ResponseWriter, logger logs.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			if logger != nil {
				logger.Error("failed to encode response", "error", err)
			}
		}
	}
}
