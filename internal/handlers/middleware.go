package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// RecoveryMiddleware recovers from panics and returns 500 Internal Server Error
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new RecoveryMiddleware
func NewRecoveryMiddleware() *RecoveryMiddleware {
	return &RecoveryMiddleware{}
}

// Recover wraps a handler with panic recovery
func (m *RecoveryMiddleware) Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				correlationID := uuid.New().String()
				log.Printf("[%s] Panic recovered: %v", correlationID, err)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Correlation-ID", correlationID)
				w.WriteHeader(http.StatusInternalServerError)

				response := ErrorResponse{
					Error:         "internal server error",
					CorrelationID: correlationID,
				}

				if err := json.NewEncoder(w).Encode(response); err != nil {
					log.Printf("[%s] Failed to encode error response: %v", correlationID, err)
				}
			}
		}()

		next(w, r)
	}
}
