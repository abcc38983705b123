// internal/app/features/shared/respond.go
package shared

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// JSON writes a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Error writes the standard error body {"error": "..."}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Decode reads a JSON request body into dst. A malformed body writes
// a 400 and returns false.
func Decode(w http.ResponseWriter, r *http.Request, log *zap.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Debug("bad request body", zap.Error(err))
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
