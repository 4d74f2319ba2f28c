package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// JSON writes payload with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

// Message writes a {"message": ...} body, the shape used for every
// informational and error response.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ServerError logs the underlying fault and answers with a generic 500.
func ServerError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	Message(w, http.StatusInternalServerError, "internal server error")
}
