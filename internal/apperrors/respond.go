package apperrors

import (
	"encoding/json"
	"net/http"
)

// Respond writes the normalized error as a JSON body with the mapped status.
func Respond(w http.ResponseWriter, err error) {
	fe := Normalize(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(fe.Type))
	json.NewEncoder(w).Encode(map[string]*FriendlyError{"error": fe})
}

// RespondOp is Respond with an operation-specific title/action override.
func RespondOp(w http.ResponseWriter, err error, op Operation) {
	fe := ForOperation(err, op)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(fe.Type))
	json.NewEncoder(w).Encode(map[string]*FriendlyError{"error": fe})
}
