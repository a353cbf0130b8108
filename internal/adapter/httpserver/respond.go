package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Maron09/Product-Store/internal/usecase"
)

// response is the envelope every endpoint returns.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, response{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	var uerr *usecase.Error
	if errors.As(err, &uerr) {
		writeJSON(w, statusForKind(uerr.Kind), response{Success: false, Message: uerr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: err.Error()})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, response{Success: false, Message: message})
}

func statusForKind(kind usecase.Kind) int {
	switch kind {
	case usecase.KindAuthentication:
		return http.StatusUnauthorized
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindPermission:
		return http.StatusForbidden
	case usecase.KindValidation, usecase.KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
