// Package handlers общие помощники HTTP-слоя: декодирование запросов
// и единый формат ответов об ошибках
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrEmptyBody возвращается при пустом теле запроса
var ErrEmptyBody = errors.New("handlers: empty request body")

// ErrorResponse единый формат тела ошибки
type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON декодирует JSON-тело запроса в dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет JSON-ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest пишет ошибку 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound пишет ошибку 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondForbidden пишет ошибку 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondConflict пишет ошибку 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError пишет ошибку 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "internal server error")
}
