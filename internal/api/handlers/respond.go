package handlers

import (
	"encoding/json"
	"net/http"
)

// Машиночитаемые коды ошибок API
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidTimeRange    = "INVALID_TIME_RANGE"
	CodeCourtNotFound       = "COURT_NOT_FOUND"
	CodeCourtUnavailable    = "COURT_UNAVAILABLE"
	CodeFacilityNotFound    = "FACILITY_NOT_FOUND"
	CodeFacilityNotApproved = "FACILITY_NOT_APPROVED"
	CodeSlotConflict        = "SLOT_CONFLICT"
	CodeBookingNotFound     = "BOOKING_NOT_FOUND"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeNotAuthorized       = "NOT_AUTHORIZED"
	CodeMissingIdentity     = "MISSING_IDENTITY"
	CodeInternalError       = "INTERNAL_ERROR"
)

// successEnvelope единый конверт успешного ответа
type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// errorEnvelope единый конверт ошибки
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// DecodeJSON декодирует JSON тело запроса в указанную структуру
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON отправляет успешный ответ в едином конверте
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

// RespondError отправляет ошибку в едином конверте с машиночитаемым кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: message, Code: code})
}

// RespondBadRequest отправляет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondUnauthorized отправляет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeMissingIdentity, message)
}

// RespondForbidden отправляет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeNotAuthorized, message)
}

// RespondNotFound отправляет 404 Not Found
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondConflict отправляет 409 Conflict
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError отправляет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "внутренняя ошибка сервера")
}
