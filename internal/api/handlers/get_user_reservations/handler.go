package get_user_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings
// Query params: status (опционально)
// Пользователь видит только свою историю, администратор - любую
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	targetIDStr := mux.Vars(r)["userId"]
	targetID, err := strconv.ParseInt(targetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	// Чужая история доступна только администратору
	if targetID != userID && role != domain.RoleAdmin {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: target=%d, user_id=%d", targetID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.GetUserReservationsRequest{UserID: targetID}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		serviceReq.Status = &statusStr
	}

	result, err := h.service.GetUserReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/bookings - Invalid status filter: user_id=%d", targetID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed to get reservations: user_id=%d, error=%v", targetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/bookings - Reservations retrieved: user_id=%d, count=%d",
		targetID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
