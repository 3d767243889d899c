package get_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations"
)

const (
	msgInvalidUID          = "некорректный идентификатор брони"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgReservationNotFound = "бронь не найдена"
	msgForbidden           = "доступ запрещен"
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

// Handle GET /api/v1/bookings/{reservationUid}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["reservationUid"]
	if _, err := uuid.Parse(uid); err != nil {
		h.logger.Warn("GET /bookings/{uid} - Invalid reservation UID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{uid} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	result, err := h.service.GetByUID(r.Context(), uid, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /bookings/{uid} - Reservation not found: uid=%s", uid)
			handlers.RespondNotFound(w, handlers.CodeBookingNotFound, msgReservationNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{uid} - Access denied: uid=%s, user_id=%d", uid, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{uid} - Failed to get reservation: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{uid} - Reservation retrieved: uid=%s, user_id=%d", uid, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
