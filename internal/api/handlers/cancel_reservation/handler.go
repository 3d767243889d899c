package cancel_reservation

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

const (
	msgInvalidUID          = "некорректный идентификатор брони"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReasonTooLong       = "причина отмены слишком длинная"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgReservationNotFound = "бронь не найдена"
	msgCannotCancel        = "бронь не может быть отменена"
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

// Handle PUT /api/v1/bookings/{reservationUid}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["reservationUid"]
	if _, err := uuid.Parse(uid); err != nil {
		h.logger.Warn("PUT /bookings/{uid}/cancel - Invalid reservation UID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{uid}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	// Тело запроса опционально
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PUT /bookings/{uid}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		h.logger.Warn("PUT /bookings/{uid}/cancel - Cancellation reason too long: uid=%s", uid)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgReasonTooLong)
		return
	}

	serviceReq := &models.CancelReservationRequest{
		UserID:             userID,
		Role:               role,
		CancellationReason: req.CancellationReason,
	}

	if err := h.service.Cancel(r.Context(), uid, serviceReq); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PUT /bookings/{uid}/cancel - Reservation not found: uid=%s", uid)
			handlers.RespondNotFound(w, handlers.CodeBookingNotFound, msgReservationNotFound)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PUT /bookings/{uid}/cancel - Cannot cancel: uid=%s", uid)
			handlers.RespondBadRequest(w, handlers.CodeInvalidTransition, msgCannotCancel)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{uid}/cancel - Access denied: uid=%s, user_id=%d", uid, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /bookings/{uid}/cancel - Failed to cancel reservation: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{uid}/cancel - Reservation cancelled: uid=%s, user_id=%d", uid, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"reservationUid": uid, "status": "cancelled"})
}
