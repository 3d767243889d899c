package update_reservation_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

const (
	msgInvalidUID          = "некорректный идентификатор брони"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgReservationNotFound = "бронь не найдена"
	msgInvalidTransition   = "недопустимый переход статуса"
	msgInvalidStatus       = "некорректный статус"
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

// Handle PUT /api/v1/bookings/{reservationUid}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["reservationUid"]
	if _, err := uuid.Parse(uid); err != nil {
		h.logger.Warn("PUT /bookings/{uid}/status - Invalid reservation UID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{uid}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{uid}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateStatusRequest{
		UserID: userID,
		Role:   role,
		Status: req.Status,
	}

	if err := h.service.UpdateStatus(r.Context(), uid, serviceReq); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PUT /bookings/{uid}/status - Reservation not found: uid=%s", uid)
			handlers.RespondNotFound(w, handlers.CodeBookingNotFound, msgReservationNotFound)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{uid}/status - Invalid transition to %s: uid=%s", req.Status, uid)
			handlers.RespondBadRequest(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{uid}/status - Invalid status %s: uid=%s", req.Status, uid)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidStatus)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{uid}/status - Access denied: uid=%s, user_id=%d", uid, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /bookings/{uid}/status - Failed to update status: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{uid}/status - Status updated: uid=%s, status=%s, user_id=%d", uid, req.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"reservationUid": uid, "status": req.Status})
}
