package get_facility_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgFacilityNotFound  = "площадка не найдена"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/facilities/{facilityId}/bookings
// Query params: courtId, status, date, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityIDStr := mux.Vars(r)["facilityId"]
	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidFacilityID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /facilities/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	q := r.URL.Query()
	serviceReq, err := ToServiceRequest(facilityID, userID, role,
		q.Get("courtId"), q.Get("status"), q.Get("date"),
		q.Get("startDate"), q.Get("endDate"), q.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidParams)
		return
	}

	// Сервис сам проверит права владельца площадки
	result, err := h.service.GetFacilityReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/bookings - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, handlers.CodeFacilityNotFound, msgFacilityNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/bookings - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/bookings - Invalid parameters: facility_id=%d", facilityID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidParams)

		default:
			h.logger.Error("GET /facilities/{id}/bookings - Failed to get reservations: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/bookings - Reservations retrieved: facility_id=%d, count=%d",
		facilityID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
