package list_courts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/service/courts"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgFacilityNotFound  = "площадка не найдена"
)

type Handler struct {
	service CourtService
	logger  Logger
}

func NewHandler(service CourtService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityIDStr := mux.Vars(r)["facilityId"]
	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/courts - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidFacilityID)
		return
	}

	result, err := h.service.ListByFacility(r.Context(), facilityID)
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/courts - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, handlers.CodeFacilityNotFound, msgFacilityNotFound)

		default:
			h.logger.Error("GET /facilities/{id}/courts - Failed to list courts: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/courts - Courts retrieved: facility_id=%d, count=%d",
		facilityID, len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
