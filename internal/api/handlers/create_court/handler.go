package create_court

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	"github.com/quickcourt/QC-BookingService/internal/service/courts"
	"github.com/quickcourt/QC-BookingService/internal/service/courts/models"
)

const (
	msgInvalidFacilityID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgFacilityNotFound   = "площадка не найдена"
	msgInvalidCourtData   = "некорректные данные корта"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/facilities/{facilityId}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityIDStr := mux.Vars(r)["facilityId"]
	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/courts - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidFacilityID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities/{id}/courts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	var req CreateCourtRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/courts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CreateCourtRequest{
		UserID:       userID,
		Role:         role,
		FacilityID:   facilityID,
		Name:         req.Name,
		Sport:        req.Sport,
		PricePerHour: req.PricePerHour,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/courts - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, handlers.CodeFacilityNotFound, msgFacilityNotFound)

		case errors.Is(err, courts.ErrAccessDenied):
			h.logger.Warn("POST /facilities/{id}/courts - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, courts.ErrInvalidInput):
			h.logger.Warn("POST /facilities/{id}/courts - Invalid court data: facility_id=%d", facilityID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidCourtData)

		default:
			h.logger.Error("POST /facilities/{id}/courts - Failed to create court: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/courts - Court created: court_id=%d, facility_id=%d",
		result.ID, facilityID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
