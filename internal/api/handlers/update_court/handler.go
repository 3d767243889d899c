package update_court

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
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCourtNotFound      = "корт не найден"
	msgFacilityNotFound   = "площадка не найдена"
	msgEmptyUpdate        = "запрос не содержит изменяемых полей"
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

// Handle PUT /api/v1/courts/{courtId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtIDStr := mux.Vars(r)["courtId"]
	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /courts/{id} - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidCourtID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /courts/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	var req UpdateCourtRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /courts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateCourtRequest{
		UserID:       userID,
		Role:         role,
		Name:         req.Name,
		Sport:        req.Sport,
		PricePerHour: req.PricePerHour,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		IsAvailable:  req.IsAvailable,
	}

	result, err := h.service.Update(r.Context(), courtID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrCourtNotFound):
			h.logger.Warn("PUT /courts/{id} - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, handlers.CodeCourtNotFound, msgCourtNotFound)

		case errors.Is(err, courts.ErrFacilityNotFound):
			h.logger.Warn("PUT /courts/{id} - Facility not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, handlers.CodeFacilityNotFound, msgFacilityNotFound)

		case errors.Is(err, courts.ErrAccessDenied):
			h.logger.Warn("PUT /courts/{id} - Access denied: court_id=%d, user_id=%d", courtID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, courts.ErrEmptyUpdate):
			h.logger.Warn("PUT /courts/{id} - Empty update: court_id=%d", courtID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgEmptyUpdate)

		case errors.Is(err, courts.ErrInvalidInput):
			h.logger.Warn("PUT /courts/{id} - Invalid court data: court_id=%d", courtID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidCourtData)

		default:
			h.logger.Error("PUT /courts/{id} - Failed to update court: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /courts/{id} - Court updated: court_id=%d, user_id=%d", courtID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
