package create_reservation

import (
	"errors"
	"net/http"

	"github.com/quickcourt/QC-BookingService/internal/api/handlers"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	createReservation "github.com/quickcourt/QC-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimeRange    = "некорректный временной интервал, ожидается HH:MM и startTime < endTime"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgCourtNotFound       = "корт не найден"
	msgCourtUnavailable    = "корт недоступен для бронирования"
	msgFacilityNotApproved = "площадка не прошла модерацию"
	msgSlotConflict        = "выбранный интервал пересекается с существующей бронью"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidTimeRange, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondConflict(w, handlers.CodeSlotConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, handlers.CodeCourtNotFound, msgCourtNotFound)

		case errors.Is(err, createReservation.ErrCourtUnavailable):
			h.logger.Warn("POST /bookings - Court unavailable: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, handlers.CodeCourtUnavailable, msgCourtUnavailable)

		case errors.Is(err, createReservation.ErrFacilityNotApproved):
			h.logger.Warn("POST /bookings - Facility not approved: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, handlers.CodeFacilityNotApproved, msgFacilityNotApproved)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidTimeRange, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create reservation: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Reservation created: uid=%s, user_id=%d, court_id=%d",
		result.ReservationUID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
