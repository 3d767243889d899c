package models

import (
	"errors"
	"time"

	"github.com/quickcourt/QC-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену брони
type CancelReservationRequest struct {
	UserID             int64       `json:"userId"`
	Role               domain.Role `json:"role"`
	CancellationReason string      `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса брони
type UpdateStatusRequest struct {
	UserID int64       `json:"userId"`
	Role   domain.Role `json:"role"`
	Status string      `json:"status"`
}

// GetUserReservationsRequest запрос истории броней пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetFacilityReservationsRequest запрос броней площадки с фильтрацией
type GetFacilityReservationsRequest struct {
	UserID          int64       `json:"userId"`
	Role            domain.Role `json:"role"`
	FacilityID      int64       `json:"facilityId"`
	CourtID         *int64      `json:"courtId,omitempty"`         // Фильтр по корту (опционально)
	StartDate       *time.Time  `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time  `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string     `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool        `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityReservationsRequest) ToDomainFilter() (domain.FacilityReservationsFilter, error) {
	filter := domain.FacilityReservationsFilter{
		FacilityID:      r.FacilityID,
		CourtID:         r.CourtID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID             int64  `json:"id"`
	ReservationUID string `json:"reservationUid"`
	UserID         int64  `json:"userId"`
	CourtID        int64  `json:"courtId"`
	FacilityID     int64  `json:"facilityId"`

	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`     // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	Amount          float64 `json:"amount"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ReservationUID:     r.ReservationUID,
		UserID:             r.UserID,
		CourtID:            r.CourtID,
		FacilityID:         r.FacilityID,
		BookingDate:        r.BookingDate.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Amount:             r.Amount,
		Status:             string(r.Status),
		PaymentStatus:      string(r.PaymentStatus),
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledBy != nil {
		by := string(*r.CancelledBy)
		resp.CancelledBy = &by
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, res := range reservations {
		if dto := FromDomainReservation(res); dto != nil {
			resp.Reservations[i] = *dto
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
