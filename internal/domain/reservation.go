package domain

import (
	"time"

	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// PaymentStatus represents the payment state of a reservation
// Независим от статуса брони, меняется платёжным контуром (вне этого сервиса)
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// CancelledBy identifies which side cancelled a reservation
type CancelledBy string

const (
	CancelledByUser  CancelledBy = "user"
	CancelledByOwner CancelledBy = "owner"
)

// Reservation represents a booked time interval on a court
type Reservation struct {
	ID             int64
	ReservationUID string // Публичный идентификатор (UUID)
	UserID         int64
	CourtID        int64
	FacilityID     int64 // Денормализовано из корта при создании, не пересчитывается

	BookingDate time.Time        // Дата брони (без времени)
	StartTime   types.TimeString // Начало интервала, включительно
	EndTime     types.TimeString // Конец интервала, исключительно

	DurationMinutes int     // Всегда пересчитывается сервером из интервала
	Amount          float64 // duration (в часах) * цена корта на момент создания

	Status        ReservationStatus
	PaymentStatus PaymentStatus

	CancelledBy        *CancelledBy
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the reservation occupies its time slot
// Только блокирующие брони участвуют в проверке пересечений
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if no further transition is allowed from the current status
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// legalTransitions допустимые переходы статусов
// completed устанавливается только фоновым джобом завершения
var legalTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransitionTo returns true if the status change from current to next is legal
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range legalTransitions[r.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Overlaps returns true if the reservation interval overlaps [start, end)
// Полуоткрытые интервалы: общая граница пересечением не считается
func (r *Reservation) Overlaps(start, end types.TimeString) bool {
	return r.StartTime.IsBefore(end) && start.IsBefore(r.EndTime)
}

// FacilityReservationsFilter фильтр для выборки бронирований площадки
type FacilityReservationsFilter struct {
	FacilityID      int64              // Обязательный параметр
	CourtID         *int64             // Фильтр по корту (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и завершённые брони
}
