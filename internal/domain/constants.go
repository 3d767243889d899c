package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot and pricing constants
const (
	// SlotStepMinutes шаг сетки слотов для выдачи доступности
	SlotStepMinutes = 60

	// MinutesPerHour используется при расчёте стоимости брони
	MinutesPerHour = 60.0
)

// Business validation constants
const (
	MaxCourtNameLength          = 100
	MaxSportLength              = 50
	MaxCancellationReasonLength = 500
)

// Default court working hours
const (
	DefaultOpenTime  = "06:00"
	DefaultCloseTime = "23:00"
)

// BlockingStatuses статусы, занимающие слот
// Используются при проверке пересечений во время создания брони
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, не занимающие слот
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
