package events

// Routing keys публикуемых событий
const (
	KeyReservationCreated   = "reservation.created"
	KeyReservationConfirmed = "reservation.confirmed"
	KeyReservationCancelled = "reservation.cancelled"
)

// ReservationEvent событие жизненного цикла брони
// Содержит достаточно данных, чтобы потребители (нотификации, аналитика)
// не ходили в основную БД
type ReservationEvent struct {
	ReservationUID string  `json:"reservationUid"`
	UserID         int64   `json:"userId"`
	CourtID        int64   `json:"courtId"`
	FacilityID     int64   `json:"facilityId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	EndTime        string  `json:"endTime"`     // "11:00"
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	OccurredAt     string  `json:"occurredAt"` // RFC3339
}
