package create_reservation

import (
	"time"

	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	UserID    int64            // ID аутентифицированного пользователя
	CourtID   int64            // ID корта
	Date      time.Time        // Дата брони (без времени)
	StartTime types.TimeString // Начало интервала, например "10:00"
	EndTime   types.TimeString // Конец интервала, например "11:30"
}

// Response модель ответа с созданной бронью
type Response struct {
	ID             int64
	ReservationUID string
	UserID         int64
	CourtID        int64
	FacilityID     int64

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	DurationMinutes int
	Amount          float64

	Status        string
	PaymentStatus string

	// Денормализованные данные корта (только для ответа, не хранятся в брони)
	CourtName    string
	Sport        string
	PricePerHour float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
