package get_available_slots

import (
	"time"

	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// Request модель запроса доступных слотов корта на дату
type Request struct {
	CourtID int64
	Date    time.Time
}

// Slot доступный слот
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модель ответа со свободными слотами
type Response struct {
	CourtID   int64
	CourtName string
	Date      time.Time
	OpenTime  types.TimeString
	CloseTime types.TimeString
	Slots     []Slot
}
