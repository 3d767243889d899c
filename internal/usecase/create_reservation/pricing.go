package create_reservation

import (
	"fmt"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// computeDurationMinutes вычисляет длительность интервала в минутах
// Длительность всегда пересчитывается сервером, клиентским данным не доверяем
func computeDurationMinutes(start, end types.TimeString) (int, error) {
	minutes, err := start.MinutesUntil(end)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive", ErrInvalidTimeRange)
	}
	return minutes, nil
}

// computeAmount вычисляет стоимость брони
// Цена корта фиксируется на момент создания - последующие изменения цены
// не влияют на уже созданные брони. Дробные часы допустимы (1.5 часа и т.п.)
func computeAmount(durationMinutes int, pricePerHour float64) float64 {
	return float64(durationMinutes) / domain.MinutesPerHour * pricePerHour
}
