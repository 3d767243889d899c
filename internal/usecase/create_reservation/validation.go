package create_reservation

import (
	"fmt"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	// Прошедшие даты на этом уровне не отсекаются - это политика
	// презентационного слоя, ядро хранит любые календарные даты
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return validateTimeRange(req.StartTime, req.EndTime)
}

// validateTimeRange проверяет формат и порядок границ интервала
func validateTimeRange(start, end types.TimeString) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidTimeRange)
	}

	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidTimeRange, err)
	}

	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidTimeRange, err)
	}

	// Бронь строго в пределах одних суток, ночные интервалы не поддерживаются
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	return nil
}

// findOverlapping возвращает первую блокирующую бронь, пересекающуюся с интервалом [start, end)
// Полуоткрытая семантика: интервалы пересекаются, только если s1 < e2 И s2 < e1,
// общая граница (конец одной брони = начало другой) пересечением не считается
func findOverlapping(start, end types.TimeString, reservations []*domain.Reservation) *domain.Reservation {
	for _, res := range reservations {
		if !res.IsBlocking() {
			continue
		}
		if res.Overlaps(start, end) {
			return res
		}
	}
	return nil
}
