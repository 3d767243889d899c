package create_reservation

import "errors"

var (
	// ErrInvalidTimeRange возвращается при некорректном временном интервале
	// (неверный формат HH:MM или startTime >= endTime)
	ErrInvalidTimeRange = errors.New("create_reservation: invalid time range")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_reservation: court not found")

	// ErrCourtUnavailable возвращается, когда корт административно выключен
	ErrCourtUnavailable = errors.New("create_reservation: court is unavailable")

	// ErrFacilityNotApproved возвращается, когда площадка не прошла модерацию
	ErrFacilityNotApproved = errors.New("create_reservation: facility is not approved")

	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается
	// с существующей блокирующей бронью
	ErrSlotConflict = errors.New("create_reservation: time slot conflicts with an existing reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
