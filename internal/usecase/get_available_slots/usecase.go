package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	courtRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/court"
)

// UseCase use case получения свободных слотов корта на дату
type UseCase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, courtRepo CourtRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Ответ - мгновенный снимок без блокировок: слот может быть занят
// конкурентной бронью между этим чтением и последующим созданием,
// конфликт в таком случае отлавливается при создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: court=%d, date=%s", req.CourtID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем корт
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableSlots: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 3. Выключенный корт слотов не отдаёт
	if !court.IsAvailable {
		uc.logger.Warn("GetAvailableSlots: court id=%d is unavailable", req.CourtID)
		return nil, ErrCourtUnavailable
	}

	// 4. Получаем блокирующие брони корта на дату
	blocking, err := uc.reservationRepo.GetBlockingByCourtAndDate(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocking reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocking reservations: %v", ErrInternal, err)
	}

	// 5. Строим сетку слотов и отбрасываем занятые
	grid := buildSlotGrid(court.OpenTime, court.CloseTime)
	free := filterFree(grid, blocking)

	uc.logger.Info("GetAvailableSlots: court=%d, date=%s: %d of %d slots free",
		req.CourtID, req.Date.Format(domain.DateFormat), len(free), len(grid))

	return &Response{
		CourtID:   court.ID,
		CourtName: court.Name,
		Date:      req.Date,
		OpenTime:  court.OpenTime,
		CloseTime: court.CloseTime,
		Slots:     free,
	}, nil
}
