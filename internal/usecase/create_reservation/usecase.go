package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/infra/events"
	courtRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/facility"
)

// UseCase use case создания брони: проверка конфликтов слота и расчёт стоимости
type UseCase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	facilityRepo    FacilityRepository
	txManager       TransactionManager
	publisher       EventPublisher
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	facilityRepo FacilityRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		facilityRepo:    facilityRepo,
		txManager:       txManager,
		publisher:       publisher,
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции -
// два параллельных запроса на пересекающиеся интервалы не могут пройти проверку
// одновременно: фиксируется первый, второй получает ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, court=%d, date=%s, interval=%s-%s",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных (формат и порядок границ интервала)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем корт
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateReservation: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateReservation: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 3. Административный выключатель корта
	if !court.IsAvailable {
		uc.logger.Warn("CreateReservation: court id=%d is unavailable", req.CourtID)
		return nil, ErrCourtUnavailable
	}

	// 4. Площадка должна быть одобрена модерацией
	fac, err := uc.facilityRepo.GetByID(ctx, court.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Error("CreateReservation: facility id=%d referenced by court id=%d not found",
				court.FacilityID, req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateReservation: failed to get facility id=%d: %v", court.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	if !fac.IsApproved() {
		uc.logger.Warn("CreateReservation: facility id=%d is not approved, status=%s", fac.ID, fac.Status)
		return nil, ErrFacilityNotApproved
	}

	// 5. Расчёт длительности и стоимости по цене корта на момент создания
	durationMinutes, err := computeDurationMinutes(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateReservation: duration computation failed: %v", err)
		return nil, err
	}
	amount := computeAmount(durationMinutes, court.PricePerHour)

	var result *domain.Reservation

	// 6. Проверка занятости и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Читаем блокирующие брони корта на дату с блокировкой (FOR UPDATE)
		blocking, err := uc.reservationRepo.GetBlockingByCourtAndDate(txCtx, req.CourtID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get blocking reservations: %v", err)
			return fmt.Errorf("%w: failed to get blocking reservations: %v", ErrInternal, err)
		}

		// 6.2. Полуоткрытая проверка пересечения интервалов
		if conflict := findOverlapping(req.StartTime, req.EndTime, blocking); conflict != nil {
			uc.logger.Warn("CreateReservation: slot conflict with reservation uid=%s (%s-%s)",
				conflict.ReservationUID, conflict.StartTime, conflict.EndTime)
			return ErrSlotConflict
		}

		// 6.3. Создаем бронь: pending блокирует слот с момента создания
		res := &domain.Reservation{
			ReservationUID:  uuid.NewString(),
			UserID:          req.UserID,
			CourtID:         req.CourtID,
			FacilityID:      court.FacilityID, // Денормализуется при создании, не пересчитывается
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: durationMinutes,
			Amount:          amount,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
		}

		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation uid=%s, amount=%.2f",
		result.ReservationUID, result.Amount)

	// 7. Публикуем событие после коммита; сбой публикации бронь не откатывает
	uc.publishCreated(ctx, result)

	return &Response{
		ID:              result.ID,
		ReservationUID:  result.ReservationUID,
		UserID:          result.UserID,
		CourtID:         result.CourtID,
		FacilityID:      result.FacilityID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Amount:          result.Amount,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		CourtName:       court.Name,
		Sport:           court.Sport,
		PricePerHour:    court.PricePerHour,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// publishCreated публикует событие о созданной брони
func (uc *UseCase) publishCreated(ctx context.Context, res *domain.Reservation) {
	event := events.ReservationEvent{
		ReservationUID: res.ReservationUID,
		UserID:         res.UserID,
		CourtID:        res.CourtID,
		FacilityID:     res.FacilityID,
		BookingDate:    res.BookingDate.Format(domain.DateFormat),
		StartTime:      res.StartTime.String(),
		EndTime:        res.EndTime.String(),
		Amount:         res.Amount,
		Status:         string(res.Status),
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := uc.publisher.Publish(ctx, events.KeyReservationCreated, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish created event for uid=%s: %v",
			res.ReservationUID, err)
	}
}
