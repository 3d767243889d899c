package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/infra/events"
	facilityRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/facility"
	reservationRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/reservation"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронями
type Service struct {
	reservationRepo ReservationRepository
	facilityRepo    FacilityRepository
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	facilityRepo FacilityRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		facilityRepo:    facilityRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetByUID получает бронь по публичному идентификатору
// Доступно владельцу брони, владельцу площадки и администратору
func (s *Service) GetByUID(ctx context.Context, uid string, userID int64, role domain.Role) (*models.ReservationResponse, error) {
	s.logger.Info("GetByUID: fetching reservation uid=%s for user=%d", uid, userID)

	res, err := s.getByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkReadAccess(ctx, res, userID, role); err != nil {
		s.logger.Warn("GetByUID: access denied for user=%d to reservation uid=%s", userID, uid)
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю броней пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetFacilityReservations получает брони площадки с гибкой фильтрацией
// Поддерживает фильтрацию по корту, периоду, статусу и включение неактивных броней
// Доступно только владельцу площадки и администратору
func (s *Service) GetFacilityReservations(ctx context.Context, req *models.GetFacilityReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetFacilityReservations: fetching reservations for facility=%d, user=%d", req.FacilityID, req.UserID)

	// Проверяем права владельца площадки
	if err := s.checkOwnerAccess(ctx, req.FacilityID, req.UserID, req.Role); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityReservations: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityReservations: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityReservations: fetched %d reservations for facility=%d", len(reservations), req.FacilityID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронь
// Пользователь может отменить свою бронь (cancelledBy=user)
// Владелец площадки и администратор - любую бронь площадки (cancelledBy=owner)
func (s *Service) Cancel(ctx context.Context, uid string, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation uid=%s by user=%d", uid, req.UserID)

	res, err := s.getByUID(ctx, uid)
	if err != nil {
		return err
	}

	// Отменить можно только pending или confirmed бронь
	// Повторная отмена - ошибка, а не no-op
	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation uid=%s cannot be cancelled, status=%s", uid, res.Status)
		return ErrCannotCancel
	}

	// Определяем сторону отмены в зависимости от прав доступа
	var cancelledBy domain.CancelledBy

	if res.UserID == req.UserID {
		cancelledBy = domain.CancelledByUser
	} else {
		if err := s.checkOwnerAccess(ctx, res.FacilityID, req.UserID, req.Role); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation uid=%s", req.UserID, uid)
			return ErrAccessDenied
		}
		cancelledBy = domain.CancelledByOwner
	}

	if err := s.reservationRepo.Cancel(ctx, res.ID, cancelledBy, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation uid=%s not found during cancellation", uid)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation uid=%s: %v", uid, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled reservation uid=%s by %s", uid, cancelledBy)

	s.publishEvent(ctx, events.KeyReservationCancelled, res, domain.StatusCancelled)
	return nil
}

// UpdateStatus переводит бронь в новый статус
// Доступно только владельцу площадки и администратору
// Переход в completed выполняет только фоновый джоб завершения
func (s *Service) UpdateStatus(ctx context.Context, uid string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation uid=%s to status=%s by user=%d", uid, req.Status, req.UserID)

	res, err := s.getByUID(ctx, uid)
	if err != nil {
		return err
	}

	// Проверяем права владельца площадки
	if err := s.checkOwnerAccess(ctx, res.FacilityID, req.UserID, req.Role); err != nil {
		return err
	}

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation uid=%s", req.Status, uid)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// completed недоступен через API
	if newStatus == domain.StatusCompleted {
		s.logger.Warn("UpdateStatus: manual completion of reservation uid=%s rejected", uid)
		return ErrInvalidTransition
	}

	if !res.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for reservation uid=%s", res.Status, newStatus, uid)
		return ErrInvalidTransition
	}

	// Отмена владельцем через смену статуса фиксирует сторону отмены
	if newStatus == domain.StatusCancelled {
		err = s.reservationRepo.Cancel(ctx, res.ID, domain.CancelledByOwner, "")
	} else {
		err = s.reservationRepo.UpdateStatus(ctx, res.ID, newStatus)
	}
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation uid=%s not found during update", uid)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation uid=%s: %v", uid, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: updated reservation uid=%s to status=%s", uid, newStatus)

	switch newStatus {
	case domain.StatusConfirmed:
		s.publishEvent(ctx, events.KeyReservationConfirmed, res, newStatus)
	case domain.StatusCancelled:
		s.publishEvent(ctx, events.KeyReservationCancelled, res, newStatus)
	}
	return nil
}

// Вспомогательные методы

// getByUID получает бронь из репозитория с маппингом ошибок
func (s *Service) getByUID(ctx context.Context, uid string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getByUID: reservation uid=%s not found", uid)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getByUID: repository error for reservation uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: getByUID - repository error: %v", ErrInternal, err)
	}
	return res, nil
}

// checkReadAccess проверяет, что пользователь имеет доступ к брони
// Доступ имеют владелец брони, владелец площадки и администратор
func (s *Service) checkReadAccess(ctx context.Context, res *domain.Reservation, userID int64, role domain.Role) error {
	if res.UserID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, res.FacilityID, userID, role); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем площадки
// Администратору доступ разрешён без проверки владения
func (s *Service) checkOwnerAccess(ctx context.Context, facilityID int64, userID int64, role domain.Role) error {
	if role == domain.RoleAdmin {
		return nil
	}

	fac, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("checkOwnerAccess: facility id=%d not found", facilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get facility: %v", ErrInternal, err)
	}

	if fac.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of facility=%d", userID, facilityID)
		return ErrAccessDenied
	}

	return nil
}

// publishEvent публикует событие жизненного цикла брони
// Сбой публикации только логируется и не откатывает операцию
func (s *Service) publishEvent(ctx context.Context, routingKey string, res *domain.Reservation, status domain.ReservationStatus) {
	event := events.ReservationEvent{
		ReservationUID: res.ReservationUID,
		UserID:         res.UserID,
		CourtID:        res.CourtID,
		FacilityID:     res.FacilityID,
		BookingDate:    res.BookingDate.Format(domain.DateFormat),
		StartTime:      res.StartTime.String(),
		EndTime:        res.EndTime.String(),
		Amount:         res.Amount,
		Status:         string(status),
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.logger.Warn("publishEvent: failed to publish %s for uid=%s: %v", routingKey, res.ReservationUID, err)
	}
}
