package courts

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	courtRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/facility"
	"github.com/quickcourt/QC-BookingService/internal/service/courts/models"
	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// Service сервис для работы с кортами
type Service struct {
	courtRepo    CourtRepository
	facilityRepo FacilityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса кортов
func NewService(courtRepo CourtRepository, facilityRepo FacilityRepository, logger Logger) *Service {
	return &Service{
		courtRepo:    courtRepo,
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// Create создает корт на площадке
// Доступно только владельцу площадки и администратору
func (s *Service) Create(ctx context.Context, req *models.CreateCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("Create: creating court %q on facility=%d by user=%d", req.Name, req.FacilityID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.FacilityID, req.UserID, req.Role); err != nil {
		return nil, err
	}

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed for facility=%d: %v", req.FacilityID, err)
		return nil, err
	}

	// Рабочее время по умолчанию, если не задано
	openTime := types.TimeString(domain.DefaultOpenTime)
	if req.OpenTime != nil {
		openTime = types.TimeString(*req.OpenTime)
	}
	closeTime := types.TimeString(domain.DefaultCloseTime)
	if req.CloseTime != nil {
		closeTime = types.TimeString(*req.CloseTime)
	}

	if err := validateWorkingHours(openTime, closeTime); err != nil {
		s.logger.Warn("Create: invalid working hours for facility=%d: %v", req.FacilityID, err)
		return nil, err
	}

	court := &domain.Court{
		FacilityID:   req.FacilityID,
		Name:         req.Name,
		Sport:        req.Sport,
		PricePerHour: req.PricePerHour,
		OpenTime:     openTime,
		CloseTime:    closeTime,
		IsAvailable:  true, // Новый корт сразу доступен для бронирования
	}

	created, err := s.courtRepo.Create(ctx, court)
	if err != nil {
		s.logger.Error("Create: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created court id=%d on facility=%d", created.ID, req.FacilityID)
	return models.FromDomainCourt(created), nil
}

// Update частично обновляет корт
// Доступно только владельцу площадки и администратору
func (s *Service) Update(ctx context.Context, courtID int64, req *models.UpdateCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("Update: updating court id=%d by user=%d", courtID, req.UserID)

	if req.IsEmpty() {
		s.logger.Warn("Update: empty update for court id=%d", courtID)
		return nil, ErrEmptyUpdate
	}

	court, err := s.getByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerAccess(ctx, court.FacilityID, req.UserID, req.Role); err != nil {
		return nil, err
	}

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for court id=%d: %v", courtID, err)
		return nil, err
	}

	upd := req.ToDomainUpdate()

	// Рабочее время проверяется на согласованность с учётом неизменяемых полей
	openTime := court.OpenTime
	if upd.OpenTime != nil {
		openTime = *upd.OpenTime
	}
	closeTime := court.CloseTime
	if upd.CloseTime != nil {
		closeTime = *upd.CloseTime
	}
	if err := validateWorkingHours(openTime, closeTime); err != nil {
		s.logger.Warn("Update: invalid working hours for court id=%d: %v", courtID, err)
		return nil, err
	}

	if err := s.courtRepo.Update(ctx, courtID, upd); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("Update: court id=%d not found during update", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("Update: repository error for court id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: updated court id=%d", courtID)
	return models.FromDomainCourt(updated), nil
}

// ListByFacility возвращает корты площадки
// Публичная операция, проверка прав не требуется
func (s *Service) ListByFacility(ctx context.Context, facilityID int64) (*models.CourtListResponse, error) {
	s.logger.Info("ListByFacility: fetching courts for facility=%d", facilityID)

	if _, err := s.facilityRepo.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("ListByFacility: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("ListByFacility: failed to get facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: ListByFacility - failed to get facility: %v", ErrInternal, err)
	}

	courts, err := s.courtRepo.GetByFacility(ctx, facilityID)
	if err != nil {
		s.logger.Error("ListByFacility: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: ListByFacility - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByFacility: fetched %d courts for facility=%d", len(courts), facilityID)
	return models.FromDomainCourtList(courts), nil
}

// Вспомогательные методы

// getByID получает корт из репозитория с маппингом ошибок
func (s *Service) getByID(ctx context.Context, courtID int64) (*domain.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("getByID: court id=%d not found", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("getByID: repository error for court id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: getByID - repository error: %v", ErrInternal, err)
	}
	return court, nil
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

// validateCreateRequest валидирует запрос на создание корта
func validateCreateRequest(req *models.CreateCourtRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxCourtNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxCourtNameLength)
	}
	if req.Sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	if len(req.Sport) > domain.MaxSportLength {
		return fmt.Errorf("%w: sport exceeds %d characters", ErrInvalidInput, domain.MaxSportLength)
	}
	if req.PricePerHour <= 0 {
		return fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}
	return nil
}

// validateUpdateRequest валидирует запрос на обновление корта
func validateUpdateRequest(req *models.UpdateCourtRequest) error {
	if req.Name != nil {
		if *req.Name == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		if len(*req.Name) > domain.MaxCourtNameLength {
			return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxCourtNameLength)
		}
	}
	if req.Sport != nil {
		if *req.Sport == "" {
			return fmt.Errorf("%w: sport cannot be empty", ErrInvalidInput)
		}
		if len(*req.Sport) > domain.MaxSportLength {
			return fmt.Errorf("%w: sport exceeds %d characters", ErrInvalidInput, domain.MaxSportLength)
		}
	}
	if req.PricePerHour != nil && *req.PricePerHour <= 0 {
		return fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}
	return nil
}

// validateWorkingHours проверяет формат и порядок границ рабочего времени
func validateWorkingHours(open, close types.TimeString) error {
	if err := open.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}
	if err := close.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}
	return nil
}
