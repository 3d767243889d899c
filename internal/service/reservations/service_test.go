package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/infra/events"
	facilityRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/facility"
	reservationRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/reservation"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	byUID map[string]*domain.Reservation

	updatedStatus *domain.ReservationStatus
	cancelledBy   *domain.CancelledBy
	cancelReason  string
}

func (f *fakeReservationRepo) GetByUID(_ context.Context, uid string) (*domain.Reservation, error) {
	res, ok := f.byUID[uid]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) GetByUserID(_ context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, res := range f.byUID {
		if res.UserID != userID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

func (f *fakeReservationRepo) GetByFacilityWithFilter(_ context.Context, filter domain.FacilityReservationsFilter) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, res := range f.byUID {
		if res.FacilityID != filter.FacilityID {
			continue
		}
		if !filter.IncludeInactive && !res.IsBlocking() {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, _ int64, cancelledBy domain.CancelledBy, reason string) error {
	f.cancelledBy = &cancelledBy
	f.cancelReason = reason
	return nil
}

type fakeFacilityRepo struct {
	facilities map[int64]*domain.Facility
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return fac, nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, _ events.ReservationEvent) error {
	f.events = append(f.events, routingKey)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

const (
	ownerUserID    = int64(100)
	bookerUserID   = int64(7)
	strangerUserID = int64(999)
	testUID        = "7e2f1a3c-9c4b-4e5d-8a6f-1b2c3d4e5f60"
)

func newTestService(status domain.ReservationStatus) (*Service, *fakeReservationRepo, *fakePublisher) {
	repo := &fakeReservationRepo{byUID: map[string]*domain.Reservation{
		testUID: {
			ID:             1,
			ReservationUID: testUID,
			UserID:         bookerUserID,
			CourtID:        1,
			FacilityID:     10,
			BookingDate:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:      "10:00",
			EndTime:        "11:00",
			Status:         status,
		},
	}}
	facilities := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		10: {ID: 10, OwnerID: ownerUserID, Status: domain.FacilityApproved},
	}}
	publisher := &fakePublisher{}

	svc := NewService(repo, facilities, publisher, noopLogger{})
	return svc, repo, publisher
}

// Тесты

func TestService_GetByUID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		role    domain.Role
		wantErr error
	}{
		{name: "booker sees own reservation", userID: bookerUserID, role: domain.RoleUser},
		{name: "facility owner sees reservation", userID: ownerUserID, role: domain.RoleOwner},
		{name: "admin sees any reservation", userID: strangerUserID, role: domain.RoleAdmin},
		{name: "stranger is denied", userID: strangerUserID, role: domain.RoleUser, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(domain.StatusPending)

			resp, err := svc.GetByUID(context.Background(), testUID, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testUID, resp.ReservationUID)
		})
	}
}

func TestService_GetByUID_NotFound(t *testing.T) {
	svc, _, _ := newTestService(domain.StatusPending)

	_, err := svc.GetByUID(context.Background(), "00000000-0000-0000-0000-000000000000", bookerUserID, domain.RoleUser)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Cancel_ByBooker(t *testing.T) {
	svc, repo, publisher := newTestService(domain.StatusPending)

	err := svc.Cancel(context.Background(), testUID, &models.CancelReservationRequest{
		UserID:             bookerUserID,
		Role:               domain.RoleUser,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelledBy)
	assert.Equal(t, domain.CancelledByUser, *repo.cancelledBy)
	assert.Equal(t, "передумал", repo.cancelReason)
	assert.Equal(t, []string{events.KeyReservationCancelled}, publisher.events)
}

func TestService_Cancel_ByFacilityOwner(t *testing.T) {
	svc, repo, _ := newTestService(domain.StatusConfirmed)

	err := svc.Cancel(context.Background(), testUID, &models.CancelReservationRequest{
		UserID: ownerUserID,
		Role:   domain.RoleOwner,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelledBy)
	assert.Equal(t, domain.CancelledByOwner, *repo.cancelledBy)
}

func TestService_Cancel_ByStranger(t *testing.T) {
	svc, repo, _ := newTestService(domain.StatusPending)

	err := svc.Cancel(context.Background(), testUID, &models.CancelReservationRequest{
		UserID: strangerUserID,
		Role:   domain.RoleUser,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.cancelledBy)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	svc, repo, _ := newTestService(domain.StatusCancelled)

	err := svc.Cancel(context.Background(), testUID, &models.CancelReservationRequest{
		UserID: bookerUserID,
		Role:   domain.RoleUser,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Nil(t, repo.cancelledBy)
}

func TestService_Cancel_Completed(t *testing.T) {
	svc, _, _ := newTestService(domain.StatusCompleted)

	err := svc.Cancel(context.Background(), testUID, &models.CancelReservationRequest{
		UserID: bookerUserID,
		Role:   domain.RoleUser,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestService_UpdateStatus_Confirm(t *testing.T) {
	svc, repo, publisher := newTestService(domain.StatusPending)

	err := svc.UpdateStatus(context.Background(), testUID, &models.UpdateStatusRequest{
		UserID: ownerUserID,
		Role:   domain.RoleOwner,
		Status: "confirmed",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	assert.Equal(t, []string{events.KeyReservationConfirmed}, publisher.events)
}

func TestService_UpdateStatus_CancelByOwner(t *testing.T) {
	svc, repo, publisher := newTestService(domain.StatusConfirmed)

	err := svc.UpdateStatus(context.Background(), testUID, &models.UpdateStatusRequest{
		UserID: ownerUserID,
		Role:   domain.RoleOwner,
		Status: "cancelled",
	})
	require.NoError(t, err)

	// Отмена через смену статуса фиксирует сторону отмены
	require.NotNil(t, repo.cancelledBy)
	assert.Equal(t, domain.CancelledByOwner, *repo.cancelledBy)
	assert.Equal(t, []string{events.KeyReservationCancelled}, publisher.events)
}

func TestService_UpdateStatus_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current domain.ReservationStatus
		next    string
	}{
		{name: "confirmed back to pending", current: domain.StatusConfirmed, next: "pending"},
		{name: "cancelled to confirmed", current: domain.StatusCancelled, next: "confirmed"},
		{name: "completed to cancelled", current: domain.StatusCompleted, next: "cancelled"},
		{name: "manual completion rejected", current: domain.StatusConfirmed, next: "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(tt.current)

			err := svc.UpdateStatus(context.Background(), testUID, &models.UpdateStatusRequest{
				UserID: ownerUserID,
				Role:   domain.RoleOwner,
				Status: tt.next,
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Nil(t, repo.updatedStatus)
			assert.Nil(t, repo.cancelledBy)
		})
	}
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(domain.StatusPending)

	err := svc.UpdateStatus(context.Background(), testUID, &models.UpdateStatusRequest{
		UserID: ownerUserID,
		Role:   domain.RoleOwner,
		Status: "approved",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus_BookerCannotConfirm(t *testing.T) {
	svc, _, _ := newTestService(domain.StatusPending)

	err := svc.UpdateStatus(context.Background(), testUID, &models.UpdateStatusRequest{
		UserID: bookerUserID,
		Role:   domain.RoleUser,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetFacilityReservations_OwnerOnly(t *testing.T) {
	svc, _, _ := newTestService(domain.StatusPending)

	// Владелец площадки получает список
	resp, err := svc.GetFacilityReservations(context.Background(), &models.GetFacilityReservationsRequest{
		UserID:     ownerUserID,
		Role:       domain.RoleOwner,
		FacilityID: 10,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	// Посторонний - нет
	_, err = svc.GetFacilityReservations(context.Background(), &models.GetFacilityReservationsRequest{
		UserID:     strangerUserID,
		Role:       domain.RoleUser,
		FacilityID: 10,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetUserReservations_StatusFilter(t *testing.T) {
	svc, _, _ := newTestService(domain.StatusPending)

	status := "pending"
	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: bookerUserID,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	bad := "approved"
	_, err = svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: bookerUserID,
		Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
