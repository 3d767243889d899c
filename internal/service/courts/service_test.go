package courts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	courtRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/facility"
	"github.com/quickcourt/QC-BookingService/internal/service/courts/models"
	"github.com/quickcourt/QC-BookingService/pkg/ptr"
)

type fakeCourtRepo struct {
	courts  map[int64]*domain.Court
	nextID  int64
	lastUpd *domain.CourtUpdate
}

func (f *fakeCourtRepo) Create(_ context.Context, court *domain.Court) (*domain.Court, error) {
	f.nextID++
	created := *court
	created.ID = f.nextID
	f.courts[created.ID] = &created
	return &created, nil
}

func (f *fakeCourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	court, ok := f.courts[id]
	if !ok {
		return nil, courtRepo.ErrCourtNotFound
	}
	return court, nil
}

func (f *fakeCourtRepo) GetByFacility(_ context.Context, facilityID int64) ([]*domain.Court, error) {
	var result []*domain.Court
	for _, court := range f.courts {
		if court.FacilityID == facilityID {
			result = append(result, court)
		}
	}
	return result, nil
}

func (f *fakeCourtRepo) Update(_ context.Context, id int64, upd domain.CourtUpdate) error {
	if _, ok := f.courts[id]; !ok {
		return courtRepo.ErrCourtNotFound
	}
	f.lastUpd = &upd
	if upd.PricePerHour != nil {
		f.courts[id].PricePerHour = *upd.PricePerHour
	}
	if upd.IsAvailable != nil {
		f.courts[id].IsAvailable = *upd.IsAvailable
	}
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const ownerID = int64(100)

func newTestService() (*Service, *fakeCourtRepo) {
	repo := &fakeCourtRepo{courts: map[int64]*domain.Court{}}
	facilities := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		10: {ID: 10, OwnerID: ownerID, Status: domain.FacilityApproved},
	}}
	return NewService(repo, facilities, noopLogger{}), repo
}

func validCreateRequest() *models.CreateCourtRequest {
	return &models.CreateCourtRequest{
		UserID:       ownerID,
		Role:         domain.RoleOwner,
		FacilityID:   10,
		Name:         "Корт 1",
		Sport:        "tennis",
		PricePerHour: 1200,
	}
}

func TestService_Create_DefaultWorkingHours(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultOpenTime, resp.OpenTime)
	assert.Equal(t, domain.DefaultCloseTime, resp.CloseTime)
	assert.True(t, resp.IsAvailable, "новый корт сразу доступен")
}

func TestService_Create_ExplicitWorkingHours(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.OpenTime = ptr.Ptr("08:00")
	req.CloseTime = ptr.Ptr("22:00")

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.OpenTime)
	assert.Equal(t, "22:00", resp.CloseTime)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *models.CreateCourtRequest)
		wantErr error
	}{
		{name: "empty name", mutate: func(r *models.CreateCourtRequest) { r.Name = "" }, wantErr: ErrInvalidInput},
		{name: "empty sport", mutate: func(r *models.CreateCourtRequest) { r.Sport = "" }, wantErr: ErrInvalidInput},
		{name: "zero price", mutate: func(r *models.CreateCourtRequest) { r.PricePerHour = 0 }, wantErr: ErrInvalidInput},
		{name: "negative price", mutate: func(r *models.CreateCourtRequest) { r.PricePerHour = -10 }, wantErr: ErrInvalidInput},
		{name: "open after close", mutate: func(r *models.CreateCourtRequest) {
			r.OpenTime = ptr.Ptr("22:00")
			r.CloseTime = ptr.Ptr("08:00")
		}, wantErr: ErrInvalidInput},
		{name: "bad open time format", mutate: func(r *models.CreateCourtRequest) {
			r.OpenTime = ptr.Ptr("8am")
		}, wantErr: ErrInvalidInput},
		{name: "stranger", mutate: func(r *models.CreateCourtRequest) { r.UserID = 999 }, wantErr: ErrAccessDenied},
		{name: "unknown facility", mutate: func(r *models.CreateCourtRequest) { r.FacilityID = 77 }, wantErr: ErrFacilityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()

			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Create_AdminBypassesOwnership(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.UserID = 999
	req.Role = domain.RoleAdmin

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), created.ID, &models.UpdateCourtRequest{
		UserID:       ownerID,
		Role:         domain.RoleOwner,
		PricePerHour: ptr.Ptr(1500.0),
		IsAvailable:  ptr.Ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, resp.PricePerHour)
	assert.False(t, resp.IsAvailable)
	require.NotNil(t, repo.lastUpd)
	assert.Nil(t, repo.lastUpd.Name, "незатронутые поля не обновляются")
}

func TestService_Update_EmptyRequest(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateCourtRequest{
		UserID: ownerID,
		Role:   domain.RoleOwner,
	})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestService_Update_InconsistentWorkingHours(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Новое время открытия позже текущего времени закрытия
	_, err = svc.Update(context.Background(), created.ID, &models.UpdateCourtRequest{
		UserID:   ownerID,
		Role:     domain.RoleOwner,
		OpenTime: ptr.Ptr("23:30"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListByFacility(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.ListByFacility(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, resp.Courts, 1)

	_, err = svc.ListByFacility(context.Background(), 77)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
