package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/infra/events"
	courtRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/facility"
	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

func (f *fakeReservationRepo) GetBlockingByCourtAndDate(_ context.Context, courtID int64, date time.Time) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Reservation
	for _, res := range f.reservations {
		if res.CourtID == courtID && res.BookingDate.Equal(date) && res.IsBlocking() {
			result = append(result, res)
		}
	}
	return result, nil
}

type fakeCourtRepo struct {
	courts map[int64]*domain.Court
	err    error
}

func (f *fakeCourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	if f.err != nil {
		return nil, f.err
	}
	court, ok := f.courts[id]
	if !ok {
		return nil, courtRepo.ErrCourtNotFound
	}
	return court, nil
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

// fakeTxManager сериализует все транзакции через мьютекс -
// та же гарантия взаимного исключения, что даёт SERIALIZABLE
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, _ events.ReservationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, routingKey)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

func newTestUseCase() (*UseCase, *fakeReservationRepo, *fakePublisher) {
	reservationRepo := &fakeReservationRepo{}
	courtRepo := &fakeCourtRepo{courts: map[int64]*domain.Court{
		1: {ID: 1, FacilityID: 10, Name: "Корт 1", Sport: "tennis", PricePerHour: 1200, OpenTime: "06:00", CloseTime: "23:00", IsAvailable: true},
		2: {ID: 2, FacilityID: 10, Name: "Корт 2", Sport: "tennis", PricePerHour: 800, OpenTime: "06:00", CloseTime: "23:00", IsAvailable: false},
		3: {ID: 3, FacilityID: 20, Name: "Корт 3", Sport: "badminton", PricePerHour: 500, OpenTime: "06:00", CloseTime: "23:00", IsAvailable: true},
	}}
	facilityRepo := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		10: {ID: 10, OwnerID: 100, Name: "Арена", Status: domain.FacilityApproved},
		20: {ID: 20, OwnerID: 200, Name: "Новая площадка", Status: domain.FacilityPending},
	}}
	publisher := &fakePublisher{}

	uc := NewUseCase(reservationRepo, courtRepo, facilityRepo, &fakeTxManager{}, publisher, noopLogger{})
	return uc, reservationRepo, publisher
}

func validRequest() *Request {
	return &Request{
		UserID:    7,
		CourtID:   1,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:30",
	}
}

// Тесты

func TestUseCase_Execute_Success(t *testing.T) {
	uc, _, publisher := newTestUseCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ReservationUID)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, int64(1), resp.CourtID)
	assert.Equal(t, int64(10), resp.FacilityID, "facility денормализуется из корта")
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 1800.0, resp.Amount, "1.5 часа по 1200/час")
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, "Корт 1", resp.CourtName)

	assert.Equal(t, []string{events.KeyReservationCreated}, publisher.events)
}

func TestUseCase_Execute_InvalidTimeRange(t *testing.T) {
	uc, _, _ := newTestUseCase()

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
	}{
		{name: "start after end", start: "12:00", end: "10:00"},
		{name: "start equals end", start: "10:00", end: "10:00"},
		{name: "invalid format", start: "10.00", end: "11:00"},
		{name: "missing leading zero", start: "9:00", end: "10:00"},
		{name: "empty end", start: "10:00", end: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestUseCase_Execute_CourtNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()

	req := validRequest()
	req.CourtID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestUseCase_Execute_CourtUnavailable(t *testing.T) {
	uc, _, _ := newTestUseCase()

	req := validRequest()
	req.CourtID = 2

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCourtUnavailable)
}

func TestUseCase_Execute_FacilityNotApproved(t *testing.T) {
	uc, _, _ := newTestUseCase()

	req := validRequest()
	req.CourtID = 3

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFacilityNotApproved)
}

func TestUseCase_Execute_SlotConflict(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Пересекающийся интервал на том же корте и дате
	req := validRequest()
	req.UserID = 8
	req.StartTime = "11:00"
	req.EndTime = "12:00"

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestUseCase_Execute_SharedBoundaryIsNotConflict(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Конец одной брони совпадает с началом другой - пересечения нет
	req := validRequest()
	req.UserID = 8
	req.StartTime = "11:30"
	req.EndTime = "12:30"

	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, repo.reservations, 2)
}

func TestUseCase_Execute_CancelledReservationDoesNotBlock(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отменяем бронь напрямую в репозитории
	repo.mu.Lock()
	for _, res := range repo.reservations {
		if res.ReservationUID == resp.ReservationUID {
			res.Status = domain.StatusCancelled
		}
	}
	repo.mu.Unlock()

	// Тот же интервал снова свободен
	req := validRequest()
	req.UserID = 8

	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_ConcurrentRequests_OnlyOneWins(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			req := validRequest()
			req.UserID = userID
			_, err := uc.Execute(context.Background(), req)
			results <- err
		}(int64(i + 1))
	}

	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrSlotConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, successes, "ровно один запрос должен выиграть слот")
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, repo.reservations, 1)
}

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name            string
		durationMinutes int
		pricePerHour    float64
		want            float64
	}{
		{name: "full hour", durationMinutes: 60, pricePerHour: 1000, want: 1000},
		{name: "hour and a half", durationMinutes: 90, pricePerHour: 1000, want: 1500},
		{name: "half hour", durationMinutes: 30, pricePerHour: 1000, want: 500},
		{name: "two hours fractional price", durationMinutes: 120, pricePerHour: 749.50, want: 1499},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, computeAmount(tt.durationMinutes, tt.pricePerHour), 0.001)
		})
	}
}
