package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/quickcourt/QC-BookingService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error

	gotReq *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/courts/{courtId}/available-slots", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandler_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		CourtID:   1,
		CourtName: "Корт 1",
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		OpenTime:  "09:00",
		CloseTime: "12:00",
		Slots: []getAvailableSlots.Slot{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "11:00", EndTime: "12:00"},
		},
	}}
	handler := NewHandler(uc, noopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courts/1/available-slots?date=2025-10-15", nil)
	rec := httptest.NewRecorder()
	newRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool                   `json:"success"`
		Data    AvailableSlotsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, int64(1), envelope.Data.CourtID)
	assert.Equal(t, "2025-10-15", envelope.Data.Date)
	assert.Len(t, envelope.Data.Slots, 2)
	assert.Equal(t, "09:00", envelope.Data.Slots[0].StartTime)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.CourtID)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		useCaseErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing date",
			url:        "/api/v1/courts/1/available-slots",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "invalid date",
			url:        "/api/v1/courts/1/available-slots?date=15.10.2025",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "invalid court id",
			url:        "/api/v1/courts/abc/available-slots?date=2025-10-15",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "court not found",
			url:        "/api/v1/courts/99/available-slots?date=2025-10-15",
			useCaseErr: getAvailableSlots.ErrCourtNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "COURT_NOT_FOUND",
		},
		{
			name:       "court unavailable",
			url:        "/api/v1/courts/2/available-slots?date=2025-10-15",
			useCaseErr: getAvailableSlots.ErrCourtUnavailable,
			wantStatus: http.StatusBadRequest,
			wantCode:   "COURT_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeUseCase{err: tt.useCaseErr}, noopLogger{})

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			newRouter(handler).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			var envelope struct {
				Success bool   `json:"success"`
				Code    string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.False(t, envelope.Success)
			assert.Equal(t, tt.wantCode, envelope.Code)
		})
	}
}
