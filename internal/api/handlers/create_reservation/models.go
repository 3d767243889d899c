package create_reservation

import (
	"time"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	createReservation "github.com/quickcourt/QC-BookingService/internal/usecase/create_reservation"
	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CourtID     int64  `json:"courtId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "11:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ReservationUID  string  `json:"reservationUid"`
	UserID          int64   `json:"userId"`
	CourtID         int64   `json:"courtId"`
	FacilityID      int64   `json:"facilityId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	CourtName       string  `json:"courtName"`
	Sport           string  `json:"sport"`
	PricePerHour    float64 `json:"pricePerHour"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:    userID,
		CourtID:   r.CourtID,
		Date:      bookingDate,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ReservationUID:  resp.ReservationUID,
		UserID:          resp.UserID,
		CourtID:         resp.CourtID,
		FacilityID:      resp.FacilityID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Amount:          resp.Amount,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		CourtName:       resp.CourtName,
		Sport:           resp.Sport,
		PricePerHour:    resp.PricePerHour,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
