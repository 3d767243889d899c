package cancel_reservation

import (
	"context"

	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, uid string, req *models.CancelReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
