package get_reservation

import (
	"context"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByUID(ctx context.Context, uid string, userID int64, role domain.Role) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
