package list_courts

import (
	"context"

	"github.com/quickcourt/QC-BookingService/internal/service/courts/models"
)

type CourtService interface {
	ListByFacility(ctx context.Context, facilityID int64) (*models.CourtListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
