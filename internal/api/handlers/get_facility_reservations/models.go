package get_facility_reservations

import (
	"strconv"
	"time"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
// Параметр date - краткая форма периода из одного дня
func ToServiceRequest(facilityID, userID int64, role domain.Role,
	courtIDStr, statusStr, dateStr, startDateStr, endDateStr, includeInactiveStr string) (*models.GetFacilityReservationsRequest, error) {

	req := &models.GetFacilityReservationsRequest{
		UserID:     userID,
		Role:       role,
		FacilityID: facilityID,
	}

	if courtIDStr != "" {
		courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CourtID = &courtID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startDateStr != "" {
			startDate, err := time.Parse(domain.DateFormat, startDateStr)
			if err != nil {
				return nil, err
			}
			req.StartDate = &startDate
		}
		if endDateStr != "" {
			endDate, err := time.Parse(domain.DateFormat, endDateStr)
			if err != nil {
				return nil, err
			}
			req.EndDate = &endDate
		}
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
