package get_available_slots

import (
	"github.com/quickcourt/QC-BookingService/internal/domain"
	getAvailableSlots "github.com/quickcourt/QC-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CourtID   int64          `json:"courtId"`
	CourtName string         `json:"courtName"`
	Date      string         `json:"date"` // "2025-10-15"
	OpenTime  string         `json:"openTime"`
	CloseTime string         `json:"closeTime"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		CourtID:   resp.CourtID,
		CourtName: resp.CourtName,
		Date:      resp.Date.Format(domain.DateFormat),
		OpenTime:  resp.OpenTime.String(),
		CloseTime: resp.CloseTime.String(),
		Slots:     slots,
	}
}
