package domain

import (
	"time"

	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// Court represents a bookable unit inside a facility, priced per hour
type Court struct {
	ID           int64
	FacilityID   int64
	Name         string
	Sport        string  // Вид спорта (badminton, tennis, football, ...)
	PricePerHour float64 // Цена за час, фиксируется в брони на момент создания
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	IsAvailable  bool // Административный выключатель, не зависит от занятости по времени

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourtUpdate частичное обновление корта
// nil-поля не изменяются
type CourtUpdate struct {
	Name         *string
	Sport        *string
	PricePerHour *float64
	OpenTime     *types.TimeString
	CloseTime    *types.TimeString
	IsAvailable  *bool
}

// IsEmpty returns true if the update does not change anything
func (u *CourtUpdate) IsEmpty() bool {
	return u.Name == nil && u.Sport == nil && u.PricePerHour == nil &&
		u.OpenTime == nil && u.CloseTime == nil && u.IsAvailable == nil
}
