package models

import (
	"time"

	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// Request модели

// CreateCourtRequest запрос на создание корта
type CreateCourtRequest struct {
	UserID     int64       `json:"userId"`
	Role       domain.Role `json:"role"`
	FacilityID int64       `json:"facilityId"`

	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	PricePerHour float64 `json:"pricePerHour"`

	// Рабочее время корта, при отсутствии берутся значения по умолчанию
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// UpdateCourtRequest запрос на частичное обновление корта
// nil-поля не изменяются
type UpdateCourtRequest struct {
	UserID int64       `json:"userId"`
	Role   domain.Role `json:"role"`

	Name         *string  `json:"name,omitempty"`
	Sport        *string  `json:"sport,omitempty"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
	OpenTime     *string  `json:"openTime,omitempty"`
	CloseTime    *string  `json:"closeTime,omitempty"`
	IsAvailable  *bool    `json:"isAvailable,omitempty"`
}

// IsEmpty возвращает true, если запрос не меняет ни одного поля
func (r *UpdateCourtRequest) IsEmpty() bool {
	return r.Name == nil && r.Sport == nil && r.PricePerHour == nil &&
		r.OpenTime == nil && r.CloseTime == nil && r.IsAvailable == nil
}

// ToDomainUpdate конвертирует request в domain обновление
func (r *UpdateCourtRequest) ToDomainUpdate() domain.CourtUpdate {
	upd := domain.CourtUpdate{
		Name:         r.Name,
		Sport:        r.Sport,
		PricePerHour: r.PricePerHour,
		IsAvailable:  r.IsAvailable,
	}

	if r.OpenTime != nil {
		open := types.TimeString(*r.OpenTime)
		upd.OpenTime = &open
	}
	if r.CloseTime != nil {
		closeT := types.TimeString(*r.CloseTime)
		upd.CloseTime = &closeT
	}

	return upd
}

// Response модели

// CourtResponse ответ с данными корта
type CourtResponse struct {
	ID           int64   `json:"id"`
	FacilityID   int64   `json:"facilityId"`
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	PricePerHour float64 `json:"pricePerHour"`
	OpenTime     string  `json:"openTime"`  // "06:00"
	CloseTime    string  `json:"closeTime"` // "23:00"
	IsAvailable  bool    `json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CourtListResponse ответ со списком кортов
type CourtListResponse struct {
	Courts []CourtResponse `json:"courts"`
}

// Методы конвертации

// FromDomainCourt конвертирует domain модель в DTO
func FromDomainCourt(c *domain.Court) *CourtResponse {
	if c == nil {
		return nil
	}

	return &CourtResponse{
		ID:           c.ID,
		FacilityID:   c.FacilityID,
		Name:         c.Name,
		Sport:        c.Sport,
		PricePerHour: c.PricePerHour,
		OpenTime:     c.OpenTime.String(),
		CloseTime:    c.CloseTime.String(),
		IsAvailable:  c.IsAvailable,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromDomainCourtList конвертирует список domain моделей в DTO
func FromDomainCourtList(courts []*domain.Court) *CourtListResponse {
	if courts == nil {
		return &CourtListResponse{
			Courts: []CourtResponse{},
		}
	}

	resp := &CourtListResponse{
		Courts: make([]CourtResponse, len(courts)),
	}

	for i, court := range courts {
		if dto := FromDomainCourt(court); dto != nil {
			resp.Courts[i] = *dto
		}
	}

	return resp
}
