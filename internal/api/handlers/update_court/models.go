package update_court

// UpdateCourtRequest HTTP request model
// nil-поля не изменяются
type UpdateCourtRequest struct {
	Name         *string  `json:"name,omitempty"`
	Sport        *string  `json:"sport,omitempty"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
	OpenTime     *string  `json:"openTime,omitempty"`
	CloseTime    *string  `json:"closeTime,omitempty"`
	IsAvailable  *bool    `json:"isAvailable,omitempty"`
}
