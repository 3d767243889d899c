package create_court

// CreateCourtRequest HTTP request model
type CreateCourtRequest struct {
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	PricePerHour float64 `json:"pricePerHour"`
	OpenTime     *string `json:"openTime,omitempty"`  // "06:00", по умолчанию из настроек
	CloseTime    *string `json:"closeTime,omitempty"` // "23:00", по умолчанию из настроек
}
