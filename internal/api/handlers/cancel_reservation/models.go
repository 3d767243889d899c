package cancel_reservation

// CancelReservationRequest HTTP request model
// Тело опционально: отмена без причины допустима
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
}
