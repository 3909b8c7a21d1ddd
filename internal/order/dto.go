package order

// CheckoutRequest payload of checkout.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	Customer        Customer `json:"customer"`
	DeliveryAddress string   `json:"deliveryAddress" example:"123 Main Street, Chennai 600001"`
	// PaymentMethod is card, upi or cod; empty means card.
	PaymentMethod   string   `json:"paymentMethod" example:"upi"`
}

// UpdateStatusRequest payload of status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"shipped"`
}
