package order

// LineItem is one cart line in a submission.
type LineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the POST /orders payload. BookingID is sent as null
// unless the method is open_bill.
type CreateOrderRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	BookingID     *int64        `json:"booking_id"`
	Items         []LineItem    `json:"items"`
}
