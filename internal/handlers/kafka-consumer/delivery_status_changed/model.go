package delivery_status_changed

type deliveryEvent struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
