package event

import "time"

const (
	OrdersTopic      = "orders.placed"
	EventOrderPlaced = "order.placed"
)

// OrderPlacedEvent is published after an order commits. Consumers (kitchen
// displays, courier apps) receive the denormalized snapshot and never need
// to read the ledger.
type OrderPlacedEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Total      float64   `json:"total"`

	CourierID   string `json:"courier_id"`
	CourierName string `json:"courier_name"`
	CourierZone string `json:"courier_zone"`

	Lines []OrderPlacedLine `json:"lines"`
}

// OrderPlacedLine mirrors the order line snapshot embedded in the ledger.
type OrderPlacedLine struct {
	PizzaID  string  `json:"pizza_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
