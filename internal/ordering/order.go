package ordering

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

const StatusInPreparation = "in_preparation"

// Order is an append-only ledger entry. Every referenced entity is embedded
// as a snapshot taken at placement time, so later catalog or roster edits
// never change what was sold.
type Order struct {
	ID           uuid.UUID       `json:"id" bson:"_id"`
	CustomerID   uuid.UUID       `json:"customer_id" bson:"customer_id"`
	CustomerName string          `json:"customer_name" bson:"customer_name"`
	Lines        []OrderLine     `json:"pizzas" bson:"pizzas"`
	Total        float64         `json:"total" bson:"total"`
	CreatedAt    time.Time       `json:"created_at" bson:"created_at"`
	Courier      CourierSnapshot `json:"courier" bson:"courier"`
	Status       string          `json:"status" bson:"status"`
}

// OrderLine is the immutable snapshot of one ordered pizza. It keeps the
// originating pizza ID so read-side reports can expand lines back to
// recipes.
type OrderLine struct {
	PizzaID  uuid.UUID `json:"pizza_id" bson:"pizza_id"`
	Name     string    `json:"name" bson:"name"`
	Category string    `json:"category" bson:"category"`
	Price    float64   `json:"price" bson:"price"`
	Quantity int       `json:"quantity" bson:"quantity"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
}

func NewOrder() *Order {
	return &Order{
		ID:     apt.GenerateNewID(),
		Status: StatusInPreparation,
	}
}
