package ordering

import (
	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Customer is a directory entry, read-only to the placement engine.
type Customer struct {
	ID      uuid.UUID `json:"id" bson:"_id"`
	Name    string    `json:"name" bson:"name"`
	Phone   string    `json:"phone" bson:"phone"`
	Address string    `json:"address" bson:"address"`
}

func (c *Customer) GetID() uuid.UUID {
	return c.ID
}

func (c *Customer) SetID(id uuid.UUID) {
	c.ID = id
}

func (c *Customer) ResourceType() string {
	return "customer"
}

func (c *Customer) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = apt.GenerateNewID()
	}
}

func NewCustomer(name, phone, address string) *Customer {
	return &Customer{
		ID:      apt.GenerateNewID(),
		Name:    name,
		Phone:   phone,
		Address: address,
	}
}
