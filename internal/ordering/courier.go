package ordering

import (
	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

const (
	CourierAvailable = "available"
	CourierBusy      = "busy"
)

// Courier is a delivery rider. Status flips available -> busy when an order
// claims the courier; releasing a courier is an external concern.
type Courier struct {
	ID     uuid.UUID `json:"id" bson:"_id"`
	Name   string    `json:"name" bson:"name"`
	Zone   string    `json:"zone" bson:"zone"`
	Status string    `json:"status" bson:"status"`
}

func (c *Courier) GetID() uuid.UUID {
	return c.ID
}

func (c *Courier) SetID(id uuid.UUID) {
	c.ID = id
}

func (c *Courier) ResourceType() string {
	return "courier"
}

func (c *Courier) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = apt.GenerateNewID()
	}
}

func (c *Courier) IsAvailable() bool {
	return c.Status == CourierAvailable
}

func NewCourier(name, zone string) *Courier {
	return &Courier{
		ID:     apt.GenerateNewID(),
		Name:   name,
		Zone:   zone,
		Status: CourierAvailable,
	}
}

// CourierSnapshot is the courier identity embedded into an order at
// reservation time, decoupled from later roster edits.
type CourierSnapshot struct {
	CourierID uuid.UUID `json:"courier_id" bson:"courier_id"`
	Name      string    `json:"name" bson:"name"`
	Zone      string    `json:"zone" bson:"zone"`
}

func (c *Courier) Snapshot() CourierSnapshot {
	return CourierSnapshot{
		CourierID: c.ID,
		Name:      c.Name,
		Zone:      c.Zone,
	}
}
