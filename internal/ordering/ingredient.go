package ordering

import (
	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Ingredient is a stocked raw material referenced by pizza recipes.
// Stock is only ever mutated by the placement engine's conditional
// decrement; it never goes negative.
type Ingredient struct {
	ID    uuid.UUID `json:"id" bson:"_id"`
	Name  string    `json:"name" bson:"name"`
	Type  string    `json:"type" bson:"type"`
	Stock int       `json:"stock" bson:"stock"`
}

func (i *Ingredient) GetID() uuid.UUID {
	return i.ID
}

func (i *Ingredient) SetID(id uuid.UUID) {
	i.ID = id
}

func (i *Ingredient) ResourceType() string {
	return "ingredient"
}

func (i *Ingredient) EnsureID() {
	if i.ID == uuid.Nil {
		i.ID = apt.GenerateNewID()
	}
}

func NewIngredient(name, typ string, stock int) *Ingredient {
	return &Ingredient{
		ID:    apt.GenerateNewID(),
		Name:  name,
		Type:  typ,
		Stock: stock,
	}
}
