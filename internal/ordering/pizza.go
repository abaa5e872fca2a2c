package ordering

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Pizza is a priced catalog item. Its recipe references ingredients by ID
// with a per-unit quantity; the placement engine multiplies these by the
// ordered quantity to build the demand for one order.
type Pizza struct {
	ID        uuid.UUID    `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	Category  string       `json:"category" bson:"category"`
	Price     float64      `json:"price" bson:"price"`
	Recipe    []RecipeLine `json:"ingredients" bson:"ingredients"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// RecipeLine is one bill-of-materials entry: quantity of an ingredient
// consumed per single pizza.
type RecipeLine struct {
	IngredientID uuid.UUID `json:"ingredient_id" bson:"ingredient_id"`
	Quantity     int       `json:"quantity" bson:"quantity"`
}

func (p *Pizza) GetID() uuid.UUID {
	return p.ID
}

func (p *Pizza) SetID(id uuid.UUID) {
	p.ID = id
}

func (p *Pizza) ResourceType() string {
	return "pizza"
}

func (p *Pizza) EnsureID() {
	if p.ID == uuid.Nil {
		p.ID = apt.GenerateNewID()
	}
}

func (p *Pizza) BeforeCreate() {
	p.EnsureID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func NewPizza(name, category string, price float64, recipe []RecipeLine) *Pizza {
	pizza := &Pizza{
		ID:       apt.GenerateNewID(),
		Name:     name,
		Category: category,
		Price:    price,
		Recipe:   recipe,
	}
	pizza.BeforeCreate()
	return pizza
}
