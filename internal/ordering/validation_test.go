package ordering

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidatePlacement(t *testing.T) {
	customerID := uuid.New()
	pizzaID := uuid.New()

	tests := []struct {
		name       string
		customerID uuid.UUID
		lines      []LineRequest
		wantFields []string
	}{
		{
			name:       "valid",
			customerID: customerID,
			lines:      []LineRequest{{PizzaID: pizzaID, Quantity: 2}},
			wantFields: nil,
		},
		{
			name:       "missingCustomer",
			customerID: uuid.Nil,
			lines:      []LineRequest{{PizzaID: pizzaID, Quantity: 1}},
			wantFields: []string{"customer_id"},
		},
		{
			name:       "emptyLines",
			customerID: customerID,
			lines:      nil,
			wantFields: []string{"pizzas"},
		},
		{
			name:       "missingPizzaID",
			customerID: customerID,
			lines:      []LineRequest{{PizzaID: uuid.Nil, Quantity: 1}},
			wantFields: []string{"pizzas[0].pizza_id"},
		},
		{
			name:       "zeroQuantity",
			customerID: customerID,
			lines:      []LineRequest{{PizzaID: pizzaID, Quantity: 0}},
			wantFields: []string{"pizzas[0].quantity"},
		},
		{
			name:       "negativeQuantity",
			customerID: customerID,
			lines:      []LineRequest{{PizzaID: pizzaID, Quantity: -1}},
			wantFields: []string{"pizzas[0].quantity"},
		},
		{
			name:       "secondLineInvalid",
			customerID: customerID,
			lines: []LineRequest{
				{PizzaID: pizzaID, Quantity: 1},
				{PizzaID: uuid.Nil, Quantity: 0},
			},
			wantFields: []string{"pizzas[1].pizza_id", "pizzas[1].quantity"},
		},
		{
			name:       "everythingWrong",
			customerID: uuid.Nil,
			lines:      []LineRequest{{PizzaID: uuid.Nil, Quantity: -5}},
			wantFields: []string{"customer_id", "pizzas[0].pizza_id", "pizzas[0].quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePlacement(tt.customerID, tt.lines)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %d: %+v", len(tt.wantFields), len(errs), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d: expected field %q, got %q", i, field, errs[i].Field)
				}
			}
		})
	}
}
