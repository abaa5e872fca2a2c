package ordering

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidatePlacement validates a placement request before it reaches the
// engine.
func ValidatePlacement(customerID uuid.UUID, lines []LineRequest) []ValidationError {
	var errors []ValidationError

	if customerID == uuid.Nil {
		errors = append(errors, ValidationError{
			Field:   "customer_id",
			Message: "customer_id is required",
		})
	}

	if len(lines) == 0 {
		errors = append(errors, ValidationError{
			Field:   "pizzas",
			Message: "at least one pizza line is required",
		})
	}

	for i, line := range lines {
		if line.PizzaID == uuid.Nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("pizzas[%d].pizza_id", i),
				Message: "pizza_id is required",
			})
		}
		if line.Quantity <= 0 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("pizzas[%d].quantity", i),
				Message: "quantity must be a positive integer",
			})
		}
	}

	return errors
}
