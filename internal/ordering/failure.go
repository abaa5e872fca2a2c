package ordering

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// FailureReason classifies why a placement was rejected. Callers branch on
// these values, never on error strings.
type FailureReason string

const (
	FailureCustomerNotFound   FailureReason = "customer_not_found"
	FailurePizzaNotFound      FailureReason = "pizza_not_found"
	FailureMissingIngredient  FailureReason = "missing_ingredient"
	FailureInsufficientStock  FailureReason = "insufficient_stock"
	FailureNoCourierAvailable FailureReason = "no_courier_available"
	FailureConflict           FailureReason = "conflict"
)

var (
	// ErrTxConflict marks a transaction that could not commit because of
	// concurrent contention. The engine retries these.
	ErrTxConflict = errors.New("transaction conflict")

	// ErrStockConflict marks a conditional decrement that matched fewer
	// ingredients than demanded: a concurrent placement won the race after
	// our pre-check.
	ErrStockConflict = errors.New("stock decrement conflict")

	// ErrInvalidPlacement marks a malformed request (empty lines,
	// non-positive quantity, nil customer).
	ErrInvalidPlacement = errors.New("invalid placement request")
)

// StockShortage carries the details of an insufficient-stock rejection.
type StockShortage struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	Needed       int       `json:"needed"`
	Available    int       `json:"available"`
}

// PlacementFailure is a typed business rejection. It implements error so the
// engine can abort the surrounding transaction with it, but it is returned
// to callers as data, not as an error.
type PlacementFailure struct {
	Reason   FailureReason  `json:"reason"`
	Message  string         `json:"message"`
	Shortage *StockShortage `json:"shortage,omitempty"`
}

func (f *PlacementFailure) Error() string {
	return f.Message
}

func insufficientStock(ing *Ingredient, needed int) *PlacementFailure {
	return &PlacementFailure{
		Reason:  FailureInsufficientStock,
		Message: fmt.Sprintf("ingredient %q has insufficient stock: need %d, have %d", ing.Name, needed, ing.Stock),
		Shortage: &StockShortage{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Needed:       needed,
			Available:    ing.Stock,
		},
	}
}

// PlacementResult is the structured outcome of one PlaceOrder call. Either
// Success is true and OrderID/Courier/Total are set, or Failure explains the
// rejection.
type PlacementResult struct {
	Success bool              `json:"success"`
	OrderID uuid.UUID         `json:"order_id,omitempty"`
	Courier *CourierSnapshot  `json:"courier,omitempty"`
	Total   float64           `json:"total,omitempty"`
	Failure *PlacementFailure `json:"failure,omitempty"`
}
