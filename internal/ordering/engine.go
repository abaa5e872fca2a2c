package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// DefaultMaxAttempts bounds how many times a placement is retried when the
// transaction aborts on contention before the conflict is surfaced.
const DefaultMaxAttempts = 3

// LineRequest is one requested line: a pizza and how many of it. The same
// pizza may appear on several lines; quantities are summed.
type LineRequest struct {
	PizzaID  uuid.UUID `json:"pizza_id"`
	Quantity int       `json:"quantity"`
}

// Engine places orders. It is the sole writer of ingredient stock, courier
// availability, and the order ledger; every placement runs as one atomic
// unit so a concurrent reader sees either the pre-placement state or the
// fully committed one.
type Engine struct {
	customers   CustomerRepo
	catalog     CatalogRepo
	inventory   InventoryRepo
	couriers    CourierRepo
	orders      OrderRepo
	tx          TxRunner
	logger      apt.Logger
	maxAttempts int
}

type EngineDeps struct {
	Customers CustomerRepo
	Catalog   CatalogRepo
	Inventory InventoryRepo
	Couriers  CourierRepo
	Orders    OrderRepo
	Tx        TxRunner
}

func NewEngine(deps EngineDeps, logger apt.Logger) *Engine {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Engine{
		customers:   deps.Customers,
		catalog:     deps.Catalog,
		inventory:   deps.Inventory,
		couriers:    deps.Couriers,
		orders:      deps.Orders,
		tx:          deps.Tx,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
	}
}

// PlaceOrder runs the whole placement as one transaction: resolve customer
// and pizzas, aggregate ingredient demand, check and conditionally decrement
// stock, reserve a courier, append the order. Business rejections come back
// inside the PlacementResult; only malformed input and infrastructure
// faults are returned as errors.
func (e *Engine) PlaceOrder(ctx context.Context, customerID uuid.UUID, lines []LineRequest) (*PlacementResult, error) {
	if verrs := ValidatePlacement(customerID, lines); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidPlacement, verrs[0].Field, verrs[0].Message)
	}

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		var order *Order

		err := e.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			placed, err := e.placeOnce(txCtx, customerID, lines)
			if err != nil {
				return err
			}
			order = placed
			return nil
		})

		if err == nil {
			courier := order.Courier
			e.logger.Info("order placed",
				"order_id", order.ID.String(),
				"customer_id", customerID.String(),
				"courier", courier.Name,
				"total", order.Total,
			)
			return &PlacementResult{
				Success: true,
				OrderID: order.ID,
				Courier: &courier,
				Total:   order.Total,
			}, nil
		}

		var failure *PlacementFailure
		if errors.As(err, &failure) {
			return &PlacementResult{Success: false, Failure: failure}, nil
		}

		if errors.Is(err, ErrTxConflict) || errors.Is(err, ErrStockConflict) {
			e.logger.Debug("placement aborted on contention, retrying",
				"attempt", attempt, "customer_id", customerID.String())
			continue
		}

		return nil, fmt.Errorf("place order: %w", err)
	}

	return &PlacementResult{
		Success: false,
		Failure: &PlacementFailure{
			Reason:  FailureConflict,
			Message: "placement could not commit due to concurrent contention",
		},
	}, nil
}

// placeOnce is one attempt, executed inside a transaction context. Returning
// any error aborts the unit; a *PlacementFailure error is the typed business
// rejection, everything else is infrastructure.
func (e *Engine) placeOnce(ctx context.Context, customerID uuid.UUID, lines []LineRequest) (*Order, error) {
	customer, err := e.customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}
	if customer == nil {
		return nil, &PlacementFailure{
			Reason:  FailureCustomerNotFound,
			Message: "customer does not exist",
		}
	}

	// Merge duplicate lines, preserving first-appearance order.
	qtyByPizza := make(map[uuid.UUID]int, len(lines))
	pizzaIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, seen := qtyByPizza[line.PizzaID]; !seen {
			pizzaIDs = append(pizzaIDs, line.PizzaID)
		}
		qtyByPizza[line.PizzaID] += line.Quantity
	}

	pizzas, err := e.catalog.GetMany(ctx, pizzaIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve pizzas: %w", err)
	}
	if len(pizzas) != len(pizzaIDs) {
		return nil, &PlacementFailure{
			Reason:  FailurePizzaNotFound,
			Message: "one or more requested pizzas do not exist",
		}
	}
	pizzaByID := make(map[uuid.UUID]*Pizza, len(pizzas))
	for _, p := range pizzas {
		pizzaByID[p.ID] = p
	}

	// Aggregate ingredient demand across all lines, price the order, and
	// take the line snapshots in one pass.
	demand := make(map[uuid.UUID]int)
	demandIDs := make([]uuid.UUID, 0)
	orderLines := make([]OrderLine, 0, len(pizzaIDs))
	var total float64

	for _, id := range pizzaIDs {
		pizza := pizzaByID[id]
		qty := qtyByPizza[id]
		total += pizza.Price * float64(qty)

		orderLines = append(orderLines, OrderLine{
			PizzaID:  pizza.ID,
			Name:     pizza.Name,
			Category: pizza.Category,
			Price:    pizza.Price,
			Quantity: qty,
		})

		for _, rl := range pizza.Recipe {
			if _, seen := demand[rl.IngredientID]; !seen {
				demandIDs = append(demandIDs, rl.IngredientID)
			}
			demand[rl.IngredientID] += rl.Quantity * qty
		}
	}

	if err := e.checkStock(ctx, demand, demandIDs); err != nil {
		return nil, err
	}

	// The pre-check above is informational; this conditional write is the
	// authoritative gate. A conflict here means another placement raced us
	// inside the check-to-decrement window.
	if err := e.inventory.DecrementStock(ctx, demand); err != nil {
		if errors.Is(err, ErrStockConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	courier, err := e.couriers.ReserveAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve courier: %w", err)
	}
	if courier == nil {
		return nil, &PlacementFailure{
			Reason:  FailureNoCourierAvailable,
			Message: "no couriers available, the order cannot be fulfilled",
		}
	}

	order := NewOrder()
	order.CustomerID = customer.ID
	order.CustomerName = customer.Name
	order.Lines = orderLines
	order.Total = total
	order.Courier = courier.Snapshot()
	order.BeforeCreate()

	if err := e.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("append order: %w", err)
	}

	return order, nil
}

func (e *Engine) checkStock(ctx context.Context, demand map[uuid.UUID]int, demandIDs []uuid.UUID) error {
	ingredients, err := e.inventory.GetMany(ctx, demandIDs)
	if err != nil {
		return fmt.Errorf("fetch ingredients: %w", err)
	}
	if len(ingredients) != len(demandIDs) {
		return &PlacementFailure{
			Reason:  FailureMissingIngredient,
			Message: "a recipe references an ingredient that no longer exists",
		}
	}

	byID := make(map[uuid.UUID]*Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	for _, id := range demandIDs {
		ing := byID[id]
		if ing == nil {
			return &PlacementFailure{
				Reason:  FailureMissingIngredient,
				Message: "a recipe references an ingredient that no longer exists",
			}
		}
		if needed := demand[id]; ing.Stock < needed {
			return insufficientStock(ing, needed)
		}
	}

	return nil
}
