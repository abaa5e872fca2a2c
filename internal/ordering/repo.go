package ordering

import (
	"context"

	"github.com/google/uuid"
)

// CatalogRepo reads the pizza catalog. The engine never writes to it.
type CatalogRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*Pizza, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*Pizza, error)
	List(ctx context.Context) ([]*Pizza, error)
}

// InventoryRepo reads ingredient stock and applies the engine's conditional
// decrement. DecrementStock must only apply `stock -= needed` where
// `stock >= needed`; if any ingredient in the set fails that condition the
// whole call returns ErrStockConflict and nothing may remain applied
// outside the surrounding transaction.
type InventoryRepo interface {
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*Ingredient, error)
	List(ctx context.Context) ([]*Ingredient, error)
	DecrementStock(ctx context.Context, demand map[uuid.UUID]int) error
}

// CourierRepo manages the delivery roster. ReserveAvailable atomically
// claims one available courier (status available -> busy) and returns it,
// or (nil, nil) when the roster has nobody free.
type CourierRepo interface {
	List(ctx context.Context) ([]*Courier, error)
	ListByStatus(ctx context.Context, status string) ([]*Courier, error)
	ReserveAvailable(ctx context.Context) (*Courier, error)
}

// CustomerRepo reads the customer directory.
type CustomerRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*Customer, error)
}

// OrderRepo appends to and reads the order ledger.
type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Order, error)
}

// TxRunner executes fn as one atomic unit. Reads inside fn see a consistent
// snapshot; writes become visible all together at commit or not at all.
// Implementations map store-level contention to ErrTxConflict so the engine
// can retry.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
