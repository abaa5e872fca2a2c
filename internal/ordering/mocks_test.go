package ordering

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the database, shared by the fake
// repos below. The fake tx runner snapshots it before each unit and
// restores it when the unit aborts, so atomicity is observable in tests.
type fakeStore struct {
	mu          sync.Mutex
	customers   map[uuid.UUID]*Customer
	pizzas      map[uuid.UUID]*Pizza
	ingredients map[uuid.UUID]*Ingredient
	couriers    []*Courier
	orders      []*Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:   make(map[uuid.UUID]*Customer),
		pizzas:      make(map[uuid.UUID]*Pizza),
		ingredients: make(map[uuid.UUID]*Ingredient),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, customer := range s.customers {
		copied := *customer
		c.customers[id] = &copied
	}
	for id, pizza := range s.pizzas {
		copied := *pizza
		copied.Recipe = append([]RecipeLine(nil), pizza.Recipe...)
		c.pizzas[id] = &copied
	}
	for id, ing := range s.ingredients {
		copied := *ing
		c.ingredients[id] = &copied
	}
	for _, courier := range s.couriers {
		copied := *courier
		c.couriers = append(c.couriers, &copied)
	}
	for _, order := range s.orders {
		copied := *order
		copied.Lines = append([]OrderLine(nil), order.Lines...)
		c.orders = append(c.orders, &copied)
	}
	return c
}

func (s *fakeStore) restore(from *fakeStore) {
	s.customers = from.customers
	s.pizzas = from.pizzas
	s.ingredients = from.ingredients
	s.couriers = from.couriers
	s.orders = from.orders
}

func (s *fakeStore) stockOf(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ing, ok := s.ingredients[id]; ok {
		return ing.Stock
	}
	return -1
}

// fakeTxRunner serializes units with a mutex (standing in for the store's
// isolation), snapshots the store, and restores it on abort. It can be
// primed to fail with ErrTxConflict a number of times first.
type fakeTxRunner struct {
	store     *fakeStore
	mu        sync.Mutex
	conflicts int
	attempts  int
}

func newFakeTxRunner(store *fakeStore) *fakeTxRunner {
	return &fakeTxRunner{store: store}
}

func (t *fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.attempts++
	if t.conflicts > 0 {
		t.conflicts--
		return ErrTxConflict
	}

	snapshot := t.store.clone()
	if err := fn(ctx); err != nil {
		t.store.restore(snapshot)
		return err
	}
	return nil
}

type fakeCustomerRepo struct {
	store *fakeStore
}

func (r *fakeCustomerRepo) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	customer, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return customer, nil
}

type fakeCatalogRepo struct {
	store *fakeStore
}

func (r *fakeCatalogRepo) Get(ctx context.Context, id uuid.UUID) (*Pizza, error) {
	pizza, ok := r.store.pizzas[id]
	if !ok {
		return nil, nil
	}
	return pizza, nil
}

func (r *fakeCatalogRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]*Pizza, error) {
	var result []*Pizza
	for _, id := range ids {
		if pizza, ok := r.store.pizzas[id]; ok {
			result = append(result, pizza)
		}
	}
	return result, nil
}

func (r *fakeCatalogRepo) List(ctx context.Context) ([]*Pizza, error) {
	var result []*Pizza
	for _, pizza := range r.store.pizzas {
		result = append(result, pizza)
	}
	return result, nil
}

type fakeInventoryRepo struct {
	store *fakeStore
}

func (r *fakeInventoryRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]*Ingredient, error) {
	var result []*Ingredient
	for _, id := range ids {
		if ing, ok := r.store.ingredients[id]; ok {
			result = append(result, ing)
		}
	}
	return result, nil
}

func (r *fakeInventoryRepo) List(ctx context.Context) ([]*Ingredient, error) {
	var result []*Ingredient
	for _, ing := range r.store.ingredients {
		result = append(result, ing)
	}
	return result, nil
}

func (r *fakeInventoryRepo) DecrementStock(ctx context.Context, demand map[uuid.UUID]int) error {
	conflicted := false
	for id, needed := range demand {
		ing, ok := r.store.ingredients[id]
		if !ok || ing.Stock < needed {
			conflicted = true
			continue
		}
		ing.Stock -= needed
	}
	if conflicted {
		return ErrStockConflict
	}
	return nil
}

type fakeCourierRepo struct {
	store *fakeStore
}

func (r *fakeCourierRepo) List(ctx context.Context) ([]*Courier, error) {
	return r.store.couriers, nil
}

func (r *fakeCourierRepo) ListByStatus(ctx context.Context, status string) ([]*Courier, error) {
	var result []*Courier
	for _, courier := range r.store.couriers {
		if courier.Status == status {
			result = append(result, courier)
		}
	}
	return result, nil
}

func (r *fakeCourierRepo) ReserveAvailable(ctx context.Context) (*Courier, error) {
	var pick *Courier
	for _, courier := range r.store.couriers {
		if !courier.IsAvailable() {
			continue
		}
		if pick == nil || courier.Name < pick.Name {
			pick = courier
		}
	}
	if pick == nil {
		return nil, nil
	}
	pick.Status = CourierBusy
	return pick, nil
}

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *Order) error {
	r.store.orders = append(r.store.orders, order)
	return nil
}

func (r *fakeOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	for _, order := range r.store.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]*Order, error) {
	return r.store.orders, nil
}

func (r *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Order, error) {
	var result []*Order
	for _, order := range r.store.orders {
		if order.CustomerID == customerID {
			result = append(result, order)
		}
	}
	return result, nil
}

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu        sync.Mutex
	Published [][]byte
	Topics    []string

	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Published = append(m.Published, msg)
	return nil
}

// testFixture bundles a seeded store with an engine wired to fakes.
type testFixture struct {
	store      *fakeStore
	tx         *fakeTxRunner
	engine     *Engine
	carlos     *Customer
	maria      *Customer
	margarita  *Pizza
	pepperoniP *Pizza
	mozzarella *Ingredient
	sauce      *Ingredient
	pepperoni  *Ingredient
	basil      *Ingredient
}

// newTestFixture seeds the dataset the service ships with: Margarita needs
// 2 Mozzarella + 1 Tomato Sauce + 1 Basil, Pepperoni needs 2 Mozzarella +
// 1 Tomato Sauce + 3 Pepperoni.
func newTestFixture() *testFixture {
	store := newFakeStore()

	mozzarella := NewIngredient("Mozzarella", "cheese", 200)
	sauce := NewIngredient("Tomato Sauce", "sauce", 200)
	pepperoni := NewIngredient("Pepperoni", "topping", 150)
	basil := NewIngredient("Basil", "topping", 80)
	for _, ing := range []*Ingredient{mozzarella, sauce, pepperoni, basil} {
		store.ingredients[ing.ID] = ing
	}

	margarita := NewPizza("Margarita", "tradicional", 20000, []RecipeLine{
		{IngredientID: mozzarella.ID, Quantity: 2},
		{IngredientID: sauce.ID, Quantity: 1},
		{IngredientID: basil.ID, Quantity: 1},
	})
	pepperoniPizza := NewPizza("Pepperoni", "especial", 26000, []RecipeLine{
		{IngredientID: mozzarella.ID, Quantity: 2},
		{IngredientID: sauce.ID, Quantity: 1},
		{IngredientID: pepperoni.ID, Quantity: 3},
	})
	store.pizzas[margarita.ID] = margarita
	store.pizzas[pepperoniPizza.ID] = pepperoniPizza

	store.couriers = []*Courier{
		NewCourier("Juan", "Norte"),
		NewCourier("Luis", "Centro"),
		NewCourier("Ana", "Sur"),
	}

	carlos := NewCustomer("Carlos", "300111222", "Calle 1 #2-3")
	maria := NewCustomer("María", "300333444", "Calle 2 #4-5")
	store.customers[carlos.ID] = carlos
	store.customers[maria.ID] = maria

	tx := newFakeTxRunner(store)
	engine := NewEngine(EngineDeps{
		Customers: &fakeCustomerRepo{store: store},
		Catalog:   &fakeCatalogRepo{store: store},
		Inventory: &fakeInventoryRepo{store: store},
		Couriers:  &fakeCourierRepo{store: store},
		Orders:    &fakeOrderRepo{store: store},
		Tx:        tx,
	}, nil)

	return &testFixture{
		store:      store,
		tx:         tx,
		engine:     engine,
		carlos:     carlos,
		maria:      maria,
		margarita:  margarita,
		pepperoniP: pepperoniPizza,
		mozzarella: mozzarella,
		sauce:      sauce,
		pepperoni:  pepperoni,
		basil:      basil,
	}
}
