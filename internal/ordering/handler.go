package ordering

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pizzaypunto/pizzeria/pkg/event"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
	engine    *Engine
	catalog   CatalogRepo
	inventory InventoryRepo
	couriers  CourierRepo
	customers CustomerRepo
	orders    OrderRepo
	publisher events.Publisher
}

type HandlerDeps struct {
	Engine    *Engine
	Catalog   CatalogRepo
	Inventory InventoryRepo
	Couriers  CourierRepo
	Customers CustomerRepo
	Orders    OrderRepo
	Publisher events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &Handler{
		config:    config,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
		engine:    hd.Engine,
		catalog:   hd.Catalog,
		inventory: hd.Inventory,
		couriers:  hd.Couriers,
		customers: hd.Customers,
		orders:    hd.Orders,
		publisher: hd.Publisher,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.PlaceOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
	})

	r.Route("/pizzas", func(r chi.Router) {
		r.Get("/", h.ListPizzas)
		r.Get("/{id}", h.GetPizza)
	})

	r.Get("/ingredients", h.ListIngredients)
	r.Get("/couriers", h.ListCouriers)
	r.Get("/customers/{id}", h.GetCustomer)
}

// PlaceOrderRequest is the inbound payload for POST /orders.
type PlaceOrderRequest struct {
	CustomerID uuid.UUID     `json:"customer_id"`
	Pizzas     []LineRequest `json:"pizzas"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.PlaceOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodePlaceOrderPayload(w, r, log)
	if !ok {
		return
	}

	if verrs := ValidatePlacement(req.CustomerID, req.Pizzas); len(verrs) > 0 {
		log.Debug("invalid placement request", "field", verrs[0].Field)
		apt.Respond(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  verrs,
		}, nil)
		return
	}

	result, err := h.engine.PlaceOrder(ctx, req.CustomerID, req.Pizzas)
	if err != nil {
		log.Error("placement failed", "error", err, "customer_id", req.CustomerID.String())
		apt.RespondError(w, http.StatusBadGateway, "Could not place order")
		return
	}

	if !result.Success {
		log.Info("placement rejected",
			"reason", string(result.Failure.Reason),
			"customer_id", req.CustomerID.String(),
		)
		apt.Respond(w, statusForFailure(result.Failure.Reason), result, nil)
		return
	}

	h.publishOrderPlaced(ctx, result, req.CustomerID, log)

	apt.Respond(w, http.StatusCreated, result, nil)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orders.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	customerIDStr := r.URL.Query().Get("customer_id")

	var orders []*Order
	var err error

	if customerIDStr != "" {
		customerID, parseErr := uuid.Parse(customerIDStr)
		if parseErr != nil {
			log.Debug("invalid customer_id parameter", "customer_id", customerIDStr)
			apt.RespondError(w, http.StatusBadRequest, "Invalid customer_id parameter")
			return
		}
		orders, err = h.orders.ListByCustomer(ctx, customerID)
	} else {
		orders, err = h.orders.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

func (h *Handler) ListPizzas(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListPizzas")
	defer finish()

	log := h.log(r)

	pizzas, err := h.catalog.List(r.Context())
	if err != nil {
		log.Error("error retrieving pizzas", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve pizzas")
		return
	}

	apt.RespondCollection(w, pizzas, "pizza")
}

func (h *Handler) GetPizza(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetPizza")
	defer finish()

	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	pizza, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		log.Error("error loading pizza", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Pizza not found")
		return
	}
	if pizza == nil {
		apt.RespondError(w, http.StatusNotFound, "Pizza not found")
		return
	}

	links := apt.RESTfulLinksFor(pizza)
	apt.RespondSuccess(w, pizza, links...)
}

func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListIngredients")
	defer finish()

	log := h.log(r)

	ingredients, err := h.inventory.List(r.Context())
	if err != nil {
		log.Error("error retrieving ingredients", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve ingredients")
		return
	}

	apt.RespondCollection(w, ingredients, "ingredient")
}

func (h *Handler) ListCouriers(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCouriers")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	status := r.URL.Query().Get("status")

	var couriers []*Courier
	var err error

	if status != "" {
		couriers, err = h.couriers.ListByStatus(ctx, status)
	} else {
		couriers, err = h.couriers.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving couriers", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve couriers")
		return
	}

	apt.RespondCollection(w, couriers, "courier")
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCustomer")
	defer finish()

	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	customer, err := h.customers.Get(r.Context(), id)
	if err != nil {
		log.Error("error loading customer", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if customer == nil {
		apt.RespondError(w, http.StatusNotFound, "Customer not found")
		return
	}

	links := apt.RESTfulLinksFor(customer)
	apt.RespondSuccess(w, customer, links...)
}

// publishOrderPlaced notifies downstream consumers after commit. Best
// effort: a publish failure is logged, the order stands.
func (h *Handler) publishOrderPlaced(ctx context.Context, result *PlacementResult, customerID uuid.UUID, log apt.Logger) {
	if h.publisher == nil {
		return
	}

	order, err := h.orders.Get(ctx, result.OrderID)
	if err != nil || order == nil {
		log.Error("cannot load committed order for event", "error", err, "order_id", result.OrderID.String())
		return
	}

	evt := event.OrderPlacedEvent{
		EventType:   event.EventOrderPlaced,
		OccurredAt:  time.Now(),
		OrderID:     order.ID.String(),
		CustomerID:  customerID.String(),
		Total:       order.Total,
		CourierID:   order.Courier.CourierID.String(),
		CourierName: order.Courier.Name,
		CourierZone: order.Courier.Zone,
	}
	for _, line := range order.Lines {
		evt.Lines = append(evt.Lines, event.OrderPlacedLine{
			PizzaID:  line.PizzaID.String(),
			Name:     line.Name,
			Category: line.Category,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Error("cannot marshal order placed event", "error", err)
		return
	}

	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		log.Error("cannot publish order placed event", "error", err, "order_id", order.ID.String())
	}
}

func statusForFailure(reason FailureReason) int {
	switch reason {
	case FailureCustomerNotFound, FailurePizzaNotFound:
		return http.StatusNotFound
	case FailureMissingIngredient, FailureInsufficientStock, FailureNoCourierAvailable:
		return http.StatusConflict
	case FailureConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) decodePlaceOrderPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (PlaceOrderRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return PlaceOrderRequest{}, false
	}

	var req PlaceOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return PlaceOrderRequest{}, false
	}

	return req, true
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
