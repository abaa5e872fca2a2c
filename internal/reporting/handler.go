package reporting

import (
	"net/http"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	logger  apt.Logger
	config  *apt.Config
	tlm     *telemetry.HTTP
	service *Service
}

func NewHandler(service *Service, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		logger:  logger,
		config:  config,
		tlm:     telemetry.NewHTTP(),
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/top-ingredients", h.TopIngredients)
		r.Get("/average-price-by-category", h.AveragePriceByCategory)
		r.Get("/best-selling-category", h.BestSellingCategory)
	})
}

func (h *Handler) TopIngredients(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TopIngredients")
	defer finish()

	log := h.log(r)

	limit := h.intQueryParam(r, "limit", 0)
	days := h.intQueryParam(r, "days", 0)

	usages, err := h.service.TopIngredients(r.Context(), days, limit)
	if err != nil {
		log.Error("error computing top ingredients", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not compute top ingredients")
		return
	}

	apt.Respond(w, http.StatusOK, usages, nil)
}

func (h *Handler) AveragePriceByCategory(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AveragePriceByCategory")
	defer finish()

	log := h.log(r)

	averages, err := h.service.AveragePriceByCategory(r.Context())
	if err != nil {
		log.Error("error computing average price by category", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not compute average prices")
		return
	}

	apt.Respond(w, http.StatusOK, averages, nil)
}

func (h *Handler) BestSellingCategory(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.BestSellingCategory")
	defer finish()

	log := h.log(r)

	sales, err := h.service.BestSellingCategory(r.Context())
	if err != nil {
		log.Error("error computing best selling category", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not compute best selling category")
		return
	}

	if sales == nil {
		apt.RespondError(w, http.StatusNotFound, "No sales recorded yet")
		return
	}

	apt.Respond(w, http.StatusOK, sales, nil)
}

func (h *Handler) intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
