package basket

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/auth"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
)

// Handler exposes the authenticated basket endpoints. Every route runs
// behind the token middleware, so the acting user always comes from the
// request context.
type Handler struct {
	service *Service
	auth    func(http.Handler) http.Handler
}

func NewHandler(service *Service, authMiddleware func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, auth: authMiddleware}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/basket", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.getBasket)
		r.Delete("/", h.clearBasket)
		r.Post("/items", h.addItem)
		r.Patch("/items/{productID}", h.setQuantity)
		r.Delete("/items/{productID}", h.removeItem)
	})
}

func (h *Handler) getBasket(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBasket(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) clearBasket(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBasket(w, r)
	if !ok {
		return
	}
	if err := b.Clear(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBasket(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID   int64  `json:"product_id"`
		ProductName string `json:"product_name"`
		Quantity    *int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx := r.Context()
	var (
		product *catalog.Product
		err     error
	)
	switch {
	case req.ProductID != 0:
		product, err = h.service.catalog.GetProduct(ctx, req.ProductID)
	case req.ProductName != "":
		product, err = h.service.catalog.GetProductByName(ctx, req.ProductName)
	default:
		http.Error(w, "product_id or product_name is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	cmd, err := b.Add(ctx, product, quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, cmd)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	_, cmd, ok := h.loadCommand(w, r)
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := cmd.SetQuantity(r.Context(), req.Quantity); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, cmd)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	b, cmd, ok := h.loadCommand(w, r)
	if !ok {
		return
	}
	if err := b.Remove(r.Context(), Selector{Command: cmd}); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *Handler) loadBasket(w http.ResponseWriter, r *http.Request) (*Basket, bool) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return nil, false
	}
	b, err := h.service.GetBasket(r.Context(), u)
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	return b, true
}

func (h *Handler) loadCommand(w http.ResponseWriter, r *http.Request) (*Basket, *Command, bool) {
	b, ok := h.loadBasket(w, r)
	if !ok {
		return nil, nil, false
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "productID must be an integer", http.StatusBadRequest)
		return nil, nil, false
	}
	for _, cmd := range b.Commands() {
		if cmd.Product().ID() == productID {
			return b, cmd, true
		}
	}
	http.Error(w, "product is not in the basket", http.StatusNotFound)
	return nil, nil, false
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, errs.HTTPStatus(err), map[string]string{"error": err.Error()})
}
