package catalog

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service *Service }

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.searchProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Patch("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
		r.Get("/{id}/illustration", h.getIllustration)
		r.Put("/{id}/illustration", h.putIllustration)
		r.Delete("/{id}/illustration", h.deleteIllustration)
	})
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := SearchOptions{
		SortBy: q.Get("sort_by"),
		Desc:   q.Get("desc") == "true",
	}
	for param, dst := range map[string]**float64{"min_price": &opts.MinPrice, "max_price": &opts.MaxPrice} {
		if raw := q.Get(param); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				http.Error(w, param+" must be a number", http.StatusBadRequest)
				return
			}
			*dst = &v
		}
	}

	needle := q.Get("q")
	var (
		products Products
		err      error
	)
	switch q.Get("by") {
	case "", "any":
		products, err = h.service.Search(r.Context(), needle, opts)
	case "name":
		products, err = h.service.SearchByName(r.Context(), needle, opts)
	case "description":
		products, err = h.service.SearchByDescription(r.Context(), needle, opts)
	default:
		http.Error(w, "by must be name, description or any", http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var params ProductParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Quantity    *int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if req.Name != nil {
		if err := p.SetName(ctx, *req.Name); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Description != nil {
		if err := p.SetDescription(ctx, *req.Description); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Price != nil {
		if err := p.SetPrice(ctx, *req.Price); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Quantity != nil {
		if err := p.SetQuantity(ctx, *req.Quantity); err != nil {
			respondError(w, err)
			return
		}
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	if err := p.Delete(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getIllustration(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	img := p.Illustration()
	if img == nil {
		http.Error(w, "product has no illustration", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", mimetype.Detect(img).String())
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

func (h *Handler) putIllustration(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	img, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := p.SetIllustration(r.Context(), img); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteIllustration(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	if err := p.SetIllustration(r.Context(), nil); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *Handler) loadProduct(w http.ResponseWriter, r *http.Request) (*Product, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "id must be an integer", http.StatusBadRequest)
		return nil, false
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	return p, true
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, errs.HTTPStatus(err), map[string]string{"error": err.Error()})
}
