package category

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
)

// Handler exposes category and tag HTTP endpoints.
type Handler struct{ service *Service }

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Get("/{id}", h.getCategory)
		r.Patch("/{id}", h.renameCategory)
		r.Delete("/{id}", h.deleteCategory)
		r.Get("/{id}/tags", h.listTags)
	})
	r.Route("/api/v1/tags", func(r chi.Router) {
		r.Post("/", h.createTag)
		r.Get("/", h.tagsOfProduct)
		r.Patch("/{id}", h.renameTag)
		r.Delete("/{id}", h.deleteTag)
		r.Get("/{id}/products", h.taggedProducts)
		r.Put("/{id}/products/{productID}", h.attachTag)
		r.Delete("/{id}/products/{productID}", h.detachTag)
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var params CategoryParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCategory(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCategory(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := c.SetName(r.Context(), req.Name); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCategory(w, r)
	if !ok {
		return
	}
	if err := c.Delete(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCategory(w, r)
	if !ok {
		return
	}
	tags, err := c.Tags(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, tags)
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	var params TagParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := h.service.CreateTag(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, t)
}

func (h *Handler) tagsOfProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("product"), 10, 64)
	if err != nil {
		http.Error(w, "product must be an integer id", http.StatusBadRequest)
		return
	}
	tags, err := h.service.ProductTags(r.Context(), productID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, tags)
}

func (h *Handler) renameTag(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTag(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := t.SetName(r.Context(), req.Name); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTag(w, r)
	if !ok {
		return
	}
	if err := t.Delete(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) taggedProducts(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTag(w, r)
	if !ok {
		return
	}
	ids, err := t.Products(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string][]int64{"product_ids": ids})
}

func (h *Handler) attachTag(w http.ResponseWriter, r *http.Request) {
	t, productID, ok := h.loadTagAndProduct(w, r)
	if !ok {
		return
	}
	if err := t.Attach(r.Context(), productID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) detachTag(w http.ResponseWriter, r *http.Request) {
	t, productID, ok := h.loadTagAndProduct(w, r)
	if !ok {
		return
	}
	if err := t.Detach(r.Context(), productID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *Handler) loadCategory(w http.ResponseWriter, r *http.Request) (*Category, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "id must be an integer", http.StatusBadRequest)
		return nil, false
	}
	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	return c, true
}

func (h *Handler) loadTag(w http.ResponseWriter, r *http.Request) (*Tag, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "id must be an integer", http.StatusBadRequest)
		return nil, false
	}
	t, err := h.service.GetTag(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	return t, true
}

func (h *Handler) loadTagAndProduct(w http.ResponseWriter, r *http.Request) (*Tag, int64, bool) {
	t, ok := h.loadTag(w, r)
	if !ok {
		return nil, 0, false
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "productID must be an integer", http.StatusBadRequest)
		return nil, 0, false
	}
	return t, productID, true
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, errs.HTTPStatus(err), map[string]string{"error": err.Error()})
}
