package user

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
)

// Handler exposes account HTTP endpoints.
type Handler struct{ service *Service }

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", h.registerUser)
		r.Get("/{id}", h.getUser)
		r.Patch("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
		r.Get("/{id}/picture", h.getPicture)
		r.Put("/{id}/picture", h.putPicture)
		r.Delete("/{id}/picture", h.deletePicture)
	})
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var params UserParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u, err := h.service.CreateUser(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, u)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Pseudo      *string `json:"pseudo"`
		Password    *string `json:"password"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if req.Pseudo != nil {
		if err := u.SetPseudo(ctx, *req.Pseudo); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Password != nil {
		if err := u.SetPassword(ctx, *req.Password); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Description != nil {
		if err := u.SetDescription(ctx, *req.Description); err != nil {
			respondError(w, err)
			return
		}
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	if err := u.Delete(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getPicture(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	img := u.Picture()
	if img == nil {
		http.Error(w, "user has no picture", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", mimetype.Detect(img).String())
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

func (h *Handler) putPicture(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	img, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := u.SetPicture(r.Context(), img); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deletePicture(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	if err := u.SetPicture(r.Context(), nil); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request) (*User, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "id must be an integer", http.StatusBadRequest)
		return nil, false
	}
	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	return u, true
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, errs.HTTPStatus(err), map[string]string{"error": err.Error()})
}
