package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/platform/httpx"
)

// OrderHandlers exposes the menu, the order log and per-table carts.
type OrderHandlers struct {
	orders orders.Service
}

// NewOrderHandlers constructs order handlers.
func NewOrderHandlers(svc orders.Service) *OrderHandlers {
	return &OrderHandlers{orders: svc}
}

// MenuRoutes wires the /menu endpoint.
func (h *OrderHandlers) MenuRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.menu)
}

// OrderRoutes wires the /orders endpoint.
func (h *OrderHandlers) OrderRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
}

// CartRoutes wires the /carts endpoints.
func (h *OrderHandlers) CartRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/{tableID}", h.cart)
	r.Delete("/{tableID}", h.clearCart)
	r.Post("/{tableID}/items", h.addItem)
	r.Delete("/{tableID}/items/{itemID}", h.removeItem)
	r.Post("/{tableID}/commit", h.commit)
}

func (h *OrderHandlers) menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.orders.Menu(r.Context(), orders.Category(r.URL.Query().Get("category")))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, map[string]any{"items": items})
}

func (h *OrderHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := orders.Query{
		TableID:   q.Get("table"),
		StaffName: q.Get("staff"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httpx.WriteError(r.Context(), w, httpx.NewError("invalid_input", "limit must be a non-negative integer", http.StatusBadRequest))
			return
		}
		query.Limit = limit
	}
	result, err := h.orders.List(r.Context(), query)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, result)
}

func (h *OrderHandlers) cart(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.Cart(r.Context(), chi.URLParam(r, "tableID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

type cartItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (h *OrderHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.orders.AddToCart(r.Context(), chi.URLParam(r, "tableID"), req.ItemID, req.Quantity)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *OrderHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.RemoveFromCart(r.Context(), chi.URLParam(r, "tableID"), chi.URLParam(r, "itemID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *OrderHandlers) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.ClearCart(r.Context(), chi.URLParam(r, "tableID")); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type commitRequest struct {
	StaffName string `json:"staffName"`
}

func (h *OrderHandlers) commit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.orders.Commit(r.Context(), orders.CommitRequest{
		TableID:   chi.URLParam(r, "tableID"),
		StaffName: cleanText(req.StaffName),
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	status := http.StatusCreated
	if len(result.Orders) == 0 {
		status = http.StatusOK
	}
	httpx.WriteJSON(w, status, result)
}
