package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"suplementi-be/internal/order"
	"suplementi-be/internal/utils"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter order.OrderFilter
	if s := q.Get("status"); s != "" {
		status := order.OrderStatus(s)
		filter.Status = &status
	}
	if s := q.Get("search"); s != "" {
		filter.Search = &s
	}

	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 32)
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)

	orders, err := h.svc.GetOrders(r.Context(), &filter, int32(limit), int32(page))
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := h.svc.GetOrderDetail(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

type changeStatusRequest struct {
	Status order.OrderStatus `json:"status"`
}

func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.svc.ChangeStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}
