package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mindhaven/internal/apperr"
	"mindhaven/internal/model"
	"mindhaven/internal/order"
)

// PayHandler handles the payment-order endpoints
type PayHandler struct {
	orderSvc *order.Service
}

// NewPayHandler creates a new pay handler
func NewPayHandler(orderSvc *order.Service) *PayHandler {
	return &PayHandler{orderSvc: orderSvc}
}

// Amount accepts both string and numeric JSON values, since clients send
// either shape.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// CreateOrderRequest is the request body for creating an order
type CreateOrderRequest struct {
	Amount  Amount        `json:"amount"`
	Title   string        `json:"title"`
	Channel model.Channel `json:"channel"`
}

// Create handles POST /v1/pay/create
func (h *PayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.orderSvc.Create(r.Context(), string(req.Amount), req.Title, req.Channel)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Status handles GET /v1/pay/status/{orderId}
func (h *PayHandler) Status(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	status, err := h.orderSvc.Status(r.Context(), orderID)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.OrderStatus{"status": status})
}

// Notify handles POST /v1/pay/notify, the gateway webhook. An unknown
// order is acknowledged and ignored; a bad signature is rejected.
func (h *PayHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid notify payload")
		return
	}

	if err := h.orderSvc.Notify(r.Context(), payload); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	// The gateway expects a bare acknowledgment, not JSON.
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
}

// MockSuccessRequest is the request body for self-attesting a payment
type MockSuccessRequest struct {
	OrderID string `json:"orderId"`
}

// MockSuccess handles POST /v1/pay/mock_success
func (h *PayHandler) MockSuccess(w http.ResponseWriter, r *http.Request) {
	var req MockSuccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orderSvc.ForceSuccess(r.Context(), req.OrderID); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
