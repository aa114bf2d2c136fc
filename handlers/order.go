package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wicaksana/kedai/database/dbhelper"
	"github.com/wicaksana/kedai/middlewares"
	"github.com/wicaksana/kedai/models"
	"github.com/wicaksana/kedai/notify"
	"github.com/wicaksana/kedai/order"
)

// CreateOrder runs checkout for the session's cart. Totals in the request
// body, if any, are ignored; the composer recomputes them.
func CreateOrder(w http.ResponseWriter, r *http.Request) {
	type request struct {
		OrderType       models.OrderType     `json:"order_type"`
		TableNo         string               `json:"table_no"`
		DeliveryAddress string               `json:"delivery_address"`
		CustomerName    string               `json:"customer_name"`
		CustomerPhone   string               `json:"customer_phone"`
		CustomerEmail   string               `json:"customer_email"`
		CustomerNotes   string               `json:"customer_notes"`
		PaymentMethod   models.PaymentMethod `json:"payment_method"`
	}

	sid, err := sessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if !req.OrderType.IsValid() {
		respondWithError(w, http.StatusBadRequest, "invalid order type")
		return
	}
	if !req.PaymentMethod.IsValid() {
		respondWithError(w, http.StatusBadRequest, "invalid payment method")
		return
	}

	co := order.Checkout{
		OrderType:       req.OrderType,
		TableNo:         req.TableNo,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.CustomerNotes,
		PaymentMethod:   req.PaymentMethod,
		GuestName:       req.CustomerName,
		GuestPhone:      req.CustomerPhone,
		GuestEmail:      req.CustomerEmail,
	}

	if claims, err := middlewares.GetAuthenticatedUser(r); err == nil {
		identity, err := dbhelper.GetIdentity(claims.UserID)
		if err != nil {
			logrus.Printf("failed to resolve identity for user %s, error: %v", claims.UserID, err)
			respondWithError(w, http.StatusInternalServerError, "failed to resolve identity")
			return
		}
		co.User = &identity
	}

	orderID, err := Checkout.Checkout(r.Context(), Carts.Get(sid), co)
	if err != nil {
		var guestErr *order.MissingGuestContactError
		var fieldErr *order.MissingFulfillmentFieldError
		switch {
		case errors.Is(err, order.ErrEmptyCart),
			errors.Is(err, order.ErrNoValidItems),
			errors.As(err, &guestErr),
			errors.As(err, &fieldErr):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrOrderIDMissing):
			respondWithError(w, http.StatusBadGateway, err.Error())
		default:
			logrus.Printf("failed to place order, error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	Hub.Broadcast(notify.StatusUpdate{
		OrderID: orderID,
		Status:  models.StatusPending,
		Time:    time.Now(),
	})

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"order_id": orderID,
		"message":  "order created",
	})
}

// ListOrders returns the authenticated user's orders, or a guest's orders
// looked up by the phone or email they checked out with.
func ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []models.Order
		err    error
	)

	if claims, authErr := middlewares.GetAuthenticatedUser(r); authErr == nil {
		orders, err = dbhelper.ListOrdersByUser(claims.UserID)
	} else {
		phone := r.URL.Query().Get("phone")
		email := r.URL.Query().Get("email")
		if phone == "" && email == "" {
			respondWithError(w, http.StatusBadRequest, "phone or email required for guest lookup")
			return
		}
		orders, err = dbhelper.ListOrdersByContact(phone, email)
	}

	if err != nil {
		logrus.Printf("failed to list orders, error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := dbhelper.GetOrder(orderID)
	if errors.Is(err, sql.ErrNoRows) {
		respondWithError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		logrus.Printf("failed to fetch order %d, error: %v", orderID, err)
		respondWithError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	respondWithJSON(w, http.StatusOK, o)
}

// UpdateOrderStatus is the staff-facing status progression endpoint. Every
// change is broadcast to status subscribers.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Status models.OrderStatus `json:"status"`
	}

	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if !req.Status.IsValid() {
		respondWithError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := dbhelper.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		logrus.Printf("failed to update order %d status, error: %v", orderID, err)
		respondWithError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if !updated {
		respondWithError(w, http.StatusNotFound, "order not found")
		return
	}

	Hub.Broadcast(notify.StatusUpdate{
		OrderID: orderID,
		Status:  req.Status,
		Time:    time.Now(),
	})

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"order_id": orderID,
		"status":   req.Status,
	})
}
