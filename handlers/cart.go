package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wicaksana/kedai/cart"
	"github.com/wicaksana/kedai/models"
)

// GetCart returns the session's cart with derived counts and charges. The
// order_type query parameter previews delivery charges; it defaults to
// takeaway.
func GetCart(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	orderType := models.OrderType(r.URL.Query().Get("order_type"))
	if !orderType.IsValid() {
		orderType = models.OrderTakeaway
	}

	c := Carts.Get(sid)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items":      c.Lines(),
		"item_count": c.ItemCount(),
		"charges":    Pricing.DeriveCharges(c.Subtotal(), orderType),
	})
}

// AddCartItem adds a product with selected modifiers to the session's cart.
func AddCartItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		ProductID int64                `json:"product_id"`
		Quantity  int                  `json:"quantity"`
		Modifiers []models.ModifierRef `json:"modifiers"`
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

	item, err := Catalog.Item(req.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		respondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		logrus.Printf("failed to load product %d, error: %v", req.ProductID, err)
		respondWithError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if !item.IsAvailable {
		respondWithError(w, http.StatusConflict, "product is not available")
		return
	}

	selections := make(models.Selections)
	for _, ref := range req.Modifiers {
		selections[ref.ModifierID] = append(selections[ref.ModifierID], ref.OptionID)
	}

	line, err := Carts.Get(sid).AddItem(item, req.Quantity, selections)
	if err != nil {
		var missing *cart.MissingRequiredModifierError
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity), errors.As(err, &missing):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to add item")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, line)
}

// UpdateCartItem sets a line's quantity; zero removes the line. An unknown
// line id is accepted silently, matching the cart's race-tolerant contract.
func UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Quantity int `json:"quantity"`
	}

	sid, err := sessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	lineID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid line id")
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	Carts.Get(sid).UpdateQuantity(lineID, req.Quantity)
	w.WriteHeader(http.StatusNoContent)
}

func RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	lineID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid line id")
		return
	}

	Carts.Get(sid).RemoveItem(lineID)
	w.WriteHeader(http.StatusNoContent)
}

func ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	Carts.Get(sid).Clear()
	w.WriteHeader(http.StatusNoContent)
}
