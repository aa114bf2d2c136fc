package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wicaksana/kedai/cart"
	"github.com/wicaksana/kedai/catalog"
	"github.com/wicaksana/kedai/middlewares"
	"github.com/wicaksana/kedai/notify"
	"github.com/wicaksana/kedai/order"
	"github.com/wicaksana/kedai/pricing"
)

var (
	Carts    *cart.Store
	Catalog  *catalog.Service
	Checkout *order.CheckoutService
	Pricing  pricing.Config
	Hub      *notify.Hub
)

// Setup wires the handler package once at startup.
func Setup(carts *cart.Store, cat *catalog.Service, checkout *order.CheckoutService, cfg pricing.Config, hub *notify.Hub) {
	Carts = carts
	Catalog = cat
	Checkout = checkout
	Pricing = cfg
	Hub = hub
}

// sessionID identifies the cart-owning session: the user id when
// authenticated, the client-chosen X-Session-ID header for guests.
func sessionID(r *http.Request) (string, error) {
	if claims, err := middlewares.GetAuthenticatedUser(r); err == nil {
		return claims.UserID.String(), nil
	}
	id := r.Header.Get("X-Session-ID")
	if id == "" {
		return "", errors.New("missing X-Session-ID header")
	}
	return id, nil
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
