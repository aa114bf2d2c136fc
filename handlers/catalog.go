package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wicaksana/kedai/models"
)

// GetMenu returns the available catalog snapshot with modifiers attached.
func GetMenu(w http.ResponseWriter, r *http.Request) {
	items, err := Catalog.Snapshot()
	if err != nil {
		logrus.Printf("failed to fetch menu, error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to fetch menu")
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

// GetProductModifiers returns the modifier groups for one product. A
// product without modifiers answers an empty list.
func GetProductModifiers(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	groups, err := Catalog.ItemModifiers(productID)
	if err != nil {
		logrus.Printf("failed to fetch modifiers for product %d, error: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "failed to fetch modifiers")
		return
	}
	if groups == nil {
		groups = []models.ModifierGroup{}
	}
	respondWithJSON(w, http.StatusOK, groups)
}
