package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/poskit/cashier/internal/catalog"
)

// GetProductsHandler godoc
// @Summary List the organisation's products
// @Description Returns every product with derived availableStock, in catalog order
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProductsResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := organisationFromRequest(w, r)
	if !ok {
		return
	}

	products, err := catalogSvc.List(org)
	if err != nil {
		log.Printf("list products failed: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

// AddProductHandler godoc
// @Summary Add a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 409 {string} string "Name already taken"
// @Router /products [post]
func AddProductHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := organisationFromRequest(w, r)
	if !ok {
		return
	}

	var req AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req.Product)
	if len(validationErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	created, err := catalogSvc.Add(org, productInput(req.Product))
	if err != nil {
		if errors.Is(err, catalog.ErrProductExists) {
			http.Error(w, "product with this name already exists", http.StatusConflict)
			return
		}
		log.Printf("add product failed: %v", err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, ProductResponse{Product: created})
}

// EditProductHandler godoc
// @Summary Edit a product, optionally renaming it
// @Description The sold counter is server-owned and preserved across edits
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EditProductRequest true "Old name and updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Name already taken"
// @Router /products [put]
func EditProductHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := organisationFromRequest(w, r)
	if !ok {
		return
	}

	var req EditProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.OldName == "" {
		http.Error(w, "oldName is required", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req.Product)
	if len(validationErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	updated, err := catalogSvc.Edit(org, req.OldName, productInput(req.Product))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, catalog.ErrProductExists):
			http.Error(w, "product with new name already exists", http.StatusConflict)
		default:
			log.Printf("edit product failed: %v", err)
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{Product: updated})
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteProductRequest true "Product name"
// @Success 200 {object} MessageResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Not found"
// @Router /products/delete [post]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := organisationFromRequest(w, r)
	if !ok {
		return
	}

	var req DeleteProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.ProductName == "" {
		http.Error(w, "product name is required", http.StatusBadRequest)
		return
	}

	if err := catalogSvc.Delete(org, req.ProductName); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("delete product failed: %v", err)
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}
