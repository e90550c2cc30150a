package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/poskit/cashier/internal/models"
)

// SaveSaleHandler godoc
// @Summary Record a sales transaction
// @Description Appends the transaction to the ledger and increments sold counters for known products
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveSaleRequest true "Transaction to record"
// @Success 201 {object} MessageResponse
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /sales [post]
func SaveSaleHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := organisationFromRequest(w, r)
	if !ok {
		return
	}

	var req SaveSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateTransaction(req.Transaction)
	if len(validationErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	input := models.TransactionInput{
		Timestamp:     req.Transaction.Timestamp,
		Products:      req.Transaction.Products,
		Total:         req.Transaction.Total,
		PaymentMethod: req.Transaction.PaymentMethod,
	}
	if err := salesSvc.Record(org, input); err != nil {
		log.Printf("record sale failed: %v", err)
		http.Error(w, "could not save transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Transaction saved successfully"})
}

// GetSalesHandler godoc
// @Summary List sales transactions, most recent first
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SalesResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := organisationFromRequest(w, r)
	if !ok {
		return
	}

	transactions, err := salesSvc.List(org)
	if err != nil {
		log.Printf("list sales failed: %v", err)
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, SalesResponse{Sales: transactions})
}
