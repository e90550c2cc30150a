package handlers

import "strings"

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Product name is required"})
	}
	if p.Price == nil {
		errs = append(errs, ValidationError{Field: "Price", Description: "Sell price is required"})
	}
	return errs
}

func validateTransaction(t TransactionRequest) []ValidationError {
	errs := []ValidationError{}
	if t.Timestamp == nil {
		errs = append(errs, ValidationError{Field: "Timestamp", Description: "Transaction timestamp is required"})
	}
	if t.Products == nil {
		errs = append(errs, ValidationError{Field: "Products", Description: "Transaction products are required"})
	}
	return errs
}
