package handlers

import "github.com/poskit/cashier/internal/models"

// ProductRequest is a client-supplied product. Any id is ignored: the product
// name is the sole identity.
type ProductRequest struct {
	ID       string              `json:"id,omitempty"`
	Name     string              `json:"name"`
	Barcode  string              `json:"barcode"`
	Price    *float64            `json:"price"`
	BuyPrice float64             `json:"buyPrice"`
	Stock    []models.StockBatch `json:"stock"`
}

type AddProductRequest struct {
	Product ProductRequest `json:"product"`
}

type EditProductRequest struct {
	OldName string         `json:"oldName"`
	Product ProductRequest `json:"product"`
}

type DeleteProductRequest struct {
	ProductName string `json:"productName"`
}

type ProductResponse struct {
	Product models.ProductView `json:"product"`
}

type ProductsResponse struct {
	Products []models.ProductView `json:"products"`
}

// TransactionRequest is a client-supplied sale. Any id is ignored: the
// timestamp is the sole identity.
type TransactionRequest struct {
	ID            string            `json:"id,omitempty"`
	Timestamp     *int64            `json:"timestamp"`
	Products      []models.SaleItem `json:"products"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
}

type SaveSaleRequest struct {
	Transaction TransactionRequest `json:"transaction"`
}

type SalesResponse struct {
	Sales []models.TransactionView `json:"sales"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}
