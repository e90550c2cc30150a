package models

// SaleItem references a product key in the products dataset.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty"`
}

// TransactionRecord is the value stored in a sales dataset. The stringified
// timestamp is the dataset key, so neither id nor timestamp is stored inside
// the value. Records are immutable once written.
type TransactionRecord struct {
	Products      []SaleItem `json:"products"`
	Total         float64    `json:"total,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
}

// TransactionInput is a client-supplied sale. Timestamp is a pointer so a
// missing timestamp can be told apart from zero.
type TransactionInput struct {
	Timestamp     *int64     `json:"timestamp"`
	Products      []SaleItem `json:"products"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
}

// TransactionView is a ledger entry as returned to clients, with id and
// timestamp reconstructed from the dataset key.
type TransactionView struct {
	ID            string     `json:"id"`
	Timestamp     int64      `json:"timestamp"`
	Products      []SaleItem `json:"products"`
	Total         float64    `json:"total,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
}
