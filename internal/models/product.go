package models

// StockBatch is one quantity-bearing lot contributing to a product's total
// stock. All fields except Quantity are optional.
type StockBatch struct {
	Quantity float64 `json:"quantity"`
	BuyPrice float64 `json:"buyPrice,omitempty"`
	Date     string  `json:"date,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// ProductRecord is the value stored in a products dataset. The product name
// is the dataset key and is never duplicated inside the value. Sold is owned
// by the server and only ever changed by the sales ledger.
type ProductRecord struct {
	Barcode  string       `json:"barcode,omitempty"`
	Price    float64      `json:"price"`
	BuyPrice float64      `json:"buyPrice,omitempty"`
	Stock    []StockBatch `json:"stock"`
	Sold     int          `json:"sold"`
}

// ProductInput is a client-supplied product. Price is a pointer so a missing
// price can be told apart from zero.
type ProductInput struct {
	Name     string       `json:"name"`
	Barcode  string       `json:"barcode"`
	Price    *float64     `json:"price"`
	BuyPrice float64      `json:"buyPrice"`
	Stock    []StockBatch `json:"stock"`
}

// ProductView is a product as returned to clients, with the derived
// availableStock field (total batch quantity minus sold).
type ProductView struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Barcode        string       `json:"barcode"`
	Price          float64      `json:"price"`
	BuyPrice       float64      `json:"buyPrice"`
	Sold           int          `json:"sold"`
	Stock          []StockBatch `json:"stock"`
	AvailableStock float64      `json:"availableStock"`
}
