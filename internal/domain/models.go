package domain

import "time"

// Product is one sellable item. The JSON tags match the persisted catalog
// entry layout, so a Product round-trips through the key-value store as-is.
// Fields are fixed at creation except Stock, which only the checkout commit
// decrements.
type Product struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CostPrice int64  `json:"costPrice"`
	Price     int64  `json:"price"`
	Stock     int    `json:"stock"`
}

// CartLine is one product plus quantity inside an in-memory checkout session.
// Never persisted; the transaction item snapshot is taken from it at commit.
type CartLine struct {
	Product  Product
	Quantity int
}

// TransactionItem is a value snapshot of a cart line as it existed at commit
// time. Price and CostPrice are copied from the product so later catalog
// edits or deletions never change recorded history.
type TransactionItem struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	CostPrice int64  `json:"costPrice"`
	Quantity  int    `json:"quantity"`
}

// Transaction is an immutable ledger record. Total is computed once at commit
// and stored, never recomputed from Items on read.
type Transaction struct {
	ID    int64             `json:"id"`
	Date  time.Time         `json:"date"`
	Total int64             `json:"total"`
	Items []TransactionItem `json:"items"`
}

type ProductCreateRequest struct {
	Name      string `json:"name"`
	CostPrice int64  `json:"cost_price"`
	Price     int64  `json:"price"`
	Stock     int    `json:"stock"`
}

type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	PaymentAmount int64          `json:"payment_amount"`
}

type CheckoutResponse struct {
	Transaction Transaction `json:"transaction"`
	Change      int64       `json:"change"`
}

type StockLevel struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	LowStock  bool   `json:"low_stock"`
}

type SalesReport struct {
	TotalSales   int64        `json:"total_sales"`
	TotalProfit  int64        `json:"total_profit"`
	Transactions int          `json:"transactions"`
	StockLevels  []StockLevel `json:"stock_levels"`
}

type ReceiptResponse struct {
	TransactionID int64  `json:"transaction_id"`
	HTML          string `json:"html"`
	EscposBase64  string `json:"escpos_base64"`
	PreviewText   string `json:"preview_text"`
	FileName      string `json:"file_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

// Actor is the authenticated operator attached to a request context.
type Actor struct {
	Username string
}
