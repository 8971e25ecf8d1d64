// internal/domain/sales.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a sales customer
type Customer struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SalesOrderItem is a single line of a sales order
type SalesOrderItem struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"product"`
	ProductSKU         string          `json:"product_sku"`
	ProductName        string          `json:"product_name"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	LineTotal          decimal.Decimal `json:"line_total"`
}

// SalesOrder represents a customer order with its line items
type SalesOrder struct {
	ID                 int64            `json:"id"`
	OrderNumber        string           `json:"order_number"`
	CustomerID         int64            `json:"customer"`
	CustomerName       string           `json:"customer_name"`
	OrderDate          string           `json:"order_date"`
	ExpectedDelivery   string           `json:"expected_delivery_date"`
	Status             OrderStatus      `json:"status"`
	StatusDisplay      string           `json:"status_display"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal  `json:"tax_percentage"`
	ShippingCost       decimal.Decimal  `json:"shipping_cost"`
	DownPaymentAmount  decimal.Decimal  `json:"down_payment_amount"`
	Subtotal           decimal.Decimal  `json:"subtotal"`
	TotalAmount        decimal.Decimal  `json:"total_amount"`
	Notes              string           `json:"notes"`
	Items              []SalesOrderItem `json:"items"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// Invoice represents a billing document issued against a sales order
type Invoice struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	SalesOrderID  int64           `json:"sales_order"`
	CustomerID    int64           `json:"customer"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	Status        DocumentStatus  `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DownPayment is a customer prepayment applied against a future invoice
type DownPayment struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	CustomerID    int64           `json:"customer"`
	CustomerName  string          `json:"customer_name"`
	SalesOrderID  int64           `json:"sales_order"`
	Amount        decimal.Decimal `json:"amount"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	Status        DocumentStatus  `json:"status"`
	PaymentDate   string          `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SalesReturnItem is a returned line of a delivered sales order
type SalesReturnItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
}

// SalesReturn represents goods returned by a customer
type SalesReturn struct {
	ID           int64             `json:"id"`
	ReturnNumber string            `json:"return_number"`
	SalesOrderID int64             `json:"sales_order"`
	CustomerID   int64             `json:"customer"`
	ReturnDate   string            `json:"return_date"`
	Status       DocumentStatus    `json:"status"`
	Items        []SalesReturnItem `json:"items"`
	CreatedAt    time.Time         `json:"created_at"`
}
