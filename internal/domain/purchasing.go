// internal/domain/purchasing.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier represents a purchasing supplier
type Supplier struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	ContactPerson string    `json:"contact_person"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// PurchaseOrderItem is a single line of a purchase order
type PurchaseOrderItem struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"product"`
	ProductSKU         string          `json:"product_sku"`
	ProductName        string          `json:"product_name"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	LineTotal          decimal.Decimal `json:"line_total"`
	ReceivedQuantity   decimal.Decimal `json:"received_quantity"`
}

// PurchaseOrder represents an order placed with a supplier
type PurchaseOrder struct {
	ID                 int64               `json:"id"`
	OrderNumber        string              `json:"order_number"`
	SupplierID         int64               `json:"supplier"`
	SupplierName       string              `json:"supplier_name"`
	OrderDate          string              `json:"order_date"`
	ExpectedDelivery   string              `json:"expected_delivery_date"`
	Status             PurchaseStatus      `json:"status"`
	StatusDisplay      string              `json:"status_display"`
	DiscountPercentage decimal.Decimal     `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal     `json:"tax_percentage"`
	ShippingCost       decimal.Decimal     `json:"shipping_cost"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	Notes              string              `json:"notes"`
	Items              []PurchaseOrderItem `json:"items"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// Bill represents a supplier invoice to be paid
type Bill struct {
	ID              int64           `json:"id"`
	BillNumber      string          `json:"bill_number"`
	PurchaseOrderID int64           `json:"purchase_order"`
	SupplierID      int64           `json:"supplier"`
	SupplierName    string          `json:"supplier_name"`
	BillDate        string          `json:"bill_date"`
	DueDate         string          `json:"due_date"`
	Status          DocumentStatus  `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SupplierPayment records a payment applied to a bill
type SupplierPayment struct {
	ID            int64           `json:"id"`
	PaymentNumber string          `json:"payment_number"`
	BillID        int64           `json:"bill"`
	SupplierID    int64           `json:"supplier"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ConsignmentReceiptItem is a received consignment line
type ConsignmentReceiptItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ConsignmentReceipt records supplier-owned stock received into a location
type ConsignmentReceipt struct {
	ID            int64                    `json:"id"`
	ReceiptNumber string                   `json:"receipt_number"`
	SupplierID    int64                    `json:"supplier"`
	SupplierName  string                   `json:"supplier_name"`
	LocationID    int64                    `json:"location"`
	ReceiptDate   string                   `json:"receipt_date"`
	Status        DocumentStatus           `json:"status"`
	Items         []ConsignmentReceiptItem `json:"items"`
	CreatedAt     time.Time                `json:"created_at"`
}
