// internal/repository/inputs.go
//
// Request payloads for every mutating endpoint. The backend contract is
// otherwise implicit, so each write carries an explicit schema instead of an
// ad hoc map.
package repository

import "github.com/shopspring/decimal"

type ProductInput struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Color          string          `json:"color,omitempty"`
	Size           string          `json:"size,omitempty"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	IsPurchasable  bool            `json:"is_purchasable"`
	IsManufactured bool            `json:"is_manufactured"`
}

type StockMovementInput struct {
	ProductID       int64           `json:"product"`
	MovementType    string          `json:"movement_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	LocationID      int64           `json:"location"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type StockTransferItemInput struct {
	ProductID int64           `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type StockTransferInput struct {
	SourceLocationID      int64                    `json:"source_location"`
	DestinationLocationID int64                    `json:"destination_location"`
	Notes                 string                   `json:"notes,omitempty"`
	Items                 []StockTransferItemInput `json:"items"`
}

type BOMComponentInput struct {
	ComponentID int64           `json:"component"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type BOMInput struct {
	ProductID  int64               `json:"product"`
	Code       string              `json:"code,omitempty"`
	Components []BOMComponentInput `json:"components"`
}

type AssemblyOrderInput struct {
	BOMID       int64           `json:"bom"`
	LocationID  int64           `json:"location"`
	Quantity    decimal.Decimal `json:"quantity"`
	PlannedDate string          `json:"planned_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

type CustomerInput struct {
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type SupplierInput struct {
	Code          string `json:"code,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
}

type OrderItemInput struct {
	ProductID          int64           `json:"product"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

type SalesOrderInput struct {
	CustomerID         int64            `json:"customer"`
	OrderDate          string           `json:"order_date"`
	ExpectedDelivery   string           `json:"expected_delivery_date,omitempty"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal  `json:"tax_percentage"`
	ShippingCost       decimal.Decimal  `json:"shipping_cost"`
	Notes              string           `json:"notes,omitempty"`
	Items              []OrderItemInput `json:"items"`
}

type PurchaseOrderInput struct {
	SupplierID         int64            `json:"supplier"`
	OrderDate          string           `json:"order_date"`
	ExpectedDelivery   string           `json:"expected_delivery_date,omitempty"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal  `json:"tax_percentage"`
	ShippingCost       decimal.Decimal  `json:"shipping_cost"`
	Notes              string           `json:"notes,omitempty"`
	Items              []OrderItemInput `json:"items"`
}

type DownPaymentInput struct {
	CustomerID   int64           `json:"customer"`
	SalesOrderID int64           `json:"sales_order"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  string          `json:"payment_date"`
}

type SalesReturnItemInput struct {
	ProductID int64           `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
}

type SalesReturnInput struct {
	SalesOrderID int64                  `json:"sales_order"`
	ReturnDate   string                 `json:"return_date"`
	Items        []SalesReturnItemInput `json:"items"`
}

type SupplierPaymentInput struct {
	BillID      int64           `json:"bill"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Method      string          `json:"method,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

type ConsignmentReceiptItemInput struct {
	ProductID int64           `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type ConsignmentReceiptInput struct {
	SupplierID  int64                         `json:"supplier"`
	LocationID  int64                         `json:"location"`
	ReceiptDate string                        `json:"receipt_date"`
	Items       []ConsignmentReceiptItemInput `json:"items"`
}
