// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an authenticated backend user
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	RoleDisplay string `json:"role_display"`
	IsActive    bool   `json:"is_active"`
}

// FullName returns the display name, falling back to the username.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Product represents a sellable or manufacturable item
type Product struct {
	ID             int64           `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Color          string          `json:"color"`
	Size           string          `json:"size"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	IsPurchasable  bool            `json:"is_purchasable"`
	IsManufactured bool            `json:"is_manufactured"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Location represents a warehouse or store location
type Location struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

// StockRecord represents the on-hand quantity of a product at a location
type StockRecord struct {
	ID             int64           `json:"id"`
	ProductID      int64           `json:"product"`
	ProductSKU     string          `json:"product_sku"`
	ProductName    string          `json:"product_name"`
	LocationID     int64           `json:"location"`
	LocationName   string          `json:"location_name"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockMovement represents a signed stock quantity change at a location
type StockMovement struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product"`
	ProductSKU      string          `json:"product_sku"`
	MovementType    MovementType    `json:"movement_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	LocationID      int64           `json:"location"`
	LocationName    string          `json:"location_name"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// StockTransferItem is a single line of a stock transfer
type StockTransferItem struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product"`
	ProductSKU string          `json:"product_sku"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// StockTransfer moves stock between two locations
type StockTransfer struct {
	ID                    int64               `json:"id"`
	ReferenceNumber       string              `json:"reference_number"`
	SourceLocationID      int64               `json:"source_location"`
	SourceLocationName    string              `json:"source_location_name"`
	DestinationLocationID int64               `json:"destination_location"`
	DestinationLocation   string              `json:"destination_location_name"`
	Status                TransferStatus      `json:"status"`
	Notes                 string              `json:"notes"`
	Items                 []StockTransferItem `json:"items"`
	CreatedAt             time.Time           `json:"created_at"`
}
