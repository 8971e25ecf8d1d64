// internal/domain/manufacturing.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMComponent is a component product and the quantity needed per unit of output
type BOMComponent struct {
	ID           int64           `json:"id"`
	ComponentID  int64           `json:"component"`
	ComponentSKU string          `json:"component_sku"`
	Name         string          `json:"component_name"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// BOM is the bill of materials for a manufactured product
type BOM struct {
	ID          int64          `json:"id"`
	Code        string         `json:"code"`
	ProductID   int64          `json:"product"`
	ProductSKU  string         `json:"product_sku"`
	ProductName string         `json:"product_name"`
	Components  []BOMComponent `json:"components"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AssemblyOrder is a manufacturing order that consumes BOM components and
// produces the BOM's output product when completed.
type AssemblyOrder struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	BOMID         int64           `json:"bom"`
	ProductID     int64           `json:"product"`
	ProductSKU    string          `json:"product_sku"`
	ProductName   string          `json:"product_name"`
	LocationID    int64           `json:"location"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        AssemblyStatus  `json:"status"`
	StatusDisplay string          `json:"status_display"`
	PlannedDate   string          `json:"planned_date"`
	CompletedDate string          `json:"completed_date"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
