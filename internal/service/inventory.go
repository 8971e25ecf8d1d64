// internal/service/inventory.go
package service

import (
	"context"
	"fmt"

	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type InventoryService struct {
	repo repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// Adjust records a signed stock adjustment at a location.
func (s *InventoryService) Adjust(ctx context.Context, productID, locationID int64, qty decimal.Decimal, notes string) (*domain.StockMovement, error) {
	if qty.IsZero() {
		return nil, fmt.Errorf("quantity must be non-zero")
	}
	return s.repo.CreateStockMovement(ctx, repository.StockMovementInput{
		ProductID:    productID,
		LocationID:   locationID,
		MovementType: string(domain.MovementAdjustment),
		Quantity:     qty,
		Notes:        notes,
	})
}

// ReportDamage writes off damaged stock. Quantity is how many units were
// damaged; the movement itself is negative.
func (s *InventoryService) ReportDamage(ctx context.Context, productID, locationID int64, qty decimal.Decimal, notes string) (*domain.StockMovement, error) {
	if !qty.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive")
	}
	return s.repo.CreateStockMovement(ctx, repository.StockMovementInput{
		ProductID:    productID,
		LocationID:   locationID,
		MovementType: string(domain.MovementDamage),
		Quantity:     qty.Neg(),
		Notes:        notes,
	})
}

// ReceiveStock books goods into a location outside the purchase order flow,
// e.g. a manual receipt against a paper document.
func (s *InventoryService) ReceiveStock(ctx context.Context, productID, locationID int64, qty decimal.Decimal, reference string) (*domain.StockMovement, error) {
	if !qty.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive")
	}
	return s.repo.CreateStockMovement(ctx, repository.StockMovementInput{
		ProductID:       productID,
		LocationID:      locationID,
		MovementType:    string(domain.MovementReceipt),
		Quantity:        qty,
		ReferenceNumber: reference,
	})
}

// ComponentShortage names a BOM component with less on hand than an assembly
// run needs.
type ComponentShortage struct {
	ComponentID int64
	SKU         string
	Name        string
	Required    decimal.Decimal
	OnHand      decimal.Decimal
}

// CheckAssemblyAvailability reports which components fall short of what a run
// of qty units needs at the given location. An empty slice means the run can
// proceed.
func (s *InventoryService) CheckAssemblyAvailability(ctx context.Context, bomID, locationID int64, qty decimal.Decimal) ([]ComponentShortage, error) {
	bom, err := s.repo.GetBOM(ctx, bomID)
	if err != nil {
		return nil, err
	}

	stock, err := s.repo.ListStock(ctx, repository.ListOptions{PageSize: 500})
	if err != nil {
		return nil, err
	}
	onHand := make(map[int64]decimal.Decimal, len(stock.Results))
	for _, rec := range stock.Results {
		if rec.LocationID == locationID {
			onHand[rec.ProductID] = rec.QuantityOnHand
		}
	}

	var shortages []ComponentShortage
	for _, comp := range bom.Components {
		required := comp.Quantity.Mul(qty)
		if onHand[comp.ComponentID].LessThan(required) {
			shortages = append(shortages, ComponentShortage{
				ComponentID: comp.ComponentID,
				SKU:         comp.ComponentSKU,
				Name:        comp.Name,
				Required:    required,
				OnHand:      onHand[comp.ComponentID],
			})
		}
	}
	return shortages, nil
}

// CompleteAssembly verifies component availability and then completes the
// order. The shortage check runs client-side so the caller gets a full list
// instead of the backend's first failure.
func (s *InventoryService) CompleteAssembly(ctx context.Context, id int64) (*domain.AssemblyOrder, error) {
	asm, err := s.repo.GetAssemblyOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	shortages, err := s.CheckAssemblyAvailability(ctx, asm.BOMID, asm.LocationID, asm.Quantity)
	if err != nil {
		return nil, err
	}
	if len(shortages) > 0 {
		return nil, fmt.Errorf("%d component(s) short, first: %s needs %s but has %s",
			len(shortages), shortages[0].SKU, shortages[0].Required, shortages[0].OnHand)
	}

	completed, err := s.repo.TransitionAssemblyOrder(ctx, id, "complete")
	if err != nil {
		return nil, err
	}
	log.Info().Str("order", completed.OrderNumber).Msg("assembly order completed")
	return completed, nil
}
