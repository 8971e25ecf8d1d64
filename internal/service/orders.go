// Package service wraps the repositories with the workflows the CLI drives:
// order lifecycles that re-read server state after every mutation, stock
// availability checks, and concurrent snapshot loads.
package service

import (
	"context"
	"fmt"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/rs/zerolog/log"
)

// SalesOrderView pairs the order a mutation touched with the freshly
// re-fetched order list. Mutations never patch local state; the list always
// comes from the server after the write.
type SalesOrderView struct {
	Order  *domain.SalesOrder
	Orders client.Page[domain.SalesOrder]
}

type SalesOrderService struct {
	repo repository.SalesRepository
}

func NewSalesOrderService(repo repository.SalesRepository) *SalesOrderService {
	return &SalesOrderService{repo: repo}
}

// ValidateSalesOrderInput rejects obviously malformed orders before they hit
// the backend.
func ValidateSalesOrderInput(in repository.SalesOrderInput) error {
	if in.CustomerID == 0 {
		return fmt.Errorf("customer is required")
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i, item := range in.Items {
		if item.ProductID == 0 {
			return fmt.Errorf("item %d: product is required", i+1)
		}
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("item %d: quantity must be positive", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("item %d: unit price cannot be negative", i+1)
		}
	}
	return nil
}

// PreviewSalesOrderTotals computes the totals breakdown locally so callers
// can show the amounts before the order exists.
func PreviewSalesOrderTotals(in repository.SalesOrderInput) domain.OrderTotals {
	totals := domain.TotalsInput{
		DiscountPercentage: in.DiscountPercentage,
		TaxPercentage:      in.TaxPercentage,
		ShippingCost:       in.ShippingCost,
	}
	for _, item := range in.Items {
		totals.Lines = append(totals.Lines, domain.TotalLine{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
		})
	}
	return domain.ComputeTotals(totals)
}

func (s *SalesOrderService) refresh(ctx context.Context, order *domain.SalesOrder) (SalesOrderView, error) {
	orders, err := s.repo.ListSalesOrders(ctx, repository.ListOptions{})
	if err != nil {
		return SalesOrderView{}, fmt.Errorf("refresh sales orders: %w", err)
	}
	return SalesOrderView{Order: order, Orders: orders}, nil
}

// Create validates the draft, posts it, and returns the order together with
// the re-fetched list.
func (s *SalesOrderService) Create(ctx context.Context, in repository.SalesOrderInput) (SalesOrderView, error) {
	if err := ValidateSalesOrderInput(in); err != nil {
		return SalesOrderView{}, err
	}
	order, err := s.repo.CreateSalesOrder(ctx, in)
	if err != nil {
		return SalesOrderView{}, err
	}
	log.Info().Str("order", order.OrderNumber).Msg("sales order created")
	return s.refresh(ctx, order)
}

func (s *SalesOrderService) transition(ctx context.Context, name string, mutate func(context.Context, int64) (*domain.SalesOrder, error), id int64) (SalesOrderView, error) {
	order, err := mutate(ctx, id)
	if err != nil {
		return SalesOrderView{}, err
	}
	log.Info().Str("order", order.OrderNumber).Str("action", name).Str("status", string(order.Status)).Msg("sales order updated")
	return s.refresh(ctx, order)
}

func (s *SalesOrderService) Confirm(ctx context.Context, id int64) (SalesOrderView, error) {
	return s.transition(ctx, "confirm", s.repo.ConfirmSalesOrder, id)
}

func (s *SalesOrderService) Approve(ctx context.Context, id int64) (SalesOrderView, error) {
	return s.transition(ctx, "approve", s.repo.ApproveSalesOrder, id)
}

func (s *SalesOrderService) Deliver(ctx context.Context, id int64) (SalesOrderView, error) {
	return s.transition(ctx, "deliver", s.repo.CreateDeliveryOrder, id)
}

func (s *SalesOrderService) Cancel(ctx context.Context, id int64) (SalesOrderView, error) {
	return s.transition(ctx, "cancel", s.repo.CancelSalesOrder, id)
}

// RecordDownPayment posts the prepayment and returns the re-read order, whose
// total already reflects it.
func (s *SalesOrderService) RecordDownPayment(ctx context.Context, in repository.DownPaymentInput) (*domain.SalesOrder, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if _, err := s.repo.CreateDownPayment(ctx, in); err != nil {
		return nil, err
	}
	return s.repo.GetSalesOrder(ctx, in.SalesOrderID)
}
