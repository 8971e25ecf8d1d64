// internal/service/purchasing.go
package service

import (
	"context"
	"fmt"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/rs/zerolog/log"
)

// PurchaseOrderView pairs a mutated purchase order with the re-fetched list.
type PurchaseOrderView struct {
	Order  *domain.PurchaseOrder
	Orders client.Page[domain.PurchaseOrder]
}

type PurchaseOrderService struct {
	repo repository.PurchasingRepository
}

func NewPurchaseOrderService(repo repository.PurchasingRepository) *PurchaseOrderService {
	return &PurchaseOrderService{repo: repo}
}

// ValidatePurchaseOrderInput rejects obviously malformed orders before they
// hit the backend.
func ValidatePurchaseOrderInput(in repository.PurchaseOrderInput) error {
	if in.SupplierID == 0 {
		return fmt.Errorf("supplier is required")
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

func (s *PurchaseOrderService) refresh(ctx context.Context, order *domain.PurchaseOrder) (PurchaseOrderView, error) {
	orders, err := s.repo.ListPurchaseOrders(ctx, repository.ListOptions{})
	if err != nil {
		return PurchaseOrderView{}, fmt.Errorf("refresh purchase orders: %w", err)
	}
	return PurchaseOrderView{Order: order, Orders: orders}, nil
}

func (s *PurchaseOrderService) Create(ctx context.Context, in repository.PurchaseOrderInput) (PurchaseOrderView, error) {
	if err := ValidatePurchaseOrderInput(in); err != nil {
		return PurchaseOrderView{}, err
	}
	order, err := s.repo.CreatePurchaseOrder(ctx, in)
	if err != nil {
		return PurchaseOrderView{}, err
	}
	log.Info().Str("order", order.OrderNumber).Msg("purchase order created")
	return s.refresh(ctx, order)
}

func (s *PurchaseOrderService) transition(ctx context.Context, name string, mutate func(context.Context, int64) (*domain.PurchaseOrder, error), id int64) (PurchaseOrderView, error) {
	order, err := mutate(ctx, id)
	if err != nil {
		return PurchaseOrderView{}, err
	}
	log.Info().Str("order", order.OrderNumber).Str("action", name).Str("status", string(order.Status)).Msg("purchase order updated")
	return s.refresh(ctx, order)
}

func (s *PurchaseOrderService) Submit(ctx context.Context, id int64) (PurchaseOrderView, error) {
	return s.transition(ctx, "submit", s.repo.SubmitPurchaseOrder, id)
}

func (s *PurchaseOrderService) Approve(ctx context.Context, id int64) (PurchaseOrderView, error) {
	return s.transition(ctx, "approve", s.repo.ApprovePurchaseOrder, id)
}

func (s *PurchaseOrderService) Receive(ctx context.Context, id int64) (PurchaseOrderView, error) {
	return s.transition(ctx, "receive", s.repo.ReceivePurchaseOrder, id)
}

// PayBill posts a supplier payment and returns the re-fetched bill list so
// callers see the updated balances.
func (s *PurchaseOrderService) PayBill(ctx context.Context, in repository.SupplierPaymentInput) (client.Page[domain.Bill], error) {
	if !in.Amount.IsPositive() {
		return client.Page[domain.Bill]{}, fmt.Errorf("amount must be positive")
	}
	if _, err := s.repo.CreateSupplierPayment(ctx, in); err != nil {
		return client.Page[domain.Bill]{}, err
	}
	return s.repo.ListBills(ctx, repository.ListOptions{})
}
