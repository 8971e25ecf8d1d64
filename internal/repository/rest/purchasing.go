// internal/repository/rest/purchasing.go
package rest

import (
	"context"
	"fmt"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
)

type Purchasing struct {
	api *client.Client
}

func NewPurchasing(api *client.Client) *Purchasing {
	return &Purchasing{api: api}
}

var _ repository.PurchasingRepository = (*Purchasing)(nil)

func (r *Purchasing) ListSuppliers(ctx context.Context, opts repository.ListOptions) (client.Page[domain.Supplier], error) {
	return list[domain.Supplier](ctx, r.api, "/purchasing/suppliers/", opts)
}

func (r *Purchasing) CreateSupplier(ctx context.Context, in repository.SupplierInput) (*domain.Supplier, error) {
	return create[domain.Supplier](ctx, r.api, "/purchasing/suppliers/", in)
}

func (r *Purchasing) ListPurchaseOrders(ctx context.Context, opts repository.ListOptions) (client.Page[domain.PurchaseOrder], error) {
	return list[domain.PurchaseOrder](ctx, r.api, "/purchasing/purchase-orders/", opts)
}

func (r *Purchasing) GetPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	return getOne[domain.PurchaseOrder](ctx, r.api, fmt.Sprintf("/purchasing/purchase-orders/%d/", id))
}

func (r *Purchasing) CreatePurchaseOrder(ctx context.Context, in repository.PurchaseOrderInput) (*domain.PurchaseOrder, error) {
	return create[domain.PurchaseOrder](ctx, r.api, "/purchasing/purchase-orders/", in)
}

func (r *Purchasing) SubmitPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	return action[domain.PurchaseOrder](ctx, r.api, fmt.Sprintf("/purchasing/purchase-orders/%d/submit/", id))
}

func (r *Purchasing) ApprovePurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	return action[domain.PurchaseOrder](ctx, r.api, fmt.Sprintf("/purchasing/purchase-orders/%d/approve/", id))
}

func (r *Purchasing) ReceivePurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	return action[domain.PurchaseOrder](ctx, r.api, fmt.Sprintf("/purchasing/purchase-orders/%d/receive/", id))
}

func (r *Purchasing) ListBills(ctx context.Context, opts repository.ListOptions) (client.Page[domain.Bill], error) {
	return list[domain.Bill](ctx, r.api, "/purchasing/bills/", opts)
}

func (r *Purchasing) ListSupplierPayments(ctx context.Context, opts repository.ListOptions) (client.Page[domain.SupplierPayment], error) {
	return list[domain.SupplierPayment](ctx, r.api, "/purchasing/supplier-payments/", opts)
}

func (r *Purchasing) CreateSupplierPayment(ctx context.Context, in repository.SupplierPaymentInput) (*domain.SupplierPayment, error) {
	return create[domain.SupplierPayment](ctx, r.api, "/purchasing/supplier-payments/", in)
}

func (r *Purchasing) ListConsignmentReceipts(ctx context.Context, opts repository.ListOptions) (client.Page[domain.ConsignmentReceipt], error) {
	return list[domain.ConsignmentReceipt](ctx, r.api, "/purchasing/consignment-receipts/", opts)
}

func (r *Purchasing) CreateConsignmentReceipt(ctx context.Context, in repository.ConsignmentReceiptInput) (*domain.ConsignmentReceipt, error) {
	return create[domain.ConsignmentReceipt](ctx, r.api, "/purchasing/consignment-receipts/", in)
}
