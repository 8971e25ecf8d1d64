// internal/repository/rest/sales.go
package rest

import (
	"context"
	"fmt"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
)

type Sales struct {
	api *client.Client
}

func NewSales(api *client.Client) *Sales {
	return &Sales{api: api}
}

var _ repository.SalesRepository = (*Sales)(nil)

func (r *Sales) ListCustomers(ctx context.Context, opts repository.ListOptions) (client.Page[domain.Customer], error) {
	return list[domain.Customer](ctx, r.api, "/sales/customers/", opts)
}

func (r *Sales) CreateCustomer(ctx context.Context, in repository.CustomerInput) (*domain.Customer, error) {
	return create[domain.Customer](ctx, r.api, "/sales/customers/", in)
}

func (r *Sales) ListSalesOrders(ctx context.Context, opts repository.ListOptions) (client.Page[domain.SalesOrder], error) {
	return list[domain.SalesOrder](ctx, r.api, "/sales/sales-orders/", opts)
}

func (r *Sales) GetSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	return getOne[domain.SalesOrder](ctx, r.api, fmt.Sprintf("/sales/sales-orders/%d/", id))
}

func (r *Sales) CreateSalesOrder(ctx context.Context, in repository.SalesOrderInput) (*domain.SalesOrder, error) {
	return create[domain.SalesOrder](ctx, r.api, "/sales/sales-orders/", in)
}

func (r *Sales) UpdateSalesOrder(ctx context.Context, id int64, in repository.SalesOrderInput) (*domain.SalesOrder, error) {
	return update[domain.SalesOrder](ctx, r.api, fmt.Sprintf("/sales/sales-orders/%d/", id), in)
}

func (r *Sales) ConfirmSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	return action[domain.SalesOrder](ctx, r.api, fmt.Sprintf("/sales/sales-orders/%d/confirm/", id))
}

func (r *Sales) ApproveSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	return action[domain.SalesOrder](ctx, r.api, fmt.Sprintf("/sales/sales-orders/%d/approve/", id))
}

func (r *Sales) CreateDeliveryOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	return action[domain.SalesOrder](ctx, r.api, fmt.Sprintf("/sales/sales-orders/%d/create_delivery_order/", id))
}

func (r *Sales) CancelSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	return action[domain.SalesOrder](ctx, r.api, fmt.Sprintf("/sales/sales-orders/%d/cancel/", id))
}

func (r *Sales) ListInvoices(ctx context.Context, opts repository.ListOptions) (client.Page[domain.Invoice], error) {
	return list[domain.Invoice](ctx, r.api, "/sales/invoices/", opts)
}

func (r *Sales) ListDownPayments(ctx context.Context, opts repository.ListOptions) (client.Page[domain.DownPayment], error) {
	return list[domain.DownPayment](ctx, r.api, "/sales/down-payments/", opts)
}

func (r *Sales) CreateDownPayment(ctx context.Context, in repository.DownPaymentInput) (*domain.DownPayment, error) {
	return create[domain.DownPayment](ctx, r.api, "/sales/down-payments/", in)
}

func (r *Sales) ListSalesReturns(ctx context.Context, opts repository.ListOptions) (client.Page[domain.SalesReturn], error) {
	return list[domain.SalesReturn](ctx, r.api, "/sales/sales-returns/", opts)
}

func (r *Sales) CreateSalesReturn(ctx context.Context, in repository.SalesReturnInput) (*domain.SalesReturn, error) {
	return create[domain.SalesReturn](ctx, r.api, "/sales/sales-returns/", in)
}
