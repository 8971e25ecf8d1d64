// internal/repository/rest/inventory.go
package rest

import (
	"context"
	"fmt"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
)

type Inventory struct {
	api *client.Client
}

func NewInventory(api *client.Client) *Inventory {
	return &Inventory{api: api}
}

var _ repository.InventoryRepository = (*Inventory)(nil)

func (r *Inventory) ListProducts(ctx context.Context, opts repository.ListOptions) (client.Page[domain.Product], error) {
	return list[domain.Product](ctx, r.api, "/inventory/products/", opts)
}

func (r *Inventory) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return getOne[domain.Product](ctx, r.api, fmt.Sprintf("/inventory/products/%d/", id))
}

func (r *Inventory) CreateProduct(ctx context.Context, in repository.ProductInput) (*domain.Product, error) {
	return create[domain.Product](ctx, r.api, "/inventory/products/", in)
}

func (r *Inventory) UpdateProduct(ctx context.Context, id int64, in repository.ProductInput) (*domain.Product, error) {
	return update[domain.Product](ctx, r.api, fmt.Sprintf("/inventory/products/%d/", id), in)
}

func (r *Inventory) DeleteProduct(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/inventory/products/%d/", id))
}

func (r *Inventory) ListLocations(ctx context.Context, opts repository.ListOptions) (client.Page[domain.Location], error) {
	return list[domain.Location](ctx, r.api, "/inventory/locations/", opts)
}

func (r *Inventory) ListStock(ctx context.Context, opts repository.ListOptions) (client.Page[domain.StockRecord], error) {
	return list[domain.StockRecord](ctx, r.api, "/inventory/stock/", opts)
}

func (r *Inventory) ListStockMovements(ctx context.Context, opts repository.ListOptions) (client.Page[domain.StockMovement], error) {
	return list[domain.StockMovement](ctx, r.api, "/inventory/stock-movements/", opts)
}

func (r *Inventory) CreateStockMovement(ctx context.Context, in repository.StockMovementInput) (*domain.StockMovement, error) {
	return create[domain.StockMovement](ctx, r.api, "/inventory/stock-movements/", in)
}

func (r *Inventory) ListStockTransfers(ctx context.Context, opts repository.ListOptions) (client.Page[domain.StockTransfer], error) {
	return list[domain.StockTransfer](ctx, r.api, "/inventory/stock-transfers/", opts)
}

func (r *Inventory) CreateStockTransfer(ctx context.Context, in repository.StockTransferInput) (*domain.StockTransfer, error) {
	return create[domain.StockTransfer](ctx, r.api, "/inventory/stock-transfers/", in)
}

func (r *Inventory) CompleteStockTransfer(ctx context.Context, id int64) (*domain.StockTransfer, error) {
	return action[domain.StockTransfer](ctx, r.api, fmt.Sprintf("/inventory/stock-transfers/%d/complete/", id))
}

func (r *Inventory) ListBOMs(ctx context.Context, opts repository.ListOptions) (client.Page[domain.BOM], error) {
	return list[domain.BOM](ctx, r.api, "/inventory/boms/", opts)
}

func (r *Inventory) GetBOM(ctx context.Context, id int64) (*domain.BOM, error) {
	return getOne[domain.BOM](ctx, r.api, fmt.Sprintf("/inventory/boms/%d/", id))
}

func (r *Inventory) CreateBOM(ctx context.Context, in repository.BOMInput) (*domain.BOM, error) {
	return create[domain.BOM](ctx, r.api, "/inventory/boms/", in)
}

func (r *Inventory) ListAssemblyOrders(ctx context.Context, opts repository.ListOptions) (client.Page[domain.AssemblyOrder], error) {
	return list[domain.AssemblyOrder](ctx, r.api, "/inventory/assembly-orders/", opts)
}

func (r *Inventory) GetAssemblyOrder(ctx context.Context, id int64) (*domain.AssemblyOrder, error) {
	return getOne[domain.AssemblyOrder](ctx, r.api, fmt.Sprintf("/inventory/assembly-orders/%d/", id))
}

func (r *Inventory) CreateAssemblyOrder(ctx context.Context, in repository.AssemblyOrderInput) (*domain.AssemblyOrder, error) {
	return create[domain.AssemblyOrder](ctx, r.api, "/inventory/assembly-orders/", in)
}

func (r *Inventory) TransitionAssemblyOrder(ctx context.Context, id int64, act string) (*domain.AssemblyOrder, error) {
	return action[domain.AssemblyOrder](ctx, r.api, fmt.Sprintf("/inventory/assembly-orders/%d/%s/", id, act))
}
