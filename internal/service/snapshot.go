// internal/service/snapshot.go
package service

import (
	"context"
	"time"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a point-in-time read of the dashboards' working set.
type Snapshot struct {
	Products       client.Page[domain.Product]
	Stock          client.Page[domain.StockRecord]
	SalesOrders    client.Page[domain.SalesOrder]
	PurchaseOrders client.Page[domain.PurchaseOrder]
	Bills          client.Page[domain.Bill]
	FetchedAt      time.Time
}

// SnapshotService loads the working set with one concurrent fan-out. The
// first failing fetch cancels the rest.
type SnapshotService struct {
	inventory  repository.InventoryRepository
	sales      repository.SalesRepository
	purchasing repository.PurchasingRepository
}

func NewSnapshotService(inventory repository.InventoryRepository, sales repository.SalesRepository, purchasing repository.PurchasingRepository) *SnapshotService {
	return &SnapshotService{inventory: inventory, sales: sales, purchasing: purchasing}
}

func (s *SnapshotService) Load(ctx context.Context, opts repository.ListOptions) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Products, err = s.inventory.ListProducts(ctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Stock, err = s.inventory.ListStock(ctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		snap.SalesOrders, err = s.sales.ListSalesOrders(ctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		snap.PurchaseOrders, err = s.purchasing.ListPurchaseOrders(ctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Bills, err = s.purchasing.ListBills(ctx, opts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}

// LowStock filters the snapshot's stock records down to those at or below
// their reorder point.
func (s *Snapshot) LowStock() []domain.StockRecord {
	var low []domain.StockRecord
	for _, rec := range s.Stock.Results {
		if rec.ReorderPoint.IsPositive() && rec.QuantityOnHand.LessThanOrEqual(rec.ReorderPoint) {
			low = append(low, rec)
		}
	}
	return low
}
