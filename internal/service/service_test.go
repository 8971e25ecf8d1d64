// internal/service/service_test.go
package service

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/config"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository/rest"
	"github.com/acippicacipa/orchid-erp-sub001/internal/sandbox"
	"github.com/acippicacipa/orchid-erp-sub001/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newBackend(t *testing.T) (*sandbox.Sandbox, *client.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sb := sandbox.New()
	ts := httptest.NewServer(sb.Router(nil))
	t.Cleanup(ts.Close)

	api := client.New(config.APIConfig{BaseURL: ts.URL, TimeoutSeconds: 10}, session.NewMemoryStore())
	if _, err := api.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return sb, api
}

func TestSalesOrderCreateRefetchesList(t *testing.T) {
	ctx := context.Background()
	sb, api := newBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	shirt := sb.AddProduct(domain.Product{SKU: "SHIRT-001", Name: "Kemeja Batik", SellingPrice: dec("150000")})
	sb.SetStock(shirt.ID, loc.ID, dec("100"))
	customer := sb.AddCustomer("Toko Melati")

	svc := NewSalesOrderService(rest.NewSales(api))
	in := repository.SalesOrderInput{
		CustomerID:    customer.ID,
		OrderDate:     "2026-08-01",
		TaxPercentage: dec("11"),
		Items: []repository.OrderItemInput{
			{ProductID: shirt.ID, Quantity: dec("2"), UnitPrice: dec("150000")},
		},
	}

	preview := PreviewSalesOrderTotals(in)

	view, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Order == nil {
		t.Fatal("Create returned no order")
	}
	if view.Orders.Count != 1 {
		t.Fatalf("refetched list count = %d, want 1", view.Orders.Count)
	}
	if !view.Order.TotalAmount.Equal(preview.Total) {
		t.Fatalf("backend total %s differs from preview %s", view.Order.TotalAmount, preview.Total)
	}

	confirmed, err := svc.Confirm(ctx, view.Order.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Orders.Results[0].Status != domain.OrderConfirmed {
		t.Fatalf("refetched status = %s, want %s", confirmed.Orders.Results[0].Status, domain.OrderConfirmed)
	}
}

func TestSalesOrderInputValidation(t *testing.T) {
	cases := []struct {
		name string
		in   repository.SalesOrderInput
	}{
		{"missing customer", repository.SalesOrderInput{
			Items: []repository.OrderItemInput{{ProductID: 1, Quantity: dec("1")}},
		}},
		{"no items", repository.SalesOrderInput{CustomerID: 1}},
		{"zero quantity", repository.SalesOrderInput{
			CustomerID: 1,
			Items:      []repository.OrderItemInput{{ProductID: 1, Quantity: dec("0")}},
		}},
		{"negative price", repository.SalesOrderInput{
			CustomerID: 1,
			Items:      []repository.OrderItemInput{{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("-1")}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateSalesOrderInput(tc.in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRecordDownPaymentReturnsUpdatedOrder(t *testing.T) {
	ctx := context.Background()
	sb, api := newBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	bag := sb.AddProduct(domain.Product{SKU: "BAG-001", Name: "Tas Kulit", SellingPrice: dec("1000000")})
	sb.SetStock(bag.ID, loc.ID, dec("5"))
	customer := sb.AddCustomer("CV Anggrek")

	svc := NewSalesOrderService(rest.NewSales(api))
	view, err := svc.Create(ctx, repository.SalesOrderInput{
		CustomerID: customer.ID,
		OrderDate:  "2026-08-01",
		Items: []repository.OrderItemInput{
			{ProductID: bag.ID, Quantity: dec("1"), UnitPrice: dec("1000000")},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	order, err := svc.RecordDownPayment(ctx, repository.DownPaymentInput{
		CustomerID:   customer.ID,
		SalesOrderID: view.Order.ID,
		Amount:       dec("250000"),
		PaymentDate:  "2026-08-02",
	})
	if err != nil {
		t.Fatalf("RecordDownPayment: %v", err)
	}
	if !order.TotalAmount.Equal(dec("750000")) {
		t.Fatalf("total after down payment = %s, want 750000", order.TotalAmount)
	}
}

func TestPurchaseLifecycleThroughService(t *testing.T) {
	ctx := context.Background()
	sb, api := newBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	fabric := sb.AddProduct(domain.Product{SKU: "FAB-001", Name: "Kain Katun", CostPrice: dec("50000")})
	sb.SetStock(fabric.ID, loc.ID, dec("0"))
	supplier := sb.AddSupplier("PT Tekstil Jaya")

	svc := NewPurchaseOrderService(rest.NewPurchasing(api))
	view, err := svc.Create(ctx, repository.PurchaseOrderInput{
		SupplierID: supplier.ID,
		OrderDate:  "2026-08-01",
		Items: []repository.OrderItemInput{
			{ProductID: fabric.ID, Quantity: dec("10"), UnitPrice: dec("50000")},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Submit(ctx, view.Order.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Approve(ctx, view.Order.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	received, err := svc.Receive(ctx, view.Order.ID)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if received.Order.Status != domain.PurchaseReceived {
		t.Fatalf("status = %s, want %s", received.Order.Status, domain.PurchaseReceived)
	}

	bills, err := svc.PayBill(ctx, repository.SupplierPaymentInput{
		BillID:      mustFirstBill(t, api).ID,
		Amount:      dec("500000"),
		PaymentDate: "2026-08-10",
	})
	if err != nil {
		t.Fatalf("PayBill: %v", err)
	}
	if bills.Results[0].Status != domain.DocPaid {
		t.Fatalf("bill status = %s, want %s", bills.Results[0].Status, domain.DocPaid)
	}
}

func mustFirstBill(t *testing.T, api *client.Client) domain.Bill {
	t.Helper()
	bills, err := rest.NewPurchasing(api).ListBills(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListBills: %v", err)
	}
	if len(bills.Results) == 0 {
		t.Fatal("no bills")
	}
	return bills.Results[0]
}

func TestAssemblyAvailabilityShortages(t *testing.T) {
	ctx := context.Background()
	sb, api := newBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	table := sb.AddProduct(domain.Product{SKU: "TBL-001", Name: "Meja Kayu", IsManufactured: true})
	wood := sb.AddProduct(domain.Product{SKU: "WOOD-001", Name: "Papan Kayu"})
	sb.SetStock(wood.ID, loc.ID, dec("3"))

	inv := rest.NewInventory(api)
	bom, err := inv.CreateBOM(ctx, repository.BOMInput{
		ProductID:  table.ID,
		Components: []repository.BOMComponentInput{{ComponentID: wood.ID, Quantity: dec("4")}},
	})
	if err != nil {
		t.Fatalf("CreateBOM: %v", err)
	}

	svc := NewInventoryService(inv)
	shortages, err := svc.CheckAssemblyAvailability(ctx, bom.ID, loc.ID, dec("2"))
	if err != nil {
		t.Fatalf("CheckAssemblyAvailability: %v", err)
	}
	if len(shortages) != 1 {
		t.Fatalf("shortages = %d, want 1", len(shortages))
	}
	if !shortages[0].Required.Equal(dec("8")) || !shortages[0].OnHand.Equal(dec("3")) {
		t.Fatalf("shortage = %+v, want required 8 on hand 3", shortages[0])
	}

	sb.SetStock(wood.ID, loc.ID, dec("8"))
	shortages, err = svc.CheckAssemblyAvailability(ctx, bom.ID, loc.ID, dec("2"))
	if err != nil {
		t.Fatalf("CheckAssemblyAvailability after restock: %v", err)
	}
	if len(shortages) != 0 {
		t.Fatalf("shortages after restock = %d, want 0", len(shortages))
	}
}

func TestCompleteAssemblyBlocksOnShortage(t *testing.T) {
	ctx := context.Background()
	sb, api := newBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	chair := sb.AddProduct(domain.Product{SKU: "CHR-001", Name: "Kursi Kayu", IsManufactured: true})
	wood := sb.AddProduct(domain.Product{SKU: "WOOD-002", Name: "Papan Jati"})
	sb.SetStock(wood.ID, loc.ID, dec("1"))

	inv := rest.NewInventory(api)
	bom, err := inv.CreateBOM(ctx, repository.BOMInput{
		ProductID:  chair.ID,
		Components: []repository.BOMComponentInput{{ComponentID: wood.ID, Quantity: dec("2")}},
	})
	if err != nil {
		t.Fatalf("CreateBOM: %v", err)
	}
	asm, err := inv.CreateAssemblyOrder(ctx, repository.AssemblyOrderInput{
		BOMID:      bom.ID,
		LocationID: loc.ID,
		Quantity:   dec("1"),
	})
	if err != nil {
		t.Fatalf("CreateAssemblyOrder: %v", err)
	}
	for _, action := range []string{"plan", "release", "start"} {
		if _, err := inv.TransitionAssemblyOrder(ctx, asm.ID, action); err != nil {
			t.Fatalf("TransitionAssemblyOrder(%s): %v", action, err)
		}
	}

	svc := NewInventoryService(inv)
	if _, err := svc.CompleteAssembly(ctx, asm.ID); err == nil {
		t.Fatal("CompleteAssembly succeeded despite shortage")
	}

	sb.SetStock(wood.ID, loc.ID, dec("2"))
	completed, err := svc.CompleteAssembly(ctx, asm.ID)
	if err != nil {
		t.Fatalf("CompleteAssembly after restock: %v", err)
	}
	if completed.Status != domain.AssemblyCompleted {
		t.Fatalf("status = %s, want %s", completed.Status, domain.AssemblyCompleted)
	}
}

func TestSnapshotLoadsConcurrently(t *testing.T) {
	ctx := context.Background()
	sb, api := newBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	shirt := sb.AddProduct(domain.Product{SKU: "SHIRT-001", Name: "Kemeja Batik", ReorderPoint: dec("10")})
	sb.SetStock(shirt.ID, loc.ID, dec("4"))
	sb.AddCustomer("Toko Melati")

	svc := NewSnapshotService(rest.NewInventory(api), rest.NewSales(api), rest.NewPurchasing(api))
	snap, err := svc.Load(ctx, repository.ListOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Products.Count != 1 {
		t.Fatalf("snapshot products = %d, want 1", snap.Products.Count)
	}
	if snap.FetchedAt.IsZero() {
		t.Fatal("snapshot missing fetch time")
	}

	low := snap.LowStock()
	if len(low) != 1 || low[0].ProductID != shirt.ID {
		t.Fatalf("low stock = %+v, want the shirt record", low)
	}
}
