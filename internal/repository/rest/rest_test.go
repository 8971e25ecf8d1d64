// internal/repository/rest/rest_test.go
package rest

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/config"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/acippicacipa/orchid-erp-sub001/internal/sandbox"
	"github.com/acippicacipa/orchid-erp-sub001/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestBackend starts an in-memory backend and returns it with a logged-in
// client.
func newTestBackend(t *testing.T) (*sandbox.Sandbox, *client.Client) {
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

func mustProductStock(t *testing.T, inv repository.InventoryRepository, id int64) decimal.Decimal {
	t.Helper()
	product, err := inv.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatalf("GetProduct(%d): %v", id, err)
	}
	return product.CurrentStock
}

func TestSalesOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	shirt := sb.AddProduct(domain.Product{SKU: "SHIRT-001", Name: "Kemeja Batik", SellingPrice: dec("150000")})
	sb.SetStock(shirt.ID, loc.ID, dec("100"))
	customer := sb.AddCustomer("Toko Melati")

	sales := NewSales(api)
	inv := NewInventory(api)

	order, err := sales.CreateSalesOrder(ctx, repository.SalesOrderInput{
		CustomerID:    customer.ID,
		OrderDate:     "2026-08-01",
		TaxPercentage: dec("11"),
		Items: []repository.OrderItemInput{
			{ProductID: shirt.ID, Quantity: dec("10"), UnitPrice: dec("150000")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("new order status = %s, want %s", order.Status, domain.OrderPending)
	}
	if want := dec("1665000"); !order.TotalAmount.Equal(want) {
		t.Fatalf("order total = %s, want %s", order.TotalAmount, want)
	}

	if _, err := sales.ConfirmSalesOrder(ctx, order.ID); err != nil {
		t.Fatalf("ConfirmSalesOrder: %v", err)
	}
	if got := mustProductStock(t, inv, shirt.ID); !got.Equal(dec("90")) {
		t.Fatalf("stock after confirm = %s, want 90", got)
	}

	if _, err := sales.ApproveSalesOrder(ctx, order.ID); err != nil {
		t.Fatalf("ApproveSalesOrder: %v", err)
	}
	invoices, err := sales.ListInvoices(ctx, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(invoices.Results) != 1 {
		t.Fatalf("invoices after approve = %d, want 1", len(invoices.Results))
	}
	if !invoices.Results[0].TotalAmount.Equal(order.TotalAmount) {
		t.Fatalf("invoice total = %s, want %s", invoices.Results[0].TotalAmount, order.TotalAmount)
	}

	delivered, err := sales.CreateDeliveryOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("CreateDeliveryOrder: %v", err)
	}
	if delivered.Status != domain.OrderDelivered {
		t.Fatalf("status after delivery = %s, want %s", delivered.Status, domain.OrderDelivered)
	}

	if _, err := sales.CreateSalesReturn(ctx, repository.SalesReturnInput{
		SalesOrderID: order.ID,
		ReturnDate:   "2026-08-10",
		Items: []repository.SalesReturnItemInput{
			{ProductID: shirt.ID, Quantity: dec("2"), Reason: "defective"},
		},
	}); err != nil {
		t.Fatalf("CreateSalesReturn: %v", err)
	}
	if got := mustProductStock(t, inv, shirt.ID); !got.Equal(dec("92")) {
		t.Fatalf("stock after return = %s, want 92", got)
	}
}

func TestDownPaymentReducesOrderTotal(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	bag := sb.AddProduct(domain.Product{SKU: "BAG-001", Name: "Tas Kulit", SellingPrice: dec("1000000")})
	sb.SetStock(bag.ID, loc.ID, dec("10"))
	customer := sb.AddCustomer("CV Anggrek")

	sales := NewSales(api)
	order, err := sales.CreateSalesOrder(ctx, repository.SalesOrderInput{
		CustomerID: customer.ID,
		OrderDate:  "2026-08-01",
		Items: []repository.OrderItemInput{
			{ProductID: bag.ID, Quantity: dec("1"), UnitPrice: dec("1000000")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}

	if _, err := sales.CreateDownPayment(ctx, repository.DownPaymentInput{
		CustomerID:   customer.ID,
		SalesOrderID: order.ID,
		Amount:       dec("300000"),
		PaymentDate:  "2026-08-02",
	}); err != nil {
		t.Fatalf("CreateDownPayment: %v", err)
	}

	refreshed, err := sales.GetSalesOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetSalesOrder: %v", err)
	}
	if !refreshed.DownPaymentAmount.Equal(dec("300000")) {
		t.Fatalf("down payment = %s, want 300000", refreshed.DownPaymentAmount)
	}
	if !refreshed.TotalAmount.Equal(dec("700000")) {
		t.Fatalf("total after down payment = %s, want 700000", refreshed.TotalAmount)
	}
}

func TestConfirmFailsOnInsufficientStock(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	shoe := sb.AddProduct(domain.Product{SKU: "SHOE-001", Name: "Sepatu Kulit", SellingPrice: dec("500000")})
	sb.SetStock(shoe.ID, loc.ID, dec("5"))
	customer := sb.AddCustomer("Toko Mawar")

	sales := NewSales(api)
	order, err := sales.CreateSalesOrder(ctx, repository.SalesOrderInput{
		CustomerID: customer.ID,
		OrderDate:  "2026-08-01",
		Items: []repository.OrderItemInput{
			{ProductID: shoe.ID, Quantity: dec("10"), UnitPrice: dec("500000")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}

	_, err = sales.ConfirmSalesOrder(ctx, order.ID)
	if err == nil {
		t.Fatal("ConfirmSalesOrder succeeded with insufficient stock")
	}
	if !client.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "insufficient stock") {
		t.Fatalf("error = %v, want insufficient stock detail", err)
	}

	refreshed, err := sales.GetSalesOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetSalesOrder: %v", err)
	}
	if refreshed.Status != domain.OrderPending {
		t.Fatalf("status after failed confirm = %s, want %s", refreshed.Status, domain.OrderPending)
	}
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	fabric := sb.AddProduct(domain.Product{SKU: "FAB-001", Name: "Kain Katun", CostPrice: dec("50000")})
	sb.SetStock(fabric.ID, loc.ID, dec("0"))
	supplier := sb.AddSupplier("PT Tekstil Jaya")

	purchasing := NewPurchasing(api)
	inv := NewInventory(api)

	order, err := purchasing.CreatePurchaseOrder(ctx, repository.PurchaseOrderInput{
		SupplierID: supplier.ID,
		OrderDate:  "2026-08-01",
		Items: []repository.OrderItemInput{
			{ProductID: fabric.ID, Quantity: dec("20"), UnitPrice: dec("50000")},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if order.Status != domain.PurchaseDraft {
		t.Fatalf("new purchase order status = %s, want %s", order.Status, domain.PurchaseDraft)
	}
	if !order.TotalAmount.Equal(dec("1000000")) {
		t.Fatalf("purchase order total = %s, want 1000000", order.TotalAmount)
	}

	if _, err := purchasing.SubmitPurchaseOrder(ctx, order.ID); err != nil {
		t.Fatalf("SubmitPurchaseOrder: %v", err)
	}
	if _, err := purchasing.ApprovePurchaseOrder(ctx, order.ID); err != nil {
		t.Fatalf("ApprovePurchaseOrder: %v", err)
	}
	received, err := purchasing.ReceivePurchaseOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("ReceivePurchaseOrder: %v", err)
	}
	if received.Status != domain.PurchaseReceived {
		t.Fatalf("status after receive = %s, want %s", received.Status, domain.PurchaseReceived)
	}
	if got := mustProductStock(t, inv, fabric.ID); !got.Equal(dec("20")) {
		t.Fatalf("stock after receive = %s, want 20", got)
	}

	bills, err := purchasing.ListBills(ctx, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListBills: %v", err)
	}
	if len(bills.Results) != 1 {
		t.Fatalf("bills after receive = %d, want 1", len(bills.Results))
	}
	bill := bills.Results[0]
	if !bill.Balance.Equal(dec("1000000")) {
		t.Fatalf("bill balance = %s, want 1000000", bill.Balance)
	}

	if _, err := purchasing.CreateSupplierPayment(ctx, repository.SupplierPaymentInput{
		BillID:      bill.ID,
		Amount:      dec("400000"),
		PaymentDate: "2026-08-15",
		Method:      "TRANSFER",
	}); err != nil {
		t.Fatalf("CreateSupplierPayment: %v", err)
	}
	bills, _ = purchasing.ListBills(ctx, repository.ListOptions{})
	if bills.Results[0].Status != domain.DocPartiallyPaid {
		t.Fatalf("bill status after partial payment = %s, want %s", bills.Results[0].Status, domain.DocPartiallyPaid)
	}

	if _, err := purchasing.CreateSupplierPayment(ctx, repository.SupplierPaymentInput{
		BillID:      bill.ID,
		Amount:      dec("600000"),
		PaymentDate: "2026-08-20",
		Method:      "TRANSFER",
	}); err != nil {
		t.Fatalf("CreateSupplierPayment: %v", err)
	}
	bills, _ = purchasing.ListBills(ctx, repository.ListOptions{})
	if bills.Results[0].Status != domain.DocPaid {
		t.Fatalf("bill status after full payment = %s, want %s", bills.Results[0].Status, domain.DocPaid)
	}
	if !bills.Results[0].Balance.IsZero() {
		t.Fatalf("bill balance after full payment = %s, want 0", bills.Results[0].Balance)
	}
}

func TestStockTransferMovesStockBetweenLocations(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	src := sb.AddLocation("WH-01", "Gudang Utama")
	dst := sb.AddLocation("ST-01", "Toko Cabang")
	shirt := sb.AddProduct(domain.Product{SKU: "SHIRT-002", Name: "Kemeja Polos"})
	sb.SetStock(shirt.ID, src.ID, dec("50"))

	inv := NewInventory(api)
	transfer, err := inv.CreateStockTransfer(ctx, repository.StockTransferInput{
		SourceLocationID:      src.ID,
		DestinationLocationID: dst.ID,
		Items: []repository.StockTransferItemInput{
			{ProductID: shirt.ID, Quantity: dec("30")},
		},
	})
	if err != nil {
		t.Fatalf("CreateStockTransfer: %v", err)
	}
	if transfer.Status != domain.TransferPending {
		t.Fatalf("new transfer status = %s, want %s", transfer.Status, domain.TransferPending)
	}

	completed, err := inv.CompleteStockTransfer(ctx, transfer.ID)
	if err != nil {
		t.Fatalf("CompleteStockTransfer: %v", err)
	}
	if completed.Status != domain.TransferCompleted {
		t.Fatalf("transfer status = %s, want %s", completed.Status, domain.TransferCompleted)
	}

	stock, err := inv.ListStock(ctx, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListStock: %v", err)
	}
	onHand := map[int64]decimal.Decimal{}
	for _, rec := range stock.Results {
		if rec.ProductID == shirt.ID {
			onHand[rec.LocationID] = rec.QuantityOnHand
		}
	}
	if !onHand[src.ID].Equal(dec("20")) {
		t.Fatalf("source on hand = %s, want 20", onHand[src.ID])
	}
	if !onHand[dst.ID].Equal(dec("30")) {
		t.Fatalf("destination on hand = %s, want 30", onHand[dst.ID])
	}
}

func TestAssemblyCompletionConsumesComponents(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	table := sb.AddProduct(domain.Product{SKU: "TBL-001", Name: "Meja Kayu", IsManufactured: true})
	wood := sb.AddProduct(domain.Product{SKU: "WOOD-001", Name: "Papan Kayu"})
	screws := sb.AddProduct(domain.Product{SKU: "SCR-001", Name: "Sekrup"})
	sb.SetStock(wood.ID, loc.ID, dec("100"))
	sb.SetStock(screws.ID, loc.ID, dec("200"))

	inv := NewInventory(api)
	bom, err := inv.CreateBOM(ctx, repository.BOMInput{
		ProductID: table.ID,
		Components: []repository.BOMComponentInput{
			{ComponentID: wood.ID, Quantity: dec("4")},
			{ComponentID: screws.ID, Quantity: dec("8")},
		},
	})
	if err != nil {
		t.Fatalf("CreateBOM: %v", err)
	}

	asm, err := inv.CreateAssemblyOrder(ctx, repository.AssemblyOrderInput{
		BOMID:      bom.ID,
		LocationID: loc.ID,
		Quantity:   dec("5"),
	})
	if err != nil {
		t.Fatalf("CreateAssemblyOrder: %v", err)
	}
	if asm.Status != domain.AssemblyDraft {
		t.Fatalf("new assembly status = %s, want %s", asm.Status, domain.AssemblyDraft)
	}

	for _, action := range []string{"plan", "release", "start", "complete"} {
		if asm, err = inv.TransitionAssemblyOrder(ctx, asm.ID, action); err != nil {
			t.Fatalf("TransitionAssemblyOrder(%s): %v", action, err)
		}
	}
	if asm.Status != domain.AssemblyCompleted {
		t.Fatalf("final assembly status = %s, want %s", asm.Status, domain.AssemblyCompleted)
	}

	if got := mustProductStock(t, inv, wood.ID); !got.Equal(dec("80")) {
		t.Fatalf("wood stock = %s, want 80", got)
	}
	if got := mustProductStock(t, inv, screws.ID); !got.Equal(dec("160")) {
		t.Fatalf("screw stock = %s, want 160", got)
	}
	if got := mustProductStock(t, inv, table.ID); !got.Equal(dec("5")) {
		t.Fatalf("table stock = %s, want 5", got)
	}
}

func TestAssemblyRejectsSkippedTransition(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	chair := sb.AddProduct(domain.Product{SKU: "CHR-001", Name: "Kursi Kayu", IsManufactured: true})
	wood := sb.AddProduct(domain.Product{SKU: "WOOD-002", Name: "Papan Jati"})
	sb.SetStock(wood.ID, loc.ID, dec("10"))

	inv := NewInventory(api)
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

	if _, err := inv.TransitionAssemblyOrder(ctx, asm.ID, "complete"); !client.IsValidation(err) {
		t.Fatalf("completing a draft assembly: err = %v, want validation error", err)
	}
}

func TestProductListReflectsCreate(t *testing.T) {
	ctx := context.Background()
	_, api := newTestBackend(t)

	inv := NewInventory(api)
	created, err := inv.CreateProduct(ctx, repository.ProductInput{
		SKU:          "NEW-001",
		Name:         "Dompet Kulit",
		SellingPrice: dec("250000"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	listed, err := inv.ListProducts(ctx, repository.ListOptions{Search: "NEW-001"})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if listed.Count != 1 || listed.Results[0].ID != created.ID {
		t.Fatalf("list after create: count=%d, want the created product", listed.Count)
	}
}

func TestRejectedUpdateLeavesSalesOrderUntouched(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	shirt := sb.AddProduct(domain.Product{SKU: "SHIRT-003", Name: "Kemeja Lengan Panjang", SellingPrice: dec("150000")})
	sb.SetStock(shirt.ID, loc.ID, dec("50"))
	customer := sb.AddCustomer("Toko Kenanga")

	sales := NewSales(api)
	order, err := sales.CreateSalesOrder(ctx, repository.SalesOrderInput{
		CustomerID: customer.ID,
		OrderDate:  "2026-08-01",
		Items: []repository.OrderItemInput{
			{ProductID: shirt.ID, Quantity: dec("10"), UnitPrice: dec("150000")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}

	// A valid first line followed by an unknown product: the rejection must
	// not leave a half-rebuilt order behind.
	_, err = sales.UpdateSalesOrder(ctx, order.ID, repository.SalesOrderInput{
		CustomerID: customer.ID,
		OrderDate:  "2026-08-15",
		Notes:      "updated",
		Items: []repository.OrderItemInput{
			{ProductID: shirt.ID, Quantity: dec("3"), UnitPrice: dec("150000")},
			{ProductID: 9999, Quantity: dec("1"), UnitPrice: dec("100000")},
		},
	})
	if !client.IsValidation(err) {
		t.Fatalf("UpdateSalesOrder with unknown product: err = %v, want validation error", err)
	}

	refreshed, err := sales.GetSalesOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetSalesOrder: %v", err)
	}
	if refreshed.OrderDate != "2026-08-01" || refreshed.Notes != "" {
		t.Fatalf("header after rejected update = %q/%q, want the original values", refreshed.OrderDate, refreshed.Notes)
	}
	if len(refreshed.Items) != 1 || !refreshed.Items[0].Quantity.Equal(dec("10")) {
		t.Fatalf("items after rejected update = %+v, want the original single line", refreshed.Items)
	}
	if !refreshed.TotalAmount.Equal(order.TotalAmount) {
		t.Fatalf("total after rejected update = %s, want %s", refreshed.TotalAmount, order.TotalAmount)
	}
}

func TestConfirmShortfallDeductsNothing(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	shirt := sb.AddProduct(domain.Product{SKU: "SHIRT-004", Name: "Kemeja Flanel", SellingPrice: dec("200000")})
	belt := sb.AddProduct(domain.Product{SKU: "BELT-001", Name: "Ikat Pinggang", SellingPrice: dec("100000")})
	sb.SetStock(shirt.ID, loc.ID, dec("10"))
	sb.SetStock(belt.ID, loc.ID, dec("1"))
	customer := sb.AddCustomer("Toko Cempaka")

	sales := NewSales(api)
	inv := NewInventory(api)
	order, err := sales.CreateSalesOrder(ctx, repository.SalesOrderInput{
		CustomerID: customer.ID,
		OrderDate:  "2026-08-01",
		Items: []repository.OrderItemInput{
			{ProductID: shirt.ID, Quantity: dec("5"), UnitPrice: dec("200000")},
			{ProductID: belt.ID, Quantity: dec("3"), UnitPrice: dec("100000")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}

	if _, err := sales.ConfirmSalesOrder(ctx, order.ID); !client.IsValidation(err) {
		t.Fatalf("ConfirmSalesOrder: err = %v, want validation error", err)
	}
	// The stocked first line must not have been deducted by the failed confirm.
	if got := mustProductStock(t, inv, shirt.ID); !got.Equal(dec("10")) {
		t.Fatalf("shirt stock after failed confirm = %s, want 10", got)
	}
}

func TestTransferShortLineMovesNothing(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	src := sb.AddLocation("WH-01", "Gudang Utama")
	dst := sb.AddLocation("ST-01", "Toko Cabang")
	shirt := sb.AddProduct(domain.Product{SKU: "SHIRT-005", Name: "Kemeja Putih"})
	hat := sb.AddProduct(domain.Product{SKU: "CAP-001", Name: "Topi"})
	sb.SetStock(shirt.ID, src.ID, dec("10"))

	inv := NewInventory(api)
	transfer, err := inv.CreateStockTransfer(ctx, repository.StockTransferInput{
		SourceLocationID:      src.ID,
		DestinationLocationID: dst.ID,
		Items: []repository.StockTransferItemInput{
			{ProductID: shirt.ID, Quantity: dec("5")},
			{ProductID: hat.ID, Quantity: dec("5")},
		},
	})
	if err != nil {
		t.Fatalf("CreateStockTransfer: %v", err)
	}

	_, err = inv.CompleteStockTransfer(ctx, transfer.ID)
	if !client.IsValidation(err) || !strings.Contains(err.Error(), "insufficient stock") {
		t.Fatalf("CompleteStockTransfer: err = %v, want insufficient stock", err)
	}
	// Rejecting the short second line must not have deducted the first.
	if got := mustProductStock(t, inv, shirt.ID); !got.Equal(dec("10")) {
		t.Fatalf("shirt stock after failed transfer = %s, want 10", got)
	}
	transfers, err := inv.ListStockTransfers(ctx, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListStockTransfers: %v", err)
	}
	if transfers.Results[0].Status != domain.TransferPending {
		t.Fatalf("transfer status after failure = %s, want %s", transfers.Results[0].Status, domain.TransferPending)
	}

	// Restocking and retrying completes cleanly, without double deduction.
	sb.SetStock(hat.ID, src.ID, dec("5"))
	if _, err := inv.CompleteStockTransfer(ctx, transfer.ID); err != nil {
		t.Fatalf("CompleteStockTransfer retry: %v", err)
	}
	if got := mustProductStock(t, inv, shirt.ID); !got.Equal(dec("10")) {
		t.Fatalf("shirt stock after retry = %s, want 10 across both locations", got)
	}
	if got := mustProductStock(t, inv, hat.ID); !got.Equal(dec("5")) {
		t.Fatalf("hat stock after retry = %s, want 5 across both locations", got)
	}
}

func TestAssemblyShortComponentConsumesNothing(t *testing.T) {
	ctx := context.Background()
	sb, api := newTestBackend(t)

	loc := sb.AddLocation("WH-01", "Gudang Utama")
	rack := sb.AddProduct(domain.Product{SKU: "RCK-001", Name: "Rak Kayu", IsManufactured: true})
	wood := sb.AddProduct(domain.Product{SKU: "WOOD-003", Name: "Papan Mahoni"})
	glue := sb.AddProduct(domain.Product{SKU: "GLU-001", Name: "Lem Kayu"})
	sb.SetStock(wood.ID, loc.ID, dec("20"))

	inv := NewInventory(api)
	bom, err := inv.CreateBOM(ctx, repository.BOMInput{
		ProductID: rack.ID,
		Components: []repository.BOMComponentInput{
			{ComponentID: wood.ID, Quantity: dec("4")},
			{ComponentID: glue.ID, Quantity: dec("1")},
		},
	})
	if err != nil {
		t.Fatalf("CreateBOM: %v", err)
	}
	asm, err := inv.CreateAssemblyOrder(ctx, repository.AssemblyOrderInput{
		BOMID:      bom.ID,
		LocationID: loc.ID,
		Quantity:   dec("2"),
	})
	if err != nil {
		t.Fatalf("CreateAssemblyOrder: %v", err)
	}
	for _, action := range []string{"plan", "release", "start"} {
		if asm, err = inv.TransitionAssemblyOrder(ctx, asm.ID, action); err != nil {
			t.Fatalf("TransitionAssemblyOrder(%s): %v", action, err)
		}
	}

	_, err = inv.TransitionAssemblyOrder(ctx, asm.ID, "complete")
	if !client.IsValidation(err) || !strings.Contains(err.Error(), "insufficient stock") {
		t.Fatalf("complete with missing glue: err = %v, want insufficient stock", err)
	}
	// The stocked component must survive the failed completion intact.
	if got := mustProductStock(t, inv, wood.ID); !got.Equal(dec("20")) {
		t.Fatalf("wood stock after failed complete = %s, want 20", got)
	}
	current, err := inv.GetAssemblyOrder(ctx, asm.ID)
	if err != nil {
		t.Fatalf("GetAssemblyOrder: %v", err)
	}
	if current.Status != domain.AssemblyInProgress {
		t.Fatalf("assembly status after failure = %s, want %s", current.Status, domain.AssemblyInProgress)
	}

	sb.SetStock(glue.ID, loc.ID, dec("2"))
	if _, err := inv.TransitionAssemblyOrder(ctx, asm.ID, "complete"); err != nil {
		t.Fatalf("complete after restock: %v", err)
	}
	if got := mustProductStock(t, inv, wood.ID); !got.Equal(dec("12")) {
		t.Fatalf("wood stock after completion = %s, want 12", got)
	}
}

func TestDataImportFlow(t *testing.T) {
	ctx := context.Background()
	_, api := newTestBackend(t)

	imports := NewDataImport(api)

	templates, err := imports.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(templates) == 0 {
		t.Fatal("no import templates")
	}

	csvBody := "sku,name,category,brand,unit,cost_price,selling_price,reorder_point\n" +
		"P-001,Produk Satu,Umum,Umum,pcs,10000,15000,5\n" +
		"P-002,Produk Dua,Umum,Umum,pcs,20000,30000,5\n"
	job, err := imports.Upload(ctx, "products", "products.csv", strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if job.TotalRows != 2 {
		t.Fatalf("uploaded rows = %d, want 2", job.TotalRows)
	}
	if job.Status != "UPLOADED" {
		t.Fatalf("job status = %s, want UPLOADED", job.Status)
	}

	validated, err := imports.Validate(ctx, job.ID)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if validated.Status != "VALIDATED" || validated.ImportedRows != 2 {
		t.Fatalf("validated job = %+v, want VALIDATED with 2 rows", validated)
	}

	history, err := imports.ListHistory(ctx, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(history.Results) != 1 {
		t.Fatalf("history entries = %d, want 1", len(history.Results))
	}

	logs, err := imports.ListLogs(ctx, job.ID)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].Level != "INFO" {
		t.Fatalf("logs = %+v, want one INFO entry", logs)
	}
}
