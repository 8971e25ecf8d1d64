// Package repository defines the typed data-access contracts for each backend
// app. Implementations live in rest/; services and the CLI depend only on
// these interfaces.
package repository

import (
	"context"
	"io"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
)

type AccountsRepository interface {
	Profile(ctx context.Context) (*domain.User, error)
	ListUsers(ctx context.Context, opts ListOptions) (client.Page[domain.User], error)
}

type InventoryRepository interface {
	ListProducts(ctx context.Context, opts ListOptions) (client.Page[domain.Product], error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListLocations(ctx context.Context, opts ListOptions) (client.Page[domain.Location], error)
	ListStock(ctx context.Context, opts ListOptions) (client.Page[domain.StockRecord], error)

	ListStockMovements(ctx context.Context, opts ListOptions) (client.Page[domain.StockMovement], error)
	CreateStockMovement(ctx context.Context, in StockMovementInput) (*domain.StockMovement, error)

	ListStockTransfers(ctx context.Context, opts ListOptions) (client.Page[domain.StockTransfer], error)
	CreateStockTransfer(ctx context.Context, in StockTransferInput) (*domain.StockTransfer, error)
	CompleteStockTransfer(ctx context.Context, id int64) (*domain.StockTransfer, error)

	ListBOMs(ctx context.Context, opts ListOptions) (client.Page[domain.BOM], error)
	GetBOM(ctx context.Context, id int64) (*domain.BOM, error)
	CreateBOM(ctx context.Context, in BOMInput) (*domain.BOM, error)

	ListAssemblyOrders(ctx context.Context, opts ListOptions) (client.Page[domain.AssemblyOrder], error)
	GetAssemblyOrder(ctx context.Context, id int64) (*domain.AssemblyOrder, error)
	CreateAssemblyOrder(ctx context.Context, in AssemblyOrderInput) (*domain.AssemblyOrder, error)
	// TransitionAssemblyOrder hits one of the action sub-paths: plan, release,
	// start, hold, resume, complete, cancel.
	TransitionAssemblyOrder(ctx context.Context, id int64, action string) (*domain.AssemblyOrder, error)
}

type SalesRepository interface {
	ListCustomers(ctx context.Context, opts ListOptions) (client.Page[domain.Customer], error)
	CreateCustomer(ctx context.Context, in CustomerInput) (*domain.Customer, error)

	ListSalesOrders(ctx context.Context, opts ListOptions) (client.Page[domain.SalesOrder], error)
	GetSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error)
	CreateSalesOrder(ctx context.Context, in SalesOrderInput) (*domain.SalesOrder, error)
	UpdateSalesOrder(ctx context.Context, id int64, in SalesOrderInput) (*domain.SalesOrder, error)
	ConfirmSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error)
	ApproveSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error)
	CreateDeliveryOrder(ctx context.Context, id int64) (*domain.SalesOrder, error)
	CancelSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error)

	ListInvoices(ctx context.Context, opts ListOptions) (client.Page[domain.Invoice], error)
	ListDownPayments(ctx context.Context, opts ListOptions) (client.Page[domain.DownPayment], error)
	CreateDownPayment(ctx context.Context, in DownPaymentInput) (*domain.DownPayment, error)
	ListSalesReturns(ctx context.Context, opts ListOptions) (client.Page[domain.SalesReturn], error)
	CreateSalesReturn(ctx context.Context, in SalesReturnInput) (*domain.SalesReturn, error)
}

type PurchasingRepository interface {
	ListSuppliers(ctx context.Context, opts ListOptions) (client.Page[domain.Supplier], error)
	CreateSupplier(ctx context.Context, in SupplierInput) (*domain.Supplier, error)

	ListPurchaseOrders(ctx context.Context, opts ListOptions) (client.Page[domain.PurchaseOrder], error)
	GetPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, in PurchaseOrderInput) (*domain.PurchaseOrder, error)
	SubmitPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	ApprovePurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	ReceivePurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error)

	ListBills(ctx context.Context, opts ListOptions) (client.Page[domain.Bill], error)
	ListSupplierPayments(ctx context.Context, opts ListOptions) (client.Page[domain.SupplierPayment], error)
	CreateSupplierPayment(ctx context.Context, in SupplierPaymentInput) (*domain.SupplierPayment, error)
	ListConsignmentReceipts(ctx context.Context, opts ListOptions) (client.Page[domain.ConsignmentReceipt], error)
	CreateConsignmentReceipt(ctx context.Context, in ConsignmentReceiptInput) (*domain.ConsignmentReceipt, error)
}

type DataImportRepository interface {
	Upload(ctx context.Context, dataType, filename string, r io.Reader) (*domain.ImportJob, error)
	ListTemplates(ctx context.Context) ([]domain.ImportTemplate, error)
	ListHistory(ctx context.Context, opts ListOptions) (client.Page[domain.ImportJob], error)
	Validate(ctx context.Context, jobID int64) (*domain.ImportJob, error)
	ListLogs(ctx context.Context, jobID int64) ([]domain.ImportLog, error)
}
