// cmd/erpctl/dashboard.go
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/acippicacipa/orchid-erp-sub001/internal/service"
	"github.com/acippicacipa/orchid-erp-sub001/pkg/money"
	"github.com/urfave/cli/v2"
)

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:   "dashboard",
		Usage:  "Show a combined snapshot of catalog, stock, and open documents",
		Before: requireAuth,
		Action: func(c *cli.Context) error {
			st := state(c)
			svc := service.NewSnapshotService(st.inventory, st.sales, st.purchasing)
			snap, err := svc.Load(c.Context, repository.ListOptions{PageSize: 100})
			if err != nil {
				return err
			}

			fmt.Printf("Snapshot at %s\n", snap.FetchedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Products: %d  Sales orders: %d  Purchase orders: %d  Bills: %d\n",
				snap.Products.Count, snap.SalesOrders.Count, snap.PurchaseOrders.Count, snap.Bills.Count)

			if low := snap.LowStock(); len(low) > 0 {
				fmt.Println("\nLow stock:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "SKU\tPRODUCT\tLOCATION\tON HAND\tREORDER AT")
				for _, rec := range low {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						rec.ProductSKU, rec.ProductName, rec.LocationName, rec.QuantityOnHand, rec.ReorderPoint)
				}
				w.Flush()
			}

			var outstanding []string
			for _, b := range snap.Bills.Results {
				if b.Balance.IsPositive() {
					outstanding = append(outstanding, fmt.Sprintf("%s %s", b.BillNumber, money.FormatRupiah(&b.Balance)))
				}
			}
			if len(outstanding) > 0 {
				fmt.Println("\nOutstanding bills:")
				for _, line := range outstanding {
					fmt.Println("  " + line)
				}
			}
			return nil
		},
	}
}
