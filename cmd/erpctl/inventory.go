// cmd/erpctl/inventory.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/acippicacipa/orchid-erp-sub001/internal/search"
	"github.com/acippicacipa/orchid-erp-sub001/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func newSearchFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Filter by code, name, or reference",
	}
}

func newIDFlag(usage string) *cli.Int64Flag {
	return &cli.Int64Flag{Name: "id", Usage: usage, Required: true}
}

func listOptions(c *cli.Context) repository.ListOptions {
	return repository.ListOptions{
		Search:   c.String("search"),
		Page:     c.Int("page"),
		PageSize: c.Int("page-size"),
	}
}

func newPagingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Usage: "Page number", Value: 1},
		&cli.IntFlag{Name: "page-size", Usage: "Rows per page", Value: 25},
	}
}

func printProducts(page client.Page[domain.Product]) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tNAME\tSTOCK\tPRICE")
	for _, p := range page.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.SKU, p.Name, p.CurrentStock, money.FormatRupiah(&p.SellingPrice))
	}
	w.Flush()
	fmt.Printf("%d of %d product(s)\n", len(page.Results), page.Count)
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:   "products",
		Usage:  "Browse and manage the product catalog",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List products",
				Flags: append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
				Action: func(c *cli.Context) error {
					page, err := state(c).inventory.ListProducts(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					printProducts(page)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sku", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "brand"},
					&cli.StringFlag{Name: "cost-price", Value: "0"},
					&cli.StringFlag{Name: "selling-price", Value: "0"},
					&cli.StringFlag{Name: "reorder-point", Value: "0"},
				},
				Action: func(c *cli.Context) error {
					cost, err := decimal.NewFromString(c.String("cost-price"))
					if err != nil {
						return fmt.Errorf("invalid cost price: %w", err)
					}
					selling, err := decimal.NewFromString(c.String("selling-price"))
					if err != nil {
						return fmt.Errorf("invalid selling price: %w", err)
					}
					reorder, err := decimal.NewFromString(c.String("reorder-point"))
					if err != nil {
						return fmt.Errorf("invalid reorder point: %w", err)
					}

					product, err := state(c).inventory.CreateProduct(c.Context, repository.ProductInput{
						SKU:           c.String("sku"),
						Name:          c.String("name"),
						Brand:         c.String("brand"),
						CostPrice:     cost,
						SellingPrice:  selling,
						ReorderPoint:  reorder,
						IsPurchasable: true,
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created product %d (%s)\n", product.ID, product.SKU)
					return nil
				},
			},
			{
				Name:  "search",
				Usage: "Interactive product search, one query per line",
				Action: func(c *cli.Context) error {
					st := state(c)
					window := time.Duration(st.cfg.Search.DebounceMillis) * time.Millisecond
					deb := search.NewDebouncer(c.Context, window, func(ctx context.Context, query string) (client.Page[domain.Product], error) {
						return st.inventory.ListProducts(ctx, repository.ListOptions{Search: query})
					})

					done := make(chan struct{})
					go func() {
						defer close(done)
						for res := range deb.Results() {
							if res.Err != nil {
								fmt.Fprintf(os.Stderr, "search %q: %v\n", res.Query, res.Err)
								continue
							}
							fmt.Printf("-- %q --\n", res.Query)
							printProducts(res.Value)
						}
					}()

					scanner := bufio.NewScanner(os.Stdin)
					for scanner.Scan() {
						deb.Input(strings.TrimSpace(scanner.Text()))
					}
					deb.Flush()
					time.Sleep(window)
					deb.Close()
					<-done
					return scanner.Err()
				},
			},
		},
	}
}

func stockCommand() *cli.Command {
	return &cli.Command{
		Name:   "stock",
		Usage:  "Inspect and adjust on-hand stock",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stock records",
				Flags: append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
				Action: func(c *cli.Context) error {
					page, err := state(c).inventory.ListStock(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "SKU\tPRODUCT\tLOCATION\tON HAND\tREORDER AT")
					for _, rec := range page.Results {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
							rec.ProductSKU, rec.ProductName, rec.LocationName, rec.QuantityOnHand, rec.ReorderPoint)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:  "adjust",
				Usage: "Record a signed stock adjustment",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.Int64Flag{Name: "location", Required: true},
					&cli.StringFlag{Name: "qty", Required: true, Usage: "Signed quantity, e.g. -3"},
					&cli.StringFlag{Name: "notes"},
				},
				Action: func(c *cli.Context) error {
					qty, err := decimal.NewFromString(c.String("qty"))
					if err != nil {
						return fmt.Errorf("invalid quantity: %w", err)
					}
					movement, err := state(c).inventoryService().Adjust(c.Context, c.Int64("product"), c.Int64("location"), qty, c.String("notes"))
					if err != nil {
						return err
					}
					fmt.Printf("Recorded %s %s for %s\n", movement.ReferenceNumber, movement.Quantity, movement.ProductSKU)
					return nil
				},
			},
			{
				Name:  "damage",
				Usage: "Write off damaged stock",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.Int64Flag{Name: "location", Required: true},
					&cli.StringFlag{Name: "qty", Required: true, Usage: "Units damaged"},
					&cli.StringFlag{Name: "notes"},
				},
				Action: func(c *cli.Context) error {
					qty, err := decimal.NewFromString(c.String("qty"))
					if err != nil {
						return fmt.Errorf("invalid quantity: %w", err)
					}
					movement, err := state(c).inventoryService().ReportDamage(c.Context, c.Int64("product"), c.Int64("location"), qty, c.String("notes"))
					if err != nil {
						return err
					}
					fmt.Printf("Recorded %s %s for %s\n", movement.ReferenceNumber, movement.Quantity, movement.ProductSKU)
					return nil
				},
			},
			{
				Name:  "receive",
				Usage: "Book goods into a location outside the purchase flow",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.Int64Flag{Name: "location", Required: true},
					&cli.StringFlag{Name: "qty", Required: true},
					&cli.StringFlag{Name: "reference"},
				},
				Action: func(c *cli.Context) error {
					qty, err := decimal.NewFromString(c.String("qty"))
					if err != nil {
						return fmt.Errorf("invalid quantity: %w", err)
					}
					movement, err := state(c).inventoryService().ReceiveStock(c.Context, c.Int64("product"), c.Int64("location"), qty, c.String("reference"))
					if err != nil {
						return err
					}
					fmt.Printf("Recorded %s %s for %s\n", movement.ReferenceNumber, movement.Quantity, movement.ProductSKU)
					return nil
				},
			},
			{
				Name:  "movements",
				Usage: "List stock movements",
				Flags: newPagingFlags(),
				Action: func(c *cli.Context) error {
					page, err := state(c).inventory.ListStockMovements(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "REF\tSKU\tTYPE\tQTY\tLOCATION\tBY")
					for _, m := range page.Results {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
							m.ReferenceNumber, m.ProductSKU, m.MovementType, m.Quantity, m.LocationName, m.CreatedBy)
					}
					w.Flush()
					return nil
				},
			},
		},
	}
}

func transfersCommand() *cli.Command {
	return &cli.Command{
		Name:   "transfers",
		Usage:  "Move stock between locations",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stock transfers",
				Flags: newPagingFlags(),
				Action: func(c *cli.Context) error {
					page, err := state(c).inventory.ListStockTransfers(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tREF\tFROM\tTO\tSTATUS\tITEMS")
					for _, tr := range page.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
							tr.ID, tr.ReferenceNumber, tr.SourceLocationName, tr.DestinationLocation, tr.Status, len(tr.Items))
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a transfer with a single line",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "from", Required: true, Usage: "Source location ID"},
					&cli.Int64Flag{Name: "to", Required: true, Usage: "Destination location ID"},
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.StringFlag{Name: "qty", Required: true},
					&cli.StringFlag{Name: "notes"},
				},
				Action: func(c *cli.Context) error {
					qty, err := decimal.NewFromString(c.String("qty"))
					if err != nil {
						return fmt.Errorf("invalid quantity: %w", err)
					}
					transfer, err := state(c).inventory.CreateStockTransfer(c.Context, repository.StockTransferInput{
						SourceLocationID:      c.Int64("from"),
						DestinationLocationID: c.Int64("to"),
						Notes:                 c.String("notes"),
						Items: []repository.StockTransferItemInput{
							{ProductID: c.Int64("product"), Quantity: qty},
						},
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created transfer %d (%s)\n", transfer.ID, transfer.ReferenceNumber)
					return nil
				},
			},
			{
				Name:  "complete",
				Usage: "Execute a pending transfer",
				Flags: []cli.Flag{newIDFlag("Transfer ID")},
				Action: func(c *cli.Context) error {
					transfer, err := state(c).inventory.CompleteStockTransfer(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					fmt.Printf("Transfer %s is %s\n", transfer.ReferenceNumber, transfer.Status)
					return nil
				},
			},
		},
	}
}

func assemblyCommand() *cli.Command {
	return &cli.Command{
		Name:   "assembly",
		Usage:  "Manage BOMs and assembly orders",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "boms",
				Usage: "List bills of materials",
				Flags: append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
				Action: func(c *cli.Context) error {
					page, err := state(c).inventory.ListBOMs(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tCODE\tPRODUCT\tCOMPONENTS")
					for _, b := range page.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", b.ID, b.Code, b.ProductName, len(b.Components))
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:  "orders",
				Usage: "List assembly orders",
				Flags: newPagingFlags(),
				Action: func(c *cli.Context) error {
					page, err := state(c).inventory.ListAssemblyOrders(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tORDER\tPRODUCT\tQTY\tSTATUS")
					for _, a := range page.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.OrderNumber, a.ProductName, a.Quantity, a.StatusDisplay)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create an assembly order from a BOM",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "bom", Required: true},
					&cli.Int64Flag{Name: "location", Required: true},
					&cli.StringFlag{Name: "qty", Required: true},
				},
				Action: func(c *cli.Context) error {
					qty, err := decimal.NewFromString(c.String("qty"))
					if err != nil {
						return fmt.Errorf("invalid quantity: %w", err)
					}
					asm, err := state(c).inventory.CreateAssemblyOrder(c.Context, repository.AssemblyOrderInput{
						BOMID:      c.Int64("bom"),
						LocationID: c.Int64("location"),
						Quantity:   qty,
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created assembly order %d (%s)\n", asm.ID, asm.OrderNumber)
					return nil
				},
			},
			{
				Name:      "transition",
				Usage:     "Apply a lifecycle action: plan, release, start, hold, resume, complete, cancel",
				ArgsUsage: "<action>",
				Flags:     []cli.Flag{newIDFlag("Assembly order ID")},
				Action: func(c *cli.Context) error {
					action := c.Args().First()
					if action == "" {
						return fmt.Errorf("action argument is required")
					}
					var (
						asm *domain.AssemblyOrder
						err error
					)
					if action == "complete" {
						// The availability check runs before the backend call.
						asm, err = state(c).inventoryService().CompleteAssembly(c.Context, c.Int64("id"))
					} else {
						asm, err = state(c).inventory.TransitionAssemblyOrder(c.Context, c.Int64("id"), action)
					}
					if err != nil {
						return err
					}
					fmt.Printf("Assembly order %s is %s\n", asm.OrderNumber, asm.StatusDisplay)
					return nil
				},
			},
		},
	}
}
