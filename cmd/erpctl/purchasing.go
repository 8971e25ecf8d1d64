// cmd/erpctl/purchasing.go
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

func suppliersCommand() *cli.Command {
	return &cli.Command{
		Name:   "suppliers",
		Usage:  "Browse and manage suppliers",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List suppliers",
				Flags: append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
				Action: func(c *cli.Context) error {
					page, err := state(c).purchasing.ListSuppliers(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tCODE\tNAME\tCONTACT")
					for _, sup := range page.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", sup.ID, sup.Code, sup.Name, sup.ContactPerson)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a supplier",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "contact"},
				},
				Action: func(c *cli.Context) error {
					supplier, err := state(c).purchasing.CreateSupplier(c.Context, repository.SupplierInput{
						Name:          c.String("name"),
						Email:         c.String("email"),
						Phone:         c.String("phone"),
						ContactPerson: c.String("contact"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created supplier %d (%s)\n", supplier.ID, supplier.Code)
					return nil
				},
			},
		},
	}
}

func purchaseOrdersCommand() *cli.Command {
	transitionAction := func(run func(*service.PurchaseOrderService, *cli.Context) (service.PurchaseOrderView, error)) cli.ActionFunc {
		return func(c *cli.Context) error {
			view, err := run(state(c).purchaseOrders(), c)
			if err != nil {
				return err
			}
			fmt.Printf("Purchase order %s is %s\n", view.Order.OrderNumber, view.Order.Status)
			return nil
		}
	}

	return &cli.Command{
		Name:   "purchasing",
		Usage:  "Manage purchase orders",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List purchase orders",
				Flags: append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
				Action: func(c *cli.Context) error {
					page, err := state(c).purchasing.ListPurchaseOrders(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tORDER\tSUPPLIER\tDATE\tSTATUS\tTOTAL")
					for _, o := range page.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
							o.ID, o.OrderNumber, o.SupplierName, o.OrderDate, o.Status, money.FormatRupiah(&o.TotalAmount))
					}
					w.Flush()
					fmt.Printf("%d of %d order(s)\n", len(page.Results), page.Count)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a purchase order",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "supplier", Required: true},
					&cli.StringFlag{Name: "date", Required: true, Usage: "Order date, YYYY-MM-DD"},
					&cli.StringSliceFlag{Name: "item", Usage: "Line as product:qty:price[:discount]"},
					&cli.StringFlag{Name: "discount", Usage: "Order discount percent"},
					&cli.StringFlag{Name: "tax", Usage: "Tax percent"},
					&cli.StringFlag{Name: "shipping", Usage: "Shipping cost"},
					&cli.StringFlag{Name: "notes"},
				},
				Action: transitionAction(func(svc *service.PurchaseOrderService, c *cli.Context) (service.PurchaseOrderView, error) {
					items, err := parseOrderItems(c.StringSlice("item"))
					if err != nil {
						return service.PurchaseOrderView{}, err
					}
					discount, err := decimalFlagValue(c, "discount")
					if err != nil {
						return service.PurchaseOrderView{}, err
					}
					tax, err := decimalFlagValue(c, "tax")
					if err != nil {
						return service.PurchaseOrderView{}, err
					}
					shipping, err := decimalFlagValue(c, "shipping")
					if err != nil {
						return service.PurchaseOrderView{}, err
					}
					return svc.Create(c.Context, repository.PurchaseOrderInput{
						SupplierID:         c.Int64("supplier"),
						OrderDate:          c.String("date"),
						DiscountPercentage: discount,
						TaxPercentage:      tax,
						ShippingCost:       shipping,
						Notes:              c.String("notes"),
						Items:              items,
					})
				}),
			},
			{
				Name:  "submit",
				Usage: "Submit a draft order for approval",
				Flags: []cli.Flag{newIDFlag("Purchase order ID")},
				Action: transitionAction(func(svc *service.PurchaseOrderService, c *cli.Context) (service.PurchaseOrderView, error) {
					return svc.Submit(c.Context, c.Int64("id"))
				}),
			},
			{
				Name:  "approve",
				Usage: "Approve a submitted order",
				Flags: []cli.Flag{newIDFlag("Purchase order ID")},
				Action: transitionAction(func(svc *service.PurchaseOrderService, c *cli.Context) (service.PurchaseOrderView, error) {
					return svc.Approve(c.Context, c.Int64("id"))
				}),
			},
			{
				Name:  "receive",
				Usage: "Receive goods for an approved order and raise the bill",
				Flags: []cli.Flag{newIDFlag("Purchase order ID")},
				Action: transitionAction(func(svc *service.PurchaseOrderService, c *cli.Context) (service.PurchaseOrderView, error) {
					return svc.Receive(c.Context, c.Int64("id"))
				}),
			},
			{
				Name:  "pay",
				Usage: "Pay a supplier bill",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "bill", Required: true},
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "date", Required: true, Usage: "Payment date, YYYY-MM-DD"},
					&cli.StringFlag{Name: "method", Value: "TRANSFER"},
					&cli.StringFlag{Name: "reference"},
				},
				Action: func(c *cli.Context) error {
					amount, err := decimalFlagValue(c, "amount")
					if err != nil {
						return err
					}
					bills, err := state(c).purchaseOrders().PayBill(c.Context, repository.SupplierPaymentInput{
						BillID:      c.Int64("bill"),
						Amount:      amount,
						PaymentDate: c.String("date"),
						Method:      c.String("method"),
						Reference:   c.String("reference"),
					})
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tBILL\tSTATUS\tBALANCE")
					for _, b := range bills.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", b.ID, b.BillNumber, b.Status, money.FormatRupiah(&b.Balance))
					}
					w.Flush()
					return nil
				},
			},
		},
	}
}

func billsCommand() *cli.Command {
	return &cli.Command{
		Name:   "bills",
		Usage:  "List supplier bills",
		Before: requireAuth,
		Flags:  append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
		Action: func(c *cli.Context) error {
			page, err := state(c).purchasing.ListBills(c.Context, listOptions(c))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBILL\tSUPPLIER\tDUE\tSTATUS\tBALANCE")
			for _, b := range page.Results {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					b.ID, b.BillNumber, b.SupplierName, b.DueDate, b.Status, money.FormatRupiah(&b.Balance))
			}
			w.Flush()
			return nil
		},
	}
}
