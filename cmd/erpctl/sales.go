// cmd/erpctl/sales.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/acippicacipa/orchid-erp-sub001/internal/service"
	"github.com/acippicacipa/orchid-erp-sub001/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

// parseOrderItems parses repeated --item values of the form
// product:qty:price[:discount%].
func parseOrderItems(raw []string) ([]repository.OrderItemInput, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one --item is required")
	}
	items := make([]repository.OrderItemInput, 0, len(raw))
	for _, spec := range raw {
		parts := strings.Split(spec, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, fmt.Errorf("invalid item %q, want product:qty:price[:discount]", spec)
		}
		productID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product in %q: %w", spec, err)
		}
		qty, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", spec, err)
		}
		price, err := decimal.NewFromString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid price in %q: %w", spec, err)
		}
		item := repository.OrderItemInput{ProductID: productID, Quantity: qty, UnitPrice: price}
		if len(parts) == 4 {
			if item.DiscountPercentage, err = decimal.NewFromString(parts[3]); err != nil {
				return nil, fmt.Errorf("invalid discount in %q: %w", spec, err)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func decimalFlagValue(c *cli.Context, name string) (decimal.Decimal, error) {
	v := c.String(name)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func printSalesOrders(page client.Page[domain.SalesOrder]) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORDER\tCUSTOMER\tDATE\tSTATUS\tTOTAL")
	for _, o := range page.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.OrderNumber, o.CustomerName, o.OrderDate, o.Status, money.FormatRupiah(&o.TotalAmount))
	}
	w.Flush()
	fmt.Printf("%d of %d order(s)\n", len(page.Results), page.Count)
}

func customersCommand() *cli.Command {
	return &cli.Command{
		Name:   "customers",
		Usage:  "Browse and manage customers",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List customers",
				Flags: append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
				Action: func(c *cli.Context) error {
					page, err := state(c).sales.ListCustomers(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tCODE\tNAME\tPHONE")
					for _, cust := range page.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", cust.ID, cust.Code, cust.Name, cust.Phone)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a customer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: func(c *cli.Context) error {
					customer, err := state(c).sales.CreateCustomer(c.Context, repository.CustomerInput{
						Name:    c.String("name"),
						Email:   c.String("email"),
						Phone:   c.String("phone"),
						Address: c.String("address"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created customer %d (%s)\n", customer.ID, customer.Code)
					return nil
				},
			},
		},
	}
}

func salesOrdersCommand() *cli.Command {
	transitionAction := func(run func(*service.SalesOrderService, *cli.Context) (service.SalesOrderView, error)) cli.ActionFunc {
		return func(c *cli.Context) error {
			view, err := run(state(c).salesOrders(), c)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is %s\n", view.Order.OrderNumber, view.Order.Status)
			printSalesOrders(view.Orders)
			return nil
		}
	}

	return &cli.Command{
		Name:   "sales",
		Usage:  "Manage sales orders",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List sales orders",
				Flags: append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
				Action: func(c *cli.Context) error {
					page, err := state(c).sales.ListSalesOrders(c.Context, listOptions(c))
					if err != nil {
						return err
					}
					printSalesOrders(page)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Show one sales order with its totals breakdown",
				Flags: []cli.Flag{newIDFlag("Sales order ID")},
				Action: func(c *cli.Context) error {
					order, err := state(c).sales.GetSalesOrder(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					fmt.Printf("%s  %s  %s\n", order.OrderNumber, order.CustomerName, order.Status)
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "SKU\tNAME\tQTY\tPRICE\tLINE TOTAL")
					for _, item := range order.Items {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
							item.ProductSKU, item.ProductName, item.Quantity,
							money.FormatRupiah(&item.UnitPrice), money.FormatRupiah(&item.LineTotal))
					}
					w.Flush()
					fmt.Printf("Subtotal: %s\n", money.FormatRupiah(&order.Subtotal))
					if order.DownPaymentAmount.IsPositive() {
						fmt.Printf("Down payment: %s\n", money.FormatRupiah(&order.DownPaymentAmount))
					}
					fmt.Printf("Total: %s\n", money.FormatRupiah(&order.TotalAmount))
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a sales order",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "customer", Required: true},
					&cli.StringFlag{Name: "date", Required: true, Usage: "Order date, YYYY-MM-DD"},
					&cli.StringSliceFlag{Name: "item", Usage: "Line as product:qty:price[:discount]"},
					&cli.StringFlag{Name: "discount", Usage: "Order discount percent"},
					&cli.StringFlag{Name: "tax", Usage: "Tax percent"},
					&cli.StringFlag{Name: "shipping", Usage: "Shipping cost"},
					&cli.StringFlag{Name: "notes"},
				},
				Action: transitionAction(func(svc *service.SalesOrderService, c *cli.Context) (service.SalesOrderView, error) {
					items, err := parseOrderItems(c.StringSlice("item"))
					if err != nil {
						return service.SalesOrderView{}, err
					}
					discount, err := decimalFlagValue(c, "discount")
					if err != nil {
						return service.SalesOrderView{}, err
					}
					tax, err := decimalFlagValue(c, "tax")
					if err != nil {
						return service.SalesOrderView{}, err
					}
					shipping, err := decimalFlagValue(c, "shipping")
					if err != nil {
						return service.SalesOrderView{}, err
					}
					return svc.Create(c.Context, repository.SalesOrderInput{
						CustomerID:         c.Int64("customer"),
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
				Name:  "confirm",
				Usage: "Confirm a pending order, reserving stock",
				Flags: []cli.Flag{newIDFlag("Sales order ID")},
				Action: transitionAction(func(svc *service.SalesOrderService, c *cli.Context) (service.SalesOrderView, error) {
					return svc.Confirm(c.Context, c.Int64("id"))
				}),
			},
			{
				Name:  "approve",
				Usage: "Approve a confirmed order, issuing its invoice",
				Flags: []cli.Flag{newIDFlag("Sales order ID")},
				Action: transitionAction(func(svc *service.SalesOrderService, c *cli.Context) (service.SalesOrderView, error) {
					return svc.Approve(c.Context, c.Int64("id"))
				}),
			},
			{
				Name:  "deliver",
				Usage: "Create the delivery order for an approved order",
				Flags: []cli.Flag{newIDFlag("Sales order ID")},
				Action: transitionAction(func(svc *service.SalesOrderService, c *cli.Context) (service.SalesOrderView, error) {
					return svc.Deliver(c.Context, c.Int64("id"))
				}),
			},
			{
				Name:  "cancel",
				Usage: "Cancel an open order",
				Flags: []cli.Flag{newIDFlag("Sales order ID")},
				Action: transitionAction(func(svc *service.SalesOrderService, c *cli.Context) (service.SalesOrderView, error) {
					return svc.Cancel(c.Context, c.Int64("id"))
				}),
			},
			{
				Name:  "down-payment",
				Usage: "Record a customer prepayment against an order",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "order", Required: true},
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "date", Required: true, Usage: "Payment date, YYYY-MM-DD"},
				},
				Action: func(c *cli.Context) error {
					amount, err := decimalFlagValue(c, "amount")
					if err != nil {
						return err
					}
					order, err := state(c).salesOrders().RecordDownPayment(c.Context, repository.DownPaymentInput{
						SalesOrderID: c.Int64("order"),
						Amount:       amount,
						PaymentDate:  c.String("date"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Order %s outstanding total is now %s\n", order.OrderNumber, money.FormatRupiah(&order.TotalAmount))
					return nil
				},
			},
			{
				Name:  "return",
				Usage: "Record a return against a delivered order",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "order", Required: true},
					&cli.StringFlag{Name: "date", Required: true, Usage: "Return date, YYYY-MM-DD"},
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.StringFlag{Name: "qty", Required: true},
					&cli.StringFlag{Name: "reason"},
				},
				Action: func(c *cli.Context) error {
					qty, err := decimalFlagValue(c, "qty")
					if err != nil {
						return err
					}
					ret, err := state(c).sales.CreateSalesReturn(c.Context, repository.SalesReturnInput{
						SalesOrderID: c.Int64("order"),
						ReturnDate:   c.String("date"),
						Items: []repository.SalesReturnItemInput{
							{ProductID: c.Int64("product"), Quantity: qty, Reason: c.String("reason")},
						},
					})
					if err != nil {
						return err
					}
					fmt.Printf("Recorded return %s\n", ret.ReturnNumber)
					return nil
				},
			},
		},
	}
}

func invoicesCommand() *cli.Command {
	return &cli.Command{
		Name:   "invoices",
		Usage:  "List customer invoices",
		Before: requireAuth,
		Flags:  append([]cli.Flag{newSearchFlag()}, newPagingFlags()...),
		Action: func(c *cli.Context) error {
			page, err := state(c).sales.ListInvoices(c.Context, listOptions(c))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tINVOICE\tCUSTOMER\tDUE\tSTATUS\tBALANCE")
			for _, inv := range page.Results {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					inv.ID, inv.InvoiceNumber, inv.CustomerName, inv.DueDate, inv.Status, money.FormatRupiah(&inv.Balance))
			}
			w.Flush()
			return nil
		},
	}
}
