// internal/domain/totals.go
package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// OrderTotals is the breakdown produced by ComputeTotals. Amounts carry full
// decimal precision; rounding to whole rupiah happens only at display time.
type OrderTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	Total          decimal.Decimal `json:"total"`
}

// TotalsInput collects everything that feeds an order total.
type TotalsInput struct {
	Lines              []TotalLine
	DiscountPercentage decimal.Decimal
	TaxPercentage      decimal.Decimal
	ShippingCost       decimal.Decimal
	DownPayments       []decimal.Decimal
}

// TotalLine is the subset of an order item that affects totals.
type TotalLine struct {
	Quantity           decimal.Decimal
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
}

// Total returns the line total after the per-line discount.
func (l TotalLine) Total() decimal.Decimal {
	gross := l.Quantity.Mul(l.UnitPrice)
	return gross.Sub(gross.Mul(l.DiscountPercentage).Div(oneHundred))
}

// ComputeTotals applies charges in a fixed order: subtotal, order discount,
// tax on the discounted amount, shipping added, down payments subtracted.
// The result does not depend on line ordering.
func ComputeTotals(in TotalsInput) OrderTotals {
	subtotal := decimal.Zero
	for _, line := range in.Lines {
		subtotal = subtotal.Add(line.Total())
	}

	discount := subtotal.Mul(in.DiscountPercentage).Div(oneHundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(in.TaxPercentage).Div(oneHundred)

	downPayment := decimal.Zero
	for _, dp := range in.DownPayments {
		downPayment = downPayment.Add(dp)
	}

	return OrderTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		ShippingCost:   in.ShippingCost,
		DownPayment:    downPayment,
		Total:          taxable.Add(tax).Add(in.ShippingCost).Sub(downPayment),
	}
}

// SalesOrderTotals computes the totals breakdown for a sales order draft,
// counting only down payments already applied to the order.
func SalesOrderTotals(order SalesOrder, downPayments []DownPayment) OrderTotals {
	in := TotalsInput{
		DiscountPercentage: order.DiscountPercentage,
		TaxPercentage:      order.TaxPercentage,
		ShippingCost:       order.ShippingCost,
	}
	for _, item := range order.Items {
		in.Lines = append(in.Lines, TotalLine{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
		})
	}
	for _, dp := range downPayments {
		if dp.SalesOrderID == order.ID && dp.Status != DocCancelled {
			in.DownPayments = append(in.DownPayments, dp.Amount)
		}
	}
	return ComputeTotals(in)
}

// PurchaseOrderTotals computes the totals breakdown for a purchase order draft.
func PurchaseOrderTotals(order PurchaseOrder) OrderTotals {
	in := TotalsInput{
		DiscountPercentage: order.DiscountPercentage,
		TaxPercentage:      order.TaxPercentage,
		ShippingCost:       order.ShippingCost,
	}
	for _, item := range order.Items {
		in.Lines = append(in.Lines, TotalLine{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
		})
	}
	return ComputeTotals(in)
}
