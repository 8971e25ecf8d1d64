package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name  string
		input TotalsInput
		want  map[string]string
	}{
		{
			name: "plain subtotal, no charges",
			input: TotalsInput{
				Lines: []TotalLine{
					{Quantity: dec("2"), UnitPrice: dec("150000")},
					{Quantity: dec("1"), UnitPrice: dec("75000")},
				},
			},
			want: map[string]string{"subtotal": "375000", "total": "375000"},
		},
		{
			name: "line discount applied before order discount",
			input: TotalsInput{
				Lines: []TotalLine{
					{Quantity: dec("10"), UnitPrice: dec("10000"), DiscountPercentage: dec("10")},
				},
				DiscountPercentage: dec("5"),
			},
			want: map[string]string{"subtotal": "90000", "discount": "4500", "total": "85500"},
		},
		{
			name: "full pipeline: discount, tax, shipping, down payment",
			input: TotalsInput{
				Lines: []TotalLine{
					{Quantity: dec("4"), UnitPrice: dec("250000")},
				},
				DiscountPercentage: dec("10"),
				TaxPercentage:      dec("11"),
				ShippingCost:       dec("50000"),
				DownPayments:       []decimal.Decimal{dec("200000"), dec("100000")},
			},
			// 1000000 -> -10% = 900000 -> +11% = 999000 -> +50000 -> -300000
			want: map[string]string{
				"subtotal": "1000000",
				"discount": "100000",
				"taxable":  "900000",
				"tax":      "99000",
				"total":    "749000",
			},
		},
		{
			name:  "empty order",
			input: TotalsInput{ShippingCost: dec("25000")},
			want:  map[string]string{"subtotal": "0", "total": "25000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.input)
			checks := map[string]decimal.Decimal{
				"subtotal": got.Subtotal,
				"discount": got.DiscountAmount,
				"taxable":  got.TaxableAmount,
				"tax":      got.TaxAmount,
				"total":    got.Total,
			}
			for field, want := range tt.want {
				if !checks[field].Equal(dec(want)) {
					t.Errorf("%s = %s, want %s", field, checks[field], want)
				}
			}
		})
	}
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	lines := []TotalLine{
		{Quantity: dec("3"), UnitPrice: dec("19999")},
		{Quantity: dec("7"), UnitPrice: dec("1250"), DiscountPercentage: dec("2.5")},
		{Quantity: dec("1"), UnitPrice: dec("999999")},
	}
	reversed := []TotalLine{lines[2], lines[1], lines[0]}

	in := TotalsInput{
		Lines:              lines,
		DiscountPercentage: dec("7"),
		TaxPercentage:      dec("11"),
		ShippingCost:       dec("15000"),
	}
	forward := ComputeTotals(in)

	in.Lines = reversed
	backward := ComputeTotals(in)

	if !forward.Total.Equal(backward.Total) {
		t.Errorf("total depends on line order: %s vs %s", forward.Total, backward.Total)
	}
	if !forward.Subtotal.Equal(backward.Subtotal) {
		t.Errorf("subtotal depends on line order: %s vs %s", forward.Subtotal, backward.Subtotal)
	}
}

func TestSalesOrderTotalsSkipsForeignDownPayments(t *testing.T) {
	order := SalesOrder{
		ID: 7,
		Items: []SalesOrderItem{
			{Quantity: dec("2"), UnitPrice: dec("500000")},
		},
	}
	dps := []DownPayment{
		{SalesOrderID: 7, Amount: dec("100000"), Status: DocPaid},
		{SalesOrderID: 8, Amount: dec("999999"), Status: DocPaid},
		{SalesOrderID: 7, Amount: dec("50000"), Status: DocCancelled},
	}

	got := SalesOrderTotals(order, dps)
	if !got.DownPayment.Equal(dec("100000")) {
		t.Errorf("down payment = %s, want 100000", got.DownPayment)
	}
	if !got.Total.Equal(dec("900000")) {
		t.Errorf("total = %s, want 900000", got.Total)
	}
}

func TestStatusTransitions(t *testing.T) {
	if !AssemblyDraft.CanTransition(AssemblyPlanned) {
		t.Error("DRAFT -> PLANNED should be allowed")
	}
	if AssemblyDraft.CanTransition(AssemblyCompleted) {
		t.Error("DRAFT -> COMPLETED should be rejected")
	}
	if !AssemblyOnHold.CanTransition(AssemblyInProgress) {
		t.Error("ON_HOLD -> IN_PROGRESS should be allowed")
	}
	if AssemblyCompleted.CanTransition(AssemblyCancelled) {
		t.Error("COMPLETED is terminal")
	}

	if !OrderConfirmed.CanTransition(OrderApproved) {
		t.Error("CONFIRMED -> APPROVED should be allowed")
	}
	if OrderDelivered.CanTransition(OrderDraft) {
		t.Error("DELIVERED -> DRAFT should be rejected")
	}
	if !OrderDelivered.Terminal() {
		t.Error("DELIVERED should be terminal")
	}
}

func TestParseMovementType(t *testing.T) {
	if mt, ok := ParseMovementType("receipt"); !ok || mt != MovementReceipt {
		t.Errorf("ParseMovementType(receipt) = %v, %v", mt, ok)
	}
	if _, ok := ParseMovementType("TELEPORT"); ok {
		t.Error("unknown movement type should not parse")
	}
}
