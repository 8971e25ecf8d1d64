package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "zero", amount: 0, want: "Rp 0"},
		{name: "under one group", amount: 999, want: "Rp 999"},
		{name: "exactly one thousand", amount: 1000, want: "Rp 1.000"},
		{name: "one million", amount: 1000000, want: "Rp 1.000.000"},
		{name: "uneven grouping", amount: 12345678, want: "Rp 12.345.678"},
		{name: "rounds decimals away", amount: 1500.75, want: "Rp 1.501"},
		{name: "negative", amount: -250000, want: "-Rp 250.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRupiahFloat(tt.amount)
			if got != tt.want {
				t.Errorf("FormatRupiahFloat(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatRupiahNil(t *testing.T) {
	if got := FormatRupiah(nil); got != "Rp 0" {
		t.Errorf("FormatRupiah(nil) = %q, want %q", got, "Rp 0")
	}

	d := decimal.NewFromInt(2500000)
	if got := FormatRupiah(&d); got != "Rp 2.500.000" {
		t.Errorf("FormatRupiah(2500000) = %q, want %q", got, "Rp 2.500.000")
	}
}
