package invoice

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals are the derived amounts of an invoice.
type Totals struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Gross decimal.Decimal
}

// LineTotal is unit price times quantity less the discount, rounded to cents.
func LineTotal(l LineItem) decimal.Decimal {
	factor := hundred.Sub(l.DiscountPercentage).Div(hundred)

	return l.UnitPrice.Mul(l.Quantity).Mul(factor).Round(2)
}

// CalculateTotals derives net, tax and gross from lines. Tax is rounded once
// over the sum, not per line.
func CalculateTotals(lines []LineItem) Totals {
	net := decimal.Zero
	tax := decimal.Zero

	for _, l := range lines {
		total := LineTotal(l)
		net = net.Add(total)
		tax = tax.Add(total.Mul(l.TaxPercentage).Div(hundred))
	}

	tax = tax.Round(2)

	return Totals{
		Net:   net,
		Tax:   tax,
		Gross: net.Add(tax),
	}
}

// recalculate fills line totals and the invoice totals in place.
func (inv *Invoice) recalculate() {
	for i := range inv.Lines {
		inv.Lines[i].Total = LineTotal(inv.Lines[i])
	}

	t := CalculateTotals(inv.Lines)
	inv.NetTotal = t.Net
	inv.TaxTotal = t.Tax
	inv.GrossTotal = t.Gross
}
