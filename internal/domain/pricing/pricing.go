// Package pricing computes bill totals from cart lines, user-selected
// discounts and configured taxes. Everything here is a pure function over
// entities; callers recompute totals explicitly after any cart mutation.
package pricing

import (
	"sort"

	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Totals is the monetary summary of a cart. All amounts are in cents.
type Totals struct {
	SubTotal      int64
	TotalDiscount int64
	TotalVat      int64
	Total         int64
}

// percentOf returns amount × pct / 100, rounded to whole cents.
func percentOf(amount int64, pct decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(pct).Div(oneHundred).Round(0).IntPart()
}

// VatAmount returns the VAT accrued on an amount at the given rate, rounded
// to whole cents.
func VatAmount(amount int64, pct decimal.Decimal) int64 {
	return percentOf(amount, pct)
}

// DiscountAmount computes the effect of a single discount on a subtotal:
// the raw value for fixed discounts, a percentage of the subtotal clamped to
// MaxDiscountAmount for percentage discounts.
func DiscountAmount(subtotal int64, d *entity.Discount) int64 {
	if d.Type == enum.DiscountTypeFixed {
		return d.Value.Mul(oneHundred).Round(0).IntPart()
	}
	amount := percentOf(subtotal, d.Value)
	if d.MaxDiscountAmount != nil && amount > *d.MaxDiscountAmount {
		amount = *d.MaxDiscountAmount
	}
	return amount
}

// AggregateDiscounts sums the effect of the user-selected discounts. There is
// no implicit best-discount selection; every selected discount applies.
func AggregateDiscounts(subtotal int64, discounts []entity.Discount) int64 {
	var total int64
	for i := range discounts {
		total += DiscountAmount(subtotal, &discounts[i])
	}
	return total
}

// TaxResult carries the aggregated tax amount and the displayed aggregate
// percentage. The amount is authoritative; the percentage is informational
// only (fixed taxes contribute to the amount but not to the percentage).
type TaxResult struct {
	Amount              int64
	AggregatePercentage decimal.Decimal
}

// AggregateTaxes evaluates the selected taxes in ascending CalculationOrder.
// Percentage taxes apply against the subtotal; fixed taxes add a flat amount.
// Taxes are never compounded on previously accrued tax.
func AggregateTaxes(subtotal int64, taxes []entity.TaxType) TaxResult {
	ordered := make([]entity.TaxType, len(taxes))
	copy(ordered, taxes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CalculationOrder < ordered[j].CalculationOrder
	})

	result := TaxResult{AggregatePercentage: decimal.Zero}
	for _, tax := range ordered {
		if tax.IsPercentage {
			result.Amount += percentOf(subtotal, tax.Value)
			result.AggregatePercentage = result.AggregatePercentage.Add(tax.Value)
		} else {
			result.Amount += tax.Value.Mul(oneHundred).Round(0).IntPart()
		}
	}
	return result
}

// LineAmount returns the line total in cents: unit price (selling price plus
// modifier extras) times quantity.
func LineAmount(line *entity.TransactionProduct) int64 {
	return line.UnitPrice() * int64(line.Quantity)
}

// ComputeTotals derives the full monetary summary of a cart. VAT is the sum
// of each line's recorded rate applied to its amount, plus the aggregate of
// the selected tax types over the subtotal.
func ComputeTotals(lines []entity.TransactionProduct, discounts []entity.Discount, taxes []entity.TaxType) Totals {
	var totals Totals
	for i := range lines {
		amount := LineAmount(&lines[i])
		totals.SubTotal += amount
		totals.TotalVat += percentOf(amount, lines[i].VatPercentage)
	}

	totals.TotalDiscount = AggregateDiscounts(totals.SubTotal, discounts)
	totals.TotalVat += AggregateTaxes(totals.SubTotal, taxes).Amount
	totals.Total = totals.SubTotal - totals.TotalDiscount + totals.TotalVat
	return totals
}

// CoversProduct reports whether a discount definition reaches the given
// product: shop-wide discounts cover every product, product and category
// scoped discounts cover their target, customer discounts attach to no
// particular product.
func CoversProduct(d *entity.Discount, p *entity.Product) bool {
	switch d.ApplicableOn {
	case enum.DiscountScopeShop:
		return true
	case enum.DiscountScopeProduct:
		return d.ProductID != nil && *d.ProductID == p.ID
	case enum.DiscountScopeCategory:
		return d.CategoryID != nil && p.CategoryID != nil && *d.CategoryID == *p.CategoryID
	}
	return false
}
