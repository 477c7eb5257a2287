package pricing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountAmountFixed(t *testing.T) {
	d := &entity.Discount{
		Type:  enum.DiscountTypeFixed,
		Value: decimal.NewFromFloat(5.50),
	}

	assert.Equal(t, int64(550), pricing.DiscountAmount(10000, d))
}

func TestDiscountAmountPercentage(t *testing.T) {
	d := &entity.Discount{
		Type:  enum.DiscountTypePercentage,
		Value: decimal.NewFromInt(10),
	}

	assert.Equal(t, int64(1000), pricing.DiscountAmount(10000, d))
}

func TestDiscountAmountClampedToMax(t *testing.T) {
	maxAmount := int64(500)
	d := &entity.Discount{
		Type:              enum.DiscountTypePercentage,
		Value:             decimal.NewFromInt(10),
		MaxDiscountAmount: &maxAmount,
	}

	assert.Equal(t, int64(500), pricing.DiscountAmount(10000, d))

	// Under the cap the raw percentage applies.
	assert.Equal(t, int64(400), pricing.DiscountAmount(4000, d))
}

func TestAggregateDiscountsSumsAllSelected(t *testing.T) {
	discounts := []entity.Discount{
		{Type: enum.DiscountTypePercentage, Value: decimal.NewFromInt(10)},
		{Type: enum.DiscountTypeFixed, Value: decimal.NewFromInt(2)},
	}

	// 10% of 100.00 plus a flat 2.00
	assert.Equal(t, int64(1200), pricing.AggregateDiscounts(10000, discounts))
}

func TestAggregateTaxesOrderAndComposition(t *testing.T) {
	taxes := []entity.TaxType{
		{Name: "Service", Value: decimal.NewFromInt(5), IsPercentage: true, CalculationOrder: 2},
		{Name: "VAT", Value: decimal.NewFromInt(10), IsPercentage: true, CalculationOrder: 1},
		{Name: "Levy", Value: decimal.NewFromFloat(1.50), IsPercentage: false, CalculationOrder: 3},
	}

	result := pricing.AggregateTaxes(10000, taxes)

	// Each percentage applies to the subtotal alone, never to accrued tax:
	// 10% + 5% of 100.00 plus a flat 1.50.
	assert.Equal(t, int64(1650), result.Amount)
	// Aggregate percentage excludes the fixed tax.
	assert.True(t, result.AggregatePercentage.Equal(decimal.NewFromInt(15)),
		"aggregate percentage = %s", result.AggregatePercentage)
}

func TestLineAmountIncludesModifiers(t *testing.T) {
	line := &entity.TransactionProduct{
		Quantity:     3,
		SellingPrice: 1000,
		Modifiers: []entity.TransactionProductModifier{
			{Name: "Extra shot", ExtraPrice: 50},
			{Name: "Large", ExtraPrice: 100},
		},
	}

	// (10.00 + 0.50 + 1.00) × 3
	assert.Equal(t, int64(3450), pricing.LineAmount(line))
}

func TestComputeTotals(t *testing.T) {
	lines := []entity.TransactionProduct{
		{
			Quantity:      2,
			SellingPrice:  1000,
			VatPercentage: decimal.NewFromInt(10),
		},
		{
			Quantity:      1,
			SellingPrice:  2000,
			VatPercentage: decimal.Zero,
			Modifiers: []entity.TransactionProductModifier{
				{Name: "Gift wrap", ExtraPrice: 500},
			},
		},
	}
	discounts := []entity.Discount{
		{Type: enum.DiscountTypePercentage, Value: decimal.NewFromInt(10)},
	}
	taxes := []entity.TaxType{
		{Name: "Service", Value: decimal.NewFromInt(5), IsPercentage: true},
	}

	totals := pricing.ComputeTotals(lines, discounts, taxes)

	// Lines: 2×10.00 = 20.00 and 1×(20.00+5.00) = 25.00
	assert.Equal(t, int64(4500), totals.SubTotal)
	// 10% of subtotal
	assert.Equal(t, int64(450), totals.TotalDiscount)
	// Line VAT 10% of 20.00 plus service tax 5% of 45.00
	assert.Equal(t, int64(425), totals.TotalVat)
	// 45.00 − 4.50 + 4.25
	assert.Equal(t, int64(4475), totals.Total)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := pricing.ComputeTotals(nil, nil, nil)

	assert.Equal(t, int64(0), totals.SubTotal)
	assert.Equal(t, int64(0), totals.Total)
}

func TestCoversProduct(t *testing.T) {
	productID := uuid.New()
	categoryID := uuid.New()
	otherCategory := uuid.New()
	product := &entity.Product{ID: productID, CategoryID: &categoryID}

	tests := []struct {
		name     string
		discount entity.Discount
		want     bool
	}{
		{"shop wide", entity.Discount{ApplicableOn: enum.DiscountScopeShop}, true},
		{"matching product", entity.Discount{ApplicableOn: enum.DiscountScopeProduct, ProductID: &productID}, true},
		{"matching category", entity.Discount{ApplicableOn: enum.DiscountScopeCategory, CategoryID: &categoryID}, true},
		{"other category", entity.Discount{ApplicableOn: enum.DiscountScopeCategory, CategoryID: &otherCategory}, false},
		{"customer scoped", entity.Discount{ApplicableOn: enum.DiscountScopeCustomer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.CoversProduct(&tt.discount, product))
		})
	}
}
