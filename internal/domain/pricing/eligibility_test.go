package pricing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/pricing"
	"github.com/stretchr/testify/assert"
)

func activeDiscount(scope enum.DiscountScope, stackable bool, at time.Time) entity.Discount {
	return entity.Discount{
		ID:           uuid.New(),
		ApplicableOn: scope,
		IsStackable:  stackable,
		IsActive:     true,
		StartDate:    at.Add(-time.Hour),
		EndDate:      at.Add(time.Hour),
	}
}

func TestEligibleProductsNonStackableExclusion(t *testing.T) {
	now := time.Now()
	productP := entity.Product{ID: uuid.New()}
	productQ := entity.Product{ID: uuid.New()}
	products := []entity.Product{productP, productQ}

	// Discount X: non-stackable, already sits on product P.
	discountX := activeDiscount(enum.DiscountScopeProduct, false, now)
	discountX.ProductID = &productP.ID

	// Discount Y: non-stackable, being created.
	discountY := activeDiscount(enum.DiscountScopeProduct, false, now)

	eligible := pricing.EligibleProducts(&discountY, products, []entity.Discount{discountX}, now)

	assert.Len(t, eligible, 1)
	assert.Equal(t, productQ.ID, eligible[0].ID)
}

func TestEligibleProductsStackableExcludesNothing(t *testing.T) {
	now := time.Now()
	productP := entity.Product{ID: uuid.New()}
	products := []entity.Product{productP}

	discountX := activeDiscount(enum.DiscountScopeProduct, false, now)
	discountX.ProductID = &productP.ID

	stackable := activeDiscount(enum.DiscountScopeShop, true, now)

	eligible := pricing.EligibleProducts(&stackable, products, []entity.Discount{discountX}, now)

	assert.Len(t, eligible, 1)
}

func TestEligibleProductsIgnoresInactiveBlockers(t *testing.T) {
	now := time.Now()
	productP := entity.Product{ID: uuid.New()}
	products := []entity.Product{productP}

	expired := activeDiscount(enum.DiscountScopeProduct, false, now)
	expired.ProductID = &productP.ID
	expired.EndDate = now.Add(-time.Minute)

	discountY := activeDiscount(enum.DiscountScopeProduct, false, now)

	eligible := pricing.EligibleProducts(&discountY, products, []entity.Discount{expired}, now)

	assert.Len(t, eligible, 1)
}

func TestEligibleProductsIgnoresSelfWhenEditing(t *testing.T) {
	now := time.Now()
	productP := entity.Product{ID: uuid.New()}
	products := []entity.Product{productP}

	// Editing a discount must not be blocked by its own existing assignment.
	editing := activeDiscount(enum.DiscountScopeProduct, false, now)
	editing.ProductID = &productP.ID

	eligible := pricing.EligibleProducts(&editing, products, []entity.Discount{editing}, now)

	assert.Len(t, eligible, 1)
}

func TestEligibleProductsShopWideBlockerCoversAll(t *testing.T) {
	now := time.Now()
	products := []entity.Product{{ID: uuid.New()}, {ID: uuid.New()}}

	shopWide := activeDiscount(enum.DiscountScopeShop, false, now)
	discountY := activeDiscount(enum.DiscountScopeProduct, false, now)

	eligible := pricing.EligibleProducts(&discountY, products, []entity.Discount{shopWide}, now)

	assert.Empty(t, eligible)
}
