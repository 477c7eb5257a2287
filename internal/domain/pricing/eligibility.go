package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
)

// EligibleProducts filters the products that may receive the discount being
// created or edited. A stackable discount excludes nothing. A non-stackable
// discount excludes any product that already carries a different active
// non-stackable discount, since at most one non-stackable discount may sit on
// a product at a time.
func EligibleProducts(editing *entity.Discount, products []entity.Product, existing []entity.Discount, at time.Time) []entity.Product {
	if editing.IsStackable {
		return products
	}

	blocked := make(map[uuid.UUID]bool)
	for i := range existing {
		d := &existing[i]
		if d.ID == editing.ID || d.IsStackable || !d.ActiveAt(at) {
			continue
		}
		for j := range products {
			if CoversProduct(d, &products[j]) {
				blocked[products[j].ID] = true
			}
		}
	}

	eligible := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if !blocked[p.ID] {
			eligible = append(eligible, p)
		}
	}
	return eligible
}
