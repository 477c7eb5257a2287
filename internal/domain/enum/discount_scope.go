package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountScope represents what a discount is applicable on
type DiscountScope int

const (
	DiscountScopeShop     DiscountScope = 0
	DiscountScopeProduct  DiscountScope = 1
	DiscountScopeCategory DiscountScope = 2
	DiscountScopeCustomer DiscountScope = 3
)

var discountScopeNames = [...]string{"Shop", "Product", "Category", "Customer"}

func (s DiscountScope) String() string {
	if int(s) < 0 || int(s) >= len(discountScopeNames) {
		return "Shop"
	}
	return discountScopeNames[s]
}

// ParseDiscountScope converts a scope name to its enum value.
func ParseDiscountScope(name string) (DiscountScope, error) {
	for i, n := range discountScopeNames {
		if n == name {
			return DiscountScope(i), nil
		}
	}
	return DiscountScopeShop, fmt.Errorf("unknown discount scope %q", name)
}

func (s DiscountScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DiscountScope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DiscountScope(i)
		return nil
	}
	for i, name := range discountScopeNames {
		if name == str {
			*s = DiscountScope(i)
			return nil
		}
	}
	return nil
}

func (s DiscountScope) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DiscountScope) Scan(value interface{}) error {
	if value == nil {
		*s = DiscountScopeShop
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DiscountScope(v)
	case int:
		*s = DiscountScope(v)
	}
	return nil
}
