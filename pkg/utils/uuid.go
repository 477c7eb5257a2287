package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateInvoiceNo generates a unique invoice number with the given prefix
func GenerateInvoiceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateProductCode generates a product code from the product name
func GenerateProductCode(name string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(name, " ", ""))
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:6])
}
