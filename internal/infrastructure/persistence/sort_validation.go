package persistence

import (
	"fmt"
	"strings"

	"github.com/grocery/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// OrderClause builds a whitelisted ORDER BY clause for a filter
func OrderClause(filter shared.Filter, allowedFields map[string]bool) string {
	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	return fmt.Sprintf("%s %s", field, ValidateSortOrder(filter.OrderDir))
}

// GrocerySortFields contains allowed sort fields for groceries
var GrocerySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
	"quantity":   true,
}

// OrderSortFields contains allowed sort fields for orders.
// Orders are always listed newest first; only created_at is accepted.
var OrderSortFields = map[string]bool{
	"created_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"role":       true,
}
