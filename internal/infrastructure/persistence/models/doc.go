// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: shared columns (id, timestamps, version, audit, soft delete)
//   - grocery.go: groceries table
//   - order.go: orders and order_items tables
//   - identity.go: users and role_permissions tables
package models
