package models

import (
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/shared"
)

// GroceryModel is the persistence model for the Grocery domain entity.
type GroceryModel struct {
	AggregateModel
	AuditModel
	SoftDeleteModel
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Price       int64  `gorm:"not null;default:0"`
	Quantity    int64  `gorm:"not null;default:0"`
	ImageURL    string `gorm:"column:image_url;type:varchar(500)"`
}

// TableName returns the table name for GORM
func (GroceryModel) TableName() string {
	return "groceries"
}

// ToDomain converts the persistence model to a domain Grocery entity.
func (m *GroceryModel) ToDomain() *catalog.Grocery {
	return &catalog.Grocery{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Audit: shared.Audit{
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		},
		SoftDelete:  shared.SoftDelete{DeletedAt: m.DeletedAt},
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		ImageURL:    m.ImageURL,
	}
}

// FromDomain populates the persistence model from a domain Grocery entity.
func (m *GroceryModel) FromDomain(g *catalog.Grocery) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.CreatedBy = g.CreatedBy
	m.UpdatedBy = g.UpdatedBy
	m.DeletedAt = g.DeletedAt
	m.Name = g.Name
	m.Description = g.Description
	m.Price = g.Price
	m.Quantity = g.Quantity
	m.ImageURL = g.ImageURL
}

// GroceryModelFromDomain creates a new persistence model from domain entity.
func GroceryModelFromDomain(g *catalog.Grocery) *GroceryModel {
	m := &GroceryModel{}
	m.FromDomain(g)
	return m
}
