package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	SoftDeleteModel
	Status    order.Status     `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedBy uuid.UUID        `gorm:"type:uuid;not null;index"`
	UpdatedBy *uuid.UUID       `gorm:"type:uuid"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SoftDelete:        shared.SoftDelete{DeletedAt: m.DeletedAt},
		Status:            m.Status,
		CreatedBy:         m.CreatedBy,
		UpdatedBy:         m.UpdatedBy,
		Items:             make([]order.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		o.Items[i] = *m.Items[i].ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.DeletedAt = o.DeletedAt
	m.Status = o.Status
	m.CreatedBy = o.CreatedBy
	m.UpdatedBy = o.UpdatedBy
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i].FromDomain(&o.Items[i])
	}
}

// OrderModelFromDomain creates a new persistence model from domain aggregate.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	GroceryID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     int64     `gorm:"not null"`
	PricePerUnit int64     `gorm:"column:price_per_unit;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	DeletedAt    *time.Time
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() *order.OrderItem {
	return &order.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		GroceryID:    m.GroceryID,
		Quantity:     m.Quantity,
		PricePerUnit: m.PricePerUnit,
		CreatedAt:    m.CreatedAt,
		DeletedAt:    m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderItem.
func (m *OrderItemModel) FromDomain(i *order.OrderItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.GroceryID = i.GroceryID
	m.Quantity = i.Quantity
	m.PricePerUnit = i.PricePerUnit
	m.CreatedAt = i.CreatedAt
	m.DeletedAt = i.DeletedAt
}
