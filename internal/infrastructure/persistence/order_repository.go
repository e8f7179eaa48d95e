package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an active order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Scopes(NotDeleted).
		Preload("Items", NotDeleted).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, shared.ErrNotFound.Withf("Order %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of orders with their items, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, query order.Query) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.OrderModel{}), query).
		Preload("Items", NotDeleted).
		Scopes(Paginate(query.Filter)).
		Order(OrderClause(query.Filter, OrderSortFields)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the query, ignoring pagination
func (r *GormOrderRepository) Count(ctx context.Context, query order.Query) (int64, error) {
	var count int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.OrderModel{}), query).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts the order and all of its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	db := r.db.WithContext(ctx)

	if err := db.Omit("Items").Create(model).Error; err != nil {
		return err
	}
	if len(model.Items) == 0 {
		return nil
	}
	return db.Create(&model.Items).Error
}

// Update persists status, audit and soft-delete state.
// The row must still carry the version the order was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	now := time.Now()
	db := r.db.WithContext(ctx)

	result := db.Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]any{
			"status":     o.Status,
			"updated_by": o.UpdatedBy,
			"deleted_at": o.DeletedAt,
			"version":    o.Version + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.Withf("Order %s was modified by another request", o.ID)
	}

	if o.DeletedAt != nil {
		if err := db.Model(&models.OrderItemModel{}).
			Scopes(NotDeleted).
			Where("order_id = ?", o.ID).
			Update("deleted_at", o.DeletedAt).Error; err != nil {
			return err
		}
	}

	o.Version++
	o.UpdatedAt = now
	return nil
}

func (r *GormOrderRepository) applyQuery(db *gorm.DB, query order.Query) *gorm.DB {
	db = db.Scopes(NotDeleted)
	if query.ID != nil {
		db = db.Where("id = ?", *query.ID)
	}
	if query.OwnerID != nil {
		db = db.Where("created_by = ?", *query.OwnerID)
	}
	return db
}

// GormOrderItemRepository implements OrderItemRepository using GORM
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewGormOrderItemRepository creates a new GormOrderItemRepository
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// FindByID finds an active order item
func (r *GormOrderItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.OrderItem, error) {
	var model models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Scopes(NotDeleted).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, shared.ErrNotFound.Withf("Order item %s not found", id))
	}
	return model.ToDomain(), nil
}

// Ensure the repositories implement their domain interfaces
var (
	_ order.OrderRepository     = (*GormOrderRepository)(nil)
	_ order.OrderItemRepository = (*GormOrderItemRepository)(nil)
)
