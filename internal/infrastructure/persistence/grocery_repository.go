package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormGroceryRepository implements GroceryRepository using GORM
type GormGroceryRepository struct {
	db *gorm.DB
}

// NewGormGroceryRepository creates a new GormGroceryRepository
func NewGormGroceryRepository(db *gorm.DB) *GormGroceryRepository {
	return &GormGroceryRepository{db: db}
}

// FindByID finds a grocery by its ID, including soft-deleted rows
func (r *GormGroceryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Grocery, error) {
	var model models.GroceryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, shared.ErrNotFound.Withf("Grocery %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindActiveByID finds a grocery that has not been soft-deleted
func (r *GormGroceryRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Grocery, error) {
	var model models.GroceryModel
	if err := r.db.WithContext(ctx).
		Scopes(NotDeleted).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, shared.ErrNotFound.Withf("Grocery %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of groceries matching the query
func (r *GormGroceryRepository) FindAll(ctx context.Context, query catalog.GroceryQuery) ([]catalog.Grocery, error) {
	var rows []models.GroceryModel
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.GroceryModel{}), query).
		Scopes(Paginate(query.Filter)).
		Order(OrderClause(query.Filter, GrocerySortFields)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	groceries := make([]catalog.Grocery, len(rows))
	for i := range rows {
		groceries[i] = *rows[i].ToDomain()
	}
	return groceries, nil
}

// Count counts groceries matching the query, ignoring pagination
func (r *GormGroceryRepository) Count(ctx context.Context, query catalog.GroceryQuery) (int64, error) {
	var count int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.GroceryModel{}), query).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new grocery including its opening quantity
func (r *GormGroceryRepository) Create(ctx context.Context, grocery *catalog.Grocery) error {
	model := models.GroceryModelFromDomain(grocery)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists descriptive fields and soft-delete state.
// The row must still carry the version the grocery was loaded with.
func (r *GormGroceryRepository) Update(ctx context.Context, grocery *catalog.Grocery) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.GroceryModel{}).
		Where("id = ? AND version = ?", grocery.ID, grocery.Version).
		Updates(map[string]any{
			"name":        grocery.Name,
			"description": grocery.Description,
			"price":       grocery.Price,
			"image_url":   grocery.ImageURL,
			"updated_by":  grocery.UpdatedBy,
			"deleted_at":  grocery.DeletedAt,
			"version":     grocery.Version + 1,
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.Withf("Grocery %s was modified by another request", grocery.ID)
	}

	grocery.Version++
	grocery.UpdatedAt = now
	return nil
}

func (r *GormGroceryRepository) applyQuery(db *gorm.DB, query catalog.GroceryQuery) *gorm.DB {
	if query.Visibility == catalog.VisibilityPublic {
		db = db.Scopes(NotDeleted).Where("quantity > 0")
	}
	if query.ID != nil {
		db = db.Where("id = ?", *query.ID)
	}
	return db
}

// Ensure GormGroceryRepository implements GroceryRepository
var _ catalog.GroceryRepository = (*GormGroceryRepository)(nil)
