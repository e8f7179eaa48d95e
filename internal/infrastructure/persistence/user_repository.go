package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error
}

// Update updates an existing user with an optimistic lock
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]any{
			"name":       user.Name,
			"email":      user.Email,
			"password":   user.PasswordHash,
			"phone":      user.Phone,
			"address":    user.Address,
			"role":       user.Role,
			"updated_by": user.UpdatedBy,
			"deleted_at": user.DeletedAt,
			"version":    user.Version + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.Withf("User %s was modified by another request", user.ID)
	}

	user.Version++
	user.UpdatedAt = now
	return nil
}

// FindByID finds an active user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Scopes(NotDeleted).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, shared.ErrNotFound.Withf("User %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an active user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Scopes(NotDeleted).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, shared.ErrNotFound.Withf("User not found"))
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an active user already uses the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Scopes(NotDeleted).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll returns one page of active users
func (r *GormUserRepository) FindAll(ctx context.Context, query identity.UserQuery) ([]identity.User, error) {
	var rows []models.UserModel
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.UserModel{}), query).
		Scopes(Paginate(query.Filter)).
		Order(OrderClause(query.Filter, UserSortFields)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, nil
}

// Count counts active users matching the query
func (r *GormUserRepository) Count(ctx context.Context, query identity.UserQuery) (int64, error) {
	var count int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.UserModel{}), query).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormUserRepository) applyQuery(db *gorm.DB, query identity.UserQuery) *gorm.DB {
	db = db.Scopes(NotDeleted)
	if query.ID != nil {
		db = db.Where("id = ?", *query.ID)
	}
	return db
}

// GormPermissionRepository implements PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// FindByRole returns the permission codes granted to a role
func (r *GormPermissionRepository) FindByRole(ctx context.Context, role identity.Role) ([]string, error) {
	var permissions []string
	if err := r.db.WithContext(ctx).
		Model(&models.RolePermissionModel{}).
		Where("role = ?", role).
		Order("permission").
		Pluck("permission", &permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// Seed inserts the default role to permission mapping, skipping rows that exist
func (r *GormPermissionRepository) Seed(ctx context.Context) error {
	rows := make([]models.RolePermissionModel, 0)
	for role, permissions := range identity.DefaultPermissions {
		for _, p := range permissions {
			rows = append(rows, models.RolePermissionModel{Role: role, Permission: p})
		}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// Ensure the repositories implement their domain interfaces
var (
	_ identity.UserRepository       = (*GormUserRepository)(nil)
	_ identity.PermissionRepository = (*GormPermissionRepository)(nil)
)
