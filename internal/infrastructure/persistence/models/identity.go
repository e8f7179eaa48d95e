package models

import (
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	AuditModel
	SoftDeleteModel
	Name         string        `gorm:"type:varchar(100);not null"`
	Email        string        `gorm:"type:varchar(200);not null"`
	PasswordHash string        `gorm:"column:password;type:varchar(255);not null"`
	Phone        string        `gorm:"type:varchar(50)"`
	Address      string        `gorm:"type:varchar(500)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Audit: shared.Audit{
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		},
		SoftDelete:   shared.SoftDelete{DeletedAt: m.DeletedAt},
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Address:      m.Address,
		Role:         m.Role,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.CreatedBy = u.CreatedBy
	m.UpdatedBy = u.UpdatedBy
	m.DeletedAt = u.DeletedAt
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Phone = u.Phone
	m.Address = u.Address
	m.Role = u.Role
}

// UserModelFromDomain creates a new persistence model from domain entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// RolePermissionModel is one row of the role to permission mapping.
type RolePermissionModel struct {
	Role       identity.Role `gorm:"type:varchar(20);primaryKey"`
	Permission string        `gorm:"type:varchar(50);primaryKey"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}
