package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = bcrypt.DefaultCost

var (
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	upperRegex        = regexp.MustCompile(`[A-Z]`)
	lowerRegex        = regexp.MustCompile(`[a-z]`)
	specialCharsRegex = regexp.MustCompile(`[!@#$%^&*]`)
)

// User is an account that can sign in and place orders
type User struct {
	shared.BaseAggregateRoot
	shared.Audit
	shared.SoftDelete
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Role         Role
}

// NewUser creates a new user with a hashed password
func NewUser(name, email, password string, role Role, actorID uuid.UUID) (*User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.ErrInvalidInput.Withf("Invalid role %q", role)
	}
	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              role,
	}
	if actorID != uuid.Nil {
		user.CreatedBy = &actorID
	}

	user.AddDomainEvent(NewUserCreatedEvent(user, actorID))

	return user, nil
}

// SetName sets the user's display name
func (u *User) SetName(name string, actorID uuid.UUID) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	u.Name = name
	u.touch(actorID)
	return nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string, actorID uuid.UUID) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	u.Email = email
	u.touch(actorID)
	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string, actorID uuid.UUID) error {
	if len(phone) > 50 {
		return shared.ErrInvalidInput.Withf("Phone cannot exceed 50 characters")
	}
	u.Phone = strings.TrimSpace(phone)
	u.touch(actorID)
	return nil
}

// SetAddress sets the user's delivery address
func (u *User) SetAddress(address string, actorID uuid.UUID) error {
	if len(address) > 500 {
		return shared.ErrInvalidInput.Withf("Address cannot exceed 500 characters")
	}
	u.Address = strings.TrimSpace(address)
	u.touch(actorID)
	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role, actorID uuid.UUID) error {
	if !role.IsValid() {
		return shared.ErrInvalidInput.Withf("Invalid role %q", role)
	}
	u.Role = role
	u.touch(actorID)
	return nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string, actorID uuid.UUID) error {
	passwordHash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = passwordHash
	u.touch(actorID)
	u.AddDomainEvent(NewUserPasswordChangedEvent(u, actorID))
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Delete soft-deletes the user
func (u *User) Delete(actorID uuid.UUID) error {
	if u.IsDeleted() {
		return shared.ErrNotFound.Withf("User %s not found", u.ID)
	}
	u.MarkDeleted(time.Now())
	u.touch(actorID)
	u.AddDomainEvent(NewUserDeletedEvent(u, actorID))
	return nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin returns true if the user can sign in
func (u *User) CanLogin() bool {
	return !u.IsDeleted()
}

func (u *User) touch(actorID uuid.UUID) {
	u.UpdatedAt = time.Now()
	u.Audit.Touch(actorID)
}

// ValidatePassword checks the password policy:
// at least 8 characters with an upper case letter, a lower case letter and one of !@#$%^&*
func ValidatePassword(password string) error {
	if password == "" {
		return shared.ErrInvalidInput.Withf("Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.ErrInvalidInput.Withf("Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.ErrInvalidInput.Withf("Password cannot exceed 72 characters")
	}
	if !upperRegex.MatchString(password) || !lowerRegex.MatchString(password) {
		return shared.ErrInvalidInput.Withf("Password must contain upper and lower case letters")
	}
	if !specialCharsRegex.MatchString(password) {
		return shared.ErrInvalidInput.Withf("Password must contain at least one of !@#$%%^&*")
	}
	return nil
}

// Validation functions

func validateName(name string) error {
	if name == "" {
		return shared.ErrInvalidInput.Withf("Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.ErrInvalidInput.Withf("Name cannot exceed 100 characters")
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.ErrInvalidInput.Withf("Email cannot be empty")
	}
	if len(email) > 200 {
		return "", shared.ErrInvalidInput.Withf("Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return "", shared.ErrInvalidInput.Withf("Invalid email format")
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return string(hash), nil
}
