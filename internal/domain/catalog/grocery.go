package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 2000
	maxImageURLLength    = 500
)

var nameCaser = cases.Title(language.Und, cases.NoLower)

// Grocery is an item that can be ordered.
// Quantity is owned by the inventory ledger; the catalog only sets it at creation.
type Grocery struct {
	shared.BaseAggregateRoot
	shared.Audit
	shared.SoftDelete
	Name        string
	Description string
	Price       int64 // minor currency units
	Quantity    int64
	ImageURL    string
}

// NewGrocery creates a new grocery item
func NewGrocery(name, description string, price, quantity int64, imageURL string, actorID uuid.UUID) (*Grocery, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, shared.ErrInvalidInput.Withf("Quantity cannot be negative")
	}
	if err := validateImageURL(imageURL); err != nil {
		return nil, err
	}

	g := &Grocery{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(description),
		Price:             price,
		Quantity:          quantity,
		ImageURL:          strings.TrimSpace(imageURL),
	}
	if actorID != uuid.Nil {
		g.CreatedBy = &actorID
	}

	g.AddDomainEvent(NewGroceryCreatedEvent(g, actorID))

	return g, nil
}

// Rename changes the display name
func (g *Grocery) Rename(name string, actorID uuid.UUID) error {
	if err := g.ensureActive(); err != nil {
		return err
	}
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	g.Name = name
	g.touch(actorID)
	return nil
}

// SetDescription changes the description
func (g *Grocery) SetDescription(description string, actorID uuid.UUID) error {
	if err := g.ensureActive(); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	g.Description = strings.TrimSpace(description)
	g.touch(actorID)
	return nil
}

// ChangePrice sets a new catalog price. Order lines keep the price they captured.
func (g *Grocery) ChangePrice(price int64, actorID uuid.UUID) error {
	if err := g.ensureActive(); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if price == g.Price {
		return nil
	}
	old := g.Price
	g.Price = price
	g.touch(actorID)
	g.AddDomainEvent(NewGroceryPriceChangedEvent(g, old, actorID))
	return nil
}

// SetImageURL changes the image location
func (g *Grocery) SetImageURL(imageURL string, actorID uuid.UUID) error {
	if err := g.ensureActive(); err != nil {
		return err
	}
	if err := validateImageURL(imageURL); err != nil {
		return err
	}
	g.ImageURL = strings.TrimSpace(imageURL)
	g.touch(actorID)
	return nil
}

// Delete soft-deletes the grocery
func (g *Grocery) Delete(actorID uuid.UUID) error {
	if g.IsDeleted() {
		return shared.ErrNotFound.Withf("Grocery %s not found", g.ID)
	}
	now := time.Now()
	g.MarkDeleted(now)
	g.UpdatedAt = now
	g.Audit.Touch(actorID)
	g.AddDomainEvent(NewGroceryDeletedEvent(g, actorID))
	return nil
}

func (g *Grocery) ensureActive() error {
	if g.IsDeleted() {
		return shared.ErrNotFound.Withf("Grocery %s not found", g.ID)
	}
	return nil
}

func (g *Grocery) touch(actorID uuid.UUID) {
	g.UpdatedAt = time.Now()
	g.Audit.Touch(actorID)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.ErrInvalidInput.Withf("Grocery name cannot be empty")
	}
	if len(name) > maxNameLength {
		return "", shared.ErrInvalidInput.Withf("Grocery name cannot exceed %d characters", maxNameLength)
	}
	return nameCaser.String(name), nil
}

func validateDescription(description string) error {
	if len(description) > maxDescriptionLength {
		return shared.ErrInvalidInput.Withf("Description cannot exceed %d characters", maxDescriptionLength)
	}
	return nil
}

func validatePrice(price int64) error {
	if price < 0 {
		return shared.ErrInvalidInput.Withf("Price cannot be negative")
	}
	return nil
}

func validateImageURL(imageURL string) error {
	if len(imageURL) > maxImageURLLength {
		return shared.ErrInvalidInput.Withf("Image URL cannot exceed %d characters", maxImageURLLength)
	}
	return nil
}
