package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/catalog"
)

// CreateGroceryRequest represents a request to add a grocery to the catalog
type CreateGroceryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Price       int64  `json:"price" binding:"min=0"`
	Quantity    int64  `json:"quantity" binding:"min=0"`
	ImageURL    string `json:"image_url" binding:"omitempty,max=500"`
}

// UpdateGroceryRequest represents a partial update. Nil fields are left unchanged.
type UpdateGroceryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Price       *int64  `json:"price" binding:"omitempty,min=0"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=500"`
}

// UpdateQuantityRequest represents an administrative stock override
type UpdateQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"required,min=0"`
}

// GroceryFilter represents filter options for grocery lists
type GroceryFilter struct {
	ID       *uuid.UUID `form:"id"`
	Page     int        `form:"page"`
	Size     int        `form:"size"`
	OrderBy  string     `form:"order_by" binding:"omitempty,oneof=id name price quantity created_at updated_at"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// GroceryResponse is the public view of a grocery
type GroceryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Quantity    int64     `json:"quantity"`
	ImageURL    string    `json:"image_url"`
}

// AdminGroceryResponse is the administrative view including audit fields
type AdminGroceryResponse struct {
	GroceryResponse
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Version   int        `json:"version"`
}

// GroceryListResponse is one page of public groceries
type GroceryListResponse struct {
	Data  []GroceryResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// AdminGroceryListResponse is one page of groceries in the administrative view
type AdminGroceryListResponse struct {
	Data  []AdminGroceryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Size  int                    `json:"size"`
}

// ToGroceryResponse converts a domain Grocery to the public response
func ToGroceryResponse(g *catalog.Grocery) GroceryResponse {
	return GroceryResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Price:       g.Price,
		Quantity:    g.Quantity,
		ImageURL:    g.ImageURL,
	}
}

// ToAdminGroceryResponse converts a domain Grocery to the administrative response
func ToAdminGroceryResponse(g *catalog.Grocery) AdminGroceryResponse {
	return AdminGroceryResponse{
		GroceryResponse: ToGroceryResponse(g),
		CreatedBy:       g.CreatedBy,
		UpdatedBy:       g.UpdatedBy,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
		DeletedAt:       g.DeletedAt,
		Version:         g.Version,
	}
}
