package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/inventory"
	"github.com/grocery/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxImageSize is the largest accepted grocery image upload
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStorage stores grocery images in object storage
type ImageStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	PublicURL(storageKey string) string
}

// GroceryService handles catalog browsing and administration
type GroceryService struct {
	groceryRepo    catalog.GroceryRepository
	ledger         inventory.Ledger
	images         ImageStorage
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewGroceryService creates a new GroceryService
func NewGroceryService(groceryRepo catalog.GroceryRepository, ledger inventory.Ledger) *GroceryService {
	return &GroceryService{
		groceryRepo: groceryRepo,
		ledger:      ledger,
		logger:      zap.NewNop(),
	}
}

// SetImageStorage enables image uploads
func (s *GroceryService) SetImageStorage(images ImageStorage) {
	s.images = images
}

// SetEventPublisher sets the event publisher for domain events
func (s *GroceryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *GroceryService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// ListForUsers lists groceries that are active and in stock
func (s *GroceryService) ListForUsers(ctx context.Context, filter GroceryFilter) (*GroceryListResponse, error) {
	groceries, total, page, err := s.list(ctx, filter, catalog.VisibilityPublic)
	if err != nil {
		return nil, err
	}

	data := make([]GroceryResponse, len(groceries))
	for i := range groceries {
		data[i] = ToGroceryResponse(&groceries[i])
	}
	return &GroceryListResponse{Data: data, Total: total, Page: page.Page, Size: page.PageSize}, nil
}

// ListForAdmin lists every grocery, including soft-deleted and out of stock ones
func (s *GroceryService) ListForAdmin(ctx context.Context, filter GroceryFilter) (*AdminGroceryListResponse, error) {
	groceries, total, page, err := s.list(ctx, filter, catalog.VisibilityAll)
	if err != nil {
		return nil, err
	}

	data := make([]AdminGroceryResponse, len(groceries))
	for i := range groceries {
		data[i] = ToAdminGroceryResponse(&groceries[i])
	}
	return &AdminGroceryListResponse{Data: data, Total: total, Page: page.Page, Size: page.PageSize}, nil
}

func (s *GroceryService) list(ctx context.Context, filter GroceryFilter, visibility catalog.Visibility) ([]catalog.Grocery, int64, shared.Filter, error) {
	page, err := shared.NewPageFilter(filter.Page, filter.Size)
	if err != nil {
		return nil, 0, page, err
	}
	if filter.OrderBy != "" {
		page.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		page.OrderDir = filter.OrderDir
	}

	query := catalog.GroceryQuery{Filter: page, ID: filter.ID, Visibility: visibility}
	groceries, err := s.groceryRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, page, err
	}
	if filter.ID != nil && len(groceries) == 0 {
		return nil, 0, page, shared.ErrNotFound.Withf("Grocery %s not found", *filter.ID)
	}

	total, err := s.groceryRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, page, err
	}
	return groceries, total, page, nil
}

// Create adds a grocery to the catalog
func (s *GroceryService) Create(ctx context.Context, actorID uuid.UUID, req CreateGroceryRequest) (*AdminGroceryResponse, error) {
	grocery, err := catalog.NewGrocery(req.Name, req.Description, req.Price, req.Quantity, req.ImageURL, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.groceryRepo.Create(ctx, grocery); err != nil {
		return nil, err
	}

	s.publish(ctx, grocery.PullDomainEvents()...)

	response := ToAdminGroceryResponse(grocery)
	return &response, nil
}

// Update changes descriptive fields of an active grocery. Quantity is not touched.
func (s *GroceryService) Update(ctx context.Context, id, actorID uuid.UUID, req UpdateGroceryRequest) (*AdminGroceryResponse, error) {
	grocery, err := s.groceryRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := grocery.Rename(*req.Name, actorID); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := grocery.SetDescription(*req.Description, actorID); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := grocery.ChangePrice(*req.Price, actorID); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		if err := grocery.SetImageURL(*req.ImageURL, actorID); err != nil {
			return nil, err
		}
	}

	if err := s.groceryRepo.Update(ctx, grocery); err != nil {
		return nil, err
	}

	s.publish(ctx, grocery.PullDomainEvents()...)

	response := ToAdminGroceryResponse(grocery)
	return &response, nil
}

// UpdateQuantity overwrites the stock level through the inventory ledger
func (s *GroceryService) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64, actorID uuid.UUID) (*AdminGroceryResponse, error) {
	if _, err := s.ledger.SetQuantity(ctx, id, quantity, actorID); err != nil {
		return nil, err
	}

	grocery, err := s.groceryRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, catalog.NewGroceryStockAdjustedEvent(id, grocery.Quantity, actorID))

	response := ToAdminGroceryResponse(grocery)
	return &response, nil
}

// Delete soft-deletes a grocery. Existing order lines keep referencing it.
func (s *GroceryService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	grocery, err := s.groceryRepo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}
	if err := grocery.Delete(actorID); err != nil {
		return err
	}
	if err := s.groceryRepo.Update(ctx, grocery); err != nil {
		return err
	}

	s.publish(ctx, grocery.PullDomainEvents()...)
	return nil
}

// UploadImage stores an image for the grocery and points image_url at it
func (s *GroceryService) UploadImage(ctx context.Context, id, actorID uuid.UUID, filename, contentType string, data []byte) (*AdminGroceryResponse, error) {
	if s.images == nil {
		return nil, shared.ErrInvalidState.Withf("Image storage not configured")
	}
	if len(data) == 0 {
		return nil, shared.ErrInvalidInput.Withf("Image file is empty")
	}
	if len(data) > MaxImageSize {
		return nil, shared.ErrInvalidInput.Withf("Image cannot exceed %d bytes", MaxImageSize)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, shared.ErrInvalidInput.Withf("Unsupported image type %q", contentType)
	}
	if fileExt := strings.ToLower(path.Ext(filename)); ext == ".jpg" && fileExt == ".jpeg" {
		ext = fileExt
	}

	grocery, err := s.groceryRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("groceries/%s/%s%s", grocery.ID, uuid.NewString(), ext)
	if err := s.images.Upload(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("upload grocery image: %w", err)
	}

	if err := grocery.SetImageURL(s.images.PublicURL(key), actorID); err != nil {
		return nil, err
	}
	if err := s.groceryRepo.Update(ctx, grocery); err != nil {
		return nil, err
	}

	s.logger.Info("grocery image uploaded",
		zap.String("grocery_id", grocery.ID.String()),
		zap.String("storage_key", key),
		zap.Int("size", len(data)),
	)

	response := ToAdminGroceryResponse(grocery)
	return &response, nil
}

func (s *GroceryService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish grocery events", zap.Int("event_count", len(events)), zap.Error(err))
	}
}
