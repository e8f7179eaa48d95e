package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/inventory"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGrocery(t *testing.T, name string, price, quantity int64) *catalog.Grocery {
	t.Helper()
	g, err := catalog.NewGrocery(name, "fresh", price, quantity, "", uuid.New())
	require.NoError(t, err)
	g.ClearDomainEvents()
	return g
}

func TestGroceryService_ListForUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("queries public visibility with default page", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		svc := NewGroceryService(repo, new(MockLedger))
		g := newTestGrocery(t, "apples", 120, 4)

		repo.On("FindAll", ctx, mock.MatchedBy(func(q catalog.GroceryQuery) bool {
			return q.Visibility == catalog.VisibilityPublic && q.Page == 1 && q.PageSize == shared.DefaultPageSize
		})).Return([]catalog.Grocery{*g}, nil)
		repo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

		resp, err := svc.ListForUsers(ctx, GroceryFilter{})

		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Apples", resp.Data[0].Name)
		assert.Equal(t, int64(4), resp.Data[0].Quantity)
		assert.Equal(t, int64(1), resp.Total)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		svc := NewGroceryService(repo, new(MockLedger))
		id := uuid.New()
		repo.On("FindAll", ctx, mock.Anything).Return([]catalog.Grocery{}, nil)

		_, err := svc.ListForUsers(ctx, GroceryFilter{ID: &id})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("size above maximum is rejected", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		svc := NewGroceryService(repo, new(MockLedger))

		_, err := svc.ListForUsers(ctx, GroceryFilter{Size: shared.MaxPageSize + 1})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

func TestGroceryService_ListForAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGroceryRepository)
	svc := NewGroceryService(repo, new(MockLedger))

	deleted := newTestGrocery(t, "pears", 80, 0)
	require.NoError(t, deleted.Delete(uuid.New()))

	repo.On("FindAll", ctx, mock.MatchedBy(func(q catalog.GroceryQuery) bool {
		return q.Visibility == catalog.VisibilityAll && q.OrderBy == "price" && q.OrderDir == "asc"
	})).Return([]catalog.Grocery{*deleted}, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	resp, err := svc.ListForAdmin(ctx, GroceryFilter{OrderBy: "price", OrderDir: "asc"})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.NotNil(t, resp.Data[0].DeletedAt)
	assert.NotNil(t, resp.Data[0].CreatedBy)
}

func TestGroceryService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("creates and publishes", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		publisher := new(MockEventPublisher)
		svc := NewGroceryService(repo, new(MockLedger))
		svc.SetEventPublisher(publisher)

		repo.On("Create", ctx, mock.AnythingOfType("*catalog.Grocery")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, actorID, CreateGroceryRequest{Name: "iphone charger", Price: 999, Quantity: 3})

		require.NoError(t, err)
		assert.Equal(t, "Iphone Charger", resp.Name)
		assert.Equal(t, int64(3), resp.Quantity)
		require.NotNil(t, resp.CreatedBy)
		assert.Equal(t, actorID, *resp.CreatedBy)

		events := publisher.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
		require.Len(t, events, 1)
		assert.Equal(t, catalog.EventTypeGroceryCreated, events[0].EventType())
	})

	t.Run("negative price is invalid", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		svc := NewGroceryService(repo, new(MockLedger))

		_, err := svc.Create(ctx, actorID, CreateGroceryRequest{Name: "Milk", Price: -1})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGroceryService_Update(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("applies only the given fields", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		svc := NewGroceryService(repo, new(MockLedger))
		g := newTestGrocery(t, "milk", 100, 7)
		price := int64(130)

		repo.On("FindActiveByID", ctx, g.ID).Return(g, nil)
		repo.On("Update", ctx, g).Return(nil)

		resp, err := svc.Update(ctx, g.ID, actorID, UpdateGroceryRequest{Price: &price})

		require.NoError(t, err)
		assert.Equal(t, int64(130), resp.Price)
		assert.Equal(t, "Milk", resp.Name)
		assert.Equal(t, "fresh", resp.Description)
		assert.Equal(t, int64(7), resp.Quantity)
		require.NotNil(t, resp.UpdatedBy)
		assert.Equal(t, actorID, *resp.UpdatedBy)
	})

	t.Run("deleted grocery is not found", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		svc := NewGroceryService(repo, new(MockLedger))
		id := uuid.New()
		name := "x"
		repo.On("FindActiveByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, id, actorID, UpdateGroceryRequest{Name: &name})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGroceryService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("goes through the ledger", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		ledger := new(MockLedger)
		publisher := new(MockEventPublisher)
		svc := NewGroceryService(repo, ledger)
		svc.SetEventPublisher(publisher)
		g := newTestGrocery(t, "milk", 100, 25)

		ledger.On("SetQuantity", ctx, g.ID, int64(25), actorID).Return(int64(25), nil)
		repo.On("FindActiveByID", ctx, g.ID).Return(g, nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.UpdateQuantity(ctx, g.ID, 25, actorID)

		require.NoError(t, err)
		assert.Equal(t, int64(25), resp.Quantity)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

		events := publisher.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
		require.Len(t, events, 1)
		assert.Equal(t, catalog.EventTypeGroceryStockAdjusted, events[0].EventType())
	})

	t.Run("negative quantity is rejected by the ledger", func(t *testing.T) {
		ledger := new(MockLedger)
		svc := NewGroceryService(new(MockGroceryRepository), ledger)
		id := uuid.New()
		ledger.On("SetQuantity", ctx, id, int64(-1), actorID).Return(int64(0), inventory.ValidateQuantity(-1))

		_, err := svc.UpdateQuantity(ctx, id, -1, actorID)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestGroceryService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGroceryRepository)
	svc := NewGroceryService(repo, new(MockLedger))
	g := newTestGrocery(t, "milk", 100, 1)

	repo.On("FindActiveByID", ctx, g.ID).Return(g, nil)
	repo.On("Update", ctx, g).Return(nil)

	require.NoError(t, svc.Delete(ctx, g.ID, uuid.New()))
	assert.True(t, g.IsDeleted())
}

func TestGroceryService_UploadImage(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	png := []byte("\x89PNG\r\n\x1a\n")

	t.Run("disabled without storage", func(t *testing.T) {
		svc := NewGroceryService(new(MockGroceryRepository), new(MockLedger))

		_, err := svc.UploadImage(ctx, uuid.New(), actorID, "a.png", "image/png", png)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("stores the image and sets the url", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		images := new(MockImageStorage)
		svc := NewGroceryService(repo, new(MockLedger))
		svc.SetImageStorage(images)
		g := newTestGrocery(t, "milk", 100, 1)

		repo.On("FindActiveByID", ctx, g.ID).Return(g, nil)
		images.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "groceries/"+g.ID.String()+"/") && strings.HasSuffix(key, ".png")
		}), png, "image/png").Return(nil)
		images.On("PublicURL", mock.Anything).Return("https://cdn.example.com/milk.png")
		repo.On("Update", ctx, g).Return(nil)

		resp, err := svc.UploadImage(ctx, g.ID, actorID, "milk.png", "image/png; charset=binary", png)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/milk.png", resp.ImageURL)
		images.AssertExpectations(t)
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		svc := NewGroceryService(new(MockGroceryRepository), new(MockLedger))
		svc.SetImageStorage(new(MockImageStorage))

		_, err := svc.UploadImage(ctx, uuid.New(), actorID, "a.txt", "text/plain", []byte("hi"))

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		repo := new(MockGroceryRepository)
		images := new(MockImageStorage)
		svc := NewGroceryService(repo, new(MockLedger))
		svc.SetImageStorage(images)
		g := newTestGrocery(t, "milk", 100, 1)

		repo.On("FindActiveByID", ctx, g.ID).Return(g, nil)
		images.On("Upload", ctx, mock.Anything, png, "image/png").Return(errors.New("bucket missing"))

		_, err := svc.UploadImage(ctx, g.ID, actorID, "milk.png", "image/png", png)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket missing")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
