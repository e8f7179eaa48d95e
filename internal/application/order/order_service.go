package order

import (
	"bytes"
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/inventory"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Metrics receives workflow outcomes that do not produce a domain event
type Metrics interface {
	RecordStockRejection(ctx context.Context, groceryID uuid.UUID)
}

// OrderService orchestrates order placement and status transitions
type OrderService struct {
	orderRepo      order.OrderRepository
	itemRepo       order.OrderItemRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	itemRepo order.OrderItemRepository,
	txScope TransactionScope,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		txScope:   txScope,
		logger:    zap.NewNop(),
	}
}

// SetEventPublisher sets the publisher that receives events after commit
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the metrics recorder
func (s *OrderService) SetMetrics(metrics Metrics) {
	s.metrics = metrics
}

// SetLogger sets the service logger
func (s *OrderService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// CreateOrder places an order for actorID.
// Stock debits, the order row and its items are written in one transaction;
// any failing line rolls back every earlier debit.
func (s *OrderService) CreateOrder(ctx context.Context, actorID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	lines, err := mergeLines(req.Items)
	if err != nil {
		return nil, err
	}

	var placed *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := order.NewOrder(actorID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if _, err := repos.Ledger().Debit(ctx, line.GroceryID, line.Quantity, actorID); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) && s.metrics != nil {
					s.metrics.RecordStockRejection(ctx, line.GroceryID)
				}
				return err
			}
			// The row is locked by the debit, so this price is the one the stock was taken at.
			grocery, err := repos.Groceries().FindActiveByID(ctx, line.GroceryID)
			if err != nil {
				return err
			}
			if _, err := o.AddItem(grocery.ID, line.Quantity, grocery.Price); err != nil {
				return err
			}
		}

		if err := o.Place(); err != nil {
			return err
		}
		if err := repos.Orders().Create(ctx, o); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, placed)

	response := ToOrderResponse(placed)
	return &response, nil
}

// GetOrders lists orders newest first. A non-nil requesterID restricts the
// list to that user's orders.
func (s *OrderService) GetOrders(ctx context.Context, filter OrderFilter, requesterID *uuid.UUID) (*OrderListResponse, error) {
	pageFilter, err := shared.NewPageFilter(filter.Page, filter.Size)
	if err != nil {
		return nil, err
	}
	pageFilter.OrderBy = "created_at"
	pageFilter.OrderDir = "desc"

	query := order.Query{
		Filter:  pageFilter,
		ID:      filter.ID,
		OwnerID: requesterID,
	}

	orders, err := s.orderRepo.FindAll(ctx, query)
	if err != nil {
		return nil, err
	}
	if filter.ID != nil && len(orders) == 0 {
		return nil, shared.ErrNotFound.Withf("Order %s not found", *filter.ID)
	}

	total, err := s.orderRepo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	return &OrderListResponse{
		Data:  ToOrderResponses(orders),
		Total: total,
		Page:  pageFilter.Page,
		Size:  pageFilter.PageSize,
	}, nil
}

// UpdateStatus changes the status of an order owned by actorID
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, status, actorID, &actorID)
}

// AdminUpdateStatus changes the status of any order
func (s *OrderService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, status, actorID, nil)
}

// DeleteOrder soft-deletes an order owned by actorID. Stock is not returned.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) error {
	return s.delete(ctx, orderID, actorID, &actorID)
}

// AdminDeleteOrder soft-deletes any order. Stock is not returned.
func (s *OrderService) AdminDeleteOrder(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) error {
	return s.delete(ctx, orderID, actorID, nil)
}

// GetOrderItem returns one order line. A non-nil requesterID must own the parent order.
func (s *OrderService) GetOrderItem(ctx context.Context, itemID uuid.UUID, requesterID *uuid.UUID) (*OrderItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if requesterID != nil {
		o, err := s.orderRepo.FindByID(ctx, item.OrderID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if err != nil || !o.IsOwnedBy(*requesterID) {
			return nil, shared.ErrNotFound.Withf("Order item %s not found", itemID)
		}
	}
	response := ToOrderItemResponse(item)
	return &response, nil
}

func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID, ownerID *uuid.UUID) (*OrderResponse, error) {
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var updated *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := checkOwner(o, ownerID); err != nil {
			return err
		}
		if err := o.TransitionTo(target, actorID); err != nil {
			return err
		}
		if target == order.StatusCancelled {
			if err := restock(ctx, repos.Ledger(), o, actorID); err != nil {
				return err
			}
		}
		if err := repos.Orders().Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, updated)

	response := ToOrderResponse(updated)
	return &response, nil
}

func (s *OrderService) delete(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID, ownerID *uuid.UUID) error {
	var deleted *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := checkOwner(o, ownerID); err != nil {
			return err
		}
		if err := o.Delete(actorID); err != nil {
			return err
		}
		if err := repos.Orders().Update(ctx, o); err != nil {
			return err
		}
		deleted = o
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvents(ctx, deleted)
	return nil
}

// restock credits every line back to the ledger. All credits are attempted;
// the joined error makes the caller roll the whole cancellation back.
func restock(ctx context.Context, ledger inventory.Ledger, o *order.Order, actorID uuid.UUID) error {
	var errs []error
	for _, item := range o.Items {
		if _, err := ledger.Credit(ctx, item.GroceryID, item.Quantity, actorID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkOwner(o *order.Order, ownerID *uuid.UUID) error {
	if ownerID != nil && !o.IsOwnedBy(*ownerID) {
		return shared.ErrNotFound.Withf("Order %s not found", o.ID)
	}
	return nil
}

// mergeLines validates requested lines and folds duplicate groceries into one line.
// Lines come back sorted by grocery ID so concurrent orders lock rows in the same order.
func mergeLines(items []OrderLineRequest) ([]OrderLineRequest, error) {
	if len(items) == 0 {
		return nil, shared.ErrInvalidInput.Withf("Order must contain at least one item")
	}

	byGrocery := make(map[uuid.UUID]int, len(items))
	lines := make([]OrderLineRequest, 0, len(items))
	for _, item := range items {
		if item.GroceryID == uuid.Nil {
			return nil, shared.ErrInvalidInput.Withf("Grocery ID cannot be empty")
		}
		if item.Quantity <= 0 {
			return nil, shared.ErrInvalidInput.Withf("Quantity for grocery %s must be positive", item.GroceryID)
		}
		if idx, ok := byGrocery[item.GroceryID]; ok {
			lines[idx].Quantity += item.Quantity
			continue
		}
		byGrocery[item.GroceryID] = len(lines)
		lines = append(lines, item)
	}

	slices.SortFunc(lines, func(a, b OrderLineRequest) int {
		return bytes.Compare(a.GroceryID[:], b.GroceryID[:])
	})
	return lines, nil
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	events := o.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		// The transaction is already committed; a failed publish only loses the notification.
		s.logger.Warn("failed to publish order events",
			zap.String("order_id", o.ID.String()),
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}
