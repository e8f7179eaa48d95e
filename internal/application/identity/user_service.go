package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages accounts
type UserService struct {
	userRepo       identity.UserRepository
	blacklist      auth.TokenBlacklist
	revokeTTL      time.Duration
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewUserService creates a new user service.
// revokeTTL should cover the refresh token lifetime so revoked sessions cannot refresh.
func NewUserService(userRepo identity.UserRepository, blacklist auth.TokenBlacklist, revokeTTL time.Duration, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		revokeTTL: revokeTTL,
		logger:    logger,
	}
}

// SetEventPublisher sets the publisher that receives user events
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates an account. Emails are unique among active users.
func (s *UserService) Create(ctx context.Context, actorID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	role := identity.RoleUser
	if req.Role != "" {
		role = identity.Role(req.Role)
	}

	if err := s.ensureEmailFree(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Name, req.Email, req.Password, role, actorID)
	if err != nil {
		return nil, err
	}
	if err := user.SetPhone(req.Phone, actorID); err != nil {
		return nil, err
	}
	if err := user.SetAddress(req.Address, actorID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// List returns one page of active users, newest first
func (s *UserService) List(ctx context.Context, filter UserFilter) (*UserListResponse, error) {
	pageFilter, err := shared.NewPageFilter(filter.Page, filter.Size)
	if err != nil {
		return nil, err
	}
	query := identity.UserQuery{Filter: pageFilter, ID: filter.ID}

	users, err := s.userRepo.FindAll(ctx, query)
	if err != nil {
		return nil, err
	}
	if filter.ID != nil && len(users) == 0 {
		return nil, shared.ErrNotFound.Withf("User %s not found", *filter.ID)
	}

	total, err := s.userRepo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	data := make([]UserResponse, len(users))
	for i := range users {
		data[i] = ToUserResponse(&users[i])
	}
	return &UserListResponse{
		Data:  data,
		Total: total,
		Page:  pageFilter.Page,
		Size:  pageFilter.PageSize,
	}, nil
}

// Update applies a partial update. Users may update only themselves and
// may not change their own role; admins may update anyone.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, actor Actor, req UpdateUserRequest) (*UserResponse, error) {
	if !actor.IsAdmin && actor.ID != id {
		return nil, shared.ErrForbidden.Withf("You can only update your own account")
	}
	if req.Role != nil && !actor.IsAdmin {
		return nil, shared.ErrForbidden.Withf("Only administrators can change roles")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := user.SetName(*req.Name, actor.ID); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := s.ensureEmailFree(ctx, *req.Email, user.ID); err != nil {
			return nil, err
		}
		if err := user.SetEmail(*req.Email, actor.ID); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone, actor.ID); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if err := user.SetAddress(*req.Address, actor.ID); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.Role(*req.Role), actor.ID); err != nil {
			return nil, err
		}
	}
	credentialsChanged := req.Password != nil || req.Role != nil
	if req.Password != nil {
		if err := user.SetPassword(*req.Password, actor.ID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Existing tokens carry the old grants; force a fresh login.
	if credentialsChanged {
		s.revokeSessions(ctx, user.ID)
	}
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// Delete soft-deletes an account and revokes its sessions
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	if id == actorID {
		return shared.ErrInvalidState.Withf("You cannot delete your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Delete(actorID); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.revokeSessions(ctx, user.ID)
	s.logger.Info("user deleted",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actorID.String()))
	s.publishEvents(ctx, user)
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, owner uuid.UUID) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsDomainError(err, shared.ErrNotFound.Code) {
			return nil
		}
		return err
	}
	if existing.ID == owner {
		return nil
	}
	return shared.ErrAlreadyExists.Withf("Email %s is already registered", existing.Email)
}

func (s *UserService) revokeSessions(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.RevokeUser(ctx, userID.String(), s.revokeTTL); err != nil {
		s.logger.Error("failed to revoke user sessions",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	events := user.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish user events",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}
