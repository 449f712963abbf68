package usecase

import (
	"context"
	"sort"
	"strings"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
	"peopleconnect/internal/domain/service"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	identity service.IdentityService
}

func NewUserUseCase(userRepo repository.UserRepository, identity service.IdentityService) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		identity: identity,
	}
}

// ListUsers returns every user, or only those holding role. A user with both
// roles appears under either filter.
func (uc *UserUseCase) ListUsers(ctx context.Context, role string) ([]*entity.User, error) {
	if role != "" && role != entity.RoleClient && role != entity.RoleServiceProvider {
		return nil, errors.Validation("role must be one of: Client, Service Provider")
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.User, 0, len(users))
	for _, u := range users {
		if role == "" || u.HasRole(role) {
			filtered = append(filtered, u)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
	})
	return filtered, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// ToggleUserStatus flips a user between active and disabled. The identity
// service is changed first; the stored status follows only when that call
// succeeded, so the record never claims a state sign-in does not have.
func (uc *UserUseCase) ToggleUserStatus(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Email == "" {
		return nil, errors.BadRequest("User has no email address on record", nil)
	}

	next := entity.UserStatusDisabled
	if user.IsDisabled() {
		next = entity.UserStatusActive
		err = uc.identity.EnableUserByEmail(ctx, user.Email)
	} else {
		err = uc.identity.DisableUserByEmail(ctx, user.Email)
	}
	if err != nil {
		logger.Error("Failed to change sign-in for %s: %v", user.Email, err)
		return nil, errors.Internal("Failed to update user sign-in status", err)
	}

	if err := uc.userRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	logger.Info("User %s (%s) is now %s", id, user.Email, next)
	user.Status = next
	return user, nil
}

// DisableUserByEmail only touches the identity service.
func (uc *UserUseCase) DisableUserByEmail(ctx context.Context, email string) error {
	logger.Info("Disabling user with email: %s", email)
	return uc.identity.DisableUserByEmail(ctx, email)
}

func (uc *UserUseCase) EnableUserByEmail(ctx context.Context, email string) error {
	logger.Info("Enabling user with email: %s", email)
	return uc.identity.EnableUserByEmail(ctx, email)
}

// DeleteUser removes the sign-in account and then the marketplace record.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Email != "" {
		if err := uc.identity.DeleteUserByEmail(ctx, user.Email); err != nil {
			return err
		}
	}
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("User %s (%s) removed", id, user.Email)
	return nil
}
