package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/repository"
)

type ProfileView struct {
	User    *entity.User
	Profile *entity.Profile
}

type ProfileUpdateInput struct {
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	BusinessName *string
	Address      *string
	AvatarURL    *string
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID string) (*ProfileView, error)
	Update(ctx context.Context, userID string, input ProfileUpdateInput) (*ProfileView, error)
}

type profileUsecase struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	txManager repository.TxManager
	log       logger.Logger
}

func NewProfileUsecase(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	txManager repository.TxManager,
	log logger.Logger,
) ProfileUsecase {
	return &profileUsecase{users: users, profiles: profiles, txManager: txManager, log: log}
}

func (u *profileUsecase) Get(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("account not found")
		}
		return nil, fmt.Errorf("could not load account: %w", err)
	}

	profile, err := u.loadOrRepairProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: user, Profile: profile}, nil
}

// loadOrRepairProfile re-creates a missing profile row. Profiles are
// created with the account, so a miss means earlier data loss.
func (u *profileUsecase) loadOrRepairProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	profile, err := u.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("could not load profile: %w", err)
	}

	u.log.Warnf("Profile missing for user %s, recreating", userID)
	fresh := &entity.Profile{UserID: userID}
	if err := u.profiles.Create(ctx, fresh); err != nil {
		return nil, fmt.Errorf("could not recreate profile: %w", err)
	}
	profile, err = u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load profile: %w", err)
	}
	return profile, nil
}

func (u *profileUsecase) Update(ctx context.Context, userID string, input ProfileUpdateInput) (*ProfileView, error) {
	var view *ProfileView

	err := u.txManager.WithinTx(ctx, func(ctx context.Context) error {
		user, err := u.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundf("account not found")
			}
			return fmt.Errorf("could not load account: %w", err)
		}
		profile, err := u.loadOrRepairProfile(ctx, userID)
		if err != nil {
			return err
		}

		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.BusinessName != nil {
			if user.IsVendor() && *input.BusinessName == "" {
				return validationf("business name is required for vendors")
			}
			user.BusinessName = *input.BusinessName
		}
		user.Normalize()

		if input.Address != nil {
			profile.Address = *input.Address
		}
		if input.AvatarURL != nil {
			profile.AvatarURL = *input.AvatarURL
		}

		if err := u.users.Update(ctx, user); err != nil {
			return fmt.Errorf("could not update account: %w", err)
		}
		if err := u.profiles.Update(ctx, profile); err != nil {
			return fmt.Errorf("could not update profile: %w", err)
		}

		view = &ProfileView{User: user, Profile: profile}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
