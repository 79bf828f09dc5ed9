package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/dbx"
	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/repositories/repomanager"
)

// ProfileUpdate is a partial patch: nil fields are left unchanged.
// Email and ID are immutable and have no place here.
type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Skills []string
	Level  *models.DeveloperLevel
}

// UserService serves the authenticated user's own profile.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Profile returns the account behind email.
func (s *UserService) Profile(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the patch to the caller's account and returns the
// updated record. The read and the write run in one transaction so two
// concurrent patches cannot silently drop each other's fields.
func (s *UserService) UpdateProfile(ctx context.Context, email string, patch ProfileUpdate) (*models.User, error) {
	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUserNotFound
			}
			return fmt.Errorf("error loading profile: %w", err)
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Bio != nil {
			user.Bio = *patch.Bio
		}
		if patch.Skills != nil {
			user.Skills = patch.Skills
		}
		if patch.Level != nil {
			user.Level = *patch.Level
		}

		updated, err = repo.Update(ctx, user)
		if err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetAvatarKey records the storage key of an uploaded avatar.
func (s *UserService) SetAvatarKey(ctx context.Context, email, key string) (*models.User, error) {
	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUserNotFound
			}
			return fmt.Errorf("error loading profile: %w", err)
		}

		user.AvatarKey = key
		updated, err = repo.Update(ctx, user)
		if err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
