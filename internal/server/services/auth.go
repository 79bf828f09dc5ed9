// Package services contains server-side business logic. This file implements
// AuthService, which handles registration and login and mints JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/dbx"
	"github.com/growject/growject/internal/server/auth"
	"github.com/growject/growject/internal/server/config"
	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/repositories/repomanager"
)

// RegisterRequest carries the registration input. Bio and Skills are optional.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Bio      string
	Skills   []string
}

// AuthService provides authentication-related operations:
// - Register: create an account and mint its first token
// - Login: verify credentials and mint a token
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new user and returns a signed token for it.
// A taken email fails with common.ErrorEmailTaken before anything is written.
// The user insert is the only side effect; a token signing failure afterwards
// is a configuration fault and surfaces as an internal error without undoing
// the insert (tokens are not persisted, the user can simply log in).
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	// hash outside the transaction, bcrypt is slow
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", common.ErrorInternal
	}

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Bio:          req.Bio,
		Skills:       skills,
		Level:        models.LevelBeginner,
	}

	// the uniqueness check and the insert must not race with a concurrent
	// registration of the same email
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("error checking email: %w", err)
		}
		if taken {
			return common.ErrorEmailTaken
		}

		if _, err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return s.generateToken(user.Email)
}

// Login verifies the credentials and returns a signed token. A missing
// account and a wrong password are indistinguishable to the caller: both
// return common.ErrorInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorInvalidCredentials
	}

	return s.generateToken(user.Email)
}

func (s *AuthService) generateToken(email string) (string, error) {
	token, err := auth.GenerateToken(email, nil, s.jwtSecret, time.Now(), s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
