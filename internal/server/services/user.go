// Package services contains server-side business logic. This file implements
// UserService, which handles sign-up, login, and issuing/refreshing JWTs
// plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/cryptox"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token with the identity they were issued for.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
}

// UserService provides authentication-related operations:
// - SignUp: create the user and provision its profile
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates the account and its profile in one transaction. A taken
// email yields common.ErrorAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, email, password, fullName string) (*models.User, error) {
	var errs validation.Errors
	if fe := validation.Email(email); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validation.Password.Check(&password); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validation.SignUpFullName.Check(&fullName); fe != nil {
		errs = append(errs, *fe)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		Email:        normalizeEmail(email),
		Salt:         salt,
		PasswordHash: cryptox.HashPassword([]byte(password), salt),
	}
	name := strings.TrimSpace(fullName)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		if _, err := s.repomanager.Profiles(tx).Create(ctx, user.ID, &name); err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login verifies the password and, on success, returns a new TokenPair.
// Unknown emails and wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if err := validation.Login(email, password).Err(); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: error loading user: %w", common.ErrorInternal, err)
	}
	if !cryptox.VerifyPassword(user.PasswordHash, user.Salt, []byte(password)) {
		return nil, common.ErrorUnauthorized
	}

	// stale tokens of this user are swept on every login
	if _, err := s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, user.ID, s.now()); err != nil {
		return nil, fmt.Errorf("%w: error sweeping refresh tokens: %w", common.ErrorInternal, err)
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, err
	}
	pair.Email = user.Email
	return pair, nil
}

// RefreshToken consumes a refresh token and returns a fresh TokenPair in the
// same transaction. Unknown tokens yield common.ErrorUnauthorized, expired
// ones common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}
		if token.Expires.Before(s.now()) {
			return common.ErrRefreshTokenExpired
		}
		pair, err = s.generateTokenPair(ctx, token.UserID, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: error signing access token: %w", common.ErrorInternal, err)
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("%w: error generating refresh token: %w", common.ErrorInternal, err)
	}
	expires := s.now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.RefreshTokens(db).Create(ctx, userID, refresh, expires); err != nil {
		return nil, fmt.Errorf("%w: error storing refresh token: %w", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, UserID: userID}, nil
}
