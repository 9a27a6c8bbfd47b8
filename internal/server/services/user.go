// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login (password and Google),
// profile reads, and issuing/refreshing JWTs plus server-stored refresh
// tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/seventour/seventour/internal/common"
	"github.com/seventour/seventour/internal/dbx"
	"github.com/seventour/seventour/internal/server/auth"
	"github.com/seventour/seventour/internal/server/config"
	"github.com/seventour/seventour/internal/server/googleauth"
	"github.com/seventour/seventour/internal/server/models"
	"github.com/seventour/seventour/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserService provides authentication-related operations:
// - Register: create accounts and mint tokens
// - Login / GoogleLogin: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Logout: revoke all refresh tokens for a user
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	google                       googleauth.Verifier
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, google googleauth.Verifier, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		google:                       google,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new customer account and mints a token pair for it.
// A taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	referral, err := s.generateReferralCode()
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         "customer",
		ReferralCode: referral,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error creating user: %v", err)
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies the email/password pair and, on success, returns the user
// and a new TokenPair. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if len(user.PasswordHash) == 0 || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// GoogleLogin validates a Google ID token and signs the holder in, creating
// an account on first sight. An existing account with the same email is
// linked to the Google identity instead of duplicated.
func (s *UserService) GoogleLogin(ctx context.Context, idToken string) (*models.User, *TokenPair, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByGoogleID(ctx, identity.Subject)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorInternal
		}
		user, err = s.adoptGoogleIdentity(ctx, identity)
		if err != nil {
			return nil, nil, err
		}
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// adoptGoogleIdentity links the Google subject to an existing account with
// the same email, or creates a fresh account when none exists.
func (s *UserService) adoptGoogleIdentity(ctx context.Context, identity *googleauth.Identity) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, identity.Email)
	if err == nil {
		if err := repo.SetGoogleID(ctx, user.ID, identity.Subject); err != nil {
			return nil, common.ErrorInternal
		}
		user.GoogleID = &identity.Subject
		return user, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	referral, err := s.generateReferralCode()
	if err != nil {
		return nil, common.ErrorInternal
	}

	googleID := identity.Subject
	user, err = repo.Create(ctx, &models.User{
		Email:        strings.ToLower(identity.Email),
		FirstName:    identity.FirstName,
		LastName:     identity.LastName,
		Role:         "customer",
		ReferralCode: referral,
		GoogleID:     &googleID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}
	return user, nil
}

// CurrentUser returns the profile for the given user id.
func (s *UserService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Logout revokes every refresh token issued to the user. The access token
// stays valid until it expires; only the refresh chain is cut.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	repo := s.repomanager.RefreshTokens(s.db)
	if err := repo.DeleteForUser(ctx, userID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %v", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %v", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID int64) (string, error) {
	return auth.GenerateToken(strconv.FormatInt(userID, 10), s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateReferralCode() (string, error) {
	code, err := common.MakeRandHexString(4)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(code), nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID int64, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
