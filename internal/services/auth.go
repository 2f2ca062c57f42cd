package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/pactify-backend/internal/data/db"
	"github.com/yungbote/pactify-backend/internal/data/repos"
	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/platform/ctxutil"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

var (
	ErrAuthenticationMissing = errors.New("authentication missing")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrRefreshTokenInvalid   = errors.New("refresh token invalid or expired")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type JWTClaims struct {
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	UserType  string `json:"user_type" validate:"omitempty,oneof=freelancer client both"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.UserType = strings.ToLower(strings.TrimSpace(in.UserType))
	if err := validate.Struct(in); err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_registration", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	userType := types.UserTypeFreelancer
	if ut, ok := types.ParseUserType(in.UserType); ok {
		userType = ut
	}
	user := &types.User{
		Email:       in.Email,
		Password:    string(hash),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DisplayName: strings.TrimSpace(in.FirstName + " " + in.LastName),
		UserType:    userType,
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.userRepo.EmailExists(dbc, user.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return apierr.New(http.StatusConflict, "email_taken", fmt.Errorf("email already registered"))
		}
		if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
			if db.IsUniqueViolation(err) {
				return apierr.New(http.StatusConflict, "email_taken", fmt.Errorf("email already registered"))
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("Registered user", "user_id", user.ID)
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", ErrInvalidCredentials
	}

	users, err := as.userRepo.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("load user by email: %w", err)
	}
	if len(users) == 0 {
		return "", "", ErrInvalidCredentials
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := as.userTokenRepo.PurgeExpired(dbc, as.now()); err != nil {
			as.log.Warn("Failed to purge expired tokens", "error", err)
		}
		var err error
		accessToken, refreshToken, err = as.issueTokens(dbc, user.ID)
		return err
	})
	if err != nil {
		return "", "", err
	}
	as.log.Debug("User logged in", "user_id", user.ID)
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		if rd := ctxutil.GetRequestData(ctx); rd != nil {
			refreshToken = rd.RefreshToken
		}
	}
	if refreshToken == "" {
		return "", "", ErrRefreshTokenInvalid
	}

	var accessToken, newRefresh string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := as.userTokenRepo.FindByRefreshToken(dbc, refreshToken)
		if err != nil {
			return fmt.Errorf("load refresh token: %w", err)
		}
		if existing == nil {
			return ErrRefreshTokenInvalid
		}
		if existing.ExpiresAt.Before(as.now()) {
			if err := as.userTokenRepo.Revoke(dbc, existing.ID); err != nil {
				as.log.Warn("Failed to delete expired refresh token", "error", err)
			}
			return ErrRefreshTokenInvalid
		}
		if err := as.userTokenRepo.Revoke(dbc, existing.ID); err != nil {
			return fmt.Errorf("remove old refresh token: %w", err)
		}
		accessToken, newRefresh, err = as.issueTokens(dbc, existing.UserID)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefresh, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return ErrAuthenticationMissing
	}
	dbc := dbctx.Context{Ctx: ctx}
	found, err := as.userTokenRepo.FindByAccessToken(dbc, rd.TokenString)
	if err != nil {
		return fmt.Errorf("find user token: %w", err)
	}
	if found == nil {
		return nil
	}
	if err := as.userTokenRepo.Revoke(dbc, found.ID); err != nil {
		return fmt.Errorf("delete user token: %w", err)
	}
	return nil
}

// SetContextFromToken verifies the JWT and its backing token row and attaches
// the resolved identity to ctx. Any failure wraps ErrAuthenticationMissing.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, ErrAuthenticationMissing
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", ErrAuthenticationMissing, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("%w: invalid token", ErrAuthenticationMissing)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid subject", ErrAuthenticationMissing)
	}

	found, err := as.userTokenRepo.FindByAccessToken(dbctx.Context{Ctx: ctx}, tokenString)
	if err != nil {
		return ctx, fmt.Errorf("fetch user token: %w", err)
	}
	if found == nil || found.UserID != userID {
		return ctx, fmt.Errorf("%w: session revoked", ErrAuthenticationMissing)
	}

	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: found.RefreshToken,
		UserID:       userID,
		SessionID:    found.ID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokens(dbc dbctx.Context, userID uuid.UUID) (string, string, error) {
	tokenID := uuid.New()
	access, err := as.generateAccessToken(userID, tokenID)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh := uuid.New().String()
	row := &types.UserToken{
		ID:           tokenID,
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    as.now().Add(as.refreshTTL),
	}
	if err := as.userTokenRepo.Create(dbc, row); err != nil {
		return "", "", fmt.Errorf("create user token: %w", err)
	}
	return access, refresh, nil
}

func (as *authService) generateAccessToken(userID, tokenID uuid.UUID) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
