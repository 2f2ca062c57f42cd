package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pactify-backend/internal/data/repos"
	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/platform/ctxutil"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(dbc dbctx.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, displayName string, userType string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	userID := ctxutil.UserID(dbc.Ctx)
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", ErrAuthenticationMissing)
	}
	users, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.New(http.StatusNotFound, "user_not_found", nil)
	}
	return users[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, displayName string, userType string) (*types.User, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", ErrAuthenticationMissing)
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_display_name", fmt.Errorf("display name required"))
	}
	ut, ok := types.ParseUserType(strings.ToLower(strings.TrimSpace(userType)))
	if !ok {
		return nil, apierr.New(http.StatusBadRequest, "invalid_user_type", fmt.Errorf("unsupported user type %q", userType))
	}

	var out *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := us.userRepo.UpdateProfile(dbc, userID, displayName, ut); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		users, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		if len(users) == 0 {
			return apierr.New(http.StatusNotFound, "user_not_found", nil)
		}
		out = users[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
