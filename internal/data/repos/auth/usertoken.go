package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

// UserTokenRepo stores sign-in sessions. Lookups return (nil, nil) when no row
// matches; revocation is a hard delete.
type UserTokenRepo interface {
	Create(dbc dbctx.Context, token *types.UserToken) error
	FindByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error)
	FindByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error)
	Revoke(dbc dbctx.Context, ids ...uuid.UUID) error
	PurgeExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: baseLog.With("repo", "UserTokenRepo")}
}

func (r *userTokenRepo) Create(dbc dbctx.Context, token *types.UserToken) error {
	if token == nil {
		return errors.New("nil user token")
	}
	return dbc.DB(r.db).Create(token).Error
}

func (r *userTokenRepo) FindByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error) {
	return r.findBy(dbc, "access_token", accessToken)
}

func (r *userTokenRepo) FindByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error) {
	return r.findBy(dbc, "refresh_token", refreshToken)
}

func (r *userTokenRepo) findBy(dbc dbctx.Context, column, value string) (*types.UserToken, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var row types.UserToken
	err := dbc.DB(r.db).Where(column+" = ?", value).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *userTokenRepo) Revoke(dbc dbctx.Context, ids ...uuid.UUID) error {
	live := ids[:0:0]
	for _, id := range ids {
		if id != uuid.Nil {
			live = append(live, id)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return dbc.DB(r.db).Unscoped().Where("id IN ?", live).Delete(&types.UserToken{}).Error
}

func (r *userTokenRepo) PurgeExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	res := dbc.DB(r.db).Unscoped().Where("expires_at < ?", now).Delete(&types.UserToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		r.log.Debug("Purged expired sessions", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
