package contracts

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

type ContractRepo interface {
	Create(dbc dbctx.Context, contracts []*types.Contract) ([]*types.Contract, error)
	// GetByIDAndCreator returns nil, nil when no row matches both the id and the
	// creator; a foreign contract is indistinguishable from a missing one.
	GetByIDAndCreator(dbc dbctx.Context, contractID, creatorID uuid.UUID) (*types.Contract, error)
	ListByCreator(dbc dbctx.Context, creatorID uuid.UUID) ([]*types.Contract, error)
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	repoLog := baseLog.With("repo", "ContractRepo")
	return &contractRepo{db: db, log: repoLog}
}

func (cr *contractRepo) Create(dbc dbctx.Context, contracts []*types.Contract) ([]*types.Contract, error) {
	if len(contracts) == 0 {
		return []*types.Contract{}, nil
	}
	if err := dbc.DB(cr.db).Create(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (cr *contractRepo) GetByIDAndCreator(dbc dbctx.Context, contractID, creatorID uuid.UUID) (*types.Contract, error) {
	if contractID == uuid.Nil || creatorID == uuid.Nil {
		return nil, nil
	}
	var row types.Contract
	err := dbc.DB(cr.db).
		Joins("Template").
		Where("contracts.id = ? AND contracts.creator_id = ?", contractID, creatorID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (cr *contractRepo) ListByCreator(dbc dbctx.Context, creatorID uuid.UUID) ([]*types.Contract, error) {
	var results []*types.Contract
	if creatorID == uuid.Nil {
		return results, nil
	}
	if err := dbc.DB(cr.db).
		Joins("Template").
		Where("contracts.creator_id = ?", creatorID).
		Order("contracts.created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
