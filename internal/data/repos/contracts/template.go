package contracts

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

type ContractTemplateRepo interface {
	List(dbc dbctx.Context) ([]*types.ContractTemplate, error)
	GetByNames(dbc dbctx.Context, names []string) ([]*types.ContractTemplate, error)
	// Upsert inserts templates, replacing description and content of any with the same name.
	Upsert(dbc dbctx.Context, templates []*types.ContractTemplate) error
}

type contractTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractTemplateRepo(db *gorm.DB, baseLog *logger.Logger) ContractTemplateRepo {
	repoLog := baseLog.With("repo", "ContractTemplateRepo")
	return &contractTemplateRepo{db: db, log: repoLog}
}

func (tr *contractTemplateRepo) List(dbc dbctx.Context) ([]*types.ContractTemplate, error) {
	var results []*types.ContractTemplate
	if err := dbc.DB(tr.db).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *contractTemplateRepo) GetByNames(dbc dbctx.Context, names []string) ([]*types.ContractTemplate, error) {
	var results []*types.ContractTemplate
	if len(names) == 0 {
		return results, nil
	}
	if err := dbc.DB(tr.db).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *contractTemplateRepo) Upsert(dbc dbctx.Context, templates []*types.ContractTemplate) error {
	if len(templates) == 0 {
		return nil
	}
	return dbc.DB(tr.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "content", "updated_at"}),
		}).
		Create(&templates).Error
}
