package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/pactify-backend/internal/data/repos/auth"
	"github.com/yungbote/pactify-backend/internal/data/repos/contracts"
	"github.com/yungbote/pactify-backend/internal/data/repos/user"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type ContractRepo = contracts.ContractRepo
type ContractTemplateRepo = contracts.ContractTemplateRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return contracts.NewContractRepo(db, baseLog)
}
func NewContractTemplateRepo(db *gorm.DB, baseLog *logger.Logger) ContractTemplateRepo {
	return contracts.NewContractTemplateRepo(db, baseLog)
}
