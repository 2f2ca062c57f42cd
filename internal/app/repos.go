package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pactify-backend/internal/data/repos"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

type Repos struct {
	User             repos.UserRepo
	UserToken        repos.UserTokenRepo
	Contract         repos.ContractRepo
	ContractTemplate repos.ContractTemplateRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		UserToken:        repos.NewUserTokenRepo(db, log),
		Contract:         repos.NewContractRepo(db, log),
		ContractTemplate: repos.NewContractTemplateRepo(db, log),
	}
}
