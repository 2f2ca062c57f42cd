package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pactify-backend/internal/clients/redis"
	"github.com/yungbote/pactify-backend/internal/observability"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/realtime"
	"github.com/yungbote/pactify-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Contract services.ContractService
	Wizard   services.WizardService
	Notifier services.ContractNotifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, hub *realtime.SSEHub, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	var emitter services.SSEEmitter = &services.HubEmitter{Hub: hub}
	if clients.SSEBus != nil {
		emitter = &services.RedisEmitter{Bus: clients.SSEBus, Log: log}
	}
	notifier := services.NewContractNotifier(emitter)

	var store services.WizardStore
	switch {
	case cfg.WizardStore == WizardStoreRedis && clients.Redis != nil:
		store = redis.NewWizardStore(clients.Redis, cfg.WizardTTL, log)
	default:
		store = services.NewMemoryWizardStore(cfg.WizardTTL)
	}
	log.Info("Wizard session store selected", "store", cfg.WizardStore, "ttl", cfg.WizardTTL)

	auth := services.NewAuthService(db, log, repos.User, repos.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	user := services.NewUserService(db, log, repos.User)
	contract := services.NewContractService(db, log, repos.Contract, repos.ContractTemplate)
	wizard := services.NewWizardService(log, store, contract, notifier, services.WithWizardMetrics(metrics))

	return Services{
		Auth:     auth,
		User:     user,
		Contract: contract,
		Wizard:   wizard,
		Notifier: notifier,
	}
}
