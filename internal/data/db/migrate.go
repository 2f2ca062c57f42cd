package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/pactify-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Contracts
		&types.ContractTemplate{},
		&types.Contract{},
	)
}

// EnsureContractIndexes adds the owner-scoped listing index. Postgres only; other
// dialects rely on the single-column indexes from the struct tags.
func EnsureContractIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_contracts_creator_created
		ON contracts (creator_id, created_at DESC)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_contracts_creator_created: %w", err)
	}
	return nil
}
