package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/pactify-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    "pw",
		FirstName:   "A",
		LastName:    "B",
		DisplayName: "A B",
		UserType:    types.UserTypeFreelancer,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedTemplate(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.ContractTemplate {
	tb.Helper()
	tpl := &types.ContractTemplate{
		ID:          uuid.New(),
		Name:        name,
		Description: "template",
		Content:     datatypes.JSON([]byte(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"` + name + `"}]}]}`)),
	}
	if err := tx.WithContext(ctx).Create(tpl).Error; err != nil {
		tb.Fatalf("seed template: %v", err)
	}
	return tpl
}

func SeedContract(tb testing.TB, ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, templateID *uuid.UUID) *types.Contract {
	tb.Helper()
	c := &types.Contract{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		TemplateID:  templateID,
		Title:       "contract",
		ClientEmail: "client@example.com",
		Status:      types.ContractStatusDraft,
		Currency:    "USD",
		PaymentType: "fixed",
		TotalAmount: decimal.NewNullDecimal(decimal.RequireFromString("1500")),
		Content:     datatypes.JSON([]byte(`{"type":"doc","content":[{"type":"paragraph"}]}`)),
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contract: %v", err)
	}
	return c
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrString(v string) *string { return &v }
