package contracts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CustomTemplate is the wizard sentinel for "start from scratch".
const CustomTemplate = "custom"

type Contract struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   uuid.UUID         `gorm:"type:uuid;not null;index;column:creator_id" json:"creator_id"`
	TemplateID  *uuid.UUID        `gorm:"type:uuid;index;column:template_id" json:"template_id,omitempty"`
	Template    *ContractTemplate `gorm:"foreignKey:TemplateID;references:ID" json:"contract_templates,omitempty"`
	Title       string            `gorm:"not null;column:title" json:"title"`
	Description string            `gorm:"column:description" json:"description"`
	ClientEmail string            `gorm:"column:client_email" json:"client_email"`
	PaymentType PaymentType       `gorm:"not null;default:'fixed';column:payment_type" json:"payment_type"`
	Status      Status            `gorm:"not null;default:'draft';index;column:status" json:"status"`

	TotalAmount decimal.NullDecimal `gorm:"type:numeric(14,2);column:total_amount" json:"total_amount"`
	Currency    Currency            `gorm:"not null;default:'USD';column:currency" json:"currency"`
	Content     datatypes.JSON      `gorm:"column:content" json:"content"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contract) TableName() string { return "contracts" }

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusDraft
	}
	if c.Currency == "" {
		c.Currency = CurrencyUSD
	}
	if c.PaymentType == "" {
		c.PaymentType = PaymentFixed
	}
	return nil
}

// BeforeUpdate keeps the owner immutable once the row exists.
func (c *Contract) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CreatorID") {
		return ErrOwnerImmutable
	}
	return nil
}
