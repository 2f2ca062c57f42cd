package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/pactify-backend/internal/data/repos"
	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/domain/contracts"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

var ErrUnknownTemplate = errors.New("unknown template")

// ContractCreator is the single write the wizard submission depends on.
type ContractCreator interface {
	CreateContract(ctx context.Context, ownerID uuid.UUID, req types.CreateContractRequest) (*types.CreateContractResult, error)
}

type ContractService interface {
	ContractCreator
	GetContract(ctx context.Context, contractID, ownerID uuid.UUID) (*types.Contract, error)
	ListContracts(ctx context.Context, ownerID uuid.UUID) ([]*types.Contract, error)
	ListTemplates(ctx context.Context) ([]*types.ContractTemplate, error)
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	contractRepo repos.ContractRepo
	templateRepo repos.ContractTemplateRepo
}

func NewContractService(db *gorm.DB, log *logger.Logger, contractRepo repos.ContractRepo, templateRepo repos.ContractTemplateRepo) ContractService {
	serviceLog := log.With("service", "ContractService")
	return &contractService{
		db:           db,
		log:          serviceLog,
		contractRepo: contractRepo,
		templateRepo: templateRepo,
	}
}

type createContractInput struct {
	Title       string `validate:"required"`
	ClientEmail string `validate:"required,email"`
}

// CreateContract stores a new draft owned by ownerID. The owner never comes from the request.
func (cs *contractService) CreateContract(ctx context.Context, ownerID uuid.UUID, req types.CreateContractRequest) (*types.CreateContractResult, error) {
	if ownerID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", ErrAuthenticationMissing)
	}

	title := strings.TrimSpace(req.Title)
	email := strings.TrimSpace(req.ClientEmail)
	if err := validate.Struct(createContractInput{Title: title, ClientEmail: email}); err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_contract", describeValidation(err))
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_contract", fmt.Errorf("price must be a number"))
	}
	if price.IsNegative() {
		return nil, apierr.New(http.StatusBadRequest, "invalid_contract", fmt.Errorf("price must not be negative"))
	}

	currency := contracts.CurrencyUSD
	if raw := strings.TrimSpace(req.Currency); raw != "" {
		c, ok := contracts.ParseCurrency(strings.ToUpper(raw))
		if !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_contract", fmt.Errorf("unsupported currency %q", raw))
		}
		currency = c
	}
	paymentType := contracts.PaymentFixed
	if raw := strings.TrimSpace(req.PaymentType); raw != "" {
		p, ok := contracts.ParsePaymentType(strings.ToLower(raw))
		if !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_contract", fmt.Errorf("unsupported payment type %q", raw))
		}
		paymentType = p
	}

	row := &types.Contract{
		CreatorID:   ownerID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		ClientEmail: email,
		PaymentType: paymentType,
		Status:      types.ContractStatusDraft,
		TotalAmount: decimal.NewNullDecimal(price.Round(2)),
		Currency:    currency,
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		tpl, err := cs.resolveTemplate(dbc, req.Template)
		if err != nil {
			return err
		}
		var content []byte
		if tpl != nil {
			row.TemplateID = &tpl.ID
			content = tpl.Content
		}
		row.Content = datatypes.JSON(contracts.NormalizeDocumentJSON(content))
		if _, err := cs.contractRepo.Create(dbc, []*types.Contract{row}); err != nil {
			return fmt.Errorf("create contract: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.log.Info("Created contract", "contract_id", row.ID, "owner_id", ownerID, "template_id", row.TemplateID)
	return &types.CreateContractResult{ContractID: row.ID}, nil
}

func (cs *contractService) resolveTemplate(dbc dbctx.Context, name *string) (*types.ContractTemplate, error) {
	if name == nil {
		return nil, nil
	}
	n := strings.TrimSpace(*name)
	if n == "" || n == types.CustomTemplate {
		return nil, nil
	}
	found, err := cs.templateRepo.GetByNames(dbc, []string{n})
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if len(found) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "unknown_template", fmt.Errorf("%w %q", ErrUnknownTemplate, n))
	}
	return found[0], nil
}

func (cs *contractService) GetContract(ctx context.Context, contractID, ownerID uuid.UUID) (*types.Contract, error) {
	if ownerID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", ErrAuthenticationMissing)
	}
	row, err := cs.contractRepo.GetByIDAndCreator(dbctx.Context{Ctx: ctx}, contractID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	if row == nil {
		return nil, apierr.New(http.StatusNotFound, "contract_not_found", contracts.ErrContractNotFound)
	}
	return row, nil
}

func (cs *contractService) ListContracts(ctx context.Context, ownerID uuid.UUID) ([]*types.Contract, error) {
	if ownerID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", ErrAuthenticationMissing)
	}
	rows, err := cs.contractRepo.ListByCreator(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return rows, nil
}

func (cs *contractService) ListTemplates(ctx context.Context) ([]*types.ContractTemplate, error) {
	rows, err := cs.templateRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return rows, nil
}

// describeValidation turns validator field errors into a short user-facing message.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch {
	case fe.Tag() == "email":
		return fmt.Errorf("client email is not a valid email address")
	case fe.Tag() == "required":
		return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("%s is invalid", strings.ToLower(fe.Field()))
}
