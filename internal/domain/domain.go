package domain

import (
	"github.com/yungbote/pactify-backend/internal/domain/auth"
	"github.com/yungbote/pactify-backend/internal/domain/contracts"
	"github.com/yungbote/pactify-backend/internal/domain/user"
)

type User = user.User
type UserType = user.UserType
type UserToken = auth.UserToken

type Contract = contracts.Contract
type ContractTemplate = contracts.ContractTemplate
type ContractStatus = contracts.Status
type Currency = contracts.Currency
type PaymentType = contracts.PaymentType
type DocumentNode = contracts.Node

var ParseUserType = user.ParseUserType

const (
	UserTypeFreelancer = user.UserTypeFreelancer
	UserTypeClient     = user.UserTypeClient
	UserTypeBoth       = user.UserTypeBoth

	ContractStatusDraft     = contracts.StatusDraft
	ContractStatusPending   = contracts.StatusPending
	ContractStatusSigned    = contracts.StatusSigned
	ContractStatusCompleted = contracts.StatusCompleted
	ContractStatusCancelled = contracts.StatusCancelled
	ContractStatusDisputed  = contracts.StatusDisputed

	CustomTemplate = contracts.CustomTemplate
)

type CreateContractRequest = contracts.CreateRequest
type CreateContractResult = contracts.CreateResult
