package contracts

import "github.com/google/uuid"

// CreateRequest is the input of contract creation, shared by the wizard and
// the JSON endpoint. Template is a catalog name, CustomTemplate or nil.
type CreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ClientEmail string  `json:"clientEmail"`
	Price       string  `json:"price"`
	Currency    string  `json:"currency"`
	PaymentType string  `json:"paymentType"`
	Template    *string `json:"template"`
}

type CreateResult struct {
	ContractID uuid.UUID `json:"contractId"`
}
