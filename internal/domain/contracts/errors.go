package contracts

import "errors"

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrOwnerImmutable   = errors.New("contract owner cannot change")
)
