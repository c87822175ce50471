package types

import "github.com/pkg/errors"

// types errors
var (
	ErrNotExistContract     = errors.New("not exist contract")
	ErrNotExistContractType = errors.New("not exist contract type")
	ErrExistAddress         = errors.New("exist address")
	ErrInvalidMethodName    = errors.New("invalid method name")
	ErrNotExistMethod       = errors.New("not exist method")
	ErrInvalidArgument      = errors.New("invalid argument")
)
