package common

import "github.com/pkg/errors"

// common errors
var (
	ErrInvalidAddressFormat = errors.New("invalid address format")
	ErrInvalidAddressLength = errors.New("invalid address length")
)
