package amount

import "github.com/pkg/errors"

// amount errors
var (
	ErrInvalidAmountFormat = errors.New("invalid amount format")
)
