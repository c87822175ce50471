package common

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// AddressLength is the expected length of an address
const AddressLength = 20

// Address is a 20-byte account or contract identifier
type Address [AddressLength]byte

var ZeroAddr = Address{}

// BytesToAddress returns the address of the bytes, left-truncating values
// that are too long
func BytesToAddress(bs []byte) Address {
	var addr Address
	if len(bs) > AddressLength {
		bs = bs[len(bs)-AddressLength:]
	}
	copy(addr[AddressLength-len(bs):], bs)
	return addr
}

// HexToAddress returns the address of the hex string
func HexToAddress(str string) Address {
	bs, _ := hexutil.Decode(str)
	return BytesToAddress(bs)
}

// ParseAddress parses an 0x-prefixed hex address
func ParseAddress(str string) (Address, error) {
	bs, err := hexutil.Decode(str)
	if err != nil {
		return ZeroAddr, errors.WithStack(err)
	}
	if len(bs) != AddressLength {
		return ZeroAddr, errors.WithStack(ErrInvalidAddressFormat)
	}
	return BytesToAddress(bs), nil
}

// MustParseAddress panics when the address is not parsable
func MustParseAddress(str string) Address {
	addr, err := ParseAddress(str)
	if err != nil {
		panic(err)
	}
	return addr
}

func (addr Address) Bytes() []byte {
	return addr[:]
}

func (addr Address) String() string {
	return hexutil.Encode(addr[:])
}

func (addr Address) IsZero() bool {
	return bytes.Equal(addr[:], ZeroAddr[:])
}

// MarshalJSON is a marshaler function
func (addr Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + addr.String() + `"`), nil
}

// UnmarshalJSON is a unmarshaler function
func (addr *Address) UnmarshalJSON(bs []byte) error {
	if len(bs) < 3 {
		return errors.WithStack(ErrInvalidAddressFormat)
	}
	if bs[0] != '"' || bs[len(bs)-1] != '"' {
		return errors.WithStack(ErrInvalidAddressFormat)
	}
	v, err := ParseAddress(string(bs[1 : len(bs)-1]))
	if err != nil {
		return err
	}
	copy(addr[:], v[:])
	return nil
}
