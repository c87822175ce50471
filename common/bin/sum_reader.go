package bin

import (
	"io"
	"math/big"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/pkg/errors"
)

// SumReader accumulates the read size over sequential reads
type SumReader struct {
	sum int64
}

// NewSumReader returns a SumReader
func NewSumReader() *SumReader {
	return &SumReader{}
}

// Sum returns the accumulated read size
func (sr *SumReader) Sum() int64 {
	return sr.sum
}

func (sr *SumReader) read(r io.Reader, bs []byte) error {
	n, err := io.ReadFull(r, bs)
	sr.sum += int64(n)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Uint8 reads a uint8 number from the reader
func (sr *SumReader) Uint8(r io.Reader) (uint8, error) {
	bs := make([]byte, 1)
	if err := sr.read(r, bs); err != nil {
		return 0, err
	}
	return bs[0], nil
}

// Uint16 reads a uint16 number from the reader
func (sr *SumReader) Uint16(r io.Reader) (uint16, error) {
	bs := make([]byte, 2)
	if err := sr.read(r, bs); err != nil {
		return 0, err
	}
	return Uint16(bs), nil
}

// Uint32 reads a uint32 number from the reader
func (sr *SumReader) Uint32(r io.Reader) (uint32, error) {
	bs := make([]byte, 4)
	if err := sr.read(r, bs); err != nil {
		return 0, err
	}
	return Uint32(bs), nil
}

// Uint64 reads a uint64 number from the reader
func (sr *SumReader) Uint64(r io.Reader) (uint64, error) {
	bs := make([]byte, 8)
	if err := sr.read(r, bs); err != nil {
		return 0, err
	}
	return Uint64(bs), nil
}

// Bool reads a bool value from the reader
func (sr *SumReader) Bool(r io.Reader) (bool, error) {
	v, err := sr.Uint8(r)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// Bytes reads length-prefixed bytes from the reader
func (sr *SumReader) Bytes(r io.Reader) ([]byte, error) {
	Len, err := sr.Uint32(r)
	if err != nil {
		return nil, err
	}
	bs := make([]byte, Len)
	if err := sr.read(r, bs); err != nil {
		return nil, err
	}
	return bs, nil
}

// String reads a length-prefixed string from the reader
func (sr *SumReader) String(r io.Reader) (string, error) {
	bs, err := sr.Bytes(r)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// Address reads an address from the reader
func (sr *SumReader) Address(r io.Reader) (common.Address, error) {
	var addr common.Address
	if err := sr.read(r, addr[:]); err != nil {
		return common.ZeroAddr, err
	}
	return addr, nil
}

// Amount reads an amount from the reader
func (sr *SumReader) Amount(r io.Reader) (*amount.Amount, error) {
	bi, err := sr.BigInt(r)
	if err != nil {
		return nil, err
	}
	return &amount.Amount{Int: bi}, nil
}

// BigInt reads a big int from the reader
func (sr *SumReader) BigInt(r io.Reader) (*big.Int, error) {
	bs, err := sr.Bytes(r)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(bs), nil
}

// ReaderFrom reads the io.ReaderFrom from the reader
func (sr *SumReader) ReaderFrom(r io.Reader, rf io.ReaderFrom) error {
	n, err := rf.ReadFrom(r)
	sr.sum += n
	if err != nil {
		return err
	}
	return nil
}
