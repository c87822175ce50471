package bin

import (
	"io"
	"math/big"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/pkg/errors"
)

// SumWriter accumulates the written size over sequential writes
type SumWriter struct {
	sum int64
}

// NewSumWriter returns a SumWriter
func NewSumWriter() *SumWriter {
	return &SumWriter{}
}

// Sum returns the accumulated written size
func (sw *SumWriter) Sum() int64 {
	return sw.sum
}

func (sw *SumWriter) write(w io.Writer, bs []byte) error {
	n, err := w.Write(bs)
	sw.sum += int64(n)
	if err != nil {
		return errors.WithStack(err)
	}
	if n != len(bs) {
		return errors.WithStack(io.ErrShortWrite)
	}
	return nil
}

// Uint8 writes the uint8 number to the writer
func (sw *SumWriter) Uint8(w io.Writer, v uint8) error {
	return sw.write(w, []byte{v})
}

// Uint16 writes the uint16 number to the writer
func (sw *SumWriter) Uint16(w io.Writer, v uint16) error {
	return sw.write(w, Uint16Bytes(v))
}

// Uint32 writes the uint32 number to the writer
func (sw *SumWriter) Uint32(w io.Writer, v uint32) error {
	return sw.write(w, Uint32Bytes(v))
}

// Uint64 writes the uint64 number to the writer
func (sw *SumWriter) Uint64(w io.Writer, v uint64) error {
	return sw.write(w, Uint64Bytes(v))
}

// Bool writes the bool value to the writer
func (sw *SumWriter) Bool(w io.Writer, v bool) error {
	if v {
		return sw.Uint8(w, 1)
	}
	return sw.Uint8(w, 0)
}

// Bytes writes the length-prefixed bytes to the writer
func (sw *SumWriter) Bytes(w io.Writer, bs []byte) error {
	if err := sw.Uint32(w, uint32(len(bs))); err != nil {
		return err
	}
	return sw.write(w, bs)
}

// String writes the length-prefixed string to the writer
func (sw *SumWriter) String(w io.Writer, str string) error {
	return sw.Bytes(w, []byte(str))
}

// Address writes the address to the writer
func (sw *SumWriter) Address(w io.Writer, addr common.Address) error {
	return sw.write(w, addr[:])
}

// Amount writes the amount to the writer
func (sw *SumWriter) Amount(w io.Writer, am *amount.Amount) error {
	if am == nil {
		am = amount.NewAmount(0, 0)
	}
	return sw.BigInt(w, am.Int)
}

// BigInt writes the big int to the writer
func (sw *SumWriter) BigInt(w io.Writer, bi *big.Int) error {
	if bi == nil {
		bi = big.NewInt(0)
	}
	return sw.Bytes(w, bi.Bytes())
}

// WriterTo writes the io.WriterTo to the writer
func (sw *SumWriter) WriterTo(w io.Writer, wt io.WriterTo) error {
	n, err := wt.WriteTo(w)
	sw.sum += n
	if err != nil {
		return err
	}
	return nil
}
