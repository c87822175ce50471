package token

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
)

type TokenContractConstruction struct {
	Name             string
	Symbol           string
	InitialSupplyMap map[common.Address]*amount.Amount
}

func (s *TokenContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.String(w, s.Name); err != nil {
		return sw.Sum(), err
	}
	if err := sw.String(w, s.Symbol); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint32(w, uint32(len(s.InitialSupplyMap))); err != nil {
		return sw.Sum(), err
	}
	for addr, am := range s.InitialSupplyMap {
		if err := sw.Address(w, addr); err != nil {
			return sw.Sum(), err
		}
		if err := sw.Amount(w, am); err != nil {
			return sw.Sum(), err
		}
	}
	return sw.Sum(), nil
}

func (s *TokenContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.String(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Name = v
	}
	if v, err := sr.String(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Symbol = v
	}
	Len, err := sr.Uint32(r)
	if err != nil {
		return sr.Sum(), err
	}
	s.InitialSupplyMap = map[common.Address]*amount.Amount{}
	for i := uint32(0); i < Len; i++ {
		addr, err := sr.Address(r)
		if err != nil {
			return sr.Sum(), err
		}
		am, err := sr.Amount(r)
		if err != nil {
			return sr.Sum(), err
		}
		s.InitialSupplyMap[addr] = am
	}
	return sr.Sum(), nil
}
