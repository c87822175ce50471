package compounder

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/bin"
)

type CompounderContractConstruction struct {
	Optimiser  common.Address
	Plantation common.Address
}

func (s *CompounderContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Address(w, s.Optimiser); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.Plantation); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *CompounderContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Optimiser = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Plantation = v
	}
	return sr.Sum(), nil
}
