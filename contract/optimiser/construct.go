package optimiser

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
)

type OptimiserContractConstruction struct {
	RewardToken      common.Address
	EmissionPerBlock *amount.Amount
	StartBlock       uint32
	FeeSink          common.Address
}

func (s *OptimiserContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Address(w, s.RewardToken); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.EmissionPerBlock); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint32(w, s.StartBlock); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.FeeSink); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *OptimiserContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.RewardToken = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.EmissionPerBlock = v
	}
	if v, err := sr.Uint32(r); err != nil {
		return sr.Sum(), err
	} else {
		s.StartBlock = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.FeeSink = v
	}
	return sr.Sum(), nil
}
