package compounder

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
)

// PoolInfo is the per-pool state of the compounder. Reserves hold harvested
// reward and liquidity leftovers that have not been reinvested yet.
type PoolInfo struct {
	Want                  common.Address
	RewardToken           common.Address
	IsPair                bool
	Token0                common.Address
	Token1                common.Address
	CompoundOnInteraction bool
	Enabled               bool
	TotalDeposited        *amount.Amount
	ReserveReward         *amount.Amount
	Reserve0              *amount.Amount
	Reserve1              *amount.Amount
}

func (s *PoolInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Address(w, s.Want); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.RewardToken); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Bool(w, s.IsPair); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.Token0); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.Token1); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Bool(w, s.CompoundOnInteraction); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Bool(w, s.Enabled); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.TotalDeposited); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.ReserveReward); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.Reserve0); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.Reserve1); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *PoolInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Want = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.RewardToken = v
	}
	if v, err := sr.Bool(r); err != nil {
		return sr.Sum(), err
	} else {
		s.IsPair = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Token0 = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Token1 = v
	}
	if v, err := sr.Bool(r); err != nil {
		return sr.Sum(), err
	} else {
		s.CompoundOnInteraction = v
	}
	if v, err := sr.Bool(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Enabled = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.TotalDeposited = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.ReserveReward = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Reserve0 = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Reserve1 = v
	}
	return sr.Sum(), nil
}
