package rebalancer

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
)

// MaxRate is the fee rate denominator in basis points
const MaxRate = 10000

// Job is one compounding round over a pool's harvested reserves
type Job struct {
	Want        common.Address
	RewardToken common.Address
	IsPair      bool
	Token0      common.Address
	Token1      common.Address
	Reward      *amount.Amount
}

// Result reports what a compounding round produced. Dust0/Dust1 are
// leftovers of liquidity provisioning that go back into the reserves.
type Result struct {
	WantOut *amount.Amount
	Dust0   *amount.Amount
	Dust1   *amount.Amount
	Skipped bool
}

// DustJob sweeps accumulated non-reward reserves back to the reward token
type DustJob struct {
	RewardToken common.Address
	Token0      common.Address
	Token1      common.Address
	Dust0       *amount.Amount
	Dust1       *amount.Amount
}

// Params are the strategy parameters held in the host contract's data space
type Params struct {
	Router        common.Address
	ProtocolToken common.Address
	BuyBackSink   common.Address
	Treasury      common.Address
	BuyBackRate   uint16
	TreasuryFee   uint16
	BuyBackDelta  uint32
	DustThreshold *amount.Amount
}

func (s *Params) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Address(w, s.Router); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.ProtocolToken); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.BuyBackSink); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.Treasury); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint16(w, s.BuyBackRate); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint16(w, s.TreasuryFee); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint32(w, s.BuyBackDelta); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.DustThreshold); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *Params) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Router = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.ProtocolToken = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.BuyBackSink = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Treasury = v
	}
	if v, err := sr.Uint16(r); err != nil {
		return sr.Sum(), err
	} else {
		s.BuyBackRate = v
	}
	if v, err := sr.Uint16(r); err != nil {
		return sr.Sum(), err
	} else {
		s.TreasuryFee = v
	}
	if v, err := sr.Uint32(r); err != nil {
		return sr.Sum(), err
	} else {
		s.BuyBackDelta = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.DustThreshold = v
	}
	return sr.Sum(), nil
}

// Strategy turns harvested rewards into more of the deposit asset
type Strategy interface {
	Compound(cc *types.ContractContext, job *Job) (*Result, error)
	ConvertDust(cc *types.ContractContext, job *DustJob) (*amount.Amount, error)
	SetParams(cc *types.ContractContext, params *Params) error
	Params(lw types.ContractLoader) (*Params, error)
}
