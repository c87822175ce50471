package plantation

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
)

// PoolInfo is a stake pool of the plantation
type PoolInfo struct {
	StakeToken        common.Address
	RewardPerBlock    *amount.Amount
	DepositFeeRate    uint16
	LastRewardBlock   uint32
	AccRewardPerShare *amount.Amount
	TotalStaked       *amount.Amount
}

func (s *PoolInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Address(w, s.StakeToken); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.RewardPerBlock); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint16(w, s.DepositFeeRate); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint32(w, s.LastRewardBlock); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.AccRewardPerShare); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.TotalStaked); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *PoolInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.StakeToken = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.RewardPerBlock = v
	}
	if v, err := sr.Uint16(r); err != nil {
		return sr.Sum(), err
	} else {
		s.DepositFeeRate = v
	}
	if v, err := sr.Uint32(r); err != nil {
		return sr.Sum(), err
	} else {
		s.LastRewardBlock = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.AccRewardPerShare = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.TotalStaked = v
	}
	return sr.Sum(), nil
}

// StakerInfo is a staker position in a pool
type StakerInfo struct {
	Staked     *amount.Amount
	RewardDebt *amount.Amount
	Pending    *amount.Amount
}

func (s *StakerInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Amount(w, s.Staked); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.RewardDebt); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.Pending); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *StakerInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Staked = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.RewardDebt = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Pending = v
	}
	return sr.Sum(), nil
}
