package optimiser

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
)

// FarmInfo is a registered farm: one pool of one compounder
type FarmInfo struct {
	Want              common.Address
	AllocPoint        uint32
	LastRewardBlock   uint32
	AccRewardPerShare *amount.Amount
	TotalShares       *amount.Amount
	DepositFeeRate    uint16
	WithdrawFeeRate   uint16
	Paused            bool
}

func (s *FarmInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Address(w, s.Want); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint32(w, s.AllocPoint); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint32(w, s.LastRewardBlock); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.AccRewardPerShare); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.TotalShares); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint16(w, s.DepositFeeRate); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Uint16(w, s.WithdrawFeeRate); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Bool(w, s.Paused); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *FarmInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Want = v
	}
	if v, err := sr.Uint32(r); err != nil {
		return sr.Sum(), err
	} else {
		s.AllocPoint = v
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
		s.TotalShares = v
	}
	if v, err := sr.Uint16(r); err != nil {
		return sr.Sum(), err
	} else {
		s.DepositFeeRate = v
	}
	if v, err := sr.Uint16(r); err != nil {
		return sr.Sum(), err
	} else {
		s.WithdrawFeeRate = v
	}
	if v, err := sr.Bool(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Paused = v
	}
	return sr.Sum(), nil
}

// UserInfo is a user position in a farm. PastRewards carries rewards
// settled before the last share mutation.
type UserInfo struct {
	Shares      *amount.Amount
	RewardDebt  *amount.Amount
	PastRewards *amount.Amount
}

func (s *UserInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Amount(w, s.Shares); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.RewardDebt); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Amount(w, s.PastRewards); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *UserInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.Shares = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.RewardDebt = v
	}
	if v, err := sr.Amount(r); err != nil {
		return sr.Sum(), err
	} else {
		s.PastRewards = v
	}
	return sr.Sum(), nil
}

// FarmKey identifies a farm by source and pool
type FarmKey struct {
	Sid uint64
	Pid uint64
}

func parseFarmList(bs []byte) []FarmKey {
	keys := make([]FarmKey, 0, len(bs)/16)
	for i := 0; i+16 <= len(bs); i += 16 {
		keys = append(keys, FarmKey{
			Sid: bin.Uint64(bs[i : i+8]),
			Pid: bin.Uint64(bs[i+8 : i+16]),
		})
	}
	return keys
}

func appendFarmList(bs []byte, key FarmKey) []byte {
	nbs := make([]byte, len(bs), len(bs)+16)
	copy(nbs, bs)
	nbs = append(nbs, bin.Uint64Bytes(key.Sid)...)
	nbs = append(nbs, bin.Uint64Bytes(key.Pid)...)
	return nbs
}
