package rebalancer

import (
	"bytes"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

// SwapStrategy compounds through a swap router: a rate-limited buy-back of
// the protocol token, a treasury cut, then conversion of the remainder into
// the deposit asset (splitting into both legs for LP wants).
type SwapStrategy struct{}

//////////////////////////////////////////////////
// Strategy Functions
//////////////////////////////////////////////////

func (s *SwapStrategy) Compound(cc *types.ContractContext, job *Job) (*Result, error) {
	p, err := s.Params(cc)
	if err != nil {
		return nil, err
	}
	res := &Result{
		WantOut: amount.NewAmount(0, 0),
		Dust0:   amount.NewAmount(0, 0),
		Dust1:   amount.NewAmount(0, 0),
	}
	if job.Reward == nil || !job.Reward.IsPlus() || job.Reward.Less(p.DustThreshold) {
		res.Skipped = true
		return res, nil
	}
	reward := job.Reward.Clone()

	if p.BuyBackRate > 0 {
		buyBack := job.Reward.MulC(int64(p.BuyBackRate)).DivC(MaxRate)
		if buyBack.IsPlus() {
			reward = reward.Sub(buyBack)
			if err := s.runBuyBack(cc, p, job, buyBack); err != nil {
				return nil, err
			}
		}
	}

	if p.TreasuryFee > 0 {
		fee := job.Reward.MulC(int64(p.TreasuryFee)).DivC(MaxRate)
		if fee.IsPlus() {
			if _, err := cc.Exec(cc, job.RewardToken, "Transfer", []interface{}{p.Treasury, fee}); err != nil {
				return nil, err
			}
			reward = reward.Sub(fee)
		}
	}

	if !reward.IsPlus() {
		return res, nil
	}
	if job.Want == job.RewardToken {
		res.WantOut = reward
		return res, nil
	}
	if !job.IsPair {
		out, err := s.swap(cc, p.Router, job.RewardToken, job.Want, reward)
		if err != nil {
			return nil, err
		}
		res.WantOut = out
		return res, nil
	}

	half := reward.DivC(2)
	rest := reward.Sub(half)
	amt0, err := s.swap(cc, p.Router, job.RewardToken, job.Token0, half)
	if err != nil {
		return nil, err
	}
	amt1, err := s.swap(cc, p.Router, job.RewardToken, job.Token1, rest)
	if err != nil {
		return nil, err
	}
	if err := s.increaseAllowance(cc, job.Token0, p.Router, amt0); err != nil {
		return nil, err
	}
	if err := s.increaseAllowance(cc, job.Token1, p.Router, amt1); err != nil {
		return nil, err
	}
	is, err := cc.Exec(cc, p.Router, "UniAddLiquidity", []interface{}{job.Token0, job.Token1, amt0, amt1, nil, nil})
	if err != nil {
		return nil, err
	}
	used0 := is[0].(*amount.Amount)
	used1 := is[1].(*amount.Amount)
	res.WantOut = is[2].(*amount.Amount)
	res.Dust0 = amt0.Sub(used0)
	res.Dust1 = amt1.Sub(used1)
	return res, nil
}

func (s *SwapStrategy) ConvertDust(cc *types.ContractContext, job *DustJob) (*amount.Amount, error) {
	p, err := s.Params(cc)
	if err != nil {
		return nil, err
	}
	total := amount.NewAmount(0, 0)
	if job.Dust0 != nil && job.Dust0.IsPlus() {
		out, err := s.swap(cc, p.Router, job.Token0, job.RewardToken, job.Dust0)
		if err != nil {
			return nil, err
		}
		total = total.Add(out)
	}
	if job.Dust1 != nil && job.Dust1.IsPlus() {
		out, err := s.swap(cc, p.Router, job.Token1, job.RewardToken, job.Dust1)
		if err != nil {
			return nil, err
		}
		total = total.Add(out)
	}
	return total, nil
}

func (s *SwapStrategy) SetParams(cc *types.ContractContext, params *Params) error {
	if params.BuyBackRate > MaxRate {
		return errors.Errorf("invalid buy back rate %v", params.BuyBackRate)
	}
	if params.TreasuryFee > MaxRate {
		return errors.Errorf("invalid treasury fee %v", params.TreasuryFee)
	}
	if int(params.BuyBackRate)+int(params.TreasuryFee) > MaxRate {
		return errors.New("fee rates exceed the denominator")
	}
	if params.DustThreshold == nil {
		params.DustThreshold = amount.NewAmount(0, 0)
	}
	bs, _, err := bin.WriterToBytes(params)
	if err != nil {
		return err
	}
	cc.SetContractData([]byte{tagParams}, bs)
	return nil
}

func (s *SwapStrategy) Params(lw types.ContractLoader) (*Params, error) {
	bs := lw.ContractData([]byte{tagParams})
	if len(bs) == 0 {
		return nil, errors.New("strategy params not set")
	}
	p := &Params{}
	if _, err := p.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return p, nil
}

//////////////////////////////////////////////////
// Buy Back Functions
//////////////////////////////////////////////////

// PendingBuyBack returns the accumulated buy-back bucket of the reward token
func (s *SwapStrategy) PendingBuyBack(lw types.ContractLoader, rewardToken common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(lw.ContractData(makeBuyBackPendingKey(rewardToken)))
}

// LastBuyBack returns the height of the last executed buy-back of the
// reward token
func (s *SwapStrategy) LastBuyBack(lw types.ContractLoader, rewardToken common.Address) uint32 {
	bs := lw.ContractData(makeBuyBackLastKey(rewardToken))
	if len(bs) == 0 {
		return 0
	}
	return bin.Uint32(bs)
}

// runBuyBack accumulates the cut into a bucket shared by every pool paying
// the same reward token and swaps the whole bucket at most once per
// BuyBackDelta blocks
func (s *SwapStrategy) runBuyBack(cc *types.ContractContext, p *Params, job *Job, buyBack *amount.Amount) error {
	pending := s.PendingBuyBack(cc, job.RewardToken).Add(buyBack)
	last := s.LastBuyBack(cc, job.RewardToken)
	if job.Want == job.RewardToken || cc.TargetHeight()-last < p.BuyBackDelta {
		cc.SetContractData(makeBuyBackPendingKey(job.RewardToken), pending.Bytes())
		return nil
	}
	out, err := s.swap(cc, p.Router, job.RewardToken, p.ProtocolToken, pending)
	if err != nil {
		return err
	}
	if out.IsPlus() {
		if _, err := cc.Exec(cc, p.ProtocolToken, "Transfer", []interface{}{p.BuyBackSink, out}); err != nil {
			return err
		}
	}
	cc.SetContractData(makeBuyBackPendingKey(job.RewardToken), nil)
	cc.SetContractData(makeBuyBackLastKey(job.RewardToken), bin.Uint32Bytes(cc.TargetHeight()))
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (s *SwapStrategy) swap(cc *types.ContractContext, router common.Address, tokenIn common.Address, tokenOut common.Address, amt *amount.Amount) (*amount.Amount, error) {
	if tokenIn == tokenOut || !amt.IsPlus() {
		return amt, nil
	}
	if err := s.increaseAllowance(cc, tokenIn, router, amt); err != nil {
		return nil, err
	}
	is, err := cc.Exec(cc, router, "SwapExactTokensForTokens", []interface{}{amt, nil, []common.Address{tokenIn, tokenOut}})
	if err != nil {
		return nil, err
	}
	amounts := is[0].([]*amount.Amount)
	return amounts[len(amounts)-1], nil
}

func (s *SwapStrategy) increaseAllowance(cc *types.ContractContext, token common.Address, spender common.Address, amt *amount.Amount) error {
	if !amt.IsPlus() {
		return nil
	}
	is, err := cc.Exec(cc, token, "Allowance", []interface{}{cc.ContractAddress(), spender})
	if err != nil {
		return err
	}
	allowed := is[0].(*amount.Amount)
	if _, err := cc.Exec(cc, token, "Approve", []interface{}{spender, allowed.Add(amt)}); err != nil {
		return err
	}
	return nil
}
