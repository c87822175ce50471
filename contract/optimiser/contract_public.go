package optimiser

import (
	"math/big"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *OptimiserContract) Deposit(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount) error {
	return cont.DepositTo(cc, sid, pid, Amount, cc.From())
}

// DepositTo pulls the deposit asset from the caller and credits the shares
// to the recipient. Shares are priced against the compounder's principal
// before this deposit landed, so a deposit never dilutes itself.
func (cont *OptimiserContract) DepositTo(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount, To common.Address) error {
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid deposit amount")
	}
	if Amount.Int.Cmp(big.NewInt(feeDenominator)) < 0 {
		return errors.New("deposit too small")
	}
	if cont.isPaused(cc) {
		return errors.New("paused optimiser")
	}
	farm, err := cont.farmInfo(cc, sid, pid)
	if err != nil {
		return err
	}
	if farm.Paused {
		return errors.Errorf("paused farm %v:%v", sid, pid)
	}
	if err := cont.lock(cc); err != nil {
		return err
	}
	defer cont.unlock(cc)

	if err := cont.settle(cc, farm); err != nil {
		return err
	}
	comp, err := cont.source(cc, sid)
	if err != nil {
		return err
	}
	if _, err := cc.Exec(cc, farm.Want, "TransferFrom", []interface{}{cc.From(), cont.addr, Amount}); err != nil {
		return err
	}
	net := Amount.Clone()
	if farm.DepositFeeRate > 0 {
		fee := Amount.MulC(int64(farm.DepositFeeRate)).DivC(feeDenominator)
		if fee.IsPlus() {
			if _, err := cc.Exec(cc, farm.Want, "Transfer", []interface{}{cont.feeSink(cc), fee}); err != nil {
				return err
			}
			net = net.Sub(fee)
		}
	}
	if err := cont.increaseAllowance(cc, farm.Want, comp, net); err != nil {
		return err
	}
	is, err := cc.Exec(cc, comp, "Deposit", []interface{}{pid, net})
	if err != nil {
		return err
	}
	actual := is[0].(*amount.Amount)
	totalDeposited, err := cont.compounderTotalDeposited(cc, comp, pid)
	if err != nil {
		return err
	}
	// price against the principal as it stood before this deposit
	before := totalDeposited.Sub(actual)
	newShares := sharesForAmount(actual, farm.TotalShares, before)

	user := cont.userInfo(cc, sid, pid, To)
	past, err := cont.pending(farm, user)
	if err != nil {
		return err
	}
	user.PastRewards = past
	user.Shares = user.Shares.Add(newShares)
	farm.TotalShares = farm.TotalShares.Add(newShares)
	user.RewardDebt = user.Shares.Mul(farm.AccRewardPerShare).Div(amount.COIN)

	if err := cont.setUserInfo(cc, sid, pid, To, user); err != nil {
		return err
	}
	return cont.setFarmInfo(cc, sid, pid, farm)
}

func (cont *OptimiserContract) Withdraw(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount) error {
	return cont.withdraw(cc, sid, pid, Amount, cc.From())
}

// WithdrawFrom spends the caller's allowance on the owner's position; the
// withdrawn funds go to the caller
func (cont *OptimiserContract) WithdrawFrom(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount, Owner common.Address) error {
	allowed := cont.Allowance(cc, sid, pid, Owner, cc.From())
	if Amount == nil || allowed.Less(Amount) {
		return errors.Errorf("insufficient farm allowance %v of %v to %v", allowed.String(), Owner.String(), cc.From().String())
	}
	cc.SetAccountData(Owner, makeFarmAllowanceKey(sid, pid, cc.From()), allowed.Sub(Amount).Bytes())
	return cont.withdraw(cc, sid, pid, Amount, Owner)
}

func (cont *OptimiserContract) withdraw(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount, Owner common.Address) error {
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid withdraw amount")
	}
	farm, err := cont.farmInfo(cc, sid, pid)
	if err != nil {
		return err
	}
	if err := cont.lock(cc); err != nil {
		return err
	}
	defer cont.unlock(cc)

	if err := cont.settle(cc, farm); err != nil {
		return err
	}
	user := cont.userInfo(cc, sid, pid, Owner)
	if !user.Shares.IsPlus() {
		return errors.Errorf("no stake of %v in farm %v:%v", Owner.String(), sid, pid)
	}
	comp, err := cont.source(cc, sid)
	if err != nil {
		return err
	}
	totalDeposited, err := cont.compounderTotalDeposited(cc, comp, pid)
	if err != nil {
		return err
	}
	userValue := user.Shares.Mul(totalDeposited).Div(farm.TotalShares)
	if userValue.Less(Amount) {
		return errors.Errorf("withdraw %v exceeds staked value %v", Amount.String(), userValue.String())
	}
	sharesToRemove := sharesForAmount(Amount, farm.TotalShares, totalDeposited)
	if user.Shares.Less(sharesToRemove) {
		sharesToRemove = user.Shares.Clone()
	}
	past, err := cont.pending(farm, user)
	if err != nil {
		return err
	}
	user.PastRewards = past
	user.Shares = user.Shares.Sub(sharesToRemove)
	farm.TotalShares = satSub(farm.TotalShares, sharesToRemove)
	user.RewardDebt = user.Shares.Mul(farm.AccRewardPerShare).Div(amount.COIN)

	is, err := cc.Exec(cc, comp, "Withdraw", []interface{}{pid, Amount})
	if err != nil {
		return err
	}
	actual := is[0].(*amount.Amount)
	remainder := actual.Clone()
	if farm.WithdrawFeeRate > 0 {
		fee := actual.MulC(int64(farm.WithdrawFeeRate)).DivC(feeDenominator)
		if fee.IsPlus() {
			if _, err := cc.Exec(cc, farm.Want, "Transfer", []interface{}{cont.feeSink(cc), fee}); err != nil {
				return err
			}
			remainder = remainder.Sub(fee)
		}
	}
	if remainder.IsPlus() {
		if _, err := cc.Exec(cc, farm.Want, "Transfer", []interface{}{cc.From(), remainder}); err != nil {
			return err
		}
	}
	if err := cont.setUserInfo(cc, sid, pid, Owner, user); err != nil {
		return err
	}
	return cont.setFarmInfo(cc, sid, pid, farm)
}

// Harvest pays out the caller's settled rewards
func (cont *OptimiserContract) Harvest(cc *types.ContractContext, sid uint64, pid uint64) error {
	farm, err := cont.farmInfo(cc, sid, pid)
	if err != nil {
		return err
	}
	if err := cont.lock(cc); err != nil {
		return err
	}
	defer cont.unlock(cc)

	if err := cont.settle(cc, farm); err != nil {
		return err
	}
	user := cont.userInfo(cc, sid, pid, cc.From())
	rewards, err := cont.pending(farm, user)
	if err != nil {
		return err
	}
	user.PastRewards = amount.NewAmount(0, 0)
	user.RewardDebt = user.Shares.Mul(farm.AccRewardPerShare).Div(amount.COIN)
	if err := cont.setUserInfo(cc, sid, pid, cc.From(), user); err != nil {
		return err
	}
	if err := cont.setFarmInfo(cc, sid, pid, farm); err != nil {
		return err
	}
	if rewards.IsPlus() {
		return cont.safeRewardTransfer(cc, cc.From(), rewards)
	}
	return nil
}

// Approve raises the spender's withdrawal allowance on the caller's
// position; repeated approvals accumulate
func (cont *OptimiserContract) Approve(cc *types.ContractContext, sid uint64, pid uint64, Spender common.Address, Amount *amount.Amount) error {
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid approve amount")
	}
	if _, err := cont.farmInfo(cc, sid, pid); err != nil {
		return err
	}
	allowed := cont.Allowance(cc, sid, pid, cc.From(), Spender)
	cc.SetAccountData(cc.From(), makeFarmAllowanceKey(sid, pid, Spender), allowed.Add(Amount).Bytes())
	return nil
}

func (cont *OptimiserContract) UpdateFarm(cc *types.ContractContext, sid uint64, pid uint64) error {
	farm, err := cont.farmInfo(cc, sid, pid)
	if err != nil {
		return err
	}
	if err := cont.settle(cc, farm); err != nil {
		return err
	}
	return cont.setFarmInfo(cc, sid, pid, farm)
}

func (cont *OptimiserContract) MassUpdateFarms(cc *types.ContractContext) error {
	for _, key := range parseFarmList(cc.ContractData([]byte{tagFarmList})) {
		if err := cont.UpdateFarm(cc, key.Sid, key.Pid); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

// PendingReward projects the farm accumulator to the current height without
// writing state
func (cont *OptimiserContract) PendingReward(lw types.ContractLoader, sid uint64, pid uint64, Account common.Address) (*amount.Amount, error) {
	farm, err := cont.farmInfo(lw, sid, pid)
	if err != nil {
		return nil, err
	}
	user := cont.userInfo(lw, sid, pid, Account)
	height := lw.TargetHeight()
	acc := farm.AccRewardPerShare
	if height > farm.LastRewardBlock && !cont.isPaused(lw) && !farm.Paused && farm.AllocPoint > 0 && farm.TotalShares.IsPlus() {
		total := cont.totalAllocPoint(lw)
		reward := cont.emissionPerBlock(lw).
			MulC(int64(height - farm.LastRewardBlock)).
			MulC(int64(farm.AllocPoint)).
			DivC(int64(total))
		acc = acc.Add(reward.Mul(amount.COIN).Div(farm.TotalShares))
	}
	p := user.PastRewards.Add(user.Shares.Mul(acc).Div(amount.COIN)).Sub(user.RewardDebt)
	if p.IsMinus() {
		return nil, errors.New("reward accounting underflow")
	}
	return p, nil
}

// StakedWantTokens is the account's position valued in the deposit asset
func (cont *OptimiserContract) StakedWantTokens(cc *types.ContractContext, sid uint64, pid uint64, Account common.Address) (*amount.Amount, error) {
	farm, err := cont.farmInfo(cc, sid, pid)
	if err != nil {
		return nil, err
	}
	user := cont.userInfo(cc, sid, pid, Account)
	if !farm.TotalShares.IsPlus() {
		return amount.NewAmount(0, 0), nil
	}
	comp, err := cont.source(cc, sid)
	if err != nil {
		return nil, err
	}
	totalDeposited, err := cont.compounderTotalDeposited(cc, comp, pid)
	if err != nil {
		return nil, err
	}
	return user.Shares.Mul(totalDeposited).Div(farm.TotalShares), nil
}

func (cont *OptimiserContract) FarmInfo(lw types.ContractLoader, sid uint64, pid uint64) (*FarmInfo, error) {
	return cont.farmInfo(lw, sid, pid)
}

func (cont *OptimiserContract) UserInfo(lw types.ContractLoader, sid uint64, pid uint64, Account common.Address) *UserInfo {
	return cont.userInfo(lw, sid, pid, Account)
}

func (cont *OptimiserContract) Allowance(lw types.ContractLoader, sid uint64, pid uint64, Owner common.Address, Spender common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(lw.AccountData(Owner, makeFarmAllowanceKey(sid, pid, Spender)))
}

func (cont *OptimiserContract) Source(lw types.ContractLoader, sid uint64) (common.Address, error) {
	return cont.source(lw, sid)
}

func (cont *OptimiserContract) SourceCount(lw types.ContractLoader) uint64 {
	bs := lw.ContractData([]byte{tagSourceCount})
	if len(bs) == 0 {
		return 0
	}
	return bin.Uint64(bs)
}

func (cont *OptimiserContract) TotalAllocPoint(lw types.ContractLoader) uint32 {
	return cont.totalAllocPoint(lw)
}

func (cont *OptimiserContract) EmissionPerBlock(lw types.ContractLoader) *amount.Amount {
	return cont.emissionPerBlock(lw)
}

func (cont *OptimiserContract) RewardToken(lw types.ContractLoader) common.Address {
	return cont.rewardToken(lw)
}

func (cont *OptimiserContract) FeeSink(lw types.ContractLoader) common.Address {
	return cont.feeSink(lw)
}

func (cont *OptimiserContract) IsPaused(lw types.ContractLoader) bool {
	return cont.isPaused(lw)
}
