package optimiser

import (
	"bytes"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

//////////////////////////////////////////////////
// State Accessors
//////////////////////////////////////////////////

func (cont *OptimiserContract) farmInfo(lw types.ContractLoader, sid uint64, pid uint64) (*FarmInfo, error) {
	bs := lw.ContractData(makeFarmInfoKey(sid, pid))
	if len(bs) == 0 {
		return nil, errors.Errorf("not exist farm %v:%v", sid, pid)
	}
	farm := &FarmInfo{}
	if _, err := farm.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return farm, nil
}

func (cont *OptimiserContract) setFarmInfo(cc *types.ContractContext, sid uint64, pid uint64, farm *FarmInfo) error {
	bs, _, err := bin.WriterToBytes(farm)
	if err != nil {
		return err
	}
	cc.SetContractData(makeFarmInfoKey(sid, pid), bs)
	return nil
}

func (cont *OptimiserContract) userInfo(lw types.ContractLoader, sid uint64, pid uint64, addr common.Address) *UserInfo {
	bs := lw.AccountData(addr, makeUserInfoKey(sid, pid))
	user := &UserInfo{
		Shares:      amount.NewAmount(0, 0),
		RewardDebt:  amount.NewAmount(0, 0),
		PastRewards: amount.NewAmount(0, 0),
	}
	if len(bs) > 0 {
		user.ReadFrom(bytes.NewReader(bs))
	}
	return user
}

func (cont *OptimiserContract) setUserInfo(cc *types.ContractContext, sid uint64, pid uint64, addr common.Address, user *UserInfo) error {
	bs, _, err := bin.WriterToBytes(user)
	if err != nil {
		return err
	}
	cc.SetAccountData(addr, makeUserInfoKey(sid, pid), bs)
	return nil
}

func (cont *OptimiserContract) source(lw types.ContractLoader, sid uint64) (common.Address, error) {
	bs := lw.ContractData(makeSourceKey(sid))
	if len(bs) != common.AddressLength {
		return common.ZeroAddr, errors.Errorf("not exist source %v", sid)
	}
	return common.BytesToAddress(bs), nil
}

func (cont *OptimiserContract) rewardToken(lw types.ContractLoader) common.Address {
	return common.BytesToAddress(lw.ContractData([]byte{tagRewardToken}))
}

func (cont *OptimiserContract) feeSink(lw types.ContractLoader) common.Address {
	return common.BytesToAddress(lw.ContractData([]byte{tagFeeSink}))
}

func (cont *OptimiserContract) emissionPerBlock(lw types.ContractLoader) *amount.Amount {
	return amount.NewAmountFromBytes(lw.ContractData([]byte{tagEmissionPerBlock}))
}

func (cont *OptimiserContract) totalAllocPoint(lw types.ContractLoader) uint32 {
	bs := lw.ContractData([]byte{tagTotalAllocPoint})
	if len(bs) == 0 {
		return 0
	}
	return bin.Uint32(bs)
}

func (cont *OptimiserContract) isPaused(lw types.ContractLoader) bool {
	bs := lw.ContractData([]byte{tagPaused})
	return len(bs) > 0 && bs[0] == 1
}

//////////////////////////////////////////////////
// Reentrancy Guard
//////////////////////////////////////////////////

func (cont *OptimiserContract) lock(cc *types.ContractContext) error {
	if bs := cc.ContractData([]byte{tagMutex}); len(bs) > 0 && bs[0] == 1 {
		return errors.New("reentrant call")
	}
	cc.SetContractData([]byte{tagMutex}, []byte{1})
	return nil
}

func (cont *OptimiserContract) unlock(cc *types.ContractContext) {
	cc.SetContractData([]byte{tagMutex}, nil)
}

//////////////////////////////////////////////////
// Accounting
//////////////////////////////////////////////////

// settle folds the emission since the last settled block into the farm's
// accumulator. A paused ledger, a paused farm or a zero-weight farm moves
// its settle cursor without accruing.
func (cont *OptimiserContract) settle(cc *types.ContractContext, farm *FarmInfo) error {
	height := cc.TargetHeight()
	if height <= farm.LastRewardBlock {
		return nil
	}
	if cont.isPaused(cc) || farm.Paused || farm.AllocPoint == 0 || !farm.TotalShares.IsPlus() {
		farm.LastRewardBlock = height
		return nil
	}
	total := cont.totalAllocPoint(cc)
	reward := cont.emissionPerBlock(cc).
		MulC(int64(height - farm.LastRewardBlock)).
		MulC(int64(farm.AllocPoint)).
		DivC(int64(total))
	if reward.IsPlus() {
		if _, err := cc.Exec(cc, cont.rewardToken(cc), "Mint", []interface{}{cont.addr, reward}); err != nil {
			return err
		}
		farm.AccRewardPerShare = farm.AccRewardPerShare.Add(reward.Mul(amount.COIN).Div(farm.TotalShares))
	}
	farm.LastRewardBlock = height
	return nil
}

// pending is PastRewards + Shares*AccRewardPerShare/1e18 - RewardDebt. A
// negative value means the ledger lost track of a settlement and is fatal.
func (cont *OptimiserContract) pending(farm *FarmInfo, user *UserInfo) (*amount.Amount, error) {
	p := user.PastRewards.
		Add(user.Shares.Mul(farm.AccRewardPerShare).Div(amount.COIN)).
		Sub(user.RewardDebt)
	if p.IsMinus() {
		return nil, errors.New("reward accounting underflow")
	}
	return p, nil
}

// sharesForAmount prices an amount of principal into shares at the current
// share rate; the first deposit is priced one to one
func sharesForAmount(amt *amount.Amount, totalShares *amount.Amount, totalDeposited *amount.Amount) *amount.Amount {
	if !totalShares.IsPlus() || !totalDeposited.IsPlus() {
		return amt.Clone()
	}
	return amt.Mul(totalShares).Div(totalDeposited)
}

func satSub(a *amount.Amount, b *amount.Amount) *amount.Amount {
	if a.Less(b) {
		return amount.NewAmount(0, 0)
	}
	return a.Sub(b)
}

//////////////////////////////////////////////////
// Token Helpers
//////////////////////////////////////////////////

func (cont *OptimiserContract) balanceOf(cc *types.ContractContext, token common.Address, addr common.Address) (*amount.Amount, error) {
	is, err := cc.Exec(cc, token, "BalanceOf", []interface{}{addr})
	if err != nil {
		return nil, err
	}
	return is[0].(*amount.Amount), nil
}

func (cont *OptimiserContract) increaseAllowance(cc *types.ContractContext, token common.Address, spender common.Address, amt *amount.Amount) error {
	if !amt.IsPlus() {
		return nil
	}
	is, err := cc.Exec(cc, token, "Allowance", []interface{}{cont.addr, spender})
	if err != nil {
		return err
	}
	allowed := is[0].(*amount.Amount)
	if _, err := cc.Exec(cc, token, "Approve", []interface{}{spender, allowed.Add(amt)}); err != nil {
		return err
	}
	return nil
}

// safeRewardTransfer pays out at most what the ledger holds, absorbing
// rounding drift of the accumulator
func (cont *OptimiserContract) safeRewardTransfer(cc *types.ContractContext, to common.Address, amt *amount.Amount) error {
	token := cont.rewardToken(cc)
	bal, err := cont.balanceOf(cc, token, cont.addr)
	if err != nil {
		return err
	}
	pay := amt
	if bal.Less(pay) {
		pay = bal
	}
	if !pay.IsPlus() {
		return nil
	}
	if _, err := cc.Exec(cc, token, "Transfer", []interface{}{to, pay}); err != nil {
		return err
	}
	return nil
}

func (cont *OptimiserContract) compounderTotalDeposited(cc *types.ContractContext, comp common.Address, pid uint64) (*amount.Amount, error) {
	is, err := cc.Exec(cc, comp, "TotalDeposited", []interface{}{pid})
	if err != nil {
		return nil, err
	}
	return is[0].(*amount.Amount), nil
}
