package compounder

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/contract/rebalancer"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

//////////////////////////////////////////////////
// Optimiser Writer Functions
//////////////////////////////////////////////////

// Deposit stakes the pulled deposit asset into the plantation and returns
// the amount the plantation actually credited
func (cont *CompounderContract) Deposit(cc *types.ContractContext, pid uint64, Amount *amount.Amount) (*amount.Amount, error) {
	if cc.From() != cont.optimiser(cc) {
		return nil, errors.New("not optimiser")
	}
	if cont.isEmergency(cc) {
		return nil, errors.New("emergency mode")
	}
	if Amount == nil || !Amount.IsPlus() {
		return nil, errors.New("invalid deposit amount")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return nil, err
	}
	if !pool.Enabled {
		return nil, errors.Errorf("disabled pool %v", pid)
	}
	if err := cont.harvest(cc, pid, pool); err != nil {
		return nil, err
	}
	if pool.CompoundOnInteraction {
		if err := cont.compound(cc, pid, pool); err != nil {
			return nil, err
		}
	}
	if _, err := cc.Exec(cc, pool.Want, "TransferFrom", []interface{}{cc.From(), cont.addr, Amount}); err != nil {
		return nil, err
	}
	if err := cont.increaseAllowance(cc, pool.Want, cont.plantation(cc), Amount); err != nil {
		return nil, err
	}
	before, err := cont.deposited(cc, pid)
	if err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, cont.plantation(cc), "Deposit", []interface{}{pid, Amount}); err != nil {
		return nil, err
	}
	after, err := cont.deposited(cc, pid)
	if err != nil {
		return nil, err
	}
	actual := after.Sub(before)
	pool.TotalDeposited = pool.TotalDeposited.Add(actual)
	if err := cont.setPoolInfo(cc, pid, pool); err != nil {
		return nil, err
	}
	return actual, nil
}

// Withdraw unstakes the requested amount for the optimiser and returns the
// deposit asset actually received. In emergency mode the plantation is only
// touched through its emergency-withdraw path.
func (cont *CompounderContract) Withdraw(cc *types.ContractContext, pid uint64, Amount *amount.Amount) (*amount.Amount, error) {
	if cc.From() != cont.optimiser(cc) {
		return nil, errors.New("not optimiser")
	}
	if Amount == nil || !Amount.IsPlus() {
		return nil, errors.New("invalid withdraw amount")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return nil, err
	}
	if cont.isEmergency(cc) {
		return cont.emergencyWithdraw(cc, pid, pool, Amount)
	}
	if err := cont.harvest(cc, pid, pool); err != nil {
		return nil, err
	}
	want := Amount.Clone()
	if pool.CompoundOnInteraction && pool.TotalDeposited.IsPlus() {
		beforeTotal := pool.TotalDeposited.Clone()
		if err := cont.compound(cc, pid, pool); err != nil {
			return nil, err
		}
		gained := pool.TotalDeposited.Sub(beforeTotal)
		if gained.IsPlus() {
			// the in-flight withdrawer gets its share of the compound it
			// paid gas for
			want = want.Add(gained.Mul(Amount).Div(beforeTotal))
		}
	}
	depBefore, err := cont.deposited(cc, pid)
	if err != nil {
		return nil, err
	}
	balBefore, err := cont.balanceOf(cc, pool.Want, cont.addr)
	if err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, cont.plantation(cc), "Withdraw", []interface{}{pid, want}); err != nil {
		return nil, err
	}
	depAfter, err := cont.deposited(cc, pid)
	if err != nil {
		return nil, err
	}
	balAfter, err := cont.balanceOf(cc, pool.Want, cont.addr)
	if err != nil {
		return nil, err
	}
	pool.TotalDeposited = satSub(pool.TotalDeposited, depBefore.Sub(depAfter))
	received := balAfter.Sub(balBefore)
	if received.IsPlus() {
		if _, err := cc.Exec(cc, pool.Want, "Transfer", []interface{}{cc.From(), received}); err != nil {
			return nil, err
		}
	}
	if err := cont.setPoolInfo(cc, pid, pool); err != nil {
		return nil, err
	}
	return received, nil
}

func (cont *CompounderContract) emergencyWithdraw(cc *types.ContractContext, pid uint64, pool *PoolInfo, Amount *amount.Amount) (*amount.Amount, error) {
	balance, err := cont.balanceOf(cc, pool.Want, cont.addr)
	if err != nil {
		return nil, err
	}
	if balance.Less(Amount) {
		if _, err := cc.Exec(cc, cont.plantation(cc), "EmergencyWithdraw", []interface{}{pid}); err != nil {
			return nil, err
		}
		if balance, err = cont.balanceOf(cc, pool.Want, cont.addr); err != nil {
			return nil, err
		}
	}
	pay := Amount
	if balance.Less(pay) {
		pay = balance
	}
	pool.TotalDeposited = satSub(pool.TotalDeposited, pay)
	if pay.IsPlus() {
		if _, err := cc.Exec(cc, pool.Want, "Transfer", []interface{}{cc.From(), pay}); err != nil {
			return nil, err
		}
	}
	if err := cont.setPoolInfo(cc, pid, pool); err != nil {
		return nil, err
	}
	return pay, nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// Compound harvests and reinvests a pool; anyone may trigger it
func (cont *CompounderContract) Compound(cc *types.ContractContext, pid uint64) error {
	if cont.isEmergency(cc) {
		return errors.New("emergency mode")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	if err := cont.harvest(cc, pid, pool); err != nil {
		return err
	}
	if err := cont.compound(cc, pid, pool); err != nil {
		return err
	}
	return cont.setPoolInfo(cc, pid, pool)
}

// ConvertDust sweeps liquidity leftovers back into the reward reserve
func (cont *CompounderContract) ConvertDust(cc *types.ContractContext, pid uint64) error {
	if cont.isEmergency(cc) {
		return errors.New("emergency mode")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	job := &rebalancer.DustJob{
		RewardToken: pool.RewardToken,
		Token0:      pool.Token0,
		Token1:      pool.Token1,
		Dust0:       pool.Reserve0,
		Dust1:       pool.Reserve1,
	}
	out, err := cont.strategy.ConvertDust(cc, job)
	if err != nil {
		return err
	}
	pool.Reserve0 = amount.NewAmount(0, 0)
	pool.Reserve1 = amount.NewAmount(0, 0)
	pool.ReserveReward = pool.ReserveReward.Add(out)
	return cont.setPoolInfo(cc, pid, pool)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *CompounderContract) TotalDeposited(lw types.ContractLoader, pid uint64) *amount.Amount {
	pool, err := cont.poolInfo(lw, pid)
	if err != nil {
		return amount.NewAmount(0, 0)
	}
	return pool.TotalDeposited
}

func (cont *CompounderContract) Reserves(lw types.ContractLoader, pid uint64) (*amount.Amount, *amount.Amount, *amount.Amount) {
	pool, err := cont.poolInfo(lw, pid)
	if err != nil {
		zero := amount.NewAmount(0, 0)
		return zero, zero, zero
	}
	return pool.ReserveReward, pool.Reserve0, pool.Reserve1
}

func (cont *CompounderContract) Optimiser(lw types.ContractLoader) common.Address {
	return cont.optimiser(lw)
}

func (cont *CompounderContract) Plantation(lw types.ContractLoader) common.Address {
	return cont.plantation(lw)
}

func (cont *CompounderContract) IsEmergency(lw types.ContractLoader) bool {
	return cont.isEmergency(lw)
}

func (cont *CompounderContract) WantToken(lw types.ContractLoader, pid uint64) (common.Address, error) {
	pool, err := cont.poolInfo(lw, pid)
	if err != nil {
		return common.ZeroAddr, err
	}
	return pool.Want, nil
}

func (cont *CompounderContract) PendingBuyBack(lw types.ContractLoader, rewardToken common.Address) *amount.Amount {
	return cont.strategy.PendingBuyBack(lw, rewardToken)
}

func (cont *CompounderContract) LastBuyBack(lw types.ContractLoader, rewardToken common.Address) uint32 {
	return cont.strategy.LastBuyBack(lw, rewardToken)
}
