package plantation

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/core/types"
)

func (cont *PlantationContract) Front() interface{} {
	return &front{cont: cont}
}

type front struct {
	cont *PlantationContract
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) Deposit(cc *types.ContractContext, pid uint64, Amount *amount.Amount) error {
	return f.cont.Deposit(cc, pid, Amount)
}

func (f *front) Withdraw(cc *types.ContractContext, pid uint64, Amount *amount.Amount) error {
	return f.cont.Withdraw(cc, pid, Amount)
}

func (f *front) Harvest(cc *types.ContractContext, pid uint64) error {
	return f.cont.Harvest(cc, pid)
}

func (f *front) EmergencyWithdraw(cc *types.ContractContext, pid uint64) (*amount.Amount, error) {
	return f.cont.EmergencyWithdraw(cc, pid)
}

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (f *front) AddPool(cc *types.ContractContext, StakeToken common.Address, RewardPerBlock *amount.Amount, DepositFeeRate uint16) (uint64, error) {
	return f.cont.AddPool(cc, StakeToken, RewardPerBlock, DepositFeeRate)
}

func (f *front) SetBroken(cc *types.ContractContext, Broken bool) error {
	return f.cont.SetBroken(cc, Broken)
}

func (f *front) SetRewardPerBlock(cc *types.ContractContext, pid uint64, RewardPerBlock *amount.Amount) error {
	return f.cont.SetRewardPerBlock(cc, pid, RewardPerBlock)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) BalanceDeposited(cc *types.ContractContext, pid uint64, staker common.Address) *amount.Amount {
	return f.cont.BalanceDeposited(cc, pid, staker)
}

func (f *front) PoolCount(cc *types.ContractContext) uint64 {
	return f.cont.PoolCount(cc)
}

func (f *front) RewardToken(cc *types.ContractContext) common.Address {
	return f.cont.RewardToken(cc)
}
