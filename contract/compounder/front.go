package compounder

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/contract/rebalancer"
	"github.com/connectlabs/optimiser/core/types"
)

func (cont *CompounderContract) Front() interface{} {
	return &front{cont: cont}
}

type front struct {
	cont *CompounderContract
}

//////////////////////////////////////////////////
// Optimiser Writer Functions
//////////////////////////////////////////////////

func (f *front) Deposit(cc *types.ContractContext, pid uint64, Amount *amount.Amount) (*amount.Amount, error) {
	return f.cont.Deposit(cc, pid, Amount)
}

func (f *front) Withdraw(cc *types.ContractContext, pid uint64, Amount *amount.Amount) (*amount.Amount, error) {
	return f.cont.Withdraw(cc, pid, Amount)
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) Compound(cc *types.ContractContext, pid uint64) error {
	return f.cont.Compound(cc, pid)
}

func (f *front) ConvertDust(cc *types.ContractContext, pid uint64) error {
	return f.cont.ConvertDust(cc, pid)
}

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (f *front) AddPool(cc *types.ContractContext, pid uint64, Want common.Address, RewardToken common.Address, IsPair bool, Token0 common.Address, Token1 common.Address, CompoundOnInteraction bool) error {
	return f.cont.AddPool(cc, pid, Want, RewardToken, IsPair, Token0, Token1, CompoundOnInteraction)
}

func (f *front) SetCompoundOnInteraction(cc *types.ContractContext, pid uint64, On bool) error {
	return f.cont.SetCompoundOnInteraction(cc, pid, On)
}

func (f *front) SetPoolEnabled(cc *types.ContractContext, pid uint64, Enabled bool) error {
	return f.cont.SetPoolEnabled(cc, pid, Enabled)
}

func (f *front) SetOptimiser(cc *types.ContractContext, Optimiser common.Address) error {
	return f.cont.SetOptimiser(cc, Optimiser)
}

func (f *front) SetStrategyParams(cc *types.ContractContext, Params *rebalancer.Params) error {
	return f.cont.SetStrategyParams(cc, Params)
}

func (f *front) TriggerEmergency(cc *types.ContractContext) error {
	return f.cont.TriggerEmergency(cc)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) TotalDeposited(cc *types.ContractContext, pid uint64) *amount.Amount {
	return f.cont.TotalDeposited(cc, pid)
}

func (f *front) Reserves(cc *types.ContractContext, pid uint64) (*amount.Amount, *amount.Amount, *amount.Amount) {
	return f.cont.Reserves(cc, pid)
}

func (f *front) Optimiser(cc *types.ContractContext) common.Address {
	return f.cont.Optimiser(cc)
}

func (f *front) Plantation(cc *types.ContractContext) common.Address {
	return f.cont.Plantation(cc)
}

func (f *front) IsEmergency(cc *types.ContractContext) bool {
	return f.cont.IsEmergency(cc)
}

func (f *front) WantToken(cc *types.ContractContext, pid uint64) (common.Address, error) {
	return f.cont.WantToken(cc, pid)
}

func (f *front) PendingBuyBack(cc *types.ContractContext, rewardToken common.Address) *amount.Amount {
	return f.cont.PendingBuyBack(cc, rewardToken)
}

func (f *front) LastBuyBack(cc *types.ContractContext, rewardToken common.Address) uint32 {
	return f.cont.LastBuyBack(cc, rewardToken)
}
