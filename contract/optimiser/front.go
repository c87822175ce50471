package optimiser

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/core/types"
)

func (cont *OptimiserContract) Front() interface{} {
	return &front{cont: cont}
}

type front struct {
	cont *OptimiserContract
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) Deposit(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount) error {
	return f.cont.Deposit(cc, sid, pid, Amount)
}

func (f *front) DepositTo(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount, To common.Address) error {
	return f.cont.DepositTo(cc, sid, pid, Amount, To)
}

func (f *front) Withdraw(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount) error {
	return f.cont.Withdraw(cc, sid, pid, Amount)
}

func (f *front) WithdrawFrom(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount, Owner common.Address) error {
	return f.cont.WithdrawFrom(cc, sid, pid, Amount, Owner)
}

func (f *front) Harvest(cc *types.ContractContext, sid uint64, pid uint64) error {
	return f.cont.Harvest(cc, sid, pid)
}

func (f *front) Approve(cc *types.ContractContext, sid uint64, pid uint64, Spender common.Address, Amount *amount.Amount) error {
	return f.cont.Approve(cc, sid, pid, Spender, Amount)
}

func (f *front) UpdateFarm(cc *types.ContractContext, sid uint64, pid uint64) error {
	return f.cont.UpdateFarm(cc, sid, pid)
}

func (f *front) MassUpdateFarms(cc *types.ContractContext) error {
	return f.cont.MassUpdateFarms(cc)
}

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (f *front) AddSource(cc *types.ContractContext, Compounder common.Address) (uint64, error) {
	return f.cont.AddSource(cc, Compounder)
}

func (f *front) AddFarm(cc *types.ContractContext, sid uint64, pid uint64, Want common.Address, AllocPoint uint32, DepositFeeRate uint16, WithdrawFeeRate uint16) error {
	return f.cont.AddFarm(cc, sid, pid, Want, AllocPoint, DepositFeeRate, WithdrawFeeRate)
}

func (f *front) SetFarm(cc *types.ContractContext, sid uint64, pid uint64, AllocPoint uint32, DepositFeeRate uint16, WithdrawFeeRate uint16, Paused bool, WithUpdate bool) error {
	return f.cont.SetFarm(cc, sid, pid, AllocPoint, DepositFeeRate, WithdrawFeeRate, Paused, WithUpdate)
}

func (f *front) SetEmissionPerBlock(cc *types.ContractContext, Emission *amount.Amount, WithUpdate bool) error {
	return f.cont.SetEmissionPerBlock(cc, Emission, WithUpdate)
}

func (f *front) SetFeeSink(cc *types.ContractContext, FeeSink common.Address) error {
	return f.cont.SetFeeSink(cc, FeeSink)
}

func (f *front) Pause(cc *types.ContractContext) error {
	return f.cont.Pause(cc)
}

func (f *front) Unpause(cc *types.ContractContext) error {
	return f.cont.Unpause(cc)
}

func (f *front) InCaseTokensGetStuck(cc *types.ContractContext, Token common.Address, Amount *amount.Amount) error {
	return f.cont.InCaseTokensGetStuck(cc, Token, Amount)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) PendingReward(cc *types.ContractContext, sid uint64, pid uint64, Account common.Address) (*amount.Amount, error) {
	return f.cont.PendingReward(cc, sid, pid, Account)
}

func (f *front) StakedWantTokens(cc *types.ContractContext, sid uint64, pid uint64, Account common.Address) (*amount.Amount, error) {
	return f.cont.StakedWantTokens(cc, sid, pid, Account)
}

func (f *front) FarmInfo(cc *types.ContractContext, sid uint64, pid uint64) (*FarmInfo, error) {
	return f.cont.FarmInfo(cc, sid, pid)
}

func (f *front) UserInfo(cc *types.ContractContext, sid uint64, pid uint64, Account common.Address) *UserInfo {
	return f.cont.UserInfo(cc, sid, pid, Account)
}

func (f *front) Allowance(cc *types.ContractContext, sid uint64, pid uint64, Owner common.Address, Spender common.Address) *amount.Amount {
	return f.cont.Allowance(cc, sid, pid, Owner, Spender)
}

func (f *front) Source(cc *types.ContractContext, sid uint64) (common.Address, error) {
	return f.cont.Source(cc, sid)
}

func (f *front) SourceCount(cc *types.ContractContext) uint64 {
	return f.cont.SourceCount(cc)
}

func (f *front) TotalAllocPoint(cc *types.ContractContext) uint32 {
	return f.cont.TotalAllocPoint(cc)
}

func (f *front) EmissionPerBlock(cc *types.ContractContext) *amount.Amount {
	return f.cont.EmissionPerBlock(cc)
}

func (f *front) RewardToken(cc *types.ContractContext) common.Address {
	return f.cont.RewardToken(cc)
}

func (f *front) FeeSink(cc *types.ContractContext) common.Address {
	return f.cont.FeeSink(cc)
}

func (f *front) IsPaused(cc *types.ContractContext) bool {
	return f.cont.IsPaused(cc)
}

func (f *front) WantToken(cc *types.ContractContext, sid uint64, pid uint64) (common.Address, error) {
	farm, err := f.cont.FarmInfo(cc, sid, pid)
	if err != nil {
		return common.ZeroAddr, err
	}
	return farm.Want, nil
}
