package compounder

import (
	"bytes"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/contract/rebalancer"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

// CompounderContract owns the relationship with one external farm. It
// tracks the principal it has staked there per pool, harvests rewards into
// reserves and reinvests them through its rebalancing strategy. Only the
// optimiser may move user funds through it.
type CompounderContract struct {
	addr     common.Address
	master   common.Address
	strategy rebalancer.SwapStrategy
}

func (cont *CompounderContract) Name() string {
	return "CompounderContract"
}

func (cont *CompounderContract) Address() common.Address {
	return cont.addr
}

func (cont *CompounderContract) Master() common.Address {
	return cont.master
}

func (cont *CompounderContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *CompounderContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &CompounderContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagOptimiser}, data.Optimiser[:])
	cc.SetContractData([]byte{tagPlantation}, data.Plantation[:])
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *CompounderContract) poolInfo(lw types.ContractLoader, pid uint64) (*PoolInfo, error) {
	bs := lw.ContractData(makePoolInfoKey(pid))
	if len(bs) == 0 {
		return nil, errors.Errorf("not exist pool %v", pid)
	}
	pool := &PoolInfo{}
	if _, err := pool.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return pool, nil
}

func (cont *CompounderContract) setPoolInfo(cc *types.ContractContext, pid uint64, pool *PoolInfo) error {
	bs, _, err := bin.WriterToBytes(pool)
	if err != nil {
		return err
	}
	cc.SetContractData(makePoolInfoKey(pid), bs)
	return nil
}

func (cont *CompounderContract) optimiser(lw types.ContractLoader) common.Address {
	return common.BytesToAddress(lw.ContractData([]byte{tagOptimiser}))
}

func (cont *CompounderContract) plantation(lw types.ContractLoader) common.Address {
	return common.BytesToAddress(lw.ContractData([]byte{tagPlantation}))
}

func (cont *CompounderContract) isEmergency(lw types.ContractLoader) bool {
	bs := lw.ContractData([]byte{tagEmergency})
	return len(bs) > 0 && bs[0] == 1
}

func (cont *CompounderContract) balanceOf(cc *types.ContractContext, token common.Address, addr common.Address) (*amount.Amount, error) {
	is, err := cc.Exec(cc, token, "BalanceOf", []interface{}{addr})
	if err != nil {
		return nil, err
	}
	return is[0].(*amount.Amount), nil
}

// deposited asks the plantation how much principal this contract holds in
// the pool; it is the only stake figure ever trusted
func (cont *CompounderContract) deposited(cc *types.ContractContext, pid uint64) (*amount.Amount, error) {
	is, err := cc.Exec(cc, cont.plantation(cc), "BalanceDeposited", []interface{}{pid, cont.addr})
	if err != nil {
		return nil, err
	}
	return is[0].(*amount.Amount), nil
}

func (cont *CompounderContract) increaseAllowance(cc *types.ContractContext, token common.Address, spender common.Address, amt *amount.Amount) error {
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

// harvest pulls plantation rewards and folds the received balance delta
// into the pool's reward reserve
func (cont *CompounderContract) harvest(cc *types.ContractContext, pid uint64, pool *PoolInfo) error {
	before, err := cont.balanceOf(cc, pool.RewardToken, cont.addr)
	if err != nil {
		return err
	}
	if _, err := cc.Exec(cc, cont.plantation(cc), "Harvest", []interface{}{pid}); err != nil {
		return err
	}
	after, err := cont.balanceOf(cc, pool.RewardToken, cont.addr)
	if err != nil {
		return err
	}
	delta := after.Sub(before)
	if delta.IsPlus() {
		pool.ReserveReward = pool.ReserveReward.Add(delta)
	}
	return nil
}

// compound hands the reward reserve to the strategy and restakes whatever
// deposit asset it produced
func (cont *CompounderContract) compound(cc *types.ContractContext, pid uint64, pool *PoolInfo) error {
	job := &rebalancer.Job{
		Want:        pool.Want,
		RewardToken: pool.RewardToken,
		IsPair:      pool.IsPair,
		Token0:      pool.Token0,
		Token1:      pool.Token1,
		Reward:      pool.ReserveReward,
	}
	res, err := cont.strategy.Compound(cc, job)
	if err != nil {
		return err
	}
	if res.Skipped {
		return nil
	}
	pool.ReserveReward = amount.NewAmount(0, 0)
	pool.Reserve0 = pool.Reserve0.Add(res.Dust0)
	pool.Reserve1 = pool.Reserve1.Add(res.Dust1)
	if !res.WantOut.IsPlus() {
		return nil
	}
	if err := cont.increaseAllowance(cc, pool.Want, cont.plantation(cc), res.WantOut); err != nil {
		return err
	}
	before, err := cont.deposited(cc, pid)
	if err != nil {
		return err
	}
	if _, err := cc.Exec(cc, cont.plantation(cc), "Deposit", []interface{}{pid, res.WantOut}); err != nil {
		return err
	}
	after, err := cont.deposited(cc, pid)
	if err != nil {
		return err
	}
	pool.TotalDeposited = pool.TotalDeposited.Add(after.Sub(before))
	return nil
}

func satSub(a *amount.Amount, b *amount.Amount) *amount.Amount {
	if a.Less(b) {
		return amount.NewAmount(0, 0)
	}
	return a.Sub(b)
}
