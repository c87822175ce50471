package compounder

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/contract/rebalancer"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (cont *CompounderContract) AddPool(cc *types.ContractContext, pid uint64, Want common.Address, RewardToken common.Address, IsPair bool, Token0 common.Address, Token1 common.Address, CompoundOnInteraction bool) error {
	if cc.From() != cont.master {
		return errors.New("not compounder master")
	}
	if bs := cc.ContractData(makePoolInfoKey(pid)); len(bs) > 0 {
		return errors.Errorf("exist pool %v", pid)
	}
	pool := &PoolInfo{
		Want:                  Want,
		RewardToken:           RewardToken,
		IsPair:                IsPair,
		Token0:                Token0,
		Token1:                Token1,
		CompoundOnInteraction: CompoundOnInteraction,
		Enabled:               true,
		TotalDeposited:        amount.NewAmount(0, 0),
		ReserveReward:         amount.NewAmount(0, 0),
		Reserve0:              amount.NewAmount(0, 0),
		Reserve1:              amount.NewAmount(0, 0),
	}
	return cont.setPoolInfo(cc, pid, pool)
}

func (cont *CompounderContract) SetCompoundOnInteraction(cc *types.ContractContext, pid uint64, On bool) error {
	if cc.From() != cont.master {
		return errors.New("not compounder master")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	pool.CompoundOnInteraction = On
	return cont.setPoolInfo(cc, pid, pool)
}

func (cont *CompounderContract) SetPoolEnabled(cc *types.ContractContext, pid uint64, Enabled bool) error {
	if cc.From() != cont.master {
		return errors.New("not compounder master")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	pool.Enabled = Enabled
	return cont.setPoolInfo(cc, pid, pool)
}

func (cont *CompounderContract) SetOptimiser(cc *types.ContractContext, Optimiser common.Address) error {
	if cc.From() != cont.master {
		return errors.New("not compounder master")
	}
	cc.SetContractData([]byte{tagOptimiser}, Optimiser[:])
	return nil
}

func (cont *CompounderContract) SetStrategyParams(cc *types.ContractContext, Params *rebalancer.Params) error {
	if cc.From() != cont.master {
		return errors.New("not compounder master")
	}
	return cont.strategy.SetParams(cc, Params)
}

// TriggerEmergency switches the compounder to its degraded mode. The switch
// is one way.
func (cont *CompounderContract) TriggerEmergency(cc *types.ContractContext) error {
	if cc.From() != cont.master {
		return errors.New("not compounder master")
	}
	cc.SetContractData([]byte{tagEmergency}, []byte{1})
	return nil
}
