package optimiser

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

// AddSource registers a compounder and returns its source id
func (cont *OptimiserContract) AddSource(cc *types.ContractContext, Compounder common.Address) (uint64, error) {
	if cc.From() != cont.master {
		return 0, errors.New("not optimiser master")
	}
	if !cc.IsContract(Compounder) {
		return 0, errors.Errorf("not a contract %v", Compounder.String())
	}
	sid := cont.SourceCount(cc)
	cc.SetContractData(makeSourceKey(sid), Compounder[:])
	cc.SetContractData([]byte{tagSourceCount}, bin.Uint64Bytes(sid+1))
	return sid, nil
}

func (cont *OptimiserContract) AddFarm(cc *types.ContractContext, sid uint64, pid uint64, Want common.Address, AllocPoint uint32, DepositFeeRate uint16, WithdrawFeeRate uint16) error {
	if cc.From() != cont.master {
		return errors.New("not optimiser master")
	}
	if _, err := cont.source(cc, sid); err != nil {
		return err
	}
	if bs := cc.ContractData(makeFarmInfoKey(sid, pid)); len(bs) > 0 {
		return errors.Errorf("exist farm %v:%v", sid, pid)
	}
	if DepositFeeRate > feeDenominator {
		return errors.Errorf("invalid deposit fee rate %v", DepositFeeRate)
	}
	if WithdrawFeeRate > feeDenominator {
		return errors.Errorf("invalid withdraw fee rate %v", WithdrawFeeRate)
	}
	last := cc.TargetHeight()
	if bs := cc.ContractData([]byte{tagStartBlock}); len(bs) > 0 {
		if start := bin.Uint32(bs); start > last {
			last = start
		}
	}
	farm := &FarmInfo{
		Want:              Want,
		AllocPoint:        AllocPoint,
		LastRewardBlock:   last,
		AccRewardPerShare: amount.NewAmount(0, 0),
		TotalShares:       amount.NewAmount(0, 0),
		DepositFeeRate:    DepositFeeRate,
		WithdrawFeeRate:   WithdrawFeeRate,
	}
	cc.SetContractData([]byte{tagTotalAllocPoint}, bin.Uint32Bytes(cont.totalAllocPoint(cc)+AllocPoint))
	cc.SetContractData([]byte{tagFarmList}, appendFarmList(cc.ContractData([]byte{tagFarmList}), FarmKey{Sid: sid, Pid: pid}))
	return cont.setFarmInfo(cc, sid, pid, farm)
}

func (cont *OptimiserContract) SetFarm(cc *types.ContractContext, sid uint64, pid uint64, AllocPoint uint32, DepositFeeRate uint16, WithdrawFeeRate uint16, Paused bool, WithUpdate bool) error {
	if cc.From() != cont.master {
		return errors.New("not optimiser master")
	}
	if DepositFeeRate > feeDenominator || WithdrawFeeRate > feeDenominator {
		return errors.New("invalid fee rate")
	}
	if WithUpdate {
		if err := cont.MassUpdateFarms(cc); err != nil {
			return err
		}
	}
	farm, err := cont.farmInfo(cc, sid, pid)
	if err != nil {
		return err
	}
	if err := cont.settle(cc, farm); err != nil {
		return err
	}
	total := cont.totalAllocPoint(cc) - farm.AllocPoint + AllocPoint
	cc.SetContractData([]byte{tagTotalAllocPoint}, bin.Uint32Bytes(total))
	farm.AllocPoint = AllocPoint
	farm.DepositFeeRate = DepositFeeRate
	farm.WithdrawFeeRate = WithdrawFeeRate
	farm.Paused = Paused
	return cont.setFarmInfo(cc, sid, pid, farm)
}

func (cont *OptimiserContract) SetEmissionPerBlock(cc *types.ContractContext, Emission *amount.Amount, WithUpdate bool) error {
	if cc.From() != cont.master {
		return errors.New("not optimiser master")
	}
	if Emission == nil || Emission.IsMinus() {
		return errors.New("invalid emission")
	}
	if WithUpdate {
		if err := cont.MassUpdateFarms(cc); err != nil {
			return err
		}
	}
	cc.SetContractData([]byte{tagEmissionPerBlock}, Emission.Bytes())
	return nil
}

func (cont *OptimiserContract) SetFeeSink(cc *types.ContractContext, FeeSink common.Address) error {
	if cc.From() != cont.master {
		return errors.New("not optimiser master")
	}
	cc.SetContractData([]byte{tagFeeSink}, FeeSink[:])
	return nil
}

// Pause settles every farm up to the current block and stops accrual; the
// paused span is never credited afterwards
func (cont *OptimiserContract) Pause(cc *types.ContractContext) error {
	if cc.From() != cont.master {
		return errors.New("not optimiser master")
	}
	if err := cont.MassUpdateFarms(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagPaused}, []byte{1})
	return nil
}

func (cont *OptimiserContract) Unpause(cc *types.ContractContext) error {
	if cc.From() != cont.master {
		return errors.New("not optimiser master")
	}
	// cursors move across the paused span without accruing before the flag
	// clears
	if err := cont.MassUpdateFarms(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagPaused}, nil)
	return nil
}

// InCaseTokensGetStuck recovers tokens sent here by mistake; the reward
// token backs unpaid rewards and is not recoverable
func (cont *OptimiserContract) InCaseTokensGetStuck(cc *types.ContractContext, Token common.Address, Amount *amount.Amount) error {
	if cc.From() != cont.master {
		return errors.New("not optimiser master")
	}
	if Token == cont.rewardToken(cc) {
		return errors.New("cannot recover the reward token")
	}
	if _, err := cc.Exec(cc, Token, "Transfer", []interface{}{cont.master, Amount}); err != nil {
		return err
	}
	return nil
}
