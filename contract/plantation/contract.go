package plantation

import (
	"bytes"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

// PlantationContract is a stand-alone stake farm with its own deposit fee
// and per-block reward emission. It is the external farm the compounder
// wraps and the drill target for degraded-mode tests.
type PlantationContract struct {
	addr   common.Address
	master common.Address
}

func (cont *PlantationContract) Name() string {
	return "PlantationContract"
}

func (cont *PlantationContract) Address() common.Address {
	return cont.addr
}

func (cont *PlantationContract) Master() common.Address {
	return cont.master
}

func (cont *PlantationContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *PlantationContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &PlantationContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagRewardToken}, data.RewardToken[:])
	cc.SetContractData([]byte{tagFeeSink}, data.FeeSink[:])
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *PlantationContract) poolInfo(cc *types.ContractContext, pid uint64) (*PoolInfo, error) {
	bs := cc.ContractData(makePoolInfoKey(pid))
	if len(bs) == 0 {
		return nil, errors.Errorf("not exist pool %v", pid)
	}
	pool := &PoolInfo{}
	if _, err := pool.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return pool, nil
}

func (cont *PlantationContract) setPoolInfo(cc *types.ContractContext, pid uint64, pool *PoolInfo) error {
	bs, _, err := bin.WriterToBytes(pool)
	if err != nil {
		return err
	}
	cc.SetContractData(makePoolInfoKey(pid), bs)
	return nil
}

func (cont *PlantationContract) stakerInfo(cc *types.ContractContext, pid uint64, addr common.Address) *StakerInfo {
	bs := cc.AccountData(addr, makeStakerInfoKey(pid))
	info := &StakerInfo{
		Staked:     amount.NewAmount(0, 0),
		RewardDebt: amount.NewAmount(0, 0),
		Pending:    amount.NewAmount(0, 0),
	}
	if len(bs) > 0 {
		info.ReadFrom(bytes.NewReader(bs))
	}
	return info
}

func (cont *PlantationContract) setStakerInfo(cc *types.ContractContext, pid uint64, addr common.Address, info *StakerInfo) error {
	bs, _, err := bin.WriterToBytes(info)
	if err != nil {
		return err
	}
	cc.SetAccountData(addr, makeStakerInfoKey(pid), bs)
	return nil
}

func (cont *PlantationContract) isBroken(cc *types.ContractContext) bool {
	bs := cc.ContractData([]byte{tagBroken})
	return len(bs) > 0 && bs[0] == 1
}

func (cont *PlantationContract) rewardToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagRewardToken}))
}

// settle mints the pool reward since the last settled block and folds it
// into AccRewardPerShare
func (cont *PlantationContract) settle(cc *types.ContractContext, pid uint64, pool *PoolInfo) error {
	height := cc.TargetHeight()
	if height <= pool.LastRewardBlock {
		return nil
	}
	if pool.TotalStaked.IsPlus() && pool.RewardPerBlock.IsPlus() {
		reward := pool.RewardPerBlock.MulC(int64(height - pool.LastRewardBlock))
		if _, err := cc.Exec(cc, cont.rewardToken(cc), "Mint", []interface{}{cont.addr, reward}); err != nil {
			return err
		}
		pool.AccRewardPerShare = pool.AccRewardPerShare.Add(reward.Mul(amount.COIN).Div(pool.TotalStaked))
	}
	pool.LastRewardBlock = height
	return nil
}

func (cont *PlantationContract) accrued(pool *PoolInfo, info *StakerInfo) *amount.Amount {
	return info.Staked.Mul(pool.AccRewardPerShare).Div(amount.COIN).Sub(info.RewardDebt)
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *PlantationContract) Deposit(cc *types.ContractContext, pid uint64, Amount *amount.Amount) error {
	if cont.isBroken(cc) {
		return errors.New("broken plantation")
	}
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid deposit amount")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	if err := cont.settle(cc, pid, pool); err != nil {
		return err
	}
	if _, err := cc.Exec(cc, pool.StakeToken, "TransferFrom", []interface{}{cc.From(), cont.addr, Amount}); err != nil {
		return err
	}
	net := Amount.Clone()
	if pool.DepositFeeRate > 0 {
		fee := Amount.MulC(int64(pool.DepositFeeRate)).DivC(10000)
		if fee.IsPlus() {
			feeSink := common.BytesToAddress(cc.ContractData([]byte{tagFeeSink}))
			if _, err := cc.Exec(cc, pool.StakeToken, "Transfer", []interface{}{feeSink, fee}); err != nil {
				return err
			}
			net = net.Sub(fee)
		}
	}
	info := cont.stakerInfo(cc, pid, cc.From())
	info.Pending = info.Pending.Add(cont.accrued(pool, info))
	info.Staked = info.Staked.Add(net)
	info.RewardDebt = info.Staked.Mul(pool.AccRewardPerShare).Div(amount.COIN)
	pool.TotalStaked = pool.TotalStaked.Add(net)
	if err := cont.setStakerInfo(cc, pid, cc.From(), info); err != nil {
		return err
	}
	return cont.setPoolInfo(cc, pid, pool)
}

func (cont *PlantationContract) Withdraw(cc *types.ContractContext, pid uint64, Amount *amount.Amount) error {
	if cont.isBroken(cc) {
		return errors.New("broken plantation")
	}
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid withdraw amount")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	if err := cont.settle(cc, pid, pool); err != nil {
		return err
	}
	info := cont.stakerInfo(cc, pid, cc.From())
	if info.Staked.Less(Amount) {
		return errors.Errorf("insufficient stake %v of %v", info.Staked.String(), cc.From().String())
	}
	info.Pending = info.Pending.Add(cont.accrued(pool, info))
	info.Staked = info.Staked.Sub(Amount)
	info.RewardDebt = info.Staked.Mul(pool.AccRewardPerShare).Div(amount.COIN)
	pool.TotalStaked = pool.TotalStaked.Sub(Amount)
	if err := cont.setStakerInfo(cc, pid, cc.From(), info); err != nil {
		return err
	}
	if err := cont.setPoolInfo(cc, pid, pool); err != nil {
		return err
	}
	if _, err := cc.Exec(cc, pool.StakeToken, "Transfer", []interface{}{cc.From(), Amount}); err != nil {
		return err
	}
	return nil
}

func (cont *PlantationContract) Harvest(cc *types.ContractContext, pid uint64) error {
	if cont.isBroken(cc) {
		return errors.New("broken plantation")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	if err := cont.settle(cc, pid, pool); err != nil {
		return err
	}
	info := cont.stakerInfo(cc, pid, cc.From())
	pending := info.Pending.Add(cont.accrued(pool, info))
	info.Pending = amount.NewAmount(0, 0)
	info.RewardDebt = info.Staked.Mul(pool.AccRewardPerShare).Div(amount.COIN)
	if err := cont.setStakerInfo(cc, pid, cc.From(), info); err != nil {
		return err
	}
	if err := cont.setPoolInfo(cc, pid, pool); err != nil {
		return err
	}
	if pending.IsPlus() {
		if _, err := cc.Exec(cc, cont.rewardToken(cc), "Transfer", []interface{}{cc.From(), pending}); err != nil {
			return err
		}
	}
	return nil
}

// EmergencyWithdraw returns the entire principal and forfeits rewards.
// It stays available while the plantation is broken.
func (cont *PlantationContract) EmergencyWithdraw(cc *types.ContractContext, pid uint64) (*amount.Amount, error) {
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return nil, err
	}
	info := cont.stakerInfo(cc, pid, cc.From())
	staked := info.Staked.Clone()
	info.Staked = amount.NewAmount(0, 0)
	info.RewardDebt = amount.NewAmount(0, 0)
	info.Pending = amount.NewAmount(0, 0)
	pool.TotalStaked = pool.TotalStaked.Sub(staked)
	if err := cont.setStakerInfo(cc, pid, cc.From(), info); err != nil {
		return nil, err
	}
	if err := cont.setPoolInfo(cc, pid, pool); err != nil {
		return nil, err
	}
	if staked.IsPlus() {
		if _, err := cc.Exec(cc, pool.StakeToken, "Transfer", []interface{}{cc.From(), staked}); err != nil {
			return nil, err
		}
	}
	return staked, nil
}

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (cont *PlantationContract) AddPool(cc *types.ContractContext, StakeToken common.Address, RewardPerBlock *amount.Amount, DepositFeeRate uint16) (uint64, error) {
	if cc.From() != cont.master {
		return 0, errors.New("not plantation master")
	}
	if DepositFeeRate > 10000 {
		return 0, errors.Errorf("invalid deposit fee rate %v", DepositFeeRate)
	}
	pid := uint64(0)
	if bs := cc.ContractData([]byte{tagPoolCount}); len(bs) > 0 {
		pid = bin.Uint64(bs)
	}
	pool := &PoolInfo{
		StakeToken:        StakeToken,
		RewardPerBlock:    RewardPerBlock,
		DepositFeeRate:    DepositFeeRate,
		LastRewardBlock:   cc.TargetHeight(),
		AccRewardPerShare: amount.NewAmount(0, 0),
		TotalStaked:       amount.NewAmount(0, 0),
	}
	if err := cont.setPoolInfo(cc, pid, pool); err != nil {
		return 0, err
	}
	cc.SetContractData([]byte{tagPoolCount}, bin.Uint64Bytes(pid+1))
	return pid, nil
}

func (cont *PlantationContract) SetBroken(cc *types.ContractContext, Broken bool) error {
	if cc.From() != cont.master {
		return errors.New("not plantation master")
	}
	if Broken {
		cc.SetContractData([]byte{tagBroken}, []byte{1})
	} else {
		cc.SetContractData([]byte{tagBroken}, nil)
	}
	return nil
}

func (cont *PlantationContract) SetRewardPerBlock(cc *types.ContractContext, pid uint64, RewardPerBlock *amount.Amount) error {
	if cc.From() != cont.master {
		return errors.New("not plantation master")
	}
	pool, err := cont.poolInfo(cc, pid)
	if err != nil {
		return err
	}
	if err := cont.settle(cc, pid, pool); err != nil {
		return err
	}
	pool.RewardPerBlock = RewardPerBlock
	return cont.setPoolInfo(cc, pid, pool)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *PlantationContract) BalanceDeposited(lw types.ContractLoader, pid uint64, staker common.Address) *amount.Amount {
	bs := lw.AccountData(staker, makeStakerInfoKey(pid))
	if len(bs) == 0 {
		return amount.NewAmount(0, 0)
	}
	info := &StakerInfo{}
	if _, err := info.ReadFrom(bytes.NewReader(bs)); err != nil {
		return amount.NewAmount(0, 0)
	}
	return info.Staked
}

func (cont *PlantationContract) PoolCount(lw types.ContractLoader) uint64 {
	bs := lw.ContractData([]byte{tagPoolCount})
	if len(bs) == 0 {
		return 0
	}
	return bin.Uint64(bs)
}

func (cont *PlantationContract) RewardToken(lw types.ContractLoader) common.Address {
	return common.BytesToAddress(lw.ContractData([]byte{tagRewardToken}))
}
