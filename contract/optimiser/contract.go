package optimiser

import (
	"bytes"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
)

// feeDenominator is the basis of every fee rate; deposits below it cannot
// be charged a nonzero fee without rounding to zero
const feeDenominator = 10000

// OptimiserContract is the share ledger of the yield aggregator. It prices
// deposits into farm shares against the principal its compounders report,
// settles reward emission per farm and keeps every user position.
type OptimiserContract struct {
	addr   common.Address
	master common.Address
}

func (cont *OptimiserContract) Name() string {
	return "OptimiserContract"
}

func (cont *OptimiserContract) Address() common.Address {
	return cont.addr
}

func (cont *OptimiserContract) Master() common.Address {
	return cont.master
}

func (cont *OptimiserContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *OptimiserContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &OptimiserContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagRewardToken}, data.RewardToken[:])
	cc.SetContractData([]byte{tagEmissionPerBlock}, data.EmissionPerBlock.Bytes())
	cc.SetContractData([]byte{tagStartBlock}, bin.Uint32Bytes(data.StartBlock))
	cc.SetContractData([]byte{tagFeeSink}, data.FeeSink[:])
	return nil
}
