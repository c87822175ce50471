package gate

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/core/types"
)

func (cont *GateContract) Front() interface{} {
	return &front{cont: cont}
}

type front struct {
	cont *GateContract
}

func (f *front) ZapIn(cc *types.ContractContext, sid uint64, pid uint64, TokenIn common.Address, Amount *amount.Amount) error {
	return f.cont.ZapIn(cc, sid, pid, TokenIn, Amount)
}

func (f *front) ZapOut(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount, TokenOut common.Address) error {
	return f.cont.ZapOut(cc, sid, pid, Amount, TokenOut)
}

func (f *front) Optimiser(cc *types.ContractContext) common.Address {
	return f.cont.Optimiser(cc)
}

func (f *front) Router(cc *types.ContractContext) common.Address {
	return f.cont.Router(cc)
}
