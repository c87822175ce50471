package token

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/core/types"
)

func (cont *TokenContract) Front() interface{} {
	return &front{cont: cont}
}

type front struct {
	cont *TokenContract
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	return f.cont.Transfer(cc, To, Amount)
}

func (f *front) Approve(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	return f.cont.Approve(cc, To, Amount)
}

func (f *front) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	return f.cont.TransferFrom(cc, From, To, Amount)
}

func (f *front) Burn(cc *types.ContractContext, Amount *amount.Amount) error {
	return f.cont.Burn(cc, Amount)
}

func (f *front) Mint(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	return f.cont.Mint(cc, To, Amount)
}

func (f *front) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	return f.cont.SetMinter(cc, To, Is)
}

func (f *front) Pause(cc *types.ContractContext) error {
	return f.cont.Pause(cc)
}

func (f *front) Unpause(cc *types.ContractContext) error {
	return f.cont.Unpause(cc)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Name(cc *types.ContractContext) string {
	return f.cont.TokenName(cc)
}

func (f *front) Symbol(cc *types.ContractContext) string {
	return f.cont.Symbol(cc)
}

func (f *front) TotalSupply(cc *types.ContractContext) *amount.Amount {
	return f.cont.TotalSupply(cc)
}

func (f *front) BalanceOf(cc *types.ContractContext, addr common.Address) *amount.Amount {
	return f.cont.BalanceOf(cc, addr)
}

func (f *front) Allowance(cc *types.ContractContext, owner common.Address, spender common.Address) *amount.Amount {
	return f.cont.Allowance(cc, owner, spender)
}

func (f *front) IsMinter(cc *types.ContractContext, addr common.Address) bool {
	return f.cont.IsMinter(cc, addr)
}
