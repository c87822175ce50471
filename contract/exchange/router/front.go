package router

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/core/types"
)

func (cont *RouterContract) Front() interface{} {
	return &front{cont: cont}
}

type front struct {
	cont *RouterContract
}

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (f *front) SetRate(cc *types.ContractContext, TokenIn common.Address, TokenOut common.Address, Num uint64, Den uint64) error {
	return f.cont.SetRate(cc, TokenIn, TokenOut, Num, Den)
}

func (f *front) RegisterPair(cc *types.ContractContext, LPToken common.Address, Token0 common.Address, Token1 common.Address) error {
	return f.cont.RegisterPair(cc, LPToken, Token0, Token1)
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) SwapExactTokensForTokens(cc *types.ContractContext, AmountIn *amount.Amount, AmountOutMin *amount.Amount, Path []common.Address) ([]*amount.Amount, error) {
	return f.cont.SwapExactTokensForTokens(cc, AmountIn, AmountOutMin, Path)
}

func (f *front) UniAddLiquidity(cc *types.ContractContext, Token0 common.Address, Token1 common.Address, Amount0 *amount.Amount, Amount1 *amount.Amount, AmountMin0 *amount.Amount, AmountMin1 *amount.Amount) (*amount.Amount, *amount.Amount, *amount.Amount, error) {
	return f.cont.UniAddLiquidity(cc, Token0, Token1, Amount0, Amount1, AmountMin0, AmountMin1)
}

func (f *front) UniRemoveLiquidity(cc *types.ContractContext, Token0 common.Address, Token1 common.Address, Liquidity *amount.Amount) (*amount.Amount, *amount.Amount, error) {
	return f.cont.UniRemoveLiquidity(cc, Token0, Token1, Liquidity)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) GetAmountsOut(cc *types.ContractContext, AmountIn *amount.Amount, Path []common.Address) ([]*amount.Amount, error) {
	return f.cont.GetAmountsOut(cc, AmountIn, Path)
}

func (f *front) PairTokens(cc *types.ContractContext, LPToken common.Address) (common.Address, common.Address, bool) {
	return f.cont.PairTokens(cc, LPToken)
}
