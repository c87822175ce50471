package router

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

// RouterContract is a posted-rate swap and liquidity venue. Quotes are
// owner-posted per token pair and swaps pay out of router inventory.
type RouterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *RouterContract) Name() string {
	return "RouterContract"
}

func (cont *RouterContract) Address() common.Address {
	return cont.addr
}

func (cont *RouterContract) Master() common.Address {
	return cont.master
}

func (cont *RouterContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *RouterContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *RouterContract) rate(lw types.ContractLoader, tokenIn common.Address, tokenOut common.Address) (uint64, uint64, error) {
	bs := lw.ContractData(makeRateKey(tokenIn, tokenOut))
	if len(bs) != 16 {
		return 0, 0, errors.Errorf("no rate from %v to %v", tokenIn.String(), tokenOut.String())
	}
	return bin.Uint64(bs[:8]), bin.Uint64(bs[8:]), nil
}

func (cont *RouterContract) pairByTokens(lw types.ContractLoader, token0 common.Address, token1 common.Address) (common.Address, error) {
	bs := lw.ContractData(makePairByTokensKey(token0, token1))
	if len(bs) != common.AddressLength {
		return common.ZeroAddr, errors.Errorf("no pair of %v and %v", token0.String(), token1.String())
	}
	return common.BytesToAddress(bs), nil
}

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (cont *RouterContract) SetRate(cc *types.ContractContext, TokenIn common.Address, TokenOut common.Address, Num uint64, Den uint64) error {
	if cc.From() != cont.master {
		return errors.New("not router master")
	}
	if Den == 0 {
		return errors.New("invalid rate denominator")
	}
	bs := make([]byte, 16)
	copy(bs[:8], bin.Uint64Bytes(Num))
	copy(bs[8:], bin.Uint64Bytes(Den))
	cc.SetContractData(makeRateKey(TokenIn, TokenOut), bs)
	return nil
}

// RegisterPair binds an LP token to its two legs. The router must be a
// minter of the LP token.
func (cont *RouterContract) RegisterPair(cc *types.ContractContext, LPToken common.Address, Token0 common.Address, Token1 common.Address) error {
	if cc.From() != cont.master {
		return errors.New("not router master")
	}
	bs := make([]byte, common.AddressLength*2)
	copy(bs[:common.AddressLength], Token0[:])
	copy(bs[common.AddressLength:], Token1[:])
	cc.SetContractData(makePairTokensKey(LPToken), bs)
	cc.SetContractData(makePairByTokensKey(Token0, Token1), LPToken[:])
	cc.SetContractData(makePairByTokensKey(Token1, Token0), LPToken[:])
	return nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *RouterContract) SwapExactTokensForTokens(cc *types.ContractContext, AmountIn *amount.Amount, AmountOutMin *amount.Amount, Path []common.Address) ([]*amount.Amount, error) {
	amounts, err := cont.GetAmountsOut(cc, AmountIn, Path)
	if err != nil {
		return nil, err
	}
	out := amounts[len(amounts)-1]
	if AmountOutMin != nil && out.Less(AmountOutMin) {
		return nil, errors.Errorf("insufficient output amount %v < %v", out.String(), AmountOutMin.String())
	}
	if _, err := cc.Exec(cc, Path[0], "TransferFrom", []interface{}{cc.From(), cont.addr, AmountIn}); err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, Path[len(Path)-1], "Transfer", []interface{}{cc.From(), out}); err != nil {
		return nil, err
	}
	return amounts, nil
}

func (cont *RouterContract) UniAddLiquidity(cc *types.ContractContext, Token0 common.Address, Token1 common.Address, Amount0 *amount.Amount, Amount1 *amount.Amount, AmountMin0 *amount.Amount, AmountMin1 *amount.Amount) (*amount.Amount, *amount.Amount, *amount.Amount, error) {
	lpToken, err := cont.pairByTokens(cc, Token0, Token1)
	if err != nil {
		return nil, nil, nil, err
	}
	if Amount0 == nil || Amount1 == nil || Amount0.IsMinus() || Amount1.IsMinus() {
		return nil, nil, nil, errors.New("invalid liquidity amount")
	}
	used := Amount0
	if Amount1.Less(used) {
		used = Amount1
	}
	used = used.Clone()
	if !used.IsPlus() {
		return nil, nil, nil, errors.New("insufficient liquidity amount")
	}
	if AmountMin0 != nil && used.Less(AmountMin0) {
		return nil, nil, nil, errors.New("insufficient token0 amount")
	}
	if AmountMin1 != nil && used.Less(AmountMin1) {
		return nil, nil, nil, errors.New("insufficient token1 amount")
	}
	if _, err := cc.Exec(cc, Token0, "TransferFrom", []interface{}{cc.From(), cont.addr, used}); err != nil {
		return nil, nil, nil, err
	}
	if _, err := cc.Exec(cc, Token1, "TransferFrom", []interface{}{cc.From(), cont.addr, used}); err != nil {
		return nil, nil, nil, err
	}
	liquidity := used.MulC(2)
	if _, err := cc.Exec(cc, lpToken, "Mint", []interface{}{cc.From(), liquidity}); err != nil {
		return nil, nil, nil, err
	}
	return used, used, liquidity, nil
}

func (cont *RouterContract) UniRemoveLiquidity(cc *types.ContractContext, Token0 common.Address, Token1 common.Address, Liquidity *amount.Amount) (*amount.Amount, *amount.Amount, error) {
	lpToken, err := cont.pairByTokens(cc, Token0, Token1)
	if err != nil {
		return nil, nil, err
	}
	if Liquidity == nil || !Liquidity.IsPlus() {
		return nil, nil, errors.New("invalid liquidity amount")
	}
	if _, err := cc.Exec(cc, lpToken, "TransferFrom", []interface{}{cc.From(), cont.addr, Liquidity}); err != nil {
		return nil, nil, err
	}
	if _, err := cc.Exec(cc, lpToken, "Burn", []interface{}{Liquidity}); err != nil {
		return nil, nil, err
	}
	half := Liquidity.DivC(2)
	if _, err := cc.Exec(cc, Token0, "Transfer", []interface{}{cc.From(), half}); err != nil {
		return nil, nil, err
	}
	if _, err := cc.Exec(cc, Token1, "Transfer", []interface{}{cc.From(), half}); err != nil {
		return nil, nil, err
	}
	return half, half, nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *RouterContract) GetAmountsOut(lw types.ContractLoader, AmountIn *amount.Amount, Path []common.Address) ([]*amount.Amount, error) {
	if AmountIn == nil || !AmountIn.IsPlus() {
		return nil, errors.New("invalid input amount")
	}
	if len(Path) < 2 {
		return nil, errors.New("invalid path")
	}
	amounts := make([]*amount.Amount, 0, len(Path))
	amounts = append(amounts, AmountIn.Clone())
	cur := AmountIn
	for i := 0; i < len(Path)-1; i++ {
		num, den, err := cont.rate(lw, Path[i], Path[i+1])
		if err != nil {
			return nil, err
		}
		cur = cur.MulC(int64(num)).DivC(int64(den))
		amounts = append(amounts, cur)
	}
	return amounts, nil
}

func (cont *RouterContract) PairTokens(lw types.ContractLoader, LPToken common.Address) (common.Address, common.Address, bool) {
	bs := lw.ContractData(makePairTokensKey(LPToken))
	if len(bs) != common.AddressLength*2 {
		return common.ZeroAddr, common.ZeroAddr, false
	}
	return common.BytesToAddress(bs[:common.AddressLength]), common.BytesToAddress(bs[common.AddressLength:]), true
}
