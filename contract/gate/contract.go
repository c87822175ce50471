package gate

import (
	"bytes"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

var (
	tagOptimiser = byte(0x01)
	tagRouter    = byte(0x02)
)

// GateContract zaps arbitrary tokens in and out of optimiser farms,
// routing conversions through the swap router. Shares always land on the
// calling account, never on the gate.
type GateContract struct {
	addr   common.Address
	master common.Address
}

func (cont *GateContract) Name() string {
	return "GateContract"
}

func (cont *GateContract) Address() common.Address {
	return cont.addr
}

func (cont *GateContract) Master() common.Address {
	return cont.master
}

func (cont *GateContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *GateContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &GateContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagOptimiser}, data.Optimiser[:])
	cc.SetContractData([]byte{tagRouter}, data.Router[:])
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *GateContract) optimiser(lw types.ContractLoader) common.Address {
	return common.BytesToAddress(lw.ContractData([]byte{tagOptimiser}))
}

func (cont *GateContract) router(lw types.ContractLoader) common.Address {
	return common.BytesToAddress(lw.ContractData([]byte{tagRouter}))
}

func (cont *GateContract) balanceOf(cc *types.ContractContext, token common.Address, addr common.Address) (*amount.Amount, error) {
	is, err := cc.Exec(cc, token, "BalanceOf", []interface{}{addr})
	if err != nil {
		return nil, err
	}
	return is[0].(*amount.Amount), nil
}

func (cont *GateContract) increaseAllowance(cc *types.ContractContext, token common.Address, spender common.Address, amt *amount.Amount) error {
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

func (cont *GateContract) swap(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address, amt *amount.Amount) (*amount.Amount, error) {
	if tokenIn == tokenOut || !amt.IsPlus() {
		return amt, nil
	}
	router := cont.router(cc)
	if err := cont.increaseAllowance(cc, tokenIn, router, amt); err != nil {
		return nil, err
	}
	is, err := cc.Exec(cc, router, "SwapExactTokensForTokens", []interface{}{amt, nil, []common.Address{tokenIn, tokenOut}})
	if err != nil {
		return nil, err
	}
	amounts := is[0].([]*amount.Amount)
	return amounts[len(amounts)-1], nil
}

func (cont *GateContract) wantToken(cc *types.ContractContext, sid uint64, pid uint64) (common.Address, error) {
	is, err := cc.Exec(cc, cont.optimiser(cc), "WantToken", []interface{}{sid, pid})
	if err != nil {
		return common.ZeroAddr, err
	}
	return is[0].(common.Address), nil
}

func (cont *GateContract) pairTokens(cc *types.ContractContext, lpToken common.Address) (common.Address, common.Address, bool, error) {
	is, err := cc.Exec(cc, cont.router(cc), "PairTokens", []interface{}{lpToken})
	if err != nil {
		return common.ZeroAddr, common.ZeroAddr, false, err
	}
	return is[0].(common.Address), is[1].(common.Address), is[2].(bool), nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// ZapIn converts the pulled token into the farm's deposit asset and
// deposits it for the caller; conversion leftovers go back to the caller
func (cont *GateContract) ZapIn(cc *types.ContractContext, sid uint64, pid uint64, TokenIn common.Address, Amount *amount.Amount) error {
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid zap amount")
	}
	if _, err := cc.Exec(cc, TokenIn, "TransferFrom", []interface{}{cc.From(), cont.addr, Amount}); err != nil {
		return err
	}
	want, err := cont.wantToken(cc, sid, pid)
	if err != nil {
		return err
	}
	token0, token1, isPair, err := cont.pairTokens(cc, want)
	if err != nil {
		return err
	}
	var got *amount.Amount
	if !isPair {
		if got, err = cont.swap(cc, TokenIn, want, Amount); err != nil {
			return err
		}
	} else {
		half := Amount.DivC(2)
		rest := Amount.Sub(half)
		amt0, err := cont.swap(cc, TokenIn, token0, half)
		if err != nil {
			return err
		}
		amt1, err := cont.swap(cc, TokenIn, token1, rest)
		if err != nil {
			return err
		}
		router := cont.router(cc)
		if err := cont.increaseAllowance(cc, token0, router, amt0); err != nil {
			return err
		}
		if err := cont.increaseAllowance(cc, token1, router, amt1); err != nil {
			return err
		}
		is, err := cc.Exec(cc, router, "UniAddLiquidity", []interface{}{token0, token1, amt0, amt1, nil, nil})
		if err != nil {
			return err
		}
		used0 := is[0].(*amount.Amount)
		used1 := is[1].(*amount.Amount)
		got = is[2].(*amount.Amount)
		if dust := amt0.Sub(used0); dust.IsPlus() {
			if _, err := cc.Exec(cc, token0, "Transfer", []interface{}{cc.From(), dust}); err != nil {
				return err
			}
		}
		if dust := amt1.Sub(used1); dust.IsPlus() {
			if _, err := cc.Exec(cc, token1, "Transfer", []interface{}{cc.From(), dust}); err != nil {
				return err
			}
		}
	}
	opt := cont.optimiser(cc)
	if err := cont.increaseAllowance(cc, want, opt, got); err != nil {
		return err
	}
	if _, err := cc.Exec(cc, opt, "DepositTo", []interface{}{sid, pid, got, cc.From()}); err != nil {
		return err
	}
	return nil
}

// ZapOut withdraws from the caller's position and pays the caller in the
// requested token. The caller must have approved the gate on the farm.
func (cont *GateContract) ZapOut(cc *types.ContractContext, sid uint64, pid uint64, Amount *amount.Amount, TokenOut common.Address) error {
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid zap amount")
	}
	want, err := cont.wantToken(cc, sid, pid)
	if err != nil {
		return err
	}
	before, err := cont.balanceOf(cc, want, cont.addr)
	if err != nil {
		return err
	}
	if _, err := cc.Exec(cc, cont.optimiser(cc), "WithdrawFrom", []interface{}{sid, pid, Amount, cc.From()}); err != nil {
		return err
	}
	after, err := cont.balanceOf(cc, want, cont.addr)
	if err != nil {
		return err
	}
	got := after.Sub(before)
	if !got.IsPlus() {
		return errors.New("nothing withdrawn")
	}
	token0, token1, isPair, err := cont.pairTokens(cc, want)
	if err != nil {
		return err
	}
	total := amount.NewAmount(0, 0)
	if !isPair {
		if total, err = cont.swap(cc, want, TokenOut, got); err != nil {
			return err
		}
	} else {
		router := cont.router(cc)
		if err := cont.increaseAllowance(cc, want, router, got); err != nil {
			return err
		}
		is, err := cc.Exec(cc, router, "UniRemoveLiquidity", []interface{}{token0, token1, got})
		if err != nil {
			return err
		}
		out0, err := cont.swap(cc, token0, TokenOut, is[0].(*amount.Amount))
		if err != nil {
			return err
		}
		out1, err := cont.swap(cc, token1, TokenOut, is[1].(*amount.Amount))
		if err != nil {
			return err
		}
		total = out0.Add(out1)
	}
	if total.IsPlus() {
		if _, err := cc.Exec(cc, TokenOut, "Transfer", []interface{}{cc.From(), total}); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *GateContract) Optimiser(lw types.ContractLoader) common.Address {
	return cont.optimiser(lw)
}

func (cont *GateContract) Router(lw types.ContractLoader) common.Address {
	return cont.router(lw)
}
