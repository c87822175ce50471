package token

import (
	"bytes"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/core/types"
	"github.com/pkg/errors"
)

type TokenContract struct {
	addr   common.Address
	master common.Address
}

func (cont *TokenContract) Name() string {
	return "TokenContract"
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

func (cont *TokenContract) Master() common.Address {
	return cont.master
}

func (cont *TokenContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *TokenContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &TokenContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagTokenName}, []byte(data.Name))
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(data.Symbol))
	total := amount.NewAmount(0, 0)
	for addr, am := range data.InitialSupplyMap {
		if am.IsMinus() {
			return errors.Errorf("invalid initial supply %v of %v", am.String(), addr.String())
		}
		cc.SetAccountData(addr, []byte{tagTokenAmount}, am.Bytes())
		total = total.Add(am)
	}
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *TokenContract) addBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) error {
	if am.IsMinus() {
		return errors.Errorf("invalid transfer amount %v", am.String())
	}
	bal := cont.BalanceOf(cc, addr)
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Add(am).Bytes())
	return nil
}

func (cont *TokenContract) subBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) error {
	if am.IsMinus() {
		return errors.Errorf("invalid transfer amount %v", am.String())
	}
	bal := cont.BalanceOf(cc, addr)
	if bal.Less(am) {
		return errors.Errorf("insufficient balance %v of %v", bal.String(), addr.String())
	}
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Sub(am).Bytes())
	return nil
}

func (cont *TokenContract) isPause(cc *types.ContractContext) bool {
	bs := cc.ContractData([]byte{tagTokenPause})
	return len(bs) > 0 && bs[0] == 1
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if cont.isPause(cc) {
		return errors.New("paused token")
	}
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid transfer amount")
	}
	if err := cont.subBalance(cc, cc.From(), Amount); err != nil {
		return err
	}
	return cont.addBalance(cc, To, Amount)
}

func (cont *TokenContract) Approve(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if Amount == nil || Amount.IsMinus() {
		return errors.New("invalid approve amount")
	}
	cc.SetAccountData(cc.From(), makeAllowanceTokenKey(To), Amount.Bytes())
	return nil
}

func (cont *TokenContract) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if cont.isPause(cc) {
		return errors.New("paused token")
	}
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid transfer amount")
	}
	allowed := cont.Allowance(cc, From, cc.From())
	if allowed.Less(Amount) {
		return errors.Errorf("insufficient allowance %v of %v to %v", allowed.String(), From.String(), cc.From().String())
	}
	cc.SetAccountData(From, makeAllowanceTokenKey(cc.From()), allowed.Sub(Amount).Bytes())
	if err := cont.subBalance(cc, From, Amount); err != nil {
		return err
	}
	return cont.addBalance(cc, To, Amount)
}

func (cont *TokenContract) Burn(cc *types.ContractContext, Amount *amount.Amount) error {
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid burn amount")
	}
	if err := cont.subBalance(cc, cc.From(), Amount); err != nil {
		return err
	}
	total := cont.TotalSupply(cc)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Sub(Amount).Bytes())
	return nil
}

//////////////////////////////////////////////////
// Minter Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Mint(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if cc.From() != cont.master && !cont.IsMinter(cc, cc.From()) {
		return errors.Errorf("not minter %v", cc.From().String())
	}
	if Amount == nil || !Amount.IsPlus() {
		return errors.New("invalid mint amount")
	}
	if err := cont.addBalance(cc, To, Amount); err != nil {
		return err
	}
	total := cont.TotalSupply(cc)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Add(Amount).Bytes())
	return nil
}

//////////////////////////////////////////////////
// Master Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	if cc.From() != cont.master {
		return errors.New("not token master")
	}
	if Is {
		cc.SetAccountData(To, []byte{tagTokenMinter}, []byte{1})
	} else {
		cc.SetAccountData(To, []byte{tagTokenMinter}, nil)
	}
	return nil
}

func (cont *TokenContract) Pause(cc *types.ContractContext) error {
	if cc.From() != cont.master {
		return errors.New("not token master")
	}
	cc.SetContractData([]byte{tagTokenPause}, []byte{1})
	return nil
}

func (cont *TokenContract) Unpause(cc *types.ContractContext) error {
	if cc.From() != cont.master {
		return errors.New("not token master")
	}
	cc.SetContractData([]byte{tagTokenPause}, nil)
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *TokenContract) TokenName(lw types.ContractLoader) string {
	return string(lw.ContractData([]byte{tagTokenName}))
}

func (cont *TokenContract) Symbol(lw types.ContractLoader) string {
	return string(lw.ContractData([]byte{tagTokenSymbol}))
}

func (cont *TokenContract) TotalSupply(lw types.ContractLoader) *amount.Amount {
	return amount.NewAmountFromBytes(lw.ContractData([]byte{tagTokenTotalSupply}))
}

func (cont *TokenContract) BalanceOf(lw types.ContractLoader, addr common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(lw.AccountData(addr, []byte{tagTokenAmount}))
}

func (cont *TokenContract) Allowance(lw types.ContractLoader, owner common.Address, spender common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(lw.AccountData(owner, makeAllowanceTokenKey(spender)))
}

func (cont *TokenContract) IsMinter(lw types.ContractLoader, addr common.Address) bool {
	bs := lw.AccountData(addr, []byte{tagTokenMinter})
	return len(bs) > 0 && bs[0] == 1
}
