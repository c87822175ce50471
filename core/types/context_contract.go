package types

import (
	"github.com/connectlabs/optimiser/common"
)

// ExecFunc executes a method of the target contract under its own snapshot
type ExecFunc func(cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)

// ContractContext is the state surface a contract method runs against
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// ContractAddress returns the executing contract address
func (cc *ContractContext) ContractAddress() common.Address {
	return cc.cont
}

// From returns the caller address
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// TargetHeight returns the block height of the context
func (cc *ContractContext) TargetHeight() uint32 {
	return cc.ctx.TargetHeight()
}

// IsContract returns true when the address is a deployed contract
func (cc *ContractContext) IsContract(addr common.Address) bool {
	return cc.ctx.IsContract(addr)
}

// MainToken returns the main token address
func (cc *ContractContext) MainToken() *common.Address {
	return cc.ctx.MainToken()
}

// ContractData returns the contract-scoped value of the key
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Data(cc.cont, common.ZeroAddr, name)
}

// SetContractData inserts the contract-scoped value of the key
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.SetData(cc.cont, common.ZeroAddr, name, value)
}

// AccountData returns the account-scoped value of the key
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Data(cc.cont, addr, name)
}

// SetAccountData inserts the account-scoped value of the key
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.SetData(cc.cont, addr, name, value)
}
