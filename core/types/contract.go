package types

import (
	"github.com/connectlabs/optimiser/common"
)

// Contract defines chain contract functions
type Contract interface {
	Name() string
	Address() common.Address
	Master() common.Address
	Init(addr common.Address, master common.Address)
	OnCreate(cc *ContractContext, Args []byte) error
	Front() interface{}
}

// ContractDefine defines a deployed contract
type ContractDefine struct {
	Address common.Address
	Owner   common.Address
	ClassID uint64
}

// ContractLoader is the read-only state surface passed to contract readers
type ContractLoader interface {
	ContractData(name []byte) []byte
	AccountData(addr common.Address, name []byte) []byte
	TargetHeight() uint32
	MainToken() *common.Address
	IsContract(addr common.Address) bool
}
