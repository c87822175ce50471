package types

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Context holds the layered state of a transaction in progress
type Context struct {
	targetHeight uint32
	stack        []*ContextData
	deploySeq    uint64
}

// NewContext returns a Context at the target height
func NewContext(targetHeight uint32) *Context {
	return &Context{
		targetHeight: targetHeight,
		stack:        []*ContextData{NewContextData(nil)},
	}
}

// TargetHeight returns the block height the context executes at
func (ctx *Context) TargetHeight() uint32 {
	return ctx.targetHeight
}

// NextContext advances the context to the next block height
func (ctx *Context) NextContext() *Context {
	ctx.targetHeight++
	return ctx
}

// Top returns the current state layer
func (ctx *Context) Top() *ContextData {
	return ctx.stack[len(ctx.stack)-1]
}

// Snapshot pushes a state layer and returns the snapshot number
func (ctx *Context) Snapshot() int {
	ctx.stack = append(ctx.stack, NewContextData(ctx.Top()))
	return len(ctx.stack)
}

// Revert discards layers created at or after the snapshot number
func (ctx *Context) Revert(sn int) {
	for len(ctx.stack) >= sn && len(ctx.stack) > 1 {
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
	}
}

// Commit merges layers created at or after the snapshot number into their parent
func (ctx *Context) Commit(sn int) {
	for len(ctx.stack) >= sn && len(ctx.stack) > 1 {
		top := ctx.Top()
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		top.mergeInto(ctx.Top())
	}
}

// Data returns the value of the key
func (ctx *Context) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctx.Top().Data(cont, addr, name)
}

// SetData inserts the value of the key
func (ctx *Context) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	ctx.Top().SetData(cont, addr, name, value)
}

// IsContract returns true when the address is a deployed contract
func (ctx *Context) IsContract(addr common.Address) bool {
	_, has := ctx.Top().Contract(addr)
	return has
}

// Contract instantiates the deployed contract of the address
func (ctx *Context) Contract(addr common.Address) (Contract, error) {
	def, has := ctx.Top().Contract(addr)
	if !has {
		return nil, errors.WithStack(ErrNotExistContract)
	}
	cont, err := CreateContract(def.ClassID)
	if err != nil {
		return nil, err
	}
	cont.Init(def.Address, def.Owner)
	return cont, nil
}

// DeployContract deploys a contract of the class and runs its OnCreate
func (ctx *Context) DeployContract(owner common.Address, ClassID uint64, Args []byte) (Contract, error) {
	ctx.deploySeq++
	h := crypto.Keccak256(owner[:], bin.Uint64Bytes(ClassID), bin.Uint64Bytes(ctx.deploySeq))
	addr := common.BytesToAddress(h[12:])
	if ctx.IsContract(addr) {
		return nil, errors.WithStack(ErrExistAddress)
	}
	def := &ContractDefine{
		Address: addr,
		Owner:   owner,
		ClassID: ClassID,
	}

	sn := ctx.Snapshot()
	ctx.Top().SetContract(def)
	cont, err := ctx.Contract(addr)
	if err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	cc := ctx.ContractContext(cont, owner)
	cc.Exec = NewInteractor(ctx).Exec
	if err := cont.OnCreate(cc, Args); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return cont, nil
}

// MainToken returns the main token address
func (ctx *Context) MainToken() *common.Address {
	return ctx.Top().MainToken()
}

// SetMainToken sets the main token address
func (ctx *Context) SetMainToken(addr common.Address) {
	ctx.Top().SetMainToken(addr)
}

// ContractContext returns the contract call context of the caller
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	return &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
	}
}
