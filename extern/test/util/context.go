package util

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/common/bin"
	"github.com/connectlabs/optimiser/contract/token"
	"github.com/connectlabs/optimiser/core/types"
)

// TestContext drives contracts against an in-memory state context.
// Transactions run at the current height; SkipBlock moves time forward.
type TestContext struct {
	Ctx       *types.Context
	MainToken common.Address
}

func NewTestContext() *TestContext {
	tc := &TestContext{
		Ctx: types.NewContext(1),
	}
	tc.MainToken = tc.MakeToken("Test", "TEST", "2000000000")
	tc.Ctx.SetMainToken(tc.MainToken)
	return tc
}

func (tc *TestContext) DeployContract(contType types.Contract, contArgs io.WriterTo) common.Address {
	classID := types.RegisterContractType(contType)
	bs, _, err := bin.WriterToBytes(contArgs)
	if err != nil {
		panic(err)
	}
	cont, err := tc.Ctx.DeployContract(Admin, classID, bs)
	if err != nil {
		panic(err)
	}
	return cont.Address()
}

func (tc *TestContext) MakeToken(name string, symbol string, amt string) common.Address {
	return tc.DeployContract(&token.TokenContract{}, &token.TokenContractConstruction{
		Name:   name,
		Symbol: symbol,
		InitialSupplyMap: map[common.Address]*amount.Amount{
			Admin: amount.MustParseAmount(amt),
		},
	})
}

// SendTx executes a method call as a transaction of the sender at the
// current block height; blocks advance only through SkipBlock
func (tc *TestContext) SendTx(from common.Address, to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	cont, err := tc.Ctx.Contract(to)
	if err != nil {
		return nil, err
	}
	cc := tc.Ctx.ContractContext(cont, from)
	cc.Exec = types.NewInteractor(tc.Ctx).Exec
	return cc.Exec(cc, to, method, params)
}

func (tc *TestContext) MustSendTx(from common.Address, to common.Address, method string, params ...interface{}) []interface{} {
	ins, err := tc.SendTx(from, to, method, params...)
	if err != nil {
		panic(err)
	}
	return ins
}

// ReadTx executes a method call and discards every state change it made
func (tc *TestContext) ReadTx(from common.Address, to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	cont, err := tc.Ctx.Contract(to)
	if err != nil {
		return nil, err
	}
	sn := tc.Ctx.Snapshot()
	defer tc.Ctx.Revert(sn)
	cc := tc.Ctx.ContractContext(cont, from)
	cc.Exec = types.NewInteractor(tc.Ctx).Exec
	return cc.Exec(cc, to, method, params)
}

func (tc *TestContext) MustReadTx(from common.Address, to common.Address, method string, params ...interface{}) []interface{} {
	ins, err := tc.ReadTx(from, to, method, params...)
	if err != nil {
		panic(err)
	}
	return ins
}

// SkipBlock advances empty blocks
func (tc *TestContext) SkipBlock(blockCount int) {
	for i := 0; i < blockCount; i++ {
		tc.Ctx = tc.Ctx.NextContext()
	}
}
