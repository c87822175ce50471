package test

import (
	"testing"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/extern/test/util"
)

func balanceOf(t *testing.T, tc *util.TestContext, token common.Address, addr common.Address) *amount.Amount {
	is, err := tc.ReadTx(util.Admin, token, "BalanceOf", addr)
	if err != nil {
		t.Fatal(err)
	}
	return is[0].(*amount.Amount)
}

func expectAmount(t *testing.T, got *amount.Amount, want string) {
	t.Helper()
	if got.String() != want {
		t.Fatalf("expect %v got %v", want, got.String())
	}
}

func TestTransferMovesBalance(t *testing.T) {
	tc := util.NewTestContext()
	tokenAddr := tc.MakeToken("Test Token", "TST", "1000")

	tc.MustSendTx(util.Admin, tokenAddr, "Transfer", util.Alice, amount.NewAmount(300, 0))
	expectAmount(t, balanceOf(t, tc, tokenAddr, util.Admin), "700")
	expectAmount(t, balanceOf(t, tc, tokenAddr, util.Alice), "300")

	_, err := tc.SendTx(util.Alice, tokenAddr, "Transfer", util.Bob, amount.NewAmount(301, 0))
	if err == nil {
		t.Fatal("expect insufficient balance error")
	}
	expectAmount(t, balanceOf(t, tc, tokenAddr, util.Alice), "300")
}

func TestTransferFromSpendsAllowance(t *testing.T) {
	tc := util.NewTestContext()
	tokenAddr := tc.MakeToken("Test Token", "TST", "1000")

	tc.MustSendTx(util.Admin, tokenAddr, "Approve", util.Alice, amount.NewAmount(100, 0))
	tc.MustSendTx(util.Alice, tokenAddr, "TransferFrom", util.Admin, util.Bob, amount.NewAmount(60, 0))

	expectAmount(t, balanceOf(t, tc, tokenAddr, util.Bob), "60")
	is, err := tc.ReadTx(util.Admin, tokenAddr, "Allowance", util.Admin, util.Alice)
	if err != nil {
		t.Fatal(err)
	}
	expectAmount(t, is[0].(*amount.Amount), "40")

	_, err = tc.SendTx(util.Alice, tokenAddr, "TransferFrom", util.Admin, util.Bob, amount.NewAmount(60, 0))
	if err == nil {
		t.Fatal("expect insufficient allowance error")
	}
}

func TestMintAndBurnTrackTotalSupply(t *testing.T) {
	tc := util.NewTestContext()
	tokenAddr := tc.MakeToken("Test Token", "TST", "1000")

	_, err := tc.SendTx(util.Alice, tokenAddr, "Mint", util.Alice, amount.NewAmount(10, 0))
	if err == nil {
		t.Fatal("expect not minter error")
	}

	tc.MustSendTx(util.Admin, tokenAddr, "SetMinter", util.Alice, true)
	tc.MustSendTx(util.Alice, tokenAddr, "Mint", util.Alice, amount.NewAmount(10, 0))

	is, ferr := tc.ReadTx(util.Admin, tokenAddr, "TotalSupply")
	if ferr != nil {
		t.Fatal(ferr)
	}
	expectAmount(t, is[0].(*amount.Amount), "1010")

	tc.MustSendTx(util.Alice, tokenAddr, "Burn", amount.NewAmount(4, 0))
	is, ferr = tc.ReadTx(util.Admin, tokenAddr, "TotalSupply")
	if ferr != nil {
		t.Fatal(ferr)
	}
	expectAmount(t, is[0].(*amount.Amount), "1006")
	expectAmount(t, balanceOf(t, tc, tokenAddr, util.Alice), "6")
}

func TestPauseBlocksTransfers(t *testing.T) {
	tc := util.NewTestContext()
	tokenAddr := tc.MakeToken("Test Token", "TST", "1000")

	tc.MustSendTx(util.Admin, tokenAddr, "Pause")
	_, err := tc.SendTx(util.Admin, tokenAddr, "Transfer", util.Alice, amount.NewAmount(1, 0))
	if err == nil || err.Error() != "paused token" {
		t.Fatalf("expect paused token error, got %v", err)
	}

	tc.MustSendTx(util.Admin, tokenAddr, "Unpause")
	tc.MustSendTx(util.Admin, tokenAddr, "Transfer", util.Alice, amount.NewAmount(1, 0))
	expectAmount(t, balanceOf(t, tc, tokenAddr, util.Alice), "1")
}
