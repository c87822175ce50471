package test

import (
	"testing"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/contract/plantation"
	"github.com/connectlabs/optimiser/extern/test/util"
)

func setup(t *testing.T, rewardPerBlock *amount.Amount, feeRate uint16) (*util.TestContext, common.Address, common.Address, common.Address, uint64) {
	tc := util.NewTestContext()
	stakeAddr := tc.MakeToken("Stake Token", "STK", "1000000")
	rewardAddr := tc.MakeToken("Plantation Reward", "PRW", "0")

	plantAddr := tc.DeployContract(&plantation.PlantationContract{}, &plantation.PlantationContractConstruction{
		RewardToken: rewardAddr,
		FeeSink:     util.FeeSink,
	})
	tc.MustSendTx(util.Admin, rewardAddr, "SetMinter", plantAddr, true)
	is := tc.MustSendTx(util.Admin, plantAddr, "AddPool", stakeAddr, rewardPerBlock, feeRate)
	pid := is[0].(uint64)

	tc.MustSendTx(util.Admin, stakeAddr, "Transfer", util.Alice, amount.NewAmount(1000, 0))
	tc.MustSendTx(util.Alice, stakeAddr, "Approve", plantAddr, amount.NewAmount(1000000, 0))
	return tc, stakeAddr, rewardAddr, plantAddr, pid
}

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

func TestDepositFeeGoesToTheSink(t *testing.T) {
	tc, stakeAddr, _, plantAddr, pid := setup(t, amount.NewAmount(0, 0), uint16(200))

	tc.MustSendTx(util.Alice, plantAddr, "Deposit", pid, amount.NewAmount(100, 0))

	expectAmount(t, balanceOf(t, tc, stakeAddr, util.FeeSink), "2")
	is, err := tc.ReadTx(util.Admin, plantAddr, "BalanceDeposited", pid, util.Alice)
	if err != nil {
		t.Fatal(err)
	}
	expectAmount(t, is[0].(*amount.Amount), "98")
}

func TestHarvestPaysTheBlockEmission(t *testing.T) {
	tc, _, rewardAddr, plantAddr, pid := setup(t, amount.NewAmount(10, 0), uint16(0))

	tc.MustSendTx(util.Alice, plantAddr, "Deposit", pid, amount.NewAmount(100, 0))
	tc.SkipBlock(5)

	tc.MustSendTx(util.Alice, plantAddr, "Harvest", pid)
	expectAmount(t, balanceOf(t, tc, rewardAddr, util.Alice), "50")

	// the settle cursor moved, a second harvest in the same block pays nothing
	tc.MustSendTx(util.Alice, plantAddr, "Harvest", pid)
	expectAmount(t, balanceOf(t, tc, rewardAddr, util.Alice), "50")
}

func TestWithdrawReturnsPrincipal(t *testing.T) {
	tc, stakeAddr, _, plantAddr, pid := setup(t, amount.NewAmount(0, 0), uint16(0))

	tc.MustSendTx(util.Alice, plantAddr, "Deposit", pid, amount.NewAmount(100, 0))
	tc.MustSendTx(util.Alice, plantAddr, "Withdraw", pid, amount.NewAmount(60, 0))

	expectAmount(t, balanceOf(t, tc, stakeAddr, util.Alice), "960")

	_, err := tc.SendTx(util.Alice, plantAddr, "Withdraw", pid, amount.NewAmount(60, 0))
	if err == nil {
		t.Fatal("expect insufficient stake error")
	}
}

func TestBrokenModeOnlyAllowsEmergencyWithdraw(t *testing.T) {
	tc, stakeAddr, rewardAddr, plantAddr, pid := setup(t, amount.NewAmount(10, 0), uint16(0))

	tc.MustSendTx(util.Alice, plantAddr, "Deposit", pid, amount.NewAmount(100, 0))
	tc.SkipBlock(5)
	tc.MustSendTx(util.Admin, plantAddr, "SetBroken", true)

	for _, method := range []string{"Deposit", "Withdraw"} {
		if _, err := tc.SendTx(util.Alice, plantAddr, method, pid, amount.NewAmount(1, 0)); err == nil || err.Error() != "broken plantation" {
			t.Fatalf("expect broken plantation error of %v, got %v", method, err)
		}
	}
	if _, err := tc.SendTx(util.Alice, plantAddr, "Harvest", pid); err == nil {
		t.Fatal("expect broken plantation error of Harvest")
	}

	// the emergency path returns the full principal and forfeits rewards
	tc.MustSendTx(util.Alice, plantAddr, "EmergencyWithdraw", pid)
	expectAmount(t, balanceOf(t, tc, stakeAddr, util.Alice), "1000")
	expectAmount(t, balanceOf(t, tc, rewardAddr, util.Alice), "0")

	is, err := tc.ReadTx(util.Admin, plantAddr, "BalanceDeposited", pid, util.Alice)
	if err != nil {
		t.Fatal(err)
	}
	expectAmount(t, is[0].(*amount.Amount), "0")
}
