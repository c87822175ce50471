package test

import (
	"strings"
	"testing"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/contract/compounder"
	"github.com/connectlabs/optimiser/contract/optimiser"
	"github.com/connectlabs/optimiser/contract/plantation"
	"github.com/connectlabs/optimiser/contract/rebalancer"
	"github.com/connectlabs/optimiser/extern/test/util"
)

type testEnv struct {
	tc *util.TestContext

	stakeAddr  common.Address
	rewardAddr common.Address
	plantAddr  common.Address
	compAddr   common.Address
	optAddr    common.Address

	sid uint64
	pid uint64
}

// newTestEnv wires a one-pool stack. With rewardIsStake the plantation pays
// its rewards in the stake token itself, which makes compounding a pure
// restake with no router involved.
func newTestEnv(t *testing.T, plantFeeRate uint16, rewardPerBlock *amount.Amount, rewardIsStake bool, compoundOnInteraction bool) *testEnv {
	e := &testEnv{tc: util.NewTestContext()}
	tc := e.tc

	e.stakeAddr = tc.MakeToken("Stake Token", "STK", "1000000")
	if rewardIsStake {
		e.rewardAddr = e.stakeAddr
	} else {
		e.rewardAddr = tc.MakeToken("Plantation Reward", "PRW", "0")
	}

	e.plantAddr = tc.DeployContract(&plantation.PlantationContract{}, &plantation.PlantationContractConstruction{
		RewardToken: e.rewardAddr,
		FeeSink:     util.FeeSink,
	})
	tc.MustSendTx(util.Admin, e.rewardAddr, "SetMinter", e.plantAddr, true)
	is := tc.MustSendTx(util.Admin, e.plantAddr, "AddPool", e.stakeAddr, rewardPerBlock, plantFeeRate)
	e.pid = is[0].(uint64)

	optRewardAddr := tc.MakeToken("Optimiser Reward", "ORW", "0")
	e.optAddr = tc.DeployContract(&optimiser.OptimiserContract{}, &optimiser.OptimiserContractConstruction{
		RewardToken:      optRewardAddr,
		EmissionPerBlock: amount.NewAmount(1, 0),
		StartBlock:       0,
		FeeSink:          util.FeeSink,
	})
	tc.MustSendTx(util.Admin, optRewardAddr, "SetMinter", e.optAddr, true)

	e.compAddr = tc.DeployContract(&compounder.CompounderContract{}, &compounder.CompounderContractConstruction{
		Optimiser:  e.optAddr,
		Plantation: e.plantAddr,
	})
	tc.MustSendTx(util.Admin, e.compAddr, "AddPool", e.pid, e.stakeAddr, e.rewardAddr, false, common.ZeroAddr, common.ZeroAddr, compoundOnInteraction)
	tc.MustSendTx(util.Admin, e.compAddr, "SetStrategyParams", &rebalancer.Params{})

	is = tc.MustSendTx(util.Admin, e.optAddr, "AddSource", e.compAddr)
	e.sid = is[0].(uint64)
	tc.MustSendTx(util.Admin, e.optAddr, "AddFarm", e.sid, e.pid, e.stakeAddr, uint32(100), uint16(0), uint16(0))

	for _, u := range []common.Address{util.Alice, util.Bob} {
		tc.MustSendTx(util.Admin, e.stakeAddr, "Transfer", u, amount.NewAmount(10000, 0))
		tc.MustSendTx(u, e.stakeAddr, "Approve", e.optAddr, amount.NewAmount(1000000, 0))
	}
	return e
}

func (e *testEnv) balanceOf(t *testing.T, token common.Address, addr common.Address) *amount.Amount {
	is, err := e.tc.ReadTx(util.Admin, token, "BalanceOf", addr)
	if err != nil {
		t.Fatal(err)
	}
	return is[0].(*amount.Amount)
}

func (e *testEnv) totalDeposited(t *testing.T) *amount.Amount {
	is, err := e.tc.ReadTx(util.Admin, e.compAddr, "TotalDeposited", e.pid)
	if err != nil {
		t.Fatal(err)
	}
	return is[0].(*amount.Amount)
}

func (e *testEnv) stakedOf(t *testing.T, addr common.Address) *amount.Amount {
	is, err := e.tc.ReadTx(addr, e.optAddr, "StakedWantTokens", e.sid, e.pid, addr)
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

func TestDepositTracksThePlantationFee(t *testing.T) {
	e := newTestEnv(t, uint16(100), amount.NewAmount(0, 0), false, false)
	tc := e.tc

	tc.MustSendTx(util.Alice, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(100, 0))

	// the plantation kept 1%; shares are priced on what actually landed
	expectAmount(t, e.totalDeposited(t), "99")
	expectAmount(t, e.stakedOf(t, util.Alice), "99")
	expectAmount(t, e.balanceOf(t, e.stakeAddr, util.FeeSink), "1")

	before := e.balanceOf(t, e.stakeAddr, util.Alice)
	tc.MustSendTx(util.Alice, e.optAddr, "Withdraw", e.sid, e.pid, amount.NewAmount(99, 0))
	expectAmount(t, e.balanceOf(t, e.stakeAddr, util.Alice).Sub(before), "99")
	expectAmount(t, e.totalDeposited(t), "0")
}

func TestCompoundOnDepositGrowsEarlierPositions(t *testing.T) {
	e := newTestEnv(t, uint16(0), amount.NewAmount(10, 0), true, true)
	tc := e.tc

	tc.MustSendTx(util.Alice, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(100, 0))
	tc.SkipBlock(10)

	// Bob's deposit first harvests and restakes the 100 accrued reward, so
	// his 100 tokens buy half of Alice's share count
	tc.MustSendTx(util.Bob, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(100, 0))

	expectAmount(t, e.totalDeposited(t), "300")
	expectAmount(t, e.stakedOf(t, util.Alice), "200")
	expectAmount(t, e.stakedOf(t, util.Bob), "100")

	is, err := tc.ReadTx(util.Bob, e.optAddr, "UserInfo", e.sid, e.pid, util.Bob)
	if err != nil {
		t.Fatal(err)
	}
	expectAmount(t, is[0].(*optimiser.UserInfo).Shares, "50")
}

func TestCompoundOnWithdrawCreditsTheWithdrawer(t *testing.T) {
	e := newTestEnv(t, uint16(0), amount.NewAmount(10, 0), true, true)
	tc := e.tc

	tc.MustSendTx(util.Alice, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(100, 0))
	tc.SkipBlock(10)

	// the sole staker withdraws everything; the compound triggered by the
	// withdrawal doubles the principal and the extra rides along
	before := e.balanceOf(t, e.stakeAddr, util.Alice)
	tc.MustSendTx(util.Alice, e.optAddr, "Withdraw", e.sid, e.pid, amount.NewAmount(100, 0))

	expectAmount(t, e.balanceOf(t, e.stakeAddr, util.Alice).Sub(before), "200")
	expectAmount(t, e.totalDeposited(t), "0")
}

func TestPublicCompoundRestakesHarvestedRewards(t *testing.T) {
	e := newTestEnv(t, uint16(0), amount.NewAmount(10, 0), true, false)
	tc := e.tc

	tc.MustSendTx(util.Alice, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(100, 0))
	tc.SkipBlock(5)

	tc.MustSendTx(util.Charlie, e.compAddr, "Compound", e.pid)
	expectAmount(t, e.totalDeposited(t), "150")
	expectAmount(t, e.stakedOf(t, util.Alice), "150")
}

func TestEmergencyWithdrawServesFromTheDrainedBalance(t *testing.T) {
	e := newTestEnv(t, uint16(0), amount.NewAmount(0, 0), false, false)
	tc := e.tc

	tc.MustSendTx(util.Alice, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(100, 0))
	tc.MustSendTx(util.Admin, e.plantAddr, "SetBroken", true)

	if _, err := tc.SendTx(util.Alice, e.optAddr, "Withdraw", e.sid, e.pid, amount.NewAmount(10, 0)); err == nil {
		t.Fatal("expect the normal withdraw path to fail against a broken plantation")
	}

	tc.MustSendTx(util.Admin, e.compAddr, "TriggerEmergency")

	// the first withdrawal drains the plantation once, later ones are paid
	// from the held balance without touching it again
	before := e.balanceOf(t, e.stakeAddr, util.Alice)
	tc.MustSendTx(util.Alice, e.optAddr, "Withdraw", e.sid, e.pid, amount.NewAmount(60, 0))
	expectAmount(t, e.balanceOf(t, e.stakeAddr, util.Alice).Sub(before), "60")
	expectAmount(t, e.balanceOf(t, e.stakeAddr, e.compAddr), "40")
	expectAmount(t, e.totalDeposited(t), "40")

	tc.MustSendTx(util.Alice, e.optAddr, "Withdraw", e.sid, e.pid, amount.NewAmount(40, 0))
	expectAmount(t, e.balanceOf(t, e.stakeAddr, util.Alice).Sub(before), "100")
	expectAmount(t, e.totalDeposited(t), "0")
}

func TestEmergencyModeBlocksDepositsAndStays(t *testing.T) {
	e := newTestEnv(t, uint16(0), amount.NewAmount(0, 0), false, false)
	tc := e.tc

	tc.MustSendTx(util.Alice, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(100, 0))
	tc.MustSendTx(util.Admin, e.compAddr, "TriggerEmergency")

	_, err := tc.SendTx(util.Alice, e.optAddr, "Deposit", e.sid, e.pid, amount.NewAmount(1, 0))
	if err == nil || !strings.Contains(err.Error(), "emergency mode") {
		t.Fatalf("expect emergency mode error, got %v", err)
	}
	if _, err := tc.SendTx(util.Bob, e.compAddr, "Compound", e.pid); err == nil {
		t.Fatal("expect compound to be blocked in emergency mode")
	}

	is, err := tc.ReadTx(util.Admin, e.compAddr, "IsEmergency")
	if err != nil {
		t.Fatal(err)
	}
	if !is[0].(bool) {
		t.Fatal("expect the emergency flag to stay set")
	}
}

func TestOnlyTheOptimiserMovesFunds(t *testing.T) {
	e := newTestEnv(t, uint16(0), amount.NewAmount(0, 0), false, false)
	tc := e.tc

	_, err := tc.SendTx(util.Alice, e.compAddr, "Deposit", e.pid, amount.NewAmount(1, 0))
	if err == nil || err.Error() != "not optimiser" {
		t.Fatalf("expect not optimiser error, got %v", err)
	}
	_, err = tc.SendTx(util.Alice, e.compAddr, "Withdraw", e.pid, amount.NewAmount(1, 0))
	if err == nil || err.Error() != "not optimiser" {
		t.Fatalf("expect not optimiser error, got %v", err)
	}
}
