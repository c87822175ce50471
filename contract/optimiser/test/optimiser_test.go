package test

import (
	"math/big"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/connectlabs/optimiser/contract/compounder"
	"github.com/connectlabs/optimiser/contract/optimiser"
	"github.com/connectlabs/optimiser/contract/plantation"
	"github.com/connectlabs/optimiser/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var (
	tc *util.TestContext

	rewardAddr      common.Address
	stakeAddr       common.Address
	plantRewardAddr common.Address
	plantAddr       common.Address
	compAddr        common.Address
	optAddr         common.Address

	sid uint64
	pid uint64
)

// a passthrough stack: the plantation pays no rewards and takes no fee, so
// one deposited token stays exactly one token of principal
func beforeEachOptimiser() {
	tc = util.NewTestContext()

	rewardAddr = tc.MakeToken("Optimiser Reward", "ORW", "0")
	stakeAddr = tc.MakeToken("Stake Token", "STK", "1000000")
	plantRewardAddr = tc.MakeToken("Plantation Reward", "PRW", "0")

	plantAddr = tc.DeployContract(&plantation.PlantationContract{}, &plantation.PlantationContractConstruction{
		RewardToken: plantRewardAddr,
		FeeSink:     util.FeeSink,
	})
	tc.MustSendTx(util.Admin, plantRewardAddr, "SetMinter", plantAddr, true)
	is := tc.MustSendTx(util.Admin, plantAddr, "AddPool", stakeAddr, amount.NewAmount(0, 0), uint16(0))
	pid = is[0].(uint64)

	optAddr = tc.DeployContract(&optimiser.OptimiserContract{}, &optimiser.OptimiserContractConstruction{
		RewardToken:      rewardAddr,
		EmissionPerBlock: amount.NewAmount(50, 0),
		StartBlock:       0,
		FeeSink:          util.FeeSink,
	})
	tc.MustSendTx(util.Admin, rewardAddr, "SetMinter", optAddr, true)

	compAddr = tc.DeployContract(&compounder.CompounderContract{}, &compounder.CompounderContractConstruction{
		Optimiser:  optAddr,
		Plantation: plantAddr,
	})
	tc.MustSendTx(util.Admin, compAddr, "AddPool", pid, stakeAddr, plantRewardAddr, false, common.ZeroAddr, common.ZeroAddr, false)

	is = tc.MustSendTx(util.Admin, optAddr, "AddSource", compAddr)
	sid = is[0].(uint64)
	tc.MustSendTx(util.Admin, optAddr, "AddFarm", sid, pid, stakeAddr, uint32(100), uint16(0), uint16(0))

	for _, u := range []common.Address{util.Alice, util.Bob} {
		tc.MustSendTx(util.Admin, stakeAddr, "Transfer", u, amount.NewAmount(10000, 0))
		tc.MustSendTx(u, stakeAddr, "Approve", optAddr, amount.NewAmount(1000000, 0))
	}
}

func pendingOf(addr common.Address) *amount.Amount {
	is := tc.MustReadTx(addr, optAddr, "PendingReward", sid, pid, addr)
	return is[0].(*amount.Amount)
}

func stakedOf(addr common.Address) *amount.Amount {
	is := tc.MustReadTx(addr, optAddr, "StakedWantTokens", sid, pid, addr)
	return is[0].(*amount.Amount)
}

func tokenBalance(token common.Address, addr common.Address) *amount.Amount {
	is := tc.MustReadTx(util.Admin, token, "BalanceOf", addr)
	return is[0].(*amount.Amount)
}

func userShares(addr common.Address) *amount.Amount {
	is := tc.MustReadTx(addr, optAddr, "UserInfo", sid, pid, addr)
	return is[0].(*optimiser.UserInfo).Shares
}

var _ = Describe("optimiser", func() {

	BeforeEach(func() {
		beforeEachOptimiser()
	})

	It("accrues emission to the accumulator one block at a time", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		Expect(pendingOf(util.Alice).String()).To(Equal("0"))

		tc.SkipBlock(1)
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))

		// a second deposit settles the first block into PastRewards and
		// leaves pending unchanged
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))

		tc.SkipBlock(2)
		Expect(pendingOf(util.Alice).String()).To(Equal("150"))

		tc.SkipBlock(1)
		tc.MustSendTx(util.Bob, optAddr, "Deposit", sid, pid, amount.NewAmount(2, 0))
		Expect(pendingOf(util.Alice).String()).To(Equal("200"))
		Expect(pendingOf(util.Bob).String()).To(Equal("0"))
	})

	It("splits emission by share weight after a second depositor joins", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		tc.MustSendTx(util.Bob, optAddr, "Deposit", sid, pid, amount.NewAmount(3, 0))

		tc.SkipBlock(4)
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))
		Expect(pendingOf(util.Bob).String()).To(Equal("150"))
	})

	It("pays settled rewards on harvest and restarts the clock", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		tc.SkipBlock(3)

		tc.MustSendTx(util.Alice, optAddr, "Harvest", sid, pid)
		Expect(tokenBalance(rewardAddr, util.Alice).String()).To(Equal("150"))
		Expect(pendingOf(util.Alice).String()).To(Equal("0"))

		tc.SkipBlock(2)
		Expect(pendingOf(util.Alice).String()).To(Equal("100"))
	})

	It("prices shares one to one on the first deposit", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(100, 0))
		Expect(userShares(util.Alice).String()).To(Equal("100"))
		Expect(stakedOf(util.Alice).String()).To(Equal("100"))
	})

	It("burns shares proportionally on withdrawal", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(100, 0))
		tc.MustSendTx(util.Bob, optAddr, "Deposit", sid, pid, amount.NewAmount(300, 0))

		before := tokenBalance(stakeAddr, util.Alice)
		tc.MustSendTx(util.Alice, optAddr, "Withdraw", sid, pid, amount.NewAmount(60, 0))

		Expect(userShares(util.Alice).String()).To(Equal("40"))
		Expect(stakedOf(util.Alice).String()).To(Equal("40"))
		Expect(stakedOf(util.Bob).String()).To(Equal("300"))
		Expect(tokenBalance(stakeAddr, util.Alice).Sub(before).String()).To(Equal("60"))
	})

	It("rejects withdrawing more than the staked value", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(100, 0))

		_, err := tc.SendTx(util.Alice, optAddr, "Withdraw", sid, pid, amount.NewAmount(150, 0))
		Expect(err).To(MatchError("withdraw 150 exceeds staked value 100"))

		_, err = tc.SendTx(util.Bob, optAddr, "Withdraw", sid, pid, amount.NewAmount(1, 0))
		Expect(err).To(MatchError(ContainSubstring("no stake of")))
	})

	It("takes the deposit fee before pricing shares", func() {
		is := tc.MustSendTx(util.Admin, plantAddr, "AddPool", stakeAddr, amount.NewAmount(0, 0), uint16(0))
		pid2 := is[0].(uint64)
		tc.MustSendTx(util.Admin, compAddr, "AddPool", pid2, stakeAddr, plantRewardAddr, false, common.ZeroAddr, common.ZeroAddr, false)
		tc.MustSendTx(util.Admin, optAddr, "AddFarm", sid, pid2, stakeAddr, uint32(100), uint16(5000), uint16(0))

		sinkBefore := tokenBalance(stakeAddr, util.FeeSink)
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid2, amount.NewAmount(100, 0))

		Expect(tokenBalance(stakeAddr, util.FeeSink).Sub(sinkBefore).String()).To(Equal("50"))
		is = tc.MustReadTx(util.Alice, optAddr, "StakedWantTokens", sid, pid2, util.Alice)
		Expect(is[0].(*amount.Amount).String()).To(Equal("50"))
		is = tc.MustReadTx(util.Alice, optAddr, "UserInfo", sid, pid2, util.Alice)
		Expect(is[0].(*optimiser.UserInfo).Shares.String()).To(Equal("50"))
	})

	It("takes the withdraw fee from the withdrawn principal", func() {
		is := tc.MustSendTx(util.Admin, plantAddr, "AddPool", stakeAddr, amount.NewAmount(0, 0), uint16(0))
		pid2 := is[0].(uint64)
		tc.MustSendTx(util.Admin, compAddr, "AddPool", pid2, stakeAddr, plantRewardAddr, false, common.ZeroAddr, common.ZeroAddr, false)
		tc.MustSendTx(util.Admin, optAddr, "AddFarm", sid, pid2, stakeAddr, uint32(100), uint16(0), uint16(1000))

		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid2, amount.NewAmount(100, 0))
		before := tokenBalance(stakeAddr, util.Alice)
		sinkBefore := tokenBalance(stakeAddr, util.FeeSink)
		tc.MustSendTx(util.Alice, optAddr, "Withdraw", sid, pid2, amount.NewAmount(50, 0))

		Expect(tokenBalance(stakeAddr, util.Alice).Sub(before).String()).To(Equal("45"))
		Expect(tokenBalance(stakeAddr, util.FeeSink).Sub(sinkBefore).String()).To(Equal("5"))
	})

	It("rejects deposits below the fee denominator", func() {
		_, err := tc.SendTx(util.Alice, optAddr, "Deposit", sid, pid, &amount.Amount{Int: big.NewInt(9999)})
		Expect(err).To(MatchError("deposit too small"))

		_, err = tc.SendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(0, 0))
		Expect(err).To(MatchError("invalid deposit amount"))
	})

	It("spends the withdrawal allowance and pays the spender", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(100, 0))
		tc.MustSendTx(util.Alice, optAddr, "Approve", sid, pid, util.Bob, amount.NewAmount(60, 0))

		is := tc.MustReadTx(util.Alice, optAddr, "Allowance", sid, pid, util.Alice, util.Bob)
		Expect(is[0].(*amount.Amount).String()).To(Equal("60"))

		before := tokenBalance(stakeAddr, util.Bob)
		tc.MustSendTx(util.Bob, optAddr, "WithdrawFrom", sid, pid, amount.NewAmount(50, 0), util.Alice)

		Expect(tokenBalance(stakeAddr, util.Bob).Sub(before).String()).To(Equal("50"))
		Expect(stakedOf(util.Alice).String()).To(Equal("50"))
		is = tc.MustReadTx(util.Alice, optAddr, "Allowance", sid, pid, util.Alice, util.Bob)
		Expect(is[0].(*amount.Amount).String()).To(Equal("10"))

		_, err := tc.SendTx(util.Bob, optAddr, "WithdrawFrom", sid, pid, amount.NewAmount(50, 0), util.Alice)
		Expect(err).To(MatchError(ContainSubstring("insufficient farm allowance")))
	})

	It("accumulates repeated approvals", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(100, 0))
		tc.MustSendTx(util.Alice, optAddr, "Approve", sid, pid, util.Bob, amount.NewAmount(10, 0))
		tc.MustSendTx(util.Alice, optAddr, "Approve", sid, pid, util.Bob, amount.NewAmount(15, 0))

		is := tc.MustReadTx(util.Alice, optAddr, "Allowance", sid, pid, util.Alice, util.Bob)
		Expect(is[0].(*amount.Amount).String()).To(Equal("25"))
	})

	It("blocks deposits while paused and keeps withdrawals open", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(100, 0))
		tc.MustSendTx(util.Admin, optAddr, "Pause")

		_, err := tc.SendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		Expect(err).To(MatchError("paused optimiser"))

		tc.MustSendTx(util.Alice, optAddr, "Withdraw", sid, pid, amount.NewAmount(40, 0))
		Expect(stakedOf(util.Alice).String()).To(Equal("60"))

		tc.MustSendTx(util.Admin, optAddr, "Unpause")
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
	})

	It("never credits emission across a global pause", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		tc.SkipBlock(1)
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))

		tc.MustSendTx(util.Admin, optAddr, "Pause")
		tc.SkipBlock(5)
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))

		tc.MustSendTx(util.Admin, optAddr, "Unpause")
		tc.MustSendTx(util.Admin, optAddr, "UpdateFarm", sid, pid)
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))

		tc.SkipBlock(1)
		Expect(pendingOf(util.Alice).String()).To(Equal("100"))
	})

	It("keeps the farm total equal to the sum of user shares", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(100, 0))
		tc.MustSendTx(util.Bob, optAddr, "Deposit", sid, pid, amount.NewAmount(300, 0))
		tc.SkipBlock(2)
		tc.MustSendTx(util.Alice, optAddr, "Withdraw", sid, pid, amount.NewAmount(60, 0))
		tc.MustSendTx(util.Bob, optAddr, "Harvest", sid, pid)
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(50, 0))

		is := tc.MustReadTx(util.Admin, optAddr, "FarmInfo", sid, pid)
		total := is[0].(*optimiser.FarmInfo).TotalShares
		Expect(total.String()).To(Equal(userShares(util.Alice).Add(userShares(util.Bob)).String()))
		Expect(total.String()).To(Equal("390"))
	})

	It("stops accruing for a paused farm and resumes without back pay", func() {
		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		tc.SkipBlock(1)
		tc.MustSendTx(util.Admin, optAddr, "SetFarm", sid, pid, uint32(100), uint16(0), uint16(0), true, false)
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))

		_, err := tc.SendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		Expect(err).To(MatchError(ContainSubstring("paused farm")))

		tc.SkipBlock(3)
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))

		tc.MustSendTx(util.Admin, optAddr, "SetFarm", sid, pid, uint32(100), uint16(0), uint16(0), false, false)
		tc.SkipBlock(1)
		Expect(pendingOf(util.Alice).String()).To(Equal("100"))
	})

	It("keeps emission to the farm's weight of the total allocation", func() {
		is := tc.MustSendTx(util.Admin, plantAddr, "AddPool", stakeAddr, amount.NewAmount(0, 0), uint16(0))
		pid2 := is[0].(uint64)
		tc.MustSendTx(util.Admin, compAddr, "AddPool", pid2, stakeAddr, plantRewardAddr, false, common.ZeroAddr, common.ZeroAddr, false)
		tc.MustSendTx(util.Admin, optAddr, "AddFarm", sid, pid2, stakeAddr, uint32(300), uint16(0), uint16(0))

		tc.MustSendTx(util.Alice, optAddr, "Deposit", sid, pid, amount.NewAmount(1, 0))
		tc.MustSendTx(util.Bob, optAddr, "Deposit", sid, pid2, amount.NewAmount(1, 0))

		tc.SkipBlock(4)
		// 50 per block split 100:300
		Expect(pendingOf(util.Alice).String()).To(Equal("50"))
		is = tc.MustReadTx(util.Bob, optAddr, "PendingReward", sid, pid2, util.Bob)
		Expect(is[0].(*amount.Amount).String()).To(Equal("150"))
	})

	It("refuses to recover the reward token", func() {
		tc.MustSendTx(util.Admin, stakeAddr, "Transfer", optAddr, amount.NewAmount(5, 0))
		before := tokenBalance(stakeAddr, util.Admin)
		tc.MustSendTx(util.Admin, optAddr, "InCaseTokensGetStuck", stakeAddr, amount.NewAmount(5, 0))
		Expect(tokenBalance(stakeAddr, util.Admin).Sub(before).String()).To(Equal("5"))

		_, err := tc.SendTx(util.Admin, optAddr, "InCaseTokensGetStuck", rewardAddr, amount.NewAmount(1, 0))
		Expect(err).To(MatchError("cannot recover the reward token"))
	})

	It("rejects a duplicate farm and an unknown source", func() {
		_, err := tc.SendTx(util.Admin, optAddr, "AddFarm", sid, pid, stakeAddr, uint32(100), uint16(0), uint16(0))
		Expect(err).To(MatchError("exist farm 0:0"))

		_, err = tc.SendTx(util.Admin, optAddr, "AddFarm", uint64(9), pid, stakeAddr, uint32(100), uint16(0), uint16(0))
		Expect(err).To(MatchError("not exist source 9"))
	})

	It("rejects master calls from other accounts", func() {
		_, err := tc.SendTx(util.Alice, optAddr, "Pause")
		Expect(err).To(MatchError("not optimiser master"))

		_, err = tc.SendTx(util.Alice, optAddr, "SetEmissionPerBlock", amount.NewAmount(1, 0), false)
		Expect(err).To(MatchError("not optimiser master"))
	})
})
