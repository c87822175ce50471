package rebalancer

import "github.com/connectlabs/optimiser/common"

// tags live in the 0x80 range to keep clear of the host contract's keys
var (
	tagParams         = byte(0x80)
	tagBuyBackPending = byte(0x81)
	tagBuyBackLast    = byte(0x82)
)

func makeBuyBackPendingKey(rewardToken common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tagBuyBackPending
	copy(bs[1:], rewardToken[:])
	return bs
}

func makeBuyBackLastKey(rewardToken common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tagBuyBackLast
	copy(bs[1:], rewardToken[:])
	return bs
}
