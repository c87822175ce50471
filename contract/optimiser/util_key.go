package optimiser

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/bin"
)

var (
	tagRewardToken      = byte(0x01)
	tagEmissionPerBlock = byte(0x02)
	tagFeeSink          = byte(0x03)
	tagStartBlock       = byte(0x04)
	tagPaused           = byte(0x05)
	tagTotalAllocPoint  = byte(0x06)
	tagSourceCount      = byte(0x07)
	tagMutex            = byte(0x08)
	tagFarmList         = byte(0x09)
	tagSource           = byte(0x10)
	tagFarmInfo         = byte(0x11)
	tagUserInfo         = byte(0x12)
	tagFarmAllowance    = byte(0x13)
)

func makeSourceKey(sid uint64) []byte {
	bs := make([]byte, 9)
	bs[0] = tagSource
	copy(bs[1:], bin.Uint64Bytes(sid))
	return bs
}

func makeFarmInfoKey(sid uint64, pid uint64) []byte {
	bs := make([]byte, 17)
	bs[0] = tagFarmInfo
	copy(bs[1:], bin.Uint64Bytes(sid))
	copy(bs[9:], bin.Uint64Bytes(pid))
	return bs
}

func makeUserInfoKey(sid uint64, pid uint64) []byte {
	bs := make([]byte, 17)
	bs[0] = tagUserInfo
	copy(bs[1:], bin.Uint64Bytes(sid))
	copy(bs[9:], bin.Uint64Bytes(pid))
	return bs
}

// the allowance key lives in the owner's account data, so only the spender
// needs to be part of the key
func makeFarmAllowanceKey(sid uint64, pid uint64, spender common.Address) []byte {
	bs := make([]byte, 17+common.AddressLength)
	bs[0] = tagFarmAllowance
	copy(bs[1:], bin.Uint64Bytes(sid))
	copy(bs[9:], bin.Uint64Bytes(pid))
	copy(bs[17:], spender[:])
	return bs
}
