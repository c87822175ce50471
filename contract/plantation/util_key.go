package plantation

import "github.com/connectlabs/optimiser/common/bin"

var (
	tagRewardToken = byte(0x01)
	tagFeeSink     = byte(0x02)
	tagBroken      = byte(0x03)
	tagPoolCount   = byte(0x04)
	tagPoolInfo    = byte(0x10)
	tagStakerInfo  = byte(0x11)
)

func makePoolInfoKey(pid uint64) []byte {
	bs := make([]byte, 9)
	bs[0] = tagPoolInfo
	copy(bs[1:], bin.Uint64Bytes(pid))
	return bs
}

func makeStakerInfoKey(pid uint64) []byte {
	bs := make([]byte, 9)
	bs[0] = tagStakerInfo
	copy(bs[1:], bin.Uint64Bytes(pid))
	return bs
}
