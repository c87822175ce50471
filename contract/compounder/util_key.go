package compounder

import "github.com/connectlabs/optimiser/common/bin"

var (
	tagOptimiser  = byte(0x01)
	tagPlantation = byte(0x02)
	tagEmergency  = byte(0x03)
	tagPoolInfo   = byte(0x10)
)

func makePoolInfoKey(pid uint64) []byte {
	bs := make([]byte, 9)
	bs[0] = tagPoolInfo
	copy(bs[1:], bin.Uint64Bytes(pid))
	return bs
}
