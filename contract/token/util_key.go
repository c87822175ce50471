package token

import "github.com/connectlabs/optimiser/common"

var (
	tagTokenName        = byte(0x01)
	tagTokenSymbol      = byte(0x02)
	tagTokenTotalSupply = byte(0x03)
	tagTokenAmount      = byte(0x04)
	tagTokenMinter      = byte(0x05)
	tagTokenPause       = byte(0x06)
	tagTokenAllowance   = byte(0x07)
)

func makeAllowanceTokenKey(spender common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tagTokenAllowance
	copy(bs[1:], spender[:])
	return bs
}
