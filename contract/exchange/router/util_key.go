package router

import "github.com/connectlabs/optimiser/common"

var (
	tagRate         = byte(0x01)
	tagPairTokens   = byte(0x02)
	tagPairByTokens = byte(0x03)
)

func makeRateKey(tokenIn common.Address, tokenOut common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength*2)
	bs[0] = tagRate
	copy(bs[1:], tokenIn[:])
	copy(bs[1+common.AddressLength:], tokenOut[:])
	return bs
}

func makePairTokensKey(lpToken common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tagPairTokens
	copy(bs[1:], lpToken[:])
	return bs
}

func makePairByTokensKey(token0 common.Address, token1 common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength*2)
	bs[0] = tagPairByTokens
	copy(bs[1:], token0[:])
	copy(bs[1+common.AddressLength:], token1[:])
	return bs
}
