package bin

import "encoding/binary"

// Uint16Bytes returns the big endian bytes of the uint16 number
func Uint16Bytes(v uint16) []byte {
	bs := make([]byte, 2)
	binary.BigEndian.PutUint16(bs, v)
	return bs
}

// Uint32Bytes returns the big endian bytes of the uint32 number
func Uint32Bytes(v uint32) []byte {
	bs := make([]byte, 4)
	binary.BigEndian.PutUint32(bs, v)
	return bs
}

// Uint64Bytes returns the big endian bytes of the uint64 number
func Uint64Bytes(v uint64) []byte {
	bs := make([]byte, 8)
	binary.BigEndian.PutUint64(bs, v)
	return bs
}

// Uint16 returns the uint16 number of the big endian bytes
func Uint16(bs []byte) uint16 {
	return binary.BigEndian.Uint16(bs)
}

// Uint32 returns the uint32 number of the big endian bytes
func Uint32(bs []byte) uint32 {
	return binary.BigEndian.Uint32(bs)
}

// Uint64 returns the uint64 number of the big endian bytes
func Uint64(bs []byte) uint64 {
	return binary.BigEndian.Uint64(bs)
}
