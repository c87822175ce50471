package bin

import (
	"bytes"
	"io"
)

// WriterToBytes returns the bytes of the io.WriterTo
func WriterToBytes(w io.WriterTo) ([]byte, int64, error) {
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	if err != nil {
		return nil, n, err
	}
	return buf.Bytes(), n, nil
}

// MustWriterToBytes panics when the io.WriterTo is not writable
func MustWriterToBytes(w io.WriterTo) []byte {
	bs, _, err := WriterToBytes(w)
	if err != nil {
		panic(err)
	}
	return bs
}
