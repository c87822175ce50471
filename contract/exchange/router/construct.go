package router

import (
	"io"
)

type RouterContractConstruction struct{}

func (s *RouterContractConstruction) WriteTo(w io.Writer) (int64, error) {
	return 0, nil
}

func (s *RouterContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	return 0, nil
}
