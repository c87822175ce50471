package plantation

import (
	"io"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/bin"
)

type PlantationContractConstruction struct {
	RewardToken common.Address
	FeeSink     common.Address
}

func (s *PlantationContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if err := sw.Address(w, s.RewardToken); err != nil {
		return sw.Sum(), err
	}
	if err := sw.Address(w, s.FeeSink); err != nil {
		return sw.Sum(), err
	}
	return sw.Sum(), nil
}

func (s *PlantationContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.RewardToken = v
	}
	if v, err := sr.Address(r); err != nil {
		return sr.Sum(), err
	} else {
		s.FeeSink = v
	}
	return sr.Sum(), nil
}
