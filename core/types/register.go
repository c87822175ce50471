package types

import (
	"reflect"

	"github.com/connectlabs/optimiser/common/bin"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var classMap = map[uint64]reflect.Type{}

// RegisterContractType registers the contract type and returns its class id
func RegisterContractType(cont Contract) uint64 {
	rt := reflect.TypeOf(cont)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	name := rt.Name()
	if pkgPath := rt.PkgPath(); len(pkgPath) > 0 {
		name = pkgPath + "." + name
	}
	h := crypto.Keccak256([]byte(name))
	classID := bin.Uint64(h[len(h)-8:])
	classMap[classID] = rt
	return classID
}

// CreateContract instantiates a registered contract type
func CreateContract(classID uint64) (Contract, error) {
	rt, has := classMap[classID]
	if !has {
		return nil, errors.WithStack(ErrNotExistContractType)
	}
	return reflect.New(rt).Interface().(Contract), nil
}
