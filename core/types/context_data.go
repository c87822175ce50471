package types

import (
	"github.com/connectlabs/optimiser/common"
)

// ContextData is a state data snapshot layer
type ContextData struct {
	Parent            *ContextData
	DataMap           map[string][]byte
	DeletedDataMap    map[string]bool
	ContractDefineMap map[common.Address]*ContractDefine
	mainToken         *common.Address
}

// NewContextData returns a ContextData over the parent layer
func NewContextData(Parent *ContextData) *ContextData {
	return &ContextData{
		Parent:            Parent,
		DataMap:           map[string][]byte{},
		DeletedDataMap:    map[string]bool{},
		ContractDefineMap: map[common.Address]*ContractDefine{},
	}
}

func dataKey(cont common.Address, addr common.Address, name []byte) string {
	return string(cont[:]) + string(addr[:]) + string(name)
}

// Data returns the value of the key
func (ctd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	key := dataKey(cont, addr, name)
	if ctd.DeletedDataMap[key] {
		return nil
	}
	if value, has := ctd.DataMap[key]; has {
		return value
	}
	if ctd.Parent != nil {
		return ctd.Parent.Data(cont, addr, name)
	}
	return nil
}

// SetData inserts the value of the key; an empty value deletes the key
func (ctd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := dataKey(cont, addr, name)
	if len(value) == 0 {
		delete(ctd.DataMap, key)
		ctd.DeletedDataMap[key] = true
		return
	}
	nvalue := make([]byte, len(value))
	copy(nvalue, value)
	ctd.DataMap[key] = nvalue
	delete(ctd.DeletedDataMap, key)
}

// Contract returns the contract define of the address
func (ctd *ContextData) Contract(addr common.Address) (*ContractDefine, bool) {
	if def, has := ctd.ContractDefineMap[addr]; has {
		return def, true
	}
	if ctd.Parent != nil {
		return ctd.Parent.Contract(addr)
	}
	return nil, false
}

// SetContract registers the contract define
func (ctd *ContextData) SetContract(def *ContractDefine) {
	ctd.ContractDefineMap[def.Address] = def
}

// MainToken returns the main token address
func (ctd *ContextData) MainToken() *common.Address {
	if ctd.mainToken != nil {
		return ctd.mainToken
	}
	if ctd.Parent != nil {
		return ctd.Parent.MainToken()
	}
	return nil
}

// SetMainToken sets the main token address
func (ctd *ContextData) SetMainToken(addr common.Address) {
	ctd.mainToken = &addr
}

func (ctd *ContextData) mergeInto(parent *ContextData) {
	for key, value := range ctd.DataMap {
		parent.DataMap[key] = value
		delete(parent.DeletedDataMap, key)
	}
	for key := range ctd.DeletedDataMap {
		delete(parent.DataMap, key)
		parent.DeletedDataMap[key] = true
	}
	for addr, def := range ctd.ContractDefineMap {
		parent.ContractDefineMap[addr] = def
	}
	if ctd.mainToken != nil {
		parent.mainToken = ctd.mainToken
	}
}
