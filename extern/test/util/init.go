package util

import (
	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/contract/compounder"
	"github.com/connectlabs/optimiser/contract/exchange/router"
	"github.com/connectlabs/optimiser/contract/gate"
	"github.com/connectlabs/optimiser/contract/optimiser"
	"github.com/connectlabs/optimiser/contract/plantation"
	"github.com/connectlabs/optimiser/contract/token"
	"github.com/connectlabs/optimiser/core/types"
)

// ClassMap holds the registered contract class ids
var ClassMap = map[string]uint64{}

func init() {
	ClassMap["Token"] = types.RegisterContractType(&token.TokenContract{})
	ClassMap["Optimiser"] = types.RegisterContractType(&optimiser.OptimiserContract{})
	ClassMap["Compounder"] = types.RegisterContractType(&compounder.CompounderContract{})
	ClassMap["Plantation"] = types.RegisterContractType(&plantation.PlantationContract{})
	ClassMap["Router"] = types.RegisterContractType(&router.RouterContract{})
	ClassMap["Gate"] = types.RegisterContractType(&gate.GateContract{})
}

// well-known test accounts
var (
	Admin   = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	Alice   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	Bob     = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	Charlie = common.HexToAddress("0x00000000000000000000000000000000000000a3")
	FeeSink = common.HexToAddress("0x00000000000000000000000000000000000000f0")
)
