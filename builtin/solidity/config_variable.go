// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/vechain/govstake/log"
	"github.com/vechain/govstake/thor"
)

// ConfigVariable is a parameter with a compiled default that a non-zero
// value stored in the contract's slot overrides.
type ConfigVariable struct {
	slot        thor.Bytes32
	name        string
	value       uint64
	initialised bool
}

func NewConfigVariable(name string, defaultValue uint64) *ConfigVariable {
	return &ConfigVariable{
		slot:  thor.BytesToBytes32([]byte(name)),
		name:  name,
		value: defaultValue,
	}
}

func (c *ConfigVariable) Get() uint64 {
	return c.value
}

func (c *ConfigVariable) Name() string {
	return c.name
}

func (c *ConfigVariable) Slot() thor.Bytes32 {
	return c.slot
}

// Set writes the override into the contract storage of ctx.
func (c *ConfigVariable) Set(ctx *Context, value uint64) {
	ctx.state.SetStorage(ctx.address, c.slot, thor.BytesToBytes32(new(big.Int).SetUint64(value).Bytes()))
}

// Override reads the stored value once. Zero or unreadable storage keeps the default.
func (c *ConfigVariable) Override(ctx *Context) {
	if c.initialised {
		return
	}
	storage, err := ctx.state.GetStorage(ctx.address, c.slot)
	if err != nil {
		log.Warn("failed to read config value", "slot", c.Name(), "error", err)
		return
	}
	num := new(big.Int).SetBytes(storage.Bytes())

	c.initialised = true

	if num.Sign() != 0 && num.IsUint64() {
		c.value = num.Uint64()
		log.Debug("debug override found new config value", "slot", c.Name(), "value", c.Get())
	} else {
		log.Debug("using default config value", "slot", c.Name(), "value", c.Get())
	}
}
