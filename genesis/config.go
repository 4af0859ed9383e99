// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/govstake/builtin"
	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/builtin/staking"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

// Config is the genesis description read from a YAML file.
type Config struct {
	Name          string       `yaml:"name,omitempty"`
	LaunchTime    uint64       `yaml:"launchTime"`
	Deployer      thor.Address `yaml:"deployer"`
	RewardRate    u128.Int     `yaml:"rewardRate"`
	RewardReserve u128.Int     `yaml:"rewardReserve"`
	// WithdrawDelay overrides the cooling-off period when non-zero. Debug only.
	WithdrawDelay uint64        `yaml:"withdrawDelay,omitempty"`
	Accounts      []Account     `yaml:"accounts"`
	API           APIConfig     `yaml:"api,omitempty"`
	Metrics       MetricsConfig `yaml:"metrics,omitempty"`
}

// Account is a token allocation.
type Account struct {
	Address thor.Address `yaml:"address"`
	Balance u128.Int     `yaml:"balance"`
}

// APIConfig describes the HTTP API listener.
type APIConfig struct {
	Addr string `yaml:"addr,omitempty"`
	CORS string `yaml:"cors,omitempty"`
}

// MetricsConfig describes the metrics listener. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Load reads the config at path. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &cfg, nil
}

// Validate checks the config can produce a genesis state.
func (c *Config) Validate() error {
	if c.Deployer.IsZero() {
		return errors.New("deployer must be set")
	}
	seen := make(map[thor.Address]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if a.Address.IsZero() {
			return errors.New("account address must be set")
		}
		if a.Balance.IsZero() {
			return fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
		}
		if seen[a.Address] {
			return fmt.Errorf("%s: duplicated account", a.Address)
		}
		seen[a.Address] = true
	}
	return nil
}

// NewCustomNet create genesis from config.
func NewCustomNet(cfg *Config) (*Genesis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nft := builtin.Staking.PositionAddress(cfg.Deployer)

	builder := new(Builder).
		Timestamp(cfg.LaunchTime).
		State(func(state *state.State) error {
			tok := builtin.Token.Native(state)
			for _, a := range cfg.Accounts {
				if err := tok.Mint(a.Address, a.Balance); err != nil {
					return errors.WithMessagef(err, "allocate %s", a.Address)
				}
			}
			// rewards are paid from the staking contract's own balance
			if !cfg.RewardReserve.IsZero() {
				if err := tok.Mint(builtin.Staking.Address, cfg.RewardReserve); err != nil {
					return errors.WithMessage(err, "allocate reward reserve")
				}
			}
			return nil
		}).
		State(func(state *state.State) error {
			registry := position.New(nft, state)
			if err := registry.Initialize(builtin.Staking.Address); err != nil {
				return errors.WithMessage(err, "initialize position registry")
			}
			if cfg.WithdrawDelay != 0 {
				solidity.NewConfigVariable(staking.WithdrawDelayName, thor.WithdrawDelay).
					Set(solidity.NewContext(builtin.Staking.Address, state), cfg.WithdrawDelay)
			}

			env := xenv.New(state, cfg.Deployer, builtin.Staking.Address, cfg.LaunchTime)
			s := staking.New(builtin.Staking.Address, state, builtin.Token.Native(state), registry)
			return s.Initialize(env, builtin.Token.Address, nft, cfg.RewardRate)
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, id, name}, nil
}
