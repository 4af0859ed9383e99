// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/builtin/staking/accumulator"
	"github.com/vechain/govstake/builtin/staking/claims"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/builtin/staking/unlock"
	"github.com/vechain/govstake/log"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

var logger = log.WithContext("pkg", "staking")

var slotSettings = thor.BytesToBytes32([]byte("settings"))

// WithdrawDelayName is the config variable holding the cooling-off period.
const WithdrawDelayName = "staking-withdraw-delay"

// Settings are fixed when the contract is initialized.
type Settings struct {
	Token     thor.Address `json:"token"`
	NFT       thor.Address `json:"nft"`
	CreatedAt uint64       `json:"createdAt"`
}

// ReadSettings loads the settings of the staking contract at addr.
func ReadSettings(addr thor.Address, state *state.State) (*Settings, error) {
	settings, exists, err := solidity.NewRaw[Settings](solidity.NewContext(addr, state), slotSettings).Get()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, reverts.NewInvalidState("staking not initialized")
	}
	return &settings, nil
}

// Staking implements the governance staking contract.
type Staking struct {
	addr      thor.Address
	token     Token
	positions Positions

	settings      *solidity.Raw[Settings]
	poolService   *accumulator.Service
	claimsService *claims.Service
	unlockService *unlock.Service
	withdrawDelay *solidity.ConfigVariable
}

// New create a new instance.
func New(addr thor.Address, state *state.State, token Token, positions Positions) *Staking {
	sctx := solidity.NewContext(addr, state)

	// debug override for testing
	withdrawDelay := solidity.NewConfigVariable(WithdrawDelayName, thor.WithdrawDelay)
	withdrawDelay.Override(sctx)

	return &Staking{
		addr:          addr,
		token:         token,
		positions:     positions,
		settings:      solidity.NewRaw[Settings](sctx, slotSettings),
		poolService:   accumulator.New(sctx),
		claimsService: claims.New(sctx),
		unlockService: unlock.New(sctx),
		withdrawDelay: withdrawDelay,
	}
}

func (s *Staking) Address() thor.Address {
	return s.addr
}

//
// Getters - no state change
//

// GovernanceNFT returns the address of the position registry.
func (s *Staking) GovernanceNFT() thor.Address {
	return s.positions.Address()
}

func (s *Staking) Settings() (*Settings, error) {
	settings, exists, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, reverts.NewInvalidState("staking not initialized")
	}
	return &settings, nil
}

// WithdrawDelay returns the cooling-off period in effect.
func (s *Staking) WithdrawDelay() uint64 {
	return s.withdrawDelay.Get()
}

// Pool returns the stored reward pool, as of its last update.
func (s *Staking) Pool() (*accumulator.Pool, error) {
	return s.poolService.Get()
}

// LastClaim returns the recorded claim time of a position.
func (s *Staking) LastClaim(id position.ID) (uint64, bool, error) {
	return s.claimsService.Lookup(id)
}

// UnlockRequest returns the pending unlock of a position, or nil.
func (s *Staking) UnlockRequest(id position.ID) (*unlock.Request, error) {
	return s.unlockService.Get(id)
}

// PendingReward previews what Claim would pay at now without writing.
func (s *Staking) PendingReward(id position.ID, now uint64) (u128.Int, error) {
	pool, err := s.poolService.Get()
	if err != nil {
		return u128.Zero(), err
	}
	if err := pool.Advance(now); err != nil {
		return u128.Zero(), err
	}
	data, err := s.positions.Get(id)
	if err != nil {
		return u128.Zero(), reverts.Position(err)
	}
	lastClaim, err := s.claimsService.LastClaim(id, data.CreatedAt)
	if err != nil {
		return u128.Zero(), err
	}
	return pool.ShareOf(now, lastClaim, data.Weight)
}

//
// Setters - state change
//

// run executes op against a checkpoint of the state. Any error reverts every
// write made by op, including those of the collaborators.
func (s *Staking) run(env *xenv.Environment, op string, fn func(inv *invocation) error) error {
	st := env.State()
	checkpoint := st.NewCheckpoint()

	err := fn(&invocation{s: s, env: env})
	if err != nil {
		st.RevertTo(checkpoint)
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": reverts.KindOf(err).String()})
		logger.Debug("staking operation reverted", "op", op, "caller", env.Caller(), "error", err)
		return errors.WithMessage(err, op)
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
	if pool, err := s.poolService.Get(); err == nil {
		observeTotalStaked(pool.TotalStaked)
	}
	return nil
}

// Initialize stores the settings and opens the reward pool at the call time.
func (s *Staking) Initialize(env *xenv.Environment, token, nft thor.Address, rewardRate u128.Int) error {
	return s.run(env, "initialize", func(inv *invocation) error {
		return inv.book(func() error {
			if _, exists, err := s.settings.Get(); err != nil {
				return err
			} else if exists {
				return reverts.NewInvalidState("staking already initialized")
			}
			if err := s.settings.Set(Settings{Token: token, NFT: nft, CreatedAt: inv.now()}); err != nil {
				return err
			}
			logger.Info("staking initialized", "token", token, "nft", nft, "rate", rewardRate, "delay", s.WithdrawDelay())
			return s.poolService.Initialize(rewardRate, inv.now())
		})
	})
}

// Deposit locks amount of the caller's tokens in a new position for to,
// or for the caller when to is nil.
func (s *Staking) Deposit(env *xenv.Environment, amount u128.Int, to *thor.Address) (id position.ID, err error) {
	owner := env.Caller()
	if to != nil {
		owner = *to
	}
	logger.Debug("deposit", "caller", env.Caller(), "owner", owner, "amount", amount)

	err = s.run(env, "deposit", func(inv *invocation) error {
		if err := inv.pull(amount); err != nil {
			return err
		}
		if err := inv.book(func() error {
			if _, err := s.poolService.Advance(inv.now()); err != nil {
				return err
			}
			_, err := s.poolService.AddStake(inv.now(), amount)
			return err
		}); err != nil {
			return err
		}
		return inv.positions(func(env *xenv.Environment, reg Positions) (err error) {
			id, err = reg.Mint(env, owner, amount)
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// IncreaseWeight adds amount of the caller's tokens to position id.
func (s *Staking) IncreaseWeight(env *xenv.Environment, id position.ID, amount u128.Int) error {
	logger.Debug("increase weight", "caller", env.Caller(), "id", id, "amount", amount)

	return s.run(env, "increaseWeight", func(inv *invocation) error {
		if err := inv.pull(amount); err != nil {
			return err
		}
		if err := inv.book(func() error {
			if _, err := s.poolService.Advance(inv.now()); err != nil {
				return err
			}
			_, err := s.poolService.AddStake(inv.now(), amount)
			return err
		}); err != nil {
			return err
		}
		return inv.positions(func(env *xenv.Environment, reg Positions) error {
			return reg.IncrementWeight(env, id, amount)
		})
	})
}

// DecreaseWeight returns amount of position id to the caller, who must own it.
func (s *Staking) DecreaseWeight(env *xenv.Environment, id position.ID, amount u128.Int) error {
	logger.Debug("decrease weight", "caller", env.Caller(), "id", id, "amount", amount)

	return s.run(env, "decreaseWeight", func(inv *invocation) error {
		if err := inv.book(func() error {
			if _, err := s.poolService.Advance(inv.now()); err != nil {
				return err
			}
			_, err := s.poolService.SubStake(inv.now(), amount)
			return err
		}); err != nil {
			return err
		}
		if err := inv.positions(func(env *xenv.Environment, reg Positions) error {
			return reg.DecrementWeight(env, inv.caller(), id, amount)
		}); err != nil {
			return err
		}
		return inv.push(inv.caller(), amount)
	})
}

// Claim compounds the reward of position id into its weight and returns it.
func (s *Staking) Claim(env *xenv.Environment, id position.ID) (reward u128.Int, err error) {
	err = s.run(env, "claim", func(inv *invocation) error {
		if err := inv.book(func() (err error) {
			reward, err = s.settle(inv, id)
			if err != nil {
				return err
			}
			return s.claimsService.Record(id, inv.now())
		}); err != nil {
			return err
		}
		// total staked is left unchanged
		return inv.positions(func(env *xenv.Environment, reg Positions) error {
			return reg.IncrementWeight(env, id, reward)
		})
	})
	if err != nil {
		return u128.Zero(), err
	}
	logger.Debug("claimed", "id", id, "reward", reward)
	return reward, nil
}

// RequestUnlock burns position id of the caller and queues its weight plus
// reward for withdrawal after the cooling-off period.
func (s *Staking) RequestUnlock(env *xenv.Environment, id position.ID) error {
	var amount u128.Int
	err := s.run(env, "requestUnlock", func(inv *invocation) error {
		if err := inv.book(func() error {
			pool, err := s.poolService.Advance(inv.now())
			if err != nil {
				return err
			}
			data, err := inv.position(id)
			if err != nil {
				return err
			}
			reward, err := s.shareOf(pool, inv.now(), id, data)
			if err != nil {
				return err
			}
			if _, err := s.poolService.SubStake(inv.now(), data.Weight); err != nil {
				return err
			}
			if amount, err = u128.Add(data.Weight, reward); err != nil {
				return reverts.Overflow(err, "unlock amount")
			}
			if err := s.unlockService.Insert(id, unlock.Request{
				Time:   inv.now(),
				Amount: amount,
				Owner:  inv.caller(),
			}); err != nil {
				return err
			}
			s.claimsService.Remove(id)
			return nil
		}); err != nil {
			return err
		}
		return inv.positions(func(env *xenv.Environment, reg Positions) error {
			return reg.Burn(env, inv.caller(), id)
		})
	})
	if err == nil {
		logger.Debug("unlock requested", "id", id, "owner", env.Caller(), "amount", amount)
	}
	return err
}

// Withdraw pays out the unlock request of position id to its owner once the
// cooling-off period has passed.
func (s *Staking) Withdraw(env *xenv.Environment, id position.ID) (amount u128.Int, err error) {
	err = s.run(env, "withdraw", func(inv *invocation) error {
		var owner thor.Address
		if err := inv.book(func() error {
			if _, err := s.poolService.Advance(inv.now()); err != nil {
				return err
			}
			req, err := s.unlockService.Get(id)
			if err != nil {
				return err
			}
			if req == nil {
				return reverts.NewInvalidState("no unlock request")
			}
			if req.Owner != inv.caller() {
				return reverts.NewUnauthorized("caller is not the unlock owner")
			}
			if !req.Ready(inv.now(), s.WithdrawDelay()) {
				return reverts.NewInvalidTimeWindow("cooling-off period not over")
			}
			s.unlockService.Remove(id)
			owner, amount = req.Owner, req.Amount
			return nil
		}); err != nil {
			return err
		}
		return inv.push(owner, amount)
	})
	if err != nil {
		return u128.Zero(), err
	}
	logger.Debug("withdrawn", "id", id, "owner", env.Caller(), "amount", amount)
	return amount, nil
}

// settle advances the pool and returns the reward of id accrued since its
// last claim.
func (s *Staking) settle(inv *invocation, id position.ID) (u128.Int, error) {
	pool, err := s.poolService.Advance(inv.now())
	if err != nil {
		return u128.Zero(), err
	}
	data, err := inv.position(id)
	if err != nil {
		return u128.Zero(), err
	}
	return s.shareOf(pool, inv.now(), id, data)
}

func (s *Staking) shareOf(pool *accumulator.Pool, now uint64, id position.ID, data *position.Data) (u128.Int, error) {
	lastClaim, err := s.claimsService.LastClaim(id, data.CreatedAt)
	if err != nil {
		return u128.Zero(), err
	}
	return pool.ShareOf(now, lastClaim, data.Weight)
}
