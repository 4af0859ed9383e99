// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
)

var slotPool = thor.BytesToBytes32([]byte("reward-pool"))

// Service keeps the singleton Pool in contract storage.
type Service struct {
	pool *solidity.Raw[Pool]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		pool: solidity.NewRaw[Pool](sctx, slotPool),
	}
}

// Initialize creates an empty pool paying rate per time unit from launch.
func (s *Service) Initialize(rate u128.Int, launch uint64) error {
	if _, exists, err := s.pool.Get(); err != nil {
		return err
	} else if exists {
		return reverts.NewInvalidState("reward pool already initialized")
	}
	return s.pool.Set(Pool{RewardRate: rate, LastUpdate: launch})
}

// Get returns a copy of the stored pool.
func (s *Service) Get() (*Pool, error) {
	pool, exists, err := s.pool.Get()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, reverts.NewInvalidState("reward pool not initialized")
	}
	return &pool, nil
}

// Advance brings the stored pool to now and returns it.
func (s *Service) Advance(now uint64) (*Pool, error) {
	return s.update(func(p *Pool) error {
		return p.Advance(now)
	})
}

func (s *Service) AddStake(now uint64, amount u128.Int) (*Pool, error) {
	return s.update(func(p *Pool) error {
		return p.AddStake(now, amount)
	})
}

func (s *Service) SubStake(now uint64, amount u128.Int) (*Pool, error) {
	return s.update(func(p *Pool) error {
		return p.SubStake(now, amount)
	})
}

func (s *Service) update(fn func(p *Pool) error) (*Pool, error) {
	pool, err := s.Get()
	if err != nil {
		return nil, err
	}
	if err := fn(pool); err != nil {
		return nil, err
	}
	if err := s.pool.Set(*pool); err != nil {
		return nil, err
	}
	return pool, nil
}
