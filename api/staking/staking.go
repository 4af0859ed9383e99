// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/govstake/api/utils"
	"github.com/vechain/govstake/builtin"
	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/staking"
	"github.com/vechain/govstake/builtin/staking/accumulator"
	"github.com/vechain/govstake/builtin/staking/unlock"
	"github.com/vechain/govstake/host"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
)

// Position is a position record together with its claim bookkeeping.
type Position struct {
	ID        position.ID  `json:"id"`
	Owner     thor.Address `json:"owner"`
	Weight    string       `json:"weight"`
	CreatedAt uint64       `json:"createdAt"`
	LastClaim uint64       `json:"lastClaim"`
}

// Unlock is a pending withdrawal.
type Unlock struct {
	ID        position.ID  `json:"id"`
	Owner     thor.Address `json:"owner"`
	Amount    string       `json:"amount"`
	Time      uint64       `json:"time"`
	UnlocksAt uint64       `json:"unlocksAt"`
}

type Staking struct {
	host *host.Host
}

func New(host *host.Host) *Staking {
	return &Staking{host}
}

func (s *Staking) read(fn func(s *staking.Staking, st *state.State) error) error {
	return s.host.Read(func(st *state.State) error {
		native, err := builtin.Staking.Native(st)
		if err != nil {
			return err
		}
		return fn(native, st)
	})
}

func parseID(req *http.Request) (position.ID, error) {
	id, err := position.ParseID(mux.Vars(req)["id"])
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return id, nil
}

func (s *Staking) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	var pool *accumulator.Pool
	if err := s.read(func(native *staking.Staking, _ *state.State) (err error) {
		pool, err = native.Pool()
		return
	}); err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, pool)
}

func (s *Staking) handleGetNFT(w http.ResponseWriter, _ *http.Request) error {
	var (
		settings *staking.Settings
		delay    uint64
	)
	if err := s.read(func(native *staking.Staking, _ *state.State) (err error) {
		delay = native.WithdrawDelay()
		settings, err = native.Settings()
		return
	}); err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, utils.M{
		"address":       settings.NFT,
		"token":         settings.Token,
		"createdAt":     settings.CreatedAt,
		"withdrawDelay": delay,
	})
}

func (s *Staking) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	var pos *Position
	if err := s.read(func(native *staking.Staking, st *state.State) error {
		reg, err := builtin.Staking.Positions(st)
		if err != nil {
			return err
		}
		data, err := reg.Get(id)
		if err != nil {
			return err
		}
		lastClaim, recorded, err := native.LastClaim(id)
		if err != nil {
			return err
		}
		if !recorded {
			lastClaim = data.CreatedAt
		}
		pos = &Position{
			ID:        id,
			Owner:     data.Owner,
			Weight:    data.Weight.String(),
			CreatedAt: data.CreatedAt,
			LastClaim: lastClaim,
		}
		return nil
	}); err != nil {
		if errors.Is(err, position.ErrTokenNotExists) {
			return utils.NotFound(err)
		}
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, pos)
}

func (s *Staking) handleGetReward(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	var at uint64
	if v := req.URL.Query().Get("at"); v != "" {
		if at, err = strconv.ParseUint(v, 10, 64); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "at"))
		}
	}
	args, err := json.Marshal(utils.M{"id": id})
	if err != nil {
		return err
	}
	receipt, err := s.host.View(&host.Call{
		Contract:  builtin.Staking.Address,
		Method:    "pendingReward",
		Args:      args,
		Timestamp: at,
	})
	if err != nil {
		if errors.Is(err, host.ErrTimestampRegression) {
			return utils.BadRequest(err)
		}
		return err
	}
	if receipt.Reverted {
		return utils.WriteJSONStatus(w, utils.ReceiptStatus(receipt.Kind), receipt)
	}
	return utils.WriteJSON(w, receipt)
}

func (s *Staking) handleGetUnlock(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	var (
		request *unlock.Request
		delay   uint64
	)
	if err := s.read(func(native *staking.Staking, _ *state.State) (err error) {
		delay = native.WithdrawDelay()
		request, err = native.UnlockRequest(id)
		return
	}); err != nil {
		return utils.Revert(err)
	}
	if request == nil {
		return utils.NotFound(errors.Errorf("no unlock request for position %v", id))
	}
	return utils.WriteJSON(w, &Unlock{
		ID:        id,
		Owner:     request.Owner,
		Amount:    request.Amount.String(),
		Time:      request.Time,
		UnlocksAt: request.UnlocksAt(delay),
	})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/pool").Methods(http.MethodGet).Name("GET /staking/pool").HandlerFunc(utils.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/nft").Methods(http.MethodGet).Name("GET /staking/nft").HandlerFunc(utils.WrapHandlerFunc(s.handleGetNFT))
	sub.Path("/positions/{id}").Methods(http.MethodGet).Name("GET /staking/positions/{id}").HandlerFunc(utils.WrapHandlerFunc(s.handleGetPosition))
	sub.Path("/positions/{id}/reward").Methods(http.MethodGet).Name("GET /staking/positions/{id}/reward").HandlerFunc(utils.WrapHandlerFunc(s.handleGetReward))
	sub.Path("/unlocks/{id}").Methods(http.MethodGet).Name("GET /staking/unlocks/{id}").HandlerFunc(utils.WrapHandlerFunc(s.handleGetUnlock))
}
